package eopkg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

const metadataXML = `<?xml version="1.0" ?>
<PISI>
    <Source>
        <Name>nano</Name>
        <Packager>
            <Name>Root Packager</Name>
            <Email>root@example.com</Email>
        </Packager>
    </Source>
    <Package>
        <Name>nano</Name>
        <Summary>Small and friendly text editor</Summary>
        <Description>GNU nano is a small and friendly text editor.</Description>
        <PartOf>system.utils</PartOf>
        <License>GPL-3.0-or-later</License>
        <License>GFDL-1.2</License>
        <RuntimeDependencies>
            <Dependency releaseFrom="183">glibc</Dependency>
            <Dependency releaseFrom="12">ncurses</Dependency>
        </RuntimeDependencies>
        <History>
            <Update release="12">
                <Date>2020-01-15</Date>
                <Version>4.7</Version>
                <Comment>Update to 4.7</Comment>
                <Name>Jane Packager</Name>
                <Email>jane@example.com</Email>
            </Update>
            <Update release="11">
                <Date>2019-10-02</Date>
                <Version>4.5</Version>
                <Comment>Update to 4.5</Comment>
                <Name>John Packager</Name>
                <Email>john@example.com</Email>
            </Update>
        </History>
        <BuildHost>solus-build-server</BuildHost>
        <Distribution>Solus</Distribution>
        <DistributionRelease>1</DistributionRelease>
        <Architecture>x86_64</Architecture>
        <InstalledSize>12345</InstalledSize>
        <PackageFormat>1.2</PackageFormat>
        <Source>
            <Name>nano-src</Name>
            <Packager>
                <Name>Nested Packager</Name>
                <Email>nested@example.com</Email>
            </Packager>
        </Source>
    </Package>
</PISI>
`

const minimalMetadataXML = `<?xml version="1.0" ?>
<PISI>
    <Source>
        <Name>hello</Name>
        <Packager><Name>Jane Packager</Name><Email>jane@example.com</Email></Packager>
    </Source>
    <Package>
        <Name>hello</Name>
        <Summary>Says hello</Summary>
        <Description>Prints a greeting</Description>
        <PartOf>system.base</PartOf>
        <License>MIT</License>
        <RuntimeDependencies></RuntimeDependencies>
        <History></History>
        <BuildHost>builder</BuildHost>
        <Distribution>Solus</Distribution>
        <DistributionRelease>1</DistributionRelease>
        <Architecture>x86_64</Architecture>
        <InstalledSize>42</InstalledSize>
        <PackageFormat>1.2</PackageFormat>
        <Source>
            <Name>hello</Name>
            <Packager><Name>Jane Packager</Name><Email>jane@example.com</Email></Packager>
        </Source>
    </Package>
</PISI>
`

const filesXML = `<?xml version="1.0" ?>
<Files>
    <File>
        <Path>usr/bin/nano</Path>
        <Type>executable</Type>
        <Size>271536</Size>
        <Uid>0</Uid>
        <Gid>0</Gid>
        <Mode>0755</Mode>
        <Hash>7b1b6a0e42a6bf5ab4c8d1b6e0bcd3b2b0f1e2d3</Hash>
    </File>
    <File>
        <Path>usr/share/man/man1/nano.1</Path>
        <Type>man</Type>
        <Uid>0</Uid>
        <Gid>100</Gid>
        <Mode>0644</Mode>
        <Hash>0a1b2c3d4e5f60718293a4b5c6d7e8f901234567</Hash>
    </File>
</Files>
`

const minimalFilesXML = `<?xml version="1.0" ?>
<Files>
    <File>
        <Path>usr/bin/hello</Path>
        <Type>executable</Type>
        <Uid>0</Uid>
        <Gid>0</Gid>
        <Mode>0755</Mode>
        <Hash>aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d</Hash>
    </File>
</Files>
`

type member struct {
	name string
	data string
}

// buildArchive returns a zip container holding members in order
func buildArchive(t *testing.T, members ...member) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.Create(m.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(m.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// eopkgArchive builds a full archive with a dummy payload
func eopkgArchive(t *testing.T, metadata, files string) []byte {
	t.Helper()
	return buildArchive(t,
		member{name: MetadataMember, data: metadata},
		member{name: FilesMember, data: files},
		member{name: "install.tar.xz", data: "\xfd7zXZ\x00 not read"},
	)
}

// replace swaps exactly one occurrence of old in s
func replace(t *testing.T, s, old, new string) string {
	t.Helper()
	require.Equal(t, 1, strings.Count(s, old), "fixture must contain %q once", old)
	return strings.Replace(s, old, new, 1)
}
