package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestDetectPackageType(t *testing.T) {
	dir := t.TempDir()

	archive := filepath.Join(dir, "nano-5.4-12-1-x86_64.eopkg")
	writeFile(t, archive, []byte("PK\x03\x04rest of the archive"))

	fake := filepath.Join(dir, "fake.eopkg")
	writeFile(t, fake, []byte("not a zip"))

	short := filepath.Join(dir, "short.eopkg")
	writeFile(t, short, []byte("PK"))

	zipNoExt := filepath.Join(dir, "archive.zip")
	writeFile(t, zipNoExt, []byte("PK\x03\x04"))

	index := filepath.Join(dir, "eopkg-index.xml.xz")
	writeFile(t, index, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00})

	sum := filepath.Join(dir, "eopkg-index.xml.xz.sha1sum")
	writeFile(t, sum, []byte("abc"))

	tests := []struct {
		path string
		want PackageType
	}{
		{archive, TypeEopkg},
		{fake, TypeUnknown},
		{short, TypeUnknown},
		{zipNoExt, TypeUnknown},
		{index, TypeIndex},
		{sum, TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			got, err := DetectPackageType(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DetectPackageType(filepath.Join(dir, "missing.eopkg"))
	assert.Error(t, err)
}

func TestFileSystemScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b", "vim-9.0-3-1-x86_64.eopkg"), []byte("PK\x03\x04"))
	writeFile(t, filepath.Join(dir, "a", "nano-5.4-12-1-x86_64.eopkg"), []byte("PK\x03\x04"))
	writeFile(t, filepath.Join(dir, "eopkg-index.xml"), []byte("<PISI/>"))
	writeFile(t, filepath.Join(dir, "README"), []byte("hello"))
	writeFile(t, filepath.Join(dir, ".cache", "old-1-1-1-x86_64.eopkg"), []byte("PK\x03\x04"))

	found, err := NewFileSystemScanner().Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, found, 3)

	assert.Equal(t, filepath.Join(dir, "a", "nano-5.4-12-1-x86_64.eopkg"), found[0].Path)
	assert.Equal(t, TypeEopkg, found[0].Type)
	assert.EqualValues(t, 4, found[0].Size)
	assert.Equal(t, filepath.Join(dir, "b", "vim-9.0-3-1-x86_64.eopkg"), found[1].Path)
	assert.Equal(t, filepath.Join(dir, "eopkg-index.xml"), found[2].Path)
	assert.Equal(t, TypeIndex, found[2].Type)
}

func TestFileSystemScanner_ScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nano.eopkg"), []byte("PK\x03\x04"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSystemScanner().Scan(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
