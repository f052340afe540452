package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/schema"
	"github.com/ralt/eopkginfo/internal/utils"
)

func archiveTables(w io.Writer, report ArchiveReport) error {
	pkg := report.Package.Metadata.Package

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Archive", report.Path})
	if report.Checksum != nil {
		t.AppendRow(table.Row{"Size", report.Checksum.Size})
		t.AppendRow(table.Row{"SHA1", report.Checksum.SHA1})
		t.AppendRow(table.Row{"SHA256", report.Checksum.SHA256})
	}
	if report.Signer != "" {
		t.AppendRow(table.Row{"Signed by", report.Signer})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Name", pkg.Name})
	if update, ok := pkg.LatestUpdate(); ok {
		t.AppendRow(table.Row{"Version", fmt.Sprintf("%s-%d", update.Version, update.Release)})
		t.AppendRow(table.Row{"Updated", update.Date.Format(schema.DateLayout)})
		t.AppendRow(table.Row{"Updated by", update.Packager})
	}
	t.AppendRow(table.Row{"Summary", pkg.Summary})
	t.AppendRow(table.Row{"Component", pkg.PartOf})
	t.AppendRow(table.Row{"Licenses", strings.Join(pkg.Licenses, ", ")})
	t.AppendRow(table.Row{"Architecture", pkg.Architecture})
	t.AppendRow(table.Row{"Installed size", pkg.InstalledSize})
	t.AppendRow(table.Row{"Distribution", fmt.Sprintf("%s %s", pkg.Distribution, pkg.DistributionRelease)})
	t.AppendRow(table.Row{"Build host", pkg.BuildHost})
	t.AppendRow(table.Row{"Package format", pkg.PackageFormat})
	t.AppendRow(table.Row{"Source", fmt.Sprintf("%s (%s)", report.Package.Metadata.Source.Name, report.Package.Metadata.Source.Packager)})
	t.AppendRow(table.Row{"Package source", fmt.Sprintf("%s (%s)", pkg.Source.Name, pkg.Source.Packager)})

	if _, err := fmt.Fprintf(w, "Package\n%s\n\n", t.Render()); err != nil {
		return err
	}

	if len(pkg.RuntimeDependencies) > 0 {
		t = table.NewWriter()
		t.AppendHeader(table.Row{"Dependency", "Release from"})
		for _, dep := range pkg.RuntimeDependencies {
			t.AppendRow(table.Row{dep.Name, dep.Release})
		}
		if _, err := fmt.Fprintf(w, "Runtime dependencies\n%s\n\n", t.Render()); err != nil {
			return err
		}
	}

	if len(pkg.History) > 0 {
		t = table.NewWriter()
		t.AppendHeader(table.Row{"Release", "Version", "Date", "Packager", "Comment"})
		for _, u := range pkg.History {
			t.AppendRow(table.Row{u.Release, u.Version, u.Date.Format(schema.DateLayout), u.Packager, u.Comment})
		}
		if _, err := fmt.Fprintf(w, "History\n%s\n\n", t.Render()); err != nil {
			return err
		}
	}

	t = table.NewWriter()
	t.AppendHeader(table.Row{"Path", "Type", "Mode", "UID", "GID", "Hash"})
	for _, f := range report.Package.Files.Files {
		t.AppendRow(table.Row{f.Path, f.Type, fmt.Sprintf("%04o", f.Mode), f.UID, f.GID, f.Hash})
	}
	t.AppendFooter(table.Row{len(report.Package.Files.Files), "", "", "", "", ""})
	_, err := fmt.Fprintf(w, "Files\n%s\n", t.Render())
	return err
}

func indexTable(w io.Writer, index *models.Index) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Identity", "Component", "URI", "Size"})
	for i, entry := range index.Packages {
		t.AppendRow(table.Row{i, utils.PackageIdentity(entry.Package), entry.Package.PartOf, entry.URI, entry.Size})
	}
	t.AppendFooter(table.Row{len(index.Packages), "", "", "", ""})
	_, err := fmt.Fprintf(w, "%s\n", t.Render())
	return err
}

func scanTables(w io.Writer, report ScanReport) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Archive", "Identity", "Index", "Error"})

	failed := 0
	for i, r := range report.Results {
		identity := ""
		if r.Package != nil {
			identity = utils.PackageIdentity(*r.Package)
		}
		if r.Error != "" {
			failed++
		}
		t.AppendRow(table.Row{i, r.Path, identity, r.Indexed, r.Error})
	}
	t.AppendFooter(table.Row{len(report.Results), "", "", "", fmt.Sprintf("%d failed", failed)})

	if _, err := fmt.Fprintf(w, "Archives\n%s\n", t.Render()); err != nil {
		return err
	}

	if len(report.Duplicates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(report.Duplicates))
	for id := range report.Duplicates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	t = table.NewWriter()
	t.AppendHeader(table.Row{"Identity", "Archives"})
	for _, id := range ids {
		t.AppendRow(table.Row{id, strings.Join(report.Duplicates[id], "\n")})
	}
	_, err := fmt.Fprintf(w, "\nDuplicates\n%s\n", t.Render())
	return err
}
