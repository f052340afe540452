package eopkg

import (
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/schema"
)

// mapPisi maps the metadata.xml root element
func (d *decoder) mapPisi(root schema.Element) (models.Pisi, error) {
	if root.Tag() != "PISI" {
		return models.Pisi{}, &models.EopkgError{
			Type:  models.ErrInvalidStructure,
			Path:  root.Path(),
			Field: "PISI",
		}
	}

	sourceEl, err := root.RequiredChild("Source")
	if err != nil {
		return models.Pisi{}, err
	}
	source, err := mapSource(sourceEl)
	if err != nil {
		return models.Pisi{}, err
	}

	packageEl, err := root.RequiredChild("Package")
	if err != nil {
		return models.Pisi{}, err
	}
	pkg, err := d.mapPackage(packageEl)
	if err != nil {
		return models.Pisi{}, err
	}

	return models.Pisi{Source: source, Package: pkg}, nil
}

func mapSource(el schema.Element) (models.Source, error) {
	name, err := el.RequiredChildText("Name")
	if err != nil {
		return models.Source{}, err
	}

	packagerEl, err := el.RequiredChild("Packager")
	if err != nil {
		return models.Source{}, err
	}
	packager, err := mapUser(packagerEl)
	if err != nil {
		return models.Source{}, err
	}

	return models.Source{Name: name, Packager: packager}, nil
}

func mapUser(el schema.Element) (models.User, error) {
	name, err := el.RequiredChildText("Name")
	if err != nil {
		return models.User{}, err
	}
	email, err := el.RequiredChildText("Email")
	if err != nil {
		return models.User{}, err
	}
	return models.User{Name: name, Email: email}, nil
}

// mapPackage maps a <Package> element. Fields are read in document
// order and the first failure aborts the package.
func (d *decoder) mapPackage(el schema.Element) (models.Package, error) {
	var (
		pkg models.Package
		err error
	)

	if pkg.Name, err = el.RequiredChildText("Name"); err != nil {
		return models.Package{}, err
	}
	if pkg.Summary, err = el.RequiredChildText("Summary"); err != nil {
		return models.Package{}, err
	}
	if pkg.Description, err = el.RequiredChildText("Description"); err != nil {
		return models.Package{}, err
	}
	if pkg.PartOf, err = el.RequiredChildText("PartOf"); err != nil {
		return models.Package{}, err
	}
	if pkg.Licenses, err = mapLicenses(el); err != nil {
		return models.Package{}, err
	}

	depEls, err := d.entries(el, "RuntimeDependencies", "Dependency")
	if err != nil {
		return models.Package{}, err
	}
	deps, failures := schema.Collect(depEls, mapDependency)
	d.drop(failures, "Dependency")
	pkg.RuntimeDependencies = deps

	updateEls, err := d.entries(el, "History", "Update")
	if err != nil {
		return models.Package{}, err
	}
	history, failures := schema.Collect(updateEls, mapUpdate)
	d.drop(failures, "Update")
	pkg.History = history

	if pkg.BuildHost, err = el.RequiredChildText("BuildHost"); err != nil {
		return models.Package{}, err
	}
	if pkg.Distribution, err = el.RequiredChildText("Distribution"); err != nil {
		return models.Package{}, err
	}
	if pkg.DistributionRelease, err = el.RequiredChildText("DistributionRelease"); err != nil {
		return models.Package{}, err
	}
	if pkg.Architecture, err = el.RequiredChildText("Architecture"); err != nil {
		return models.Package{}, err
	}
	if pkg.InstalledSize, err = el.RequiredChildUint("InstalledSize", 64); err != nil {
		return models.Package{}, err
	}
	if pkg.PackageFormat, err = el.RequiredChildText("PackageFormat"); err != nil {
		return models.Package{}, err
	}

	sourceEl, err := el.RequiredChild("Source")
	switch {
	case err == nil:
		if pkg.Source, err = mapSource(sourceEl); err != nil {
			return models.Package{}, err
		}
	case !d.index:
		return models.Package{}, err
	}

	return pkg, nil
}

// entries returns the tag children of the section container in el.
// Outside an index the container is mandatory; in an index a missing
// one holds no entries.
func (d *decoder) entries(el schema.Element, section, tag string) ([]schema.Element, error) {
	sec, err := el.RequiredChild(section)
	if err != nil {
		if d.index {
			return nil, nil
		}
		return nil, err
	}
	return sec.AllChildren(tag), nil
}

// mapLicenses collects every <License> with text. Absent and empty
// license lists are both rejected.
func mapLicenses(el schema.Element) ([]string, error) {
	var licenses []string
	for _, l := range el.AllChildren("License") {
		if text, ok := l.Text(); ok {
			licenses = append(licenses, text)
		}
	}
	if len(licenses) == 0 {
		return nil, &models.EopkgError{
			Type:  models.ErrEmptyLicenseList,
			Path:  el.Path(),
			Field: "License",
		}
	}
	return licenses, nil
}

func mapDependency(el schema.Element) (models.Dependency, error) {
	release, err := el.AttributeUint("releaseFrom", 32)
	if err != nil {
		return models.Dependency{}, err
	}
	name, err := el.OwnText()
	if err != nil {
		return models.Dependency{}, err
	}
	return models.Dependency{Release: uint32(release), Name: name}, nil
}

func mapUpdate(el schema.Element) (models.Update, error) {
	release, err := el.AttributeUint("release", 32)
	if err != nil {
		return models.Update{}, err
	}
	date, err := el.RequiredChildDate("Date")
	if err != nil {
		return models.Update{}, err
	}
	version, err := el.RequiredChildText("Version")
	if err != nil {
		return models.Update{}, err
	}
	comment, err := el.RequiredChildText("Comment")
	if err != nil {
		return models.Update{}, err
	}

	// eopkg writes the packager's Name and Email directly inside <Update>
	packagerEl := el
	if p, err := el.RequiredChild("Packager"); err == nil {
		packagerEl = p
	}
	packager, err := mapUser(packagerEl)
	if err != nil {
		return models.Update{}, err
	}

	return models.Update{
		Release:  uint32(release),
		Date:     date,
		Version:  version,
		Comment:  comment,
		Packager: packager,
	}, nil
}
