package eopkg

import (
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/schema"
)

// mapFiles maps the files.xml root. The manifest is all or nothing: a
// single bad record rejects the whole list.
func mapFiles(root schema.Element) (models.Files, error) {
	if root.Tag() != "Files" {
		return models.Files{}, &models.EopkgError{
			Type:  models.ErrInvalidStructure,
			Path:  root.Path(),
			Field: "Files",
		}
	}

	children := root.Elements()
	if len(children) == 0 {
		return models.Files{}, &models.EopkgError{
			Type:  models.ErrInvalidStructure,
			Path:  root.Path(),
			Field: "File",
		}
	}

	files := make([]models.File, 0, len(children))
	for _, c := range children {
		if c.Tag() != "File" {
			return models.Files{}, &models.EopkgError{
				Type:  models.ErrInvalidStructure,
				Path:  c.Path(),
				Field: "File",
			}
		}

		f, err := mapFile(schema.Wrap(c))
		if err != nil {
			return models.Files{}, err
		}
		files = append(files, f)
	}

	return models.Files{Files: files}, nil
}

func mapFile(el schema.Element) (models.File, error) {
	var (
		f   models.File
		err error
	)

	if f.Path, err = el.RequiredChildText("Path"); err != nil {
		return models.File{}, err
	}
	if f.Type, err = mapFiletype(el); err != nil {
		return models.File{}, err
	}

	uid, err := el.RequiredChildUint("Uid", 32)
	if err != nil {
		return models.File{}, err
	}
	f.UID = uint32(uid)

	gid, err := el.RequiredChildUint("Gid", 32)
	if err != nil {
		return models.File{}, err
	}
	f.GID = uint32(gid)

	if f.Mode, err = el.RequiredChildOctal("Mode"); err != nil {
		return models.File{}, err
	}
	if f.Hash, err = el.RequiredChildText("Hash"); err != nil {
		return models.File{}, err
	}

	return f, nil
}

func mapFiletype(el schema.Element) (models.Filetype, error) {
	raw, err := el.RequiredChildText("Type")
	if err != nil {
		return 0, err
	}
	ft, ok := models.ParseFiletype(raw)
	if !ok {
		return 0, &models.EopkgError{
			Type:  models.ErrUnknownFileType,
			Path:  el.Path(),
			Field: "Type",
			Value: raw,
		}
	}
	return ft, nil
}
