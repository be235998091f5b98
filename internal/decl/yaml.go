// Package decl reads record declarations from YAML files and from Go
// struct tags and turns them into entity.Declaration values.
//
// A YAML declaration file looks like:
//
//	entities:
//	  - name: User
//	    table_name: user            # optional struct modifiers inline
//	    fields:
//	      - name: id
//	        type: string
//	        colname: user_id        # optional field modifiers inline
//	        unique: true
//	      - name: created_at
//	        type: uint64
//	        nullable: true
//
// Loaders only check the shape of the input. Modifier keys and values are
// validated by entity.Build.
package decl

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/graphix/internal/entity"
	"github.com/koustreak/graphix/internal/errs"
)

type fileDoc struct {
	Entities []entityDoc `yaml:"entities"`
}

type entityDoc struct {
	Name      string         `yaml:"name"`
	Fields    []fieldDoc     `yaml:"fields"`
	Modifiers map[string]any `yaml:",inline"`
}

type fieldDoc struct {
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Modifiers map[string]any `yaml:",inline"`
}

// ParseYAML decodes a declaration document. Entities and fields keep their
// document order.
func ParseYAML(src []byte) ([]entity.Declaration, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "malformed declaration document", err)
	}
	if len(doc.Entities) == 0 {
		return nil, errs.New(errs.ErrKindInvalidInput, "declaration document has no entities")
	}

	out := make([]entity.Declaration, 0, len(doc.Entities))
	for i, e := range doc.Entities {
		if e.Name == "" {
			return nil, errs.Newf(errs.ErrKindInvalidInput, "entity #%d: missing name", i+1)
		}
		d := entity.Declaration{
			Name:      e.Name,
			Modifiers: entity.Modifiers(e.Modifiers),
			Fields:    make([]entity.FieldDecl, 0, len(e.Fields)),
		}
		for j, f := range e.Fields {
			if f.Name == "" {
				return nil, errs.Newf(errs.ErrKindInvalidInput, "entity %q: field #%d: missing name", e.Name, j+1)
			}
			if f.Type == "" {
				return nil, errs.Newf(errs.ErrKindInvalidInput, "entity %q: field %q: missing type", e.Name, f.Name)
			}
			d.Fields = append(d.Fields, entity.FieldDecl{
				Name:      f.Name,
				Type:      f.Type,
				Modifiers: entity.Modifiers(f.Modifiers),
			})
		}
		out = append(out, d)
	}
	return out, nil
}

// LoadFile reads and parses the declaration file at path.
func LoadFile(path string) ([]entity.Declaration, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrKindNotFound, fmt.Sprintf("declaration file %s", path), err)
		}
		return nil, errs.Wrap(errs.ErrKindIOFailed, fmt.Sprintf("read declaration file %s", path), err)
	}
	decls, err := ParseYAML(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}
