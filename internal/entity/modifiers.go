package entity

import (
	"fmt"
	"slices"
	"strings"

	"github.com/koustreak/graphix/internal/errs"
)

// Modifier keys accepted on a record declaration.
const (
	ModTableName  = "table_name"
	ModSchemaName = "schema_name"
)

// Modifier keys accepted on a field declaration.
const (
	ModColumnName = "colname"
	ModUnique     = "unique"
	ModImmutable  = "immutable"
	ModNullable   = "nullable"
)

// Modifiers are declarative key/value annotations. String modifiers hold a
// string; flag modifiers hold a bool. An absent key means "use the default".
type Modifiers map[string]any

// FieldDecl is one field as declared, before type resolution.
type FieldDecl struct {
	Name      string
	Type      string // native type name, e.g. "int64"
	Modifiers Modifiers
}

// Declaration is a whole record as declared.
type Declaration struct {
	Name      string
	Modifiers Modifiers
	Fields    []FieldDecl
}

type modKind int

const (
	modString modKind = iota
	modFlag
)

var (
	structMods = map[string]modKind{
		ModTableName:  modString,
		ModSchemaName: modString,
	}
	fieldMods = map[string]modKind{
		ModColumnName: modString,
		ModUnique:     modFlag,
		ModImmutable:  modFlag,
		ModNullable:   modFlag,
	}
)

// check validates mods against the allowed set. Keys are visited in sorted
// order so the reported error does not depend on map iteration.
func (m Modifiers) check(subject string, allowed map[string]modKind) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		kind, ok := allowed[key]
		if !ok {
			return errs.UnknownModifier(subject, key)
		}
		switch kind {
		case modString:
			s, ok := m[key].(string)
			if !ok {
				return errs.Newf(errs.ErrKindInvalidInput,
					"%s: modifier %q expects a string, got %s", subject, key, describe(m[key]))
			}
			if s == "" {
				return errs.EmptyOverride(subject, key)
			}
		case modFlag:
			if _, ok := m[key].(bool); !ok {
				return errs.Newf(errs.ErrKindInvalidInput,
					"%s: modifier %q expects a boolean, got %s", subject, key, describe(m[key]))
			}
		}
	}
	return nil
}

// checkTableName rejects table names that cannot be used as a single file
// name. The table name keys the generated artifacts on disk and in the store.
func checkTableName(subject, name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errs.Newf(errs.ErrKindInvalidInput,
			"%s: modifier %q must not contain a path, got %q", subject, ModTableName, name)
	}
	return nil
}

// str returns the string modifier key, or def when it is absent.
func (m Modifiers) str(key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

// flag returns the flag modifier key, false when absent.
func (m Modifiers) flag(key string) bool {
	b, _ := m[key].(bool)
	return b
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T %v", v, v)
}
