package decl

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/koustreak/graphix/internal/entity"
	"github.com/koustreak/graphix/internal/errs"
)

// TagName is the struct tag key read by FromStruct.
const TagName = "graphix"

// FromStruct derives a declaration from the struct type of v (a struct or a
// pointer to one). Field tags carry field modifiers:
//
//	Email string `graphix:"colname=email_address,unique"`
//
// Bare keys are flags set to true; key=value pairs are string overrides.
// A blank field carries struct modifiers, and "-" skips a field:
//
//	type User struct {
//	    _     struct{} `graphix:"table_name=user,schema_name=schema.private"`
//	    Token string   `graphix:"-"`
//	}
//
// Field names are the snake_case form of the Go field name; native type
// names are the Go type's String form. Embedded untagged structs are
// flattened.
func FromStruct(v any) (entity.Declaration, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return entity.Declaration{}, errs.Newf(errs.ErrKindInvalidInput, "%T is not a struct", v)
	}
	if t.Name() == "" {
		return entity.Declaration{}, errs.New(errs.ErrKindInvalidInput, "anonymous struct types cannot be declared")
	}

	d := entity.Declaration{Name: t.Name()}
	if err := collect(t, &d); err != nil {
		return entity.Declaration{}, err
	}
	return d, nil
}

func collect(t reflect.Type, d *entity.Declaration) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, tagged := f.Tag.Lookup(TagName)

		if f.Name == "_" {
			if !tagged {
				continue
			}
			mods, err := parseTag(tag)
			if err != nil {
				return errs.Wrap(errs.ErrKindInvalidInput, "struct tag of "+t.Name(), err)
			}
			if d.Modifiers == nil {
				d.Modifiers = entity.Modifiers{}
			}
			for k, v := range mods {
				d.Modifiers[k] = v
			}
			continue
		}
		if tag == "-" {
			continue
		}
		if f.Anonymous && !tagged && f.Type.Kind() == reflect.Struct {
			if err := collect(f.Type, d); err != nil {
				return err
			}
			continue
		}
		if !f.IsExported() {
			continue
		}

		mods, err := parseTag(tag)
		if err != nil {
			return errs.Wrap(errs.ErrKindInvalidInput, "tag of field "+f.Name, err)
		}
		d.Fields = append(d.Fields, entity.FieldDecl{
			Name:      SnakeCase(f.Name),
			Type:      f.Type.String(),
			Modifiers: mods,
		})
	}
	return nil
}

// parseTag splits "colname=x,unique" into modifiers. An empty tag yields nil.
func parseTag(tag string) (entity.Modifiers, error) {
	var mods entity.Modifiers
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mods == nil {
			mods = entity.Modifiers{}
		}
		key, val, hasVal := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, errs.Newf(errs.ErrKindInvalidInput, "malformed modifier %q", part)
		}
		if _, dup := mods[key]; dup {
			return nil, errs.Newf(errs.ErrKindInvalidInput, "modifier %q given twice", key)
		}
		if hasVal {
			mods[key] = strings.TrimSpace(val)
		} else {
			mods[key] = true
		}
	}
	return mods, nil
}

// SnakeCase converts a Go identifier to snake_case, keeping initialisms
// together: "CreatedAt" → "created_at", "UserID" → "user_id".
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
