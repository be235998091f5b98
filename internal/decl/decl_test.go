package decl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/graphix/internal/entity"
	"github.com/koustreak/graphix/internal/errs"
)

const usersYAML = `
entities:
  - name: User
    table_name: user
    schema_name: schema.private
    fields:
      - name: id
        type: string
        colname: user_id
        unique: true
      - name: name
        type: string
      - name: verified
        type: bool
      - name: created_at
        type: uint64
        nullable: true
  - name: Team
    fields:
      - name: slug
        type: string
        unique: true
`

func TestParseYAML(t *testing.T) {
	decls, err := ParseYAML([]byte(usersYAML))
	require.NoError(t, err)
	require.Len(t, decls, 2)

	user := decls[0]
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, entity.Modifiers{"table_name": "user", "schema_name": "schema.private"}, user.Modifiers)

	var names []string
	for _, f := range user.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "name", "verified", "created_at"}, names)

	assert.Equal(t, "string", user.Fields[0].Type)
	assert.Equal(t, entity.Modifiers{"colname": "user_id", "unique": true}, user.Fields[0].Modifiers)
	assert.Empty(t, user.Fields[1].Modifiers)
	assert.Equal(t, true, user.Fields[3].Modifiers["nullable"])

	assert.Equal(t, "Team", decls[1].Name)
	assert.Empty(t, decls[1].Modifiers)
}

func TestParseYAML_BuildsDescriptors(t *testing.T) {
	decls, err := ParseYAML([]byte(usersYAML))
	require.NoError(t, err)

	d, err := entity.NewBuilder(nil).BuildDeclaration(decls[0])
	require.NoError(t, err)
	assert.Equal(t, "user", d.TableName())
	assert.Equal(t, "user_id", d.Field(0).ColumnName)
	assert.Equal(t, "bigint", d.Field(3).SQLType.String())
}

func TestParseYAML_UnknownModifierReachesBuilder(t *testing.T) {
	decls, err := ParseYAML([]byte(`
entities:
  - name: User
    fields:
      - name: id
        type: int64
        uniqe: true
`))
	require.NoError(t, err, "the loader does not judge modifier keys")

	_, err = entity.NewBuilder(nil).BuildDeclaration(decls[0])
	require.Error(t, err)
	assert.True(t, errs.IsUnknownModifier(err))
	assert.Contains(t, err.Error(), `"uniqe"`)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"malformed", "entities: [", "malformed declaration document"},
		{"no entities", "entities: []", "no entities"},
		{"missing entity name", "entities:\n  - fields: []", "entity #1: missing name"},
		{"missing field name", "entities:\n  - name: User\n    fields:\n      - type: string", `entity "User": field #1: missing name`},
		{"missing field type", "entities:\n  - name: User\n    fields:\n      - name: id", `entity "User": field "id": missing type`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(usersYAML), 0o644))

	decls, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, decls, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

type Base struct {
	CreatedAt int64 `graphix:"immutable"`
}

type User struct {
	_         struct{} `graphix:"table_name=user,schema_name=schema.private"`
	ID        string   `graphix:"colname=user_id,unique"`
	Name      string
	Username  string
	Verified  bool
	Initial   rune
	Score     float32 `graphix:"nullable"`
	Token     string  `graphix:"-"`
	internal  string
	Base
}

func TestFromStruct(t *testing.T) {
	d, err := FromStruct(&User{})
	require.NoError(t, err)

	assert.Equal(t, "User", d.Name)
	assert.Equal(t, entity.Modifiers{"table_name": "user", "schema_name": "schema.private"}, d.Modifiers)

	var got []string
	for _, f := range d.Fields {
		got = append(got, f.Name+":"+f.Type)
	}
	assert.Equal(t, []string{
		"id:string",
		"name:string",
		"username:string",
		"verified:bool",
		"initial:int32",
		"score:float32",
		"created_at:int64",
	}, got)

	assert.Equal(t, entity.Modifiers{"colname": "user_id", "unique": true}, d.Fields[0].Modifiers)
	assert.Nil(t, d.Fields[1].Modifiers)
	assert.Equal(t, entity.Modifiers{"nullable": true}, d.Fields[5].Modifiers)
	assert.Equal(t, entity.Modifiers{"immutable": true}, d.Fields[6].Modifiers)

	desc, err := entity.NewBuilder(nil).BuildDeclaration(d)
	require.NoError(t, err)
	assert.Equal(t, "user", desc.TableName())
	assert.Equal(t, "user_id", desc.Field(0).ColumnName)
	assert.True(t, desc.Field(6).Immutable)
}

type Tagged struct {
	Tags []string
}

func TestFromStruct_UnsupportedFieldType(t *testing.T) {
	d, err := FromStruct(Tagged{})
	require.NoError(t, err)

	_, err = entity.NewBuilder(nil).BuildDeclaration(d)
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedType(err))
	assert.Contains(t, err.Error(), `field "tags": unsupported type "[]string"`)
}

type BadTag struct {
	ID string `graphix:"unique,unique"`
}

type BadKey struct {
	ID string `graphix:"=x"`
}

func TestFromStruct_Errors(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		message string
	}{
		{"not a struct", 42, "int is not a struct"},
		{"nil", nil, "is not a struct"},
		{"anonymous", struct{ A int }{}, "anonymous struct"},
		{"duplicate modifier", BadTag{}, `modifier "unique" given twice`},
		{"empty key", BadKey{}, `malformed modifier "=x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromStruct(tt.value)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ID":         "id",
		"Name":       "name",
		"CreatedAt":  "created_at",
		"UserID":     "user_id",
		"HTTPServer": "http_server",
		"Address2":   "address2",
		"already_ok": "already_ok",
	}
	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), in)
	}
}
