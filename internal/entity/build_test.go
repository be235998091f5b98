package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/graphix/internal/dialect"
	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/native"
)

func userFields() []FieldDecl {
	return []FieldDecl{
		{Name: "id", Type: "string", Modifiers: Modifiers{"colname": "user_id", "unique": true}},
		{Name: "name", Type: "string"},
		{Name: "username", Type: "string"},
		{Name: "verified", Type: "bool"},
		{Name: "created_at", Type: "uint64", Modifiers: Modifiers{"nullable": true}},
	}
}

func TestBuild_Defaults(t *testing.T) {
	d, err := Build("User", userFields(), nil)
	require.NoError(t, err)

	assert.Equal(t, "User", d.Name())
	assert.Equal(t, "users", d.TableName())
	assert.Equal(t, DefaultSchema, d.SchemaName())
	assert.Equal(t, "schema.public", d.SchemaName())
}

func TestBuild_StructOverrides(t *testing.T) {
	d, err := Build("User", userFields(), Modifiers{"table_name": "user", "schema_name": "schema.private"})
	require.NoError(t, err)

	assert.Equal(t, "user", d.TableName())
	assert.Equal(t, "schema.private", d.SchemaName())
}

func TestBuild_Fields(t *testing.T) {
	d, err := Build("User", userFields(), nil)
	require.NoError(t, err)
	require.Equal(t, 5, d.NumFields())

	names := make([]string, 0, d.NumFields())
	for _, f := range d.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "name", "username", "verified", "created_at"}, names)

	id := d.Field(0)
	assert.Equal(t, "user_id", id.ColumnName)
	assert.Equal(t, "string", id.SourceType)
	assert.Equal(t, "text", id.SQLType.String())
	assert.True(t, id.Unique)
	assert.False(t, id.Nullable)
	assert.False(t, id.Immutable)

	name := d.Field(1)
	assert.Equal(t, "name", name.ColumnName, "column name defaults to the field name")
	assert.False(t, name.Unique)

	created := d.Field(4)
	assert.Equal(t, "bigint", created.SQLType.String())
	assert.True(t, created.Nullable)
}

func TestBuild_FlagsAreIndependent(t *testing.T) {
	d, err := Build("Account", []FieldDecl{
		{Name: "email", Type: "string", Modifiers: Modifiers{"unique": true, "nullable": true, "immutable": true}},
		{Name: "handle", Type: "string", Modifiers: Modifiers{"immutable": true, "unique": false}},
	}, nil)
	require.NoError(t, err)

	email := d.Field(0)
	assert.True(t, email.Unique)
	assert.True(t, email.Nullable)
	assert.True(t, email.Immutable)

	handle := d.Field(1)
	assert.True(t, handle.Immutable)
	assert.False(t, handle.Unique)
	assert.False(t, handle.Nullable)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		fields  []FieldDecl
		mods    Modifiers
		check   func(error) bool
		message string
	}{
		{
			name:    "unsupported compound type",
			record:  "User",
			fields:  []FieldDecl{{Name: "id", Type: "int64"}, {Name: "tags", Type: "[]string"}},
			check:   errs.IsUnsupportedType,
			message: `entity "User": field "tags": unsupported type "[]string"`,
		},
		{
			name:    "unknown struct modifier",
			record:  "User",
			mods:    Modifiers{"tabel_name": "people"},
			check:   errs.IsUnknownModifier,
			message: `entity "User": unknown modifier "tabel_name"`,
		},
		{
			name:    "unknown field modifier",
			record:  "User",
			fields:  []FieldDecl{{Name: "id", Type: "int64", Modifiers: Modifiers{"uniq": true}}},
			check:   errs.IsUnknownModifier,
			message: `entity "User": field "id": unknown modifier "uniq"`,
		},
		{
			name:    "empty table name",
			record:  "User",
			mods:    Modifiers{"table_name": ""},
			check:   errs.IsEmptyOverride,
			message: `entity "User": modifier "table_name" must not be empty`,
		},
		{
			name:    "table name escaping the output directory",
			record:  "User",
			mods:    Modifiers{"table_name": "../escaped"},
			check:   errs.IsInvalidInput,
			message: `entity "User": modifier "table_name" must not contain a path, got "../escaped"`,
		},
		{
			name:    "table name with a separator",
			record:  "User",
			mods:    Modifiers{"table_name": "a/b"},
			check:   errs.IsInvalidInput,
			message: `must not contain a path, got "a/b"`,
		},
		{
			name:    "table name with a backslash",
			record:  "User",
			mods:    Modifiers{"table_name": `a\b`},
			check:   errs.IsInvalidInput,
			message: `must not contain a path`,
		},
		{
			name:    "table name is a parent reference",
			record:  "User",
			mods:    Modifiers{"table_name": ".."},
			check:   errs.IsInvalidInput,
			message: `must not contain a path, got ".."`,
		},
		{
			name:    "empty schema name",
			record:  "User",
			mods:    Modifiers{"schema_name": ""},
			check:   errs.IsEmptyOverride,
			message: `modifier "schema_name" must not be empty`,
		},
		{
			name:    "empty column name",
			record:  "User",
			fields:  []FieldDecl{{Name: "id", Type: "int64", Modifiers: Modifiers{"colname": ""}}},
			check:   errs.IsEmptyOverride,
			message: `entity "User": field "id": modifier "colname" must not be empty`,
		},
		{
			name:    "flag with string value",
			record:  "User",
			fields:  []FieldDecl{{Name: "id", Type: "int64", Modifiers: Modifiers{"unique": "yes"}}},
			check:   errs.IsInvalidInput,
			message: `modifier "unique" expects a boolean`,
		},
		{
			name:    "override with bool value",
			record:  "User",
			mods:    Modifiers{"table_name": true},
			check:   errs.IsInvalidInput,
			message: `modifier "table_name" expects a string`,
		},
		{
			name:    "duplicate column",
			record:  "User",
			fields:  []FieldDecl{{Name: "id", Type: "int64"}, {Name: "other", Type: "int64", Modifiers: Modifiers{"colname": "id"}}},
			check:   errs.IsInvalidInput,
			message: `fields "id" and "other" both map to column "id"`,
		},
		{
			name:    "empty record name",
			record:  "",
			check:   errs.IsInvalidInput,
			message: "entity name must not be empty",
		},
		{
			name:    "empty field name",
			record:  "User",
			fields:  []FieldDecl{{Name: "", Type: "int64"}},
			check:   errs.IsInvalidInput,
			message: "field name must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(tt.record, tt.fields, tt.mods)
			require.Error(t, err)
			assert.Nil(t, d, "no partial descriptor on error")
			assert.True(t, tt.check(err), "unexpected kind: %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBuild_FirstErrorWins(t *testing.T) {
	_, err := Build("User", []FieldDecl{
		{Name: "a", Type: "map[string]int"},
		{Name: "b", Type: "int64", Modifiers: Modifiers{"bogus": true}},
	}, nil)
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedType(err))
	assert.Contains(t, err.Error(), `field "a"`)

	_, err = Build("User", nil, Modifiers{"zzz": "x", "aaa": "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"aaa"`, "modifiers are checked in sorted order")
}

func TestBuilder_CustomResolver(t *testing.T) {
	r := native.NewResolver()
	r.Register("uuid.UUID", dialect.Of(dialect.UUID))

	d, err := NewBuilder(r).BuildDeclaration(Declaration{
		Name:   "Session",
		Fields: []FieldDecl{{Name: "id", Type: "uuid.UUID", Modifiers: Modifiers{"unique": true}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "uuid", d.Field(0).SQLType.String())

	_, err = Build("Session", []FieldDecl{{Name: "id", Type: "uuid.UUID"}}, nil)
	assert.True(t, errs.IsUnsupportedType(err))
}

func TestDescriptor_Immutable(t *testing.T) {
	d, err := Build("User", userFields(), nil)
	require.NoError(t, err)

	fields := d.Fields()
	fields[0].ColumnName = "changed"
	fields[0].Unique = false

	assert.Equal(t, "user_id", d.Field(0).ColumnName)
	assert.True(t, d.Field(0).Unique)
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build("User", userFields(), nil)
	require.NoError(t, err)
	b, err := Build("User", userFields(), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDefaultTableName(t *testing.T) {
	assert.Equal(t, "users", DefaultTableName("User"))
	assert.Equal(t, "orderlines", DefaultTableName("OrderLine"))
	assert.Equal(t, "statuss", DefaultTableName("Status"))
}

func TestUniqueIndexName(t *testing.T) {
	d, err := Build("User", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "idx_users_email_unique", d.UniqueIndexName("email"))
}
