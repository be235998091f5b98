// Package entity holds the schema descriptor of a declared record type and
// the builder that validates declarations into descriptors.
//
// A Descriptor is immutable once built: its fields are only reachable
// through accessors that return copies, so it can be shared freely between
// goroutines.
package entity

import "github.com/koustreak/graphix/internal/dialect"

// DefaultSchema is the schema a table is placed in when the declaration
// does not override it.
const DefaultSchema = "schema.public"

// Field describes one declared field and the column it maps to.
type Field struct {
	Name       string             // logical field name
	ColumnName string             // storage column name
	SourceType string             // native type as declared, for diagnostics
	SQLType    dialect.ColumnType // resolved column type
	Unique     bool
	Immutable  bool // carried for callers; not emitted into documents
	Nullable   bool
}

// Descriptor is the schema mapping of one record type.
type Descriptor struct {
	name       string
	tableName  string
	schemaName string
	fields     []Field
}

// Name returns the logical record name.
func (d *Descriptor) Name() string { return d.name }

// TableName returns the target table name.
func (d *Descriptor) TableName() string { return d.tableName }

// SchemaName returns the target schema name.
func (d *Descriptor) SchemaName() string { return d.schemaName }

// Fields returns the fields in declaration order.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// NumFields returns the number of fields.
func (d *Descriptor) NumFields() int { return len(d.fields) }

// Field returns the i-th field in declaration order.
func (d *Descriptor) Field(i int) Field { return d.fields[i] }

// UniqueIndexName returns the name of the unique index synthesised for a
// column of this table.
func (d *Descriptor) UniqueIndexName(column string) string {
	return "idx_" + d.tableName + "_" + column + "_unique"
}
