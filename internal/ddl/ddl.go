// Package ddl renders a PostgreSQL DDL preview of an entity descriptor.
//
// The output is meant for review alongside the schema document; graphix
// never executes it.
package ddl

import (
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/koustreak/graphix/internal/entity"
)

// Namespace returns the PostgreSQL schema of d: its schema name without the
// leading "schema." reference prefix.
func Namespace(d *entity.Descriptor) string {
	return strings.TrimPrefix(d.SchemaName(), "schema.")
}

// Render returns the CREATE TABLE statement for d followed by one
// CREATE UNIQUE INDEX statement per unique field, in field order.
func Render(d *entity.Descriptor) string {
	table := pgx.Identifier{Namespace(d), d.TableName()}.Sanitize()
	fields := d.Fields()

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(table)
	b.WriteString(" (")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n\t")
		b.WriteString(pgx.Identifier{f.ColumnName}.Sanitize())
		b.WriteString(" ")
		b.WriteString(f.SQLType.SQL())
		if !f.Nullable {
			b.WriteString(" NOT NULL")
		}
	}
	if len(fields) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(");\n")

	for _, f := range fields {
		if !f.Unique {
			continue
		}
		b.WriteString("CREATE UNIQUE INDEX ")
		b.WriteString(pgx.Identifier{d.UniqueIndexName(f.ColumnName)}.Sanitize())
		b.WriteString(" ON ")
		b.WriteString(table)
		b.WriteString(" (")
		b.WriteString(pgx.Identifier{f.ColumnName}.Sanitize())
		b.WriteString(");\n")
	}
	return b.String()
}
