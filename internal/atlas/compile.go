// Package atlas compiles entity descriptors into Atlas-style schema
// documents: one table block per entity, a column block per field and a
// unique index block per unique field.
package atlas

import (
	"fmt"

	"github.com/koustreak/graphix/internal/entity"
	"github.com/koustreak/graphix/internal/hcldoc"
)

// Block types and attribute names of the generated document.
const (
	BlockTable  = "table"
	BlockColumn = "column"
	BlockIndex  = "index"

	AttrSchema  = "schema"
	AttrType    = "type"
	AttrNull    = "null"
	AttrUnique  = "unique"
	AttrColumns = "columns"
)

// Compile renders d as a document holding a single table block. It cannot
// fail for a descriptor produced by entity.Build.
func Compile(d *entity.Descriptor) *hcldoc.Document {
	return &hcldoc.Document{Blocks: []*hcldoc.Block{Table(d)}}
}

// CompileAll renders several descriptors into one document, in order.
func CompileAll(ds ...*entity.Descriptor) *hcldoc.Document {
	doc := &hcldoc.Document{Blocks: make([]*hcldoc.Block, 0, len(ds))}
	for _, d := range ds {
		doc.Blocks = append(doc.Blocks, Table(d))
	}
	return doc
}

// Table builds the table block of d. Each field contributes its column
// block, immediately followed by its index block when the field is unique.
func Table(d *entity.Descriptor) *hcldoc.Block {
	table := hcldoc.NewBlock(BlockTable).
		Label(d.TableName()).
		Attr(AttrSchema, hcldoc.ParseRef(d.SchemaName()))

	emitted := make(map[string]bool, d.NumFields())
	for _, f := range d.Fields() {
		table.Child(hcldoc.NewBlock(BlockColumn).
			Label(f.ColumnName).
			Attr(AttrType, hcldoc.Expr(f.SQLType.String())).
			Attr(AttrNull, hcldoc.Bool(f.Nullable)).
			Build())
		emitted[f.ColumnName] = true

		if !f.Unique {
			continue
		}
		table.Child(uniqueIndex(d, f.ColumnName, emitted))
	}

	return table.Build()
}

func uniqueIndex(d *entity.Descriptor, column string, emitted map[string]bool) *hcldoc.Block {
	if !emitted[column] {
		panic(fmt.Sprintf("atlas: index on %s.%s references a column that was not emitted", d.TableName(), column))
	}
	return hcldoc.NewBlock(BlockIndex).
		Label(d.UniqueIndexName(column)).
		Attr(AttrUnique, hcldoc.Bool(true)).
		Attr(AttrColumns, hcldoc.List{hcldoc.Ref{BlockColumn, column}}).
		Build()
}
