// Package native maps Go field types onto PostgreSQL column types.
//
// Names missing from the table are rejected with an unsupported_type error.
package native

import (
	"fmt"
	"maps"

	"github.com/koustreak/graphix/internal/dialect"
	"github.com/koustreak/graphix/internal/errs"
)

// builtins is the fixed native → column type table.
var builtins = map[string]dialect.ColumnType{
	"int8":    dialect.Of(dialect.SmallInt),
	"int16":   dialect.Of(dialect.SmallInt),
	"uint8":   dialect.Of(dialect.SmallInt),
	"byte":    dialect.Of(dialect.SmallInt),
	"uint16":  dialect.Of(dialect.SmallInt),
	"int32":   dialect.Of(dialect.Integer),
	"uint32":  dialect.Of(dialect.Integer),
	"int64":   dialect.Of(dialect.BigInt),
	"uint64":  dialect.Of(dialect.BigInt),
	"int":     dialect.Of(dialect.BigInt),
	"uint":    dialect.Of(dialect.BigInt),
	"uintptr": dialect.Of(dialect.BigInt),
	"float32": dialect.Of(dialect.Real),
	"float64": dialect.Of(dialect.DoublePrecision),
	"bool":    dialect.Of(dialect.Boolean),
	"rune":    dialect.Sized(dialect.Char, 1),
	"string":  dialect.Of(dialect.Text),
}

// Resolve maps a native type name using the builtin table.
func Resolve(name string) (dialect.ColumnType, error) {
	if t, ok := builtins[name]; ok {
		return t, nil
	}
	return dialect.ColumnType{}, errs.UnsupportedType("native type", name)
}

// Names returns the builtin native type names.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	return out
}

// Resolver resolves native type names against its own copy of the builtin
// table plus any names registered on it. A Resolver is not shared between
// callers unless they share the pointer; it is safe for concurrent Resolve
// calls once registration is done.
type Resolver struct {
	types map[string]dialect.ColumnType
}

// NewResolver returns a Resolver seeded with the builtin mappings.
func NewResolver() *Resolver {
	return &Resolver{types: maps.Clone(builtins)}
}

// Register adds or replaces the mapping for name.
func (r *Resolver) Register(name string, t dialect.ColumnType) {
	r.types[name] = t
}

// Resolve maps name to its column type or returns an unsupported_type error.
func (r *Resolver) Resolve(name string) (dialect.ColumnType, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	return dialect.ColumnType{}, errs.UnsupportedType("native type", name)
}

// Reverse returns the canonical native type for t, the name a generated
// record field of that column type would be declared with. It reports false
// for column types no native type resolves to.
func Reverse(t dialect.ColumnType) (string, bool) {
	switch t.Kind() {
	case dialect.SmallInt:
		return "int16", true
	case dialect.Integer:
		return "int32", true
	case dialect.BigInt:
		return "int64", true
	case dialect.Real:
		return "float32", true
	case dialect.DoublePrecision:
		return "float64", true
	case dialect.Boolean:
		return "bool", true
	case dialect.Text:
		return "string", true
	case dialect.Char:
		if n, ok := t.Size(); ok && n == 1 {
			return "rune", true
		}
		return "", false
	case dialect.Array, dialect.Bit, dialect.BitVarying, dialect.Bytea, dialect.Date,
		dialect.Time, dialect.TimeTz, dialect.Timestamp, dialect.TimestampTz, dialect.Interval,
		dialect.Domain, dialect.Enum, dialect.Numeric, dialect.Float,
		dialect.Circle, dialect.Line, dialect.LSeg, dialect.Box, dialect.Path, dialect.Polygon, dialect.Point,
		dialect.Int, dialect.JSON, dialect.JSONB, dialect.Money,
		dialect.Inet, dialect.CIDR, dialect.MacAddr, dialect.MacAddr8,
		dialect.Int4Range, dialect.Int8Range, dialect.NumRange, dialect.TsRange, dialect.TsTzRange, dialect.DateRange,
		dialect.Int4MultiRange, dialect.Int8MultiRange, dialect.NumMultiRange,
		dialect.TsMultiRange, dialect.TsTzMultiRange, dialect.DateMultiRange,
		dialect.SmallSerial, dialect.Serial, dialect.BigSerial,
		dialect.VarChar, dialect.TsVector, dialect.TsQuery, dialect.UUID, dialect.XML:
		return "", false
	}
	panic(fmt.Sprintf("native: unhandled column kind %d", int(t.Kind())))
}
