package dialect

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ColumnType is an immutable PostgreSQL column type: a Kind and its
// parameters. The zero value is not a valid type; use the constructors.
// Its String method panics on the zero value.
type ColumnType struct {
	kind Kind
	size *uint       // Bit, BitVarying, Char, VarChar, Timestamp, Float
	args []uint      // Numeric; nil renders the bare name
	elem *ColumnType // Array
	name string      // Domain, Enum
}

// Of returns the parameterless form of k. For sized kinds this is the bare
// type (e.g. "varchar"). It panics for kinds that require a parameter
// (Float, Array, Domain, Enum); use their dedicated constructors.
func Of(k Kind) ColumnType {
	switch k.Shape() {
	case ShapePrecision, ShapeElement, ShapeNamed:
		panic(fmt.Sprintf("dialect: %s requires a parameter", k))
	}
	return ColumnType{kind: k}
}

// Sized returns a sized kind (Bit, BitVarying, Char, VarChar, Timestamp)
// carrying n, rendered as "name(n)".
func Sized(k Kind, n uint) ColumnType {
	if k.Shape() != ShapeSized {
		panic(fmt.Sprintf("dialect: %s does not take a size", k))
	}
	return ColumnType{kind: k, size: &n}
}

// FloatOf returns float(precision).
func FloatOf(precision uint) ColumnType {
	return ColumnType{kind: Float, size: &precision}
}

// NumericOf returns numeric with the given precision arguments in order.
// With no arguments it is the bare "numeric".
func NumericOf(args ...uint) ColumnType {
	if len(args) == 0 {
		return ColumnType{kind: Numeric}
	}
	return ColumnType{kind: Numeric, args: slices.Clone(args)}
}

// ArrayOf returns an array of elem.
func ArrayOf(elem ColumnType) ColumnType {
	return ColumnType{kind: Array, elem: &elem}
}

// DomainOf references the domain called name.
func DomainOf(name string) ColumnType {
	return ColumnType{kind: Domain, name: name}
}

// EnumOf references the enum type called name.
func EnumOf(name string) ColumnType {
	return ColumnType{kind: Enum, name: name}
}

// Kind returns the type tag.
func (t ColumnType) Kind() Kind { return t.kind }

// Size returns the size or precision parameter, if any.
func (t ColumnType) Size() (uint, bool) {
	if t.size == nil {
		return 0, false
	}
	return *t.size, true
}

// Args returns a copy of the numeric precision arguments.
func (t ColumnType) Args() []uint { return slices.Clone(t.args) }

// Elem returns the element type of an array.
func (t ColumnType) Elem() (ColumnType, bool) {
	if t.elem == nil {
		return ColumnType{}, false
	}
	return *t.elem, true
}

// Name returns the referenced domain or enum name.
func (t ColumnType) Name() string { return t.name }

// Equal reports whether t and o denote the same column type.
func (t ColumnType) Equal(o ColumnType) bool {
	if t.kind != o.kind || t.name != o.name || !slices.Equal(t.args, o.args) {
		return false
	}
	if (t.size == nil) != (o.size == nil) || (t.size != nil && *t.size != *o.size) {
		return false
	}
	if (t.elem == nil) != (o.elem == nil) {
		return false
	}
	return t.elem == nil || t.elem.Equal(*o.elem)
}

// String renders the canonical text of the type, e.g. "bit(5)",
// "numeric(10,2)", "integer[]" or "enum.status".
func (t ColumnType) String() string {
	name := t.kind.String()
	switch t.kind.Shape() {
	case ShapePlain:
		return name
	case ShapeSized, ShapePrecision:
		if t.size == nil {
			return name
		}
		return name + "(" + strconv.FormatUint(uint64(*t.size), 10) + ")"
	case ShapeList:
		if t.args == nil {
			return name
		}
		return name + "(" + joinUints(t.args, ",") + ")"
	case ShapeElement:
		return t.elem.String() + "[]"
	case ShapeNamed:
		return name + "." + t.name
	}
	panic(fmt.Sprintf("dialect: unhandled kind %d", int(t.kind)))
}

// SQL renders the type as it is spelled in PostgreSQL DDL, e.g.
// "double precision" or "bit varying(8)". Domain and enum types render as
// their bare name.
func (t ColumnType) SQL() string {
	switch t.kind {
	case Array:
		return t.elem.SQL() + "[]"
	case Domain, Enum:
		return t.name
	case DoublePrecision:
		return "double precision"
	case BitVarying:
		if t.size == nil {
			return "bit varying"
		}
		return "bit varying(" + strconv.FormatUint(uint64(*t.size), 10) + ")"
	case Numeric:
		if t.args == nil {
			return "numeric"
		}
		return "numeric(" + joinUints(t.args, ", ") + ")"
	case Bit, Bytea, Boolean, Date, Time, TimeTz, Timestamp, TimestampTz, Interval,
		Real, Float, Circle, Line, LSeg, Box, Path, Polygon, Point,
		SmallInt, Integer, Int, BigInt, JSON, JSONB, Money, Inet, CIDR, MacAddr, MacAddr8,
		Int4Range, Int8Range, NumRange, TsRange, TsTzRange, DateRange,
		Int4MultiRange, Int8MultiRange, NumMultiRange, TsMultiRange, TsTzMultiRange, DateMultiRange,
		SmallSerial, Serial, BigSerial, VarChar, Char, Text, TsVector, TsQuery, UUID, XML:
		return t.String()
	}
	panic(fmt.Sprintf("dialect: unhandled kind %d", int(t.kind)))
}

func joinUints(vals []uint, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, sep)
}
