// Package dialect models the PostgreSQL column types graphix can emit.
//
// A ColumnType is a Kind plus the parameters that kind carries (a size, a
// precision list, an element type or a referenced name). Its String form is
// the canonical text used everywhere a column type is shown or written into
// a schema document.
package dialect

import "fmt"

// Kind is the closed set of PostgreSQL column type tags.
type Kind int

const (
	invalidKind Kind = iota

	Array
	Bit
	BitVarying
	Boolean
	Bytea
	Date
	Time
	TimeTz
	Timestamp
	TimestampTz
	Interval
	Domain
	Enum
	Numeric
	Real
	DoublePrecision
	Float
	Circle
	Line
	LSeg
	Box
	Path
	Polygon
	Point
	SmallInt
	Integer
	Int
	BigInt
	JSON
	JSONB
	Money
	Inet
	CIDR
	MacAddr
	MacAddr8
	Int4Range
	Int8Range
	NumRange
	TsRange
	TsTzRange
	DateRange
	Int4MultiRange
	Int8MultiRange
	NumMultiRange
	TsMultiRange
	TsTzMultiRange
	DateMultiRange
	SmallSerial
	Serial
	BigSerial
	VarChar
	Char
	Text
	TsVector
	TsQuery
	UUID
	XML

	numKinds
)

// kindNames holds the bare rendered name of every kind. Parameterised kinds
// use it as the prefix of their rendered form.
var kindNames = [numKinds]string{
	Array:           "array",
	Bit:             "bit",
	BitVarying:      "bit_varying",
	Boolean:         "boolean",
	Bytea:           "bytea",
	Date:            "date",
	Time:            "time",
	TimeTz:          "timetz",
	Timestamp:       "timestamp",
	TimestampTz:     "timestamptz",
	Interval:        "interval",
	Domain:          "domain",
	Enum:            "enum",
	Numeric:         "numeric",
	Real:            "real",
	DoublePrecision: "double_precision",
	Float:           "float",
	Circle:          "circle",
	Line:            "line",
	LSeg:            "lseg",
	Box:             "box",
	Path:            "path",
	Polygon:         "polygon",
	Point:           "point",
	SmallInt:        "smallint",
	Integer:         "integer",
	Int:             "int",
	BigInt:          "bigint",
	JSON:            "json",
	JSONB:           "jsonb",
	Money:           "money",
	Inet:            "inet",
	CIDR:            "cidr",
	MacAddr:         "macaddr",
	MacAddr8:        "macaddr8",
	Int4Range:       "int4range",
	Int8Range:       "int8range",
	NumRange:        "numrange",
	TsRange:         "tsrange",
	TsTzRange:       "tstzrange",
	DateRange:       "daterange",
	Int4MultiRange:  "int4multirange",
	Int8MultiRange:  "int8multirange",
	NumMultiRange:   "nummultirange",
	TsMultiRange:    "tsmultirange",
	TsTzMultiRange:  "tstzmultirange",
	DateMultiRange:  "datemultirange",
	SmallSerial:     "smallserial",
	Serial:          "serial",
	BigSerial:       "bigserial",
	VarChar:         "varchar",
	Char:            "char",
	Text:            "text",
	TsVector:        "tsvector",
	TsQuery:         "tsquery",
	UUID:            "uuid",
	XML:             "xml",
}

// String returns the bare name of the kind, e.g. "bit_varying".
// It panics on a value outside the enumerated set.
func (k Kind) String() string {
	if !k.Valid() || kindNames[k] == "" {
		panic(fmt.Sprintf("dialect: unhandled kind %d", int(k)))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	return k > invalidKind && k < numKinds
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := Array; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Shape describes which parameters a kind carries.
type Shape int

const (
	ShapePlain     Shape = iota // no parameters
	ShapeSized                  // optional size or precision
	ShapePrecision              // required precision
	ShapeList                   // optional list of precision arguments
	ShapeElement                // element type
	ShapeNamed                  // referenced type name
)

// Shape reports the parameter shape of k.
func (k Kind) Shape() Shape {
	switch k {
	case Bit, BitVarying, Char, VarChar, Timestamp:
		return ShapeSized
	case Float:
		return ShapePrecision
	case Numeric:
		return ShapeList
	case Array:
		return ShapeElement
	case Domain, Enum:
		return ShapeNamed
	default:
		if !k.Valid() {
			panic(fmt.Sprintf("dialect: unhandled kind %d", int(k)))
		}
		return ShapePlain
	}
}
