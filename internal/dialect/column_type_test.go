package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderCases lists at least one literal expectation per kind.
var renderCases = []struct {
	typ  ColumnType
	want string
}{
	{ArrayOf(Of(Integer)), "integer[]"},
	{ArrayOf(ArrayOf(Of(Text))), "text[][]"},
	{ArrayOf(Sized(VarChar, 10)), "varchar(10)[]"},
	{Of(Bit), "bit"},
	{Sized(Bit, 5), "bit(5)"},
	{Of(BitVarying), "bit_varying"},
	{Sized(BitVarying, 5), "bit_varying(5)"},
	{Of(Boolean), "boolean"},
	{Of(Bytea), "bytea"},
	{Of(Date), "date"},
	{Of(Time), "time"},
	{Of(TimeTz), "timetz"},
	{Of(Timestamp), "timestamp"},
	{Sized(Timestamp, 5), "timestamp(5)"},
	{Of(TimestampTz), "timestamptz"},
	{Of(Interval), "interval"},
	{DomainOf("foo"), "domain.foo"},
	{EnumOf("foo"), "enum.foo"},
	{NumericOf(), "numeric"},
	{NumericOf(1, 2, 3), "numeric(1,2,3)"},
	{NumericOf(10, 2), "numeric(10,2)"},
	{Of(Real), "real"},
	{Of(DoublePrecision), "double_precision"},
	{FloatOf(5), "float(5)"},
	{Of(Circle), "circle"},
	{Of(Line), "line"},
	{Of(LSeg), "lseg"},
	{Of(Box), "box"},
	{Of(Path), "path"},
	{Of(Polygon), "polygon"},
	{Of(Point), "point"},
	{Of(SmallInt), "smallint"},
	{Of(Integer), "integer"},
	{Of(Int), "int"},
	{Of(BigInt), "bigint"},
	{Of(JSON), "json"},
	{Of(JSONB), "jsonb"},
	{Of(Money), "money"},
	{Of(Inet), "inet"},
	{Of(CIDR), "cidr"},
	{Of(MacAddr), "macaddr"},
	{Of(MacAddr8), "macaddr8"},
	{Of(Int4Range), "int4range"},
	{Of(Int8Range), "int8range"},
	{Of(NumRange), "numrange"},
	{Of(TsRange), "tsrange"},
	{Of(TsTzRange), "tstzrange"},
	{Of(DateRange), "daterange"},
	{Of(Int4MultiRange), "int4multirange"},
	{Of(Int8MultiRange), "int8multirange"},
	{Of(NumMultiRange), "nummultirange"},
	{Of(TsMultiRange), "tsmultirange"},
	{Of(TsTzMultiRange), "tstzmultirange"},
	{Of(DateMultiRange), "datemultirange"},
	{Of(SmallSerial), "smallserial"},
	{Of(Serial), "serial"},
	{Of(BigSerial), "bigserial"},
	{Of(VarChar), "varchar"},
	{Sized(VarChar, 5), "varchar(5)"},
	{Of(Char), "char"},
	{Sized(Char, 5), "char(5)"},
	{Of(Text), "text"},
	{Of(TsVector), "tsvector"},
	{Of(TsQuery), "tsquery"},
	{Of(UUID), "uuid"},
	{Of(XML), "xml"},
}

func TestColumnType_String(t *testing.T) {
	for _, tt := range renderCases {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
			assert.Equal(t, tt.want, tt.typ.String(), "rendering must be deterministic")
		})
	}
}

func TestColumnType_StringCoversEveryKind(t *testing.T) {
	covered := make(map[Kind]bool)
	for _, tt := range renderCases {
		covered[tt.typ.Kind()] = true
	}
	for _, k := range Kinds() {
		assert.Truef(t, covered[k], "kind %d has no rendering case", int(k))
		assert.NotPanics(t, func() { _ = k.String() })
	}
	assert.Len(t, Kinds(), 57)
}

func TestColumnType_SQL(t *testing.T) {
	tests := []struct {
		typ  ColumnType
		want string
	}{
		{Of(DoublePrecision), "double precision"},
		{Of(BitVarying), "bit varying"},
		{Sized(BitVarying, 8), "bit varying(8)"},
		{NumericOf(10, 2), "numeric(10, 2)"},
		{NumericOf(), "numeric"},
		{EnumOf("status"), "status"},
		{DomainOf("email"), "email"},
		{ArrayOf(Of(DoublePrecision)), "double precision[]"},
		{Sized(Char, 1), "char(1)"},
		{Of(TimestampTz), "timestamptz"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.SQL())
		})
	}

	for _, tt := range renderCases {
		assert.NotPanics(t, func() { _ = tt.typ.SQL() }, tt.want)
	}
}

func TestColumnType_Accessors(t *testing.T) {
	n, ok := Sized(VarChar, 255).Size()
	require.True(t, ok)
	assert.Equal(t, uint(255), n)

	_, ok = Of(VarChar).Size()
	assert.False(t, ok)

	num := NumericOf(10, 2)
	args := num.Args()
	args[0] = 99
	assert.Equal(t, "numeric(10,2)", num.String(), "Args must return a copy")

	elem, ok := ArrayOf(Of(UUID)).Elem()
	require.True(t, ok)
	assert.Equal(t, UUID, elem.Kind())

	assert.Equal(t, "status", EnumOf("status").Name())
}

func TestColumnType_Equal(t *testing.T) {
	assert.True(t, Sized(Char, 1).Equal(Sized(Char, 1)))
	assert.False(t, Sized(Char, 1).Equal(Of(Char)))
	assert.False(t, Sized(Char, 1).Equal(Sized(Char, 2)))
	assert.True(t, ArrayOf(Of(Integer)).Equal(ArrayOf(Of(Integer))))
	assert.False(t, ArrayOf(Of(Integer)).Equal(ArrayOf(Of(BigInt))))
	assert.True(t, NumericOf(1, 2).Equal(NumericOf(1, 2)))
	assert.False(t, NumericOf(1, 2).Equal(NumericOf(2, 1)))
	assert.False(t, EnumOf("a").Equal(DomainOf("a")))
}

func TestConstructors_RejectWrongShape(t *testing.T) {
	assert.Panics(t, func() { Of(Float) })
	assert.Panics(t, func() { Of(Array) })
	assert.Panics(t, func() { Of(Enum) })
	assert.Panics(t, func() { Sized(Text, 3) })
	assert.Panics(t, func() { _ = ColumnType{}.String() })
	assert.Panics(t, func() { _ = Kind(999).String() })
}

func TestSample(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			ct := Sample(k)
			assert.Equal(t, k, ct.Kind())
			assert.NotEmpty(t, ct.String())
			assert.NotEmpty(t, ct.SQL())
		})
	}
	assert.Equal(t, "varchar(255)", Sample(VarChar).String())
	assert.Equal(t, "numeric(10,2)", Sample(Numeric).String())
	assert.Equal(t, "integer[]", Sample(Array).String())
	assert.Equal(t, "enum.status", Sample(Enum).String())
}
