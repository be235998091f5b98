package dialect

import "fmt"

// Sample returns a representative column type of kind k, with typical
// parameters for the kinds that carry them.
func Sample(k Kind) ColumnType {
	switch k.Shape() {
	case ShapePlain:
		return Of(k)
	case ShapeSized:
		switch k {
		case Char:
			return Sized(k, 1)
		case VarChar:
			return Sized(k, 255)
		case Timestamp:
			return Sized(k, 6)
		default:
			return Sized(k, 8)
		}
	case ShapePrecision:
		return FloatOf(53)
	case ShapeList:
		return NumericOf(10, 2)
	case ShapeElement:
		return ArrayOf(Of(Integer))
	case ShapeNamed:
		if k == Domain {
			return DomainOf("email_address")
		}
		return EnumOf("status")
	}
	panic(fmt.Sprintf("dialect: unhandled kind %s", k))
}
