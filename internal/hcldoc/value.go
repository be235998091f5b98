package hcldoc

import "strings"

// Value is an attribute value. The set of implementations is closed.
type Value interface {
	value()
}

// String is a quoted string literal.
type String string

// Bool is a boolean literal.
type Bool bool

// Ref is a reference to another named object, written as a dotted
// traversal such as column.email or schema.public.
type Ref []string

// Expr is an expression written verbatim, such as a column type
// (varchar(255), enum.status).
type Expr string

// List is an ordered list of values.
type List []Value

func (String) value() {}
func (Bool) value()   {}
func (Ref) value()    {}
func (Expr) value()   {}
func (List) value()   {}

// ParseRef splits a dotted path into a Ref.
func ParseRef(path string) Ref {
	return Ref(strings.Split(path, "."))
}

// String returns the dotted form of the reference.
func (r Ref) String() string {
	return strings.Join(r, ".")
}
