// Package hcldoc is an in-memory tree of blocks, labels and attributes that
// serializes to HCL.
//
// Compilers build a Document; only Write and Marshal know about HCL syntax,
// so the textual format can change without touching the compilers.
package hcldoc

// Document is an ordered list of top-level blocks.
type Document struct {
	Blocks []*Block
}

// Block is a typed, labelled block with ordered attributes and child blocks.
type Block struct {
	Type       string
	Labels     []string
	Attributes []Attribute
	Blocks     []*Block
}

// Attribute is a named value inside a block.
type Attribute struct {
	Name  string
	Value Value
}

// Attribute returns the value of the attribute called name.
func (b *Block) Attribute(name string) (Value, bool) {
	for _, a := range b.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Children returns the child blocks of the given type, in order.
func (b *Block) Children(typ string) []*Block {
	var out []*Block
	for _, c := range b.Blocks {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// Label returns the first label, or "" for an unlabelled block.
func (b *Block) Label() string {
	if len(b.Labels) == 0 {
		return ""
	}
	return b.Labels[0]
}

// Builder assembles a Block fluently:
//
//	hcldoc.NewBlock("table").Label("users").Attr("schema", hcldoc.Ref("schema", "public")).Build()
type Builder struct {
	block *Block
}

// NewBlock starts a block of the given type.
func NewBlock(typ string) *Builder {
	return &Builder{block: &Block{Type: typ}}
}

// Label appends a label.
func (b *Builder) Label(l string) *Builder {
	b.block.Labels = append(b.block.Labels, l)
	return b
}

// Attr sets the attribute name to v. Setting an existing attribute replaces
// its value in place and keeps its position.
func (b *Builder) Attr(name string, v Value) *Builder {
	for i := range b.block.Attributes {
		if b.block.Attributes[i].Name == name {
			b.block.Attributes[i].Value = v
			return b
		}
	}
	b.block.Attributes = append(b.block.Attributes, Attribute{Name: name, Value: v})
	return b
}

// Child appends a child block.
func (b *Builder) Child(c *Block) *Builder {
	b.block.Blocks = append(b.block.Blocks, c)
	return b
}

// Build returns the assembled block.
func (b *Builder) Build() *Block {
	return b.block
}
