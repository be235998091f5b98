package hcldoc

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/koustreak/graphix/internal/errs"
)

// Marshal serializes doc as formatted HCL. Top-level blocks are separated by
// a blank line.
func Marshal(doc *Document) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, b := range doc.Blocks {
		if i > 0 {
			body.AppendNewline()
		}
		if err := appendBlock(body, b); err != nil {
			return nil, err
		}
	}
	return f.Bytes(), nil
}

// Write serializes doc to w.
func Write(w io.Writer, doc *Document) error {
	src, err := Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return errs.Wrap(errs.ErrKindIOFailed, "write document", err)
	}
	return nil
}

func appendBlock(parent *hclwrite.Body, b *Block) error {
	body := parent.AppendNewBlock(b.Type, b.Labels).Body()
	for _, a := range b.Attributes {
		toks, err := tokensFor(a.Value)
		if err != nil {
			return errs.Wrap(errs.ErrKindInvalidInput,
				fmt.Sprintf("block %s %q: attribute %q", b.Type, b.Labels, a.Name), err)
		}
		body.SetAttributeRaw(a.Name, toks)
	}
	for _, c := range b.Blocks {
		if err := appendBlock(body, c); err != nil {
			return err
		}
	}
	return nil
}

func tokensFor(v Value) (hclwrite.Tokens, error) {
	switch v := v.(type) {
	case String:
		return hclwrite.TokensForValue(cty.StringVal(string(v))), nil
	case Bool:
		return hclwrite.TokensForValue(cty.BoolVal(bool(v))), nil
	case Ref:
		return refTokens(v)
	case Expr:
		return exprTokens(string(v))
	case List:
		elems := make([]hclwrite.Tokens, 0, len(v))
		for _, item := range v {
			toks, err := tokensFor(item)
			if err != nil {
				return nil, err
			}
			elems = append(elems, toks)
		}
		return hclwrite.TokensForTuple(elems), nil
	case nil:
		return nil, errors.New("nil value")
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}

// refTokens writes r as a traversal. Parts that are not HCL identifiers are
// written as index steps: column["2fa"].
func refTokens(r Ref) (hclwrite.Tokens, error) {
	if len(r) == 0 {
		return nil, errors.New("empty reference")
	}
	if !hclsyntax.ValidIdentifier(r[0]) {
		return nil, fmt.Errorf("reference %q: root %q is not an identifier", r.String(), r[0])
	}
	trav := hcl.Traversal{hcl.TraverseRoot{Name: r[0]}}
	for _, part := range r[1:] {
		if hclsyntax.ValidIdentifier(part) {
			trav = append(trav, hcl.TraverseAttr{Name: part})
			continue
		}
		trav = append(trav, hcl.TraverseIndex{Key: cty.StringVal(part)})
	}
	return hclwrite.TokensForTraversal(trav), nil
}

// exprTokens writes src verbatim when it is a valid HCL expression. Type
// text that is not (integer[], timestamp(3)[]) is wrapped as sql("...").
func exprTokens(src string) (hclwrite.Tokens, error) {
	if src == "" {
		return nil, errors.New("empty expression")
	}
	if _, diags := hclsyntax.ParseExpression([]byte(src), "expr", hcl.InitialPos); !diags.HasErrors() {
		return hclwrite.Tokens{{Type: hclsyntax.TokenIdent, Bytes: []byte(src)}}, nil
	}
	return hclwrite.TokensForFunctionCall("sql", hclwrite.TokensForValue(cty.StringVal(src))), nil
}
