package shared

import (
	"fmt"
	"strings"
)

// Kind tags every AST node with its classification.
type Kind string

const (
	KindFunction   Kind = "function"
	KindRange      Kind = "range"
	KindReference  Kind = "reference"
	KindConstant   Kind = "constant"
	KindExpression Kind = "expression"
	KindOperator   Kind = "operator"
)

// Node is a formula AST node. Every node carries a kind tag and a canonical
// text form, cached at construction. All nodes are built through the New*
// constructors, which derive the text from the structured components, so the
// two can never disagree.
type Node interface {
	Kind() Kind
	String() string
}

// Various AST node types:
type (
	// Function call, e.g. SUM(A1, B2)
	FunctionCall struct {
		Name string // case-preserved as written
		Args []Node
		text string
	}
	// Cell range, e.g. A1:B2 or 'Data'!A1:'Data'!C9.
	// Both endpoints are full references, each with its own optional sheet.
	CellRange struct {
		Start *Reference
		End   *Reference
		text  string
	}
	// Single cell reference, e.g. B7 or 'Sheet'!B7
	Reference struct {
		Sheet        string // empty if unqualified
		ColumnLetter string
		ColumnNumber int // derived from ColumnLetter, kept in sync
		RowNumber    int
		text         string
	}
	// Literal value: number, quoted string or boolean
	Constant struct {
		Value   any    // float64, string or bool
		Literal string // text form as written, quotes included for strings
	}
	// Generic operator-joined expression, e.g. A1 + B2 * 2.
	// Parts alternate operand and operator nodes in source order.
	Expression struct {
		Parts []Node
		text  string
	}
	// Single operator token, e.g. + or <=
	Operator struct {
		Symbol string
	}
)

// NewFunctionCall builds a function call node. The cached text joins the
// argument texts with ", " regardless of the original spacing.
func NewFunctionCall(name string, args []Node) *FunctionCall {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.String()
	}
	return &FunctionCall{
		Name: name,
		Args: args,
		text: fmt.Sprintf("%s(%s)", name, strings.Join(texts, ", ")),
	}
}

// NewCellRange builds a range node from two endpoint references.
func NewCellRange(start, end *Reference) *CellRange {
	return &CellRange{
		Start: start,
		End:   end,
		text:  start.String() + ":" + end.String(),
	}
}

// NewExpression builds a generic expression node. The cached text always
// wraps the parts in parentheses: operator precedence is not modeled, so
// explicit grouping is the only way the text is guaranteed to parse back
// to the same tree.
func NewExpression(parts []Node) *Expression {
	texts := make([]string, len(parts))
	for i, p := range parts {
		texts[i] = p.String()
	}
	return &Expression{
		Parts: parts,
		text:  "(" + strings.Join(texts, " ") + ")",
	}
}

// NewOperator builds an operator node.
func NewOperator(symbol string) *Operator {
	return &Operator{Symbol: symbol}
}

func (f *FunctionCall) Kind() Kind { return KindFunction }
func (r *CellRange) Kind() Kind    { return KindRange }
func (r *Reference) Kind() Kind    { return KindReference }
func (c *Constant) Kind() Kind     { return KindConstant }
func (e *Expression) Kind() Kind   { return KindExpression }
func (o *Operator) Kind() Kind     { return KindOperator }

func (f *FunctionCall) String() string { return f.text }
func (r *CellRange) String() string    { return r.text }
func (r *Reference) String() string    { return r.text }
func (c *Constant) String() string     { return c.Literal }
func (e *Expression) String() string   { return e.text }
func (o *Operator) String() string     { return o.Symbol }
