package shared

import "strings"

// maxParseDepth bounds classification recursion so pathologically nested
// formulas fail with a defined error instead of overflowing the stack.
const maxParseDepth = 100

// Parser parses a single formula string into an AST, reconstructs formula
// text from it and translates the cell references it contains. The tree is
// built once on first use and owned by this Parser; trees are never shared
// between instances.
type Parser struct {
	formula string // text after the leading '='
	full    string
	tree    Node
}

// NewParser checks the construction preconditions eagerly: the text must
// start with '=' and its parentheses must balance.
func NewParser(formulaStr string) (*Parser, error) {
	if !strings.HasPrefix(formulaStr, "=") {
		return nil, &MalformedFormulaError{Formula: formulaStr, Reason: "must start with '='"}
	}
	if !HasBalancedParentheses(formulaStr) {
		return nil, &MalformedFormulaError{Formula: formulaStr, Reason: "unbalanced parentheses"}
	}
	return &Parser{formula: formulaStr[1:], full: formulaStr}, nil
}

// Formula returns the original formula text, leading '=' included.
func (p *Parser) Formula() string {
	return p.full
}

// Parse returns the AST for the formula, building it on first call.
func (p *Parser) Parse() (Node, error) {
	if p.tree == nil {
		tree, err := p.parseExpression(p.formula, 0)
		if err != nil {
			return nil, err
		}
		p.tree = tree
	}
	return p.tree, nil
}

// parseExpression classifies a substring into a node. The patterns are
// tried in fixed priority order; the order resolves grammar ambiguity:
// function syntax is the most specific and must win over range/reference,
// and a range must win over its two references.
func (p *Parser) parseExpression(expr string, depth int) (Node, error) {
	if depth > maxParseDepth {
		return nil, &MalformedFormulaError{Formula: p.full, Reason: "formula nested too deeply"}
	}
	expr = strings.TrimSpace(expr)
	switch {
	case IsFunctionString(expr):
		name, rawArgs, err := ParseArguments(expr)
		if err != nil {
			return nil, err
		}
		args := make([]Node, len(rawArgs))
		for i, raw := range rawArgs {
			arg, err := p.parseExpression(raw, depth+1)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return NewFunctionCall(name, args), nil
	case IsValidRange(expr):
		return ParseCellRange(expr)
	case IsValidReference(expr):
		return ParseReference(expr)
	case IsValidConstant(expr):
		return NewConstant(expr)
	case IsValidExpression(expr):
		inner, _ := stripOuterParens(expr)
		tokens := splitExpression(inner)
		parts := make([]Node, 0, len(tokens))
		for _, tok := range tokens {
			if tok.op {
				parts = append(parts, NewOperator(tok.text))
				continue
			}
			part, err := p.parseExpression(tok.text, depth+1)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		}
		return NewExpression(parts), nil
	case IsOperatorSymbol(expr):
		// Degenerate case reached when an expression part is a lone operator.
		return NewOperator(expr), nil
	}
	return nil, &UnrecognizedExpressionError{Expr: expr}
}

// Reclassify re-runs classification over an already-built node: function
// arguments and expression parts are reclassified, leaves pass through.
// The result is structurally equal to the input.
func Reclassify(n Node) (Node, error) {
	switch v := n.(type) {
	case *FunctionCall:
		args := make([]Node, len(v.Args))
		for i, a := range v.Args {
			arg, err := Reclassify(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return NewFunctionCall(v.Name, args), nil
	case *Expression:
		parts := make([]Node, len(v.Parts))
		for i, p := range v.Parts {
			part, err := Reclassify(p)
			if err != nil {
				return nil, err
			}
			parts[i] = part
		}
		return NewExpression(parts), nil
	default:
		return n, nil
	}
}

// Reconstruct converts a node back to formula text, dispatching on the node
// kind only, never on the cached text. It is the structural inverse of
// parseExpression: expressions are always re-parenthesized, because grouping
// is the only mechanism that guarantees the text parses back to the same
// tree when precedence is not modeled.
func Reconstruct(n Node) string {
	switch v := n.(type) {
	case *FunctionCall:
		var args []string
		for _, arg := range v.Args {
			args = append(args, Reconstruct(arg))
		}
		return v.Name + "(" + strings.Join(args, ", ") + ")"
	case *CellRange:
		return Reconstruct(v.Start) + ":" + Reconstruct(v.End)
	case *Reference:
		return v.render()
	case *Constant:
		return v.Literal
	case *Expression:
		var parts []string
		for _, part := range v.Parts {
			parts = append(parts, Reconstruct(part))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *Operator:
		return v.Symbol
	default:
		return ""
	}
}

// ReconstructedFormula returns the formula text rebuilt from the AST,
// leading '=' re-added.
func (p *Parser) ReconstructedFormula() (string, error) {
	tree, err := p.Parse()
	if err != nil {
		return "", err
	}
	return "=" + Reconstruct(tree), nil
}

// ToStructured returns the AST as a plain nested map/slice value.
func (p *Parser) ToStructured() (map[string]any, error) {
	tree, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return ToStructured(tree), nil
}

// Translate shifts every cell reference in the formula by the offset
// between fromCell and toCell, as when the formula is copied from one cell
// to another. Sheet names are preserved. The owned tree is rebuilt through
// the node constructors, so every ancestor's cached text is regenerated
// from its updated children. Returns the same Parser for chaining.
func (p *Parser) Translate(fromCell, toCell string) (*Parser, error) {
	from, err := ParseReference(fromCell)
	if err != nil {
		return nil, err
	}
	to, err := ParseReference(toCell)
	if err != nil {
		return nil, err
	}
	colShift := to.ColumnNumber - from.ColumnNumber
	rowShift := to.RowNumber - from.RowNumber
	tree, err := p.Parse()
	if err != nil {
		return nil, err
	}
	shifted, err := shiftNode(tree, colShift, rowShift)
	if err != nil {
		return nil, err
	}
	p.tree = shifted
	return p, nil
}

// shiftNode rebuilds the tree with translated references. Operators and
// constants are terminal and pass through unchanged.
func shiftNode(n Node, colShift, rowShift int) (Node, error) {
	switch v := n.(type) {
	case *Reference:
		shifted, err := NewReference(v.Sheet, v.ColumnNumber+colShift, v.RowNumber+rowShift)
		if err != nil {
			return nil, &InvalidReferenceError{Ref: v.String(), Reason: "translation shifts reference off the grid"}
		}
		return shifted, nil
	case *CellRange:
		start, err := shiftNode(v.Start, colShift, rowShift)
		if err != nil {
			return nil, err
		}
		end, err := shiftNode(v.End, colShift, rowShift)
		if err != nil {
			return nil, err
		}
		return NewCellRange(start.(*Reference), end.(*Reference)), nil
	case *FunctionCall:
		args := make([]Node, len(v.Args))
		for i, a := range v.Args {
			arg, err := shiftNode(a, colShift, rowShift)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return NewFunctionCall(v.Name, args), nil
	case *Expression:
		parts := make([]Node, len(v.Parts))
		for i, p := range v.Parts {
			part, err := shiftNode(p, colShift, rowShift)
			if err != nil {
				return nil, err
			}
			parts[i] = part
		}
		return NewExpression(parts), nil
	default:
		return n, nil
	}
}
