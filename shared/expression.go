package shared

import "strings"

// Operator tokens recognized when splitting expressions. Multi-character
// operators must be matched before their single-character prefixes.
var (
	twoCharOperators = []string{"<=", ">=", "<>"}
	operatorChars    = "+-*/%^&=<>"
)

// IsOperatorSymbol reports whether s is exactly one operator token.
func IsOperatorSymbol(s string) bool {
	for _, op := range twoCharOperators {
		if s == op {
			return true
		}
	}
	return len(s) == 1 && strings.ContainsRune(operatorChars, rune(s[0]))
}

// HasBalancedParentheses reports whether parentheses in s balance, ignoring
// any inside double-quoted string literals or single-quoted sheet names.
// Checked once, before parsing.
func HasBalancedParentheses(s string) bool {
	depth := 0
	inQuote := false
	inSheet := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"' && !inSheet:
			inQuote = !inQuote
		case inQuote:
		case s[i] == '\'':
			inSheet = !inSheet
		case inSheet:
		case s[i] == '(':
			depth++
		case s[i] == ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// IsValidExpression reports whether s is an operator-joined expression or a
// parenthesized group, which is what remains after the more specific
// function, range, reference and constant patterns have failed.
func IsValidExpression(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if inner, ok := stripOuterParens(s); ok {
		return strings.TrimSpace(inner) != ""
	}
	for _, tok := range splitExpression(s) {
		if tok.op {
			return true
		}
	}
	return false
}

// exprToken is one element of an expression split: either an operand
// substring or an operator symbol.
type exprToken struct {
	text string
	op   bool
}

// splitExpression splits s into alternating operand and operator tokens at
// parenthesis depth 0, skipping double-quoted string literals and
// single-quoted sheet names. Two-character operators are matched greedily
// so "<=" is never split into "<" and "=".
func splitExpression(s string) []exprToken {
	var tokens []exprToken
	var buf strings.Builder
	flush := func() {
		if t := strings.TrimSpace(buf.String()); t != "" {
			tokens = append(tokens, exprToken{text: t})
		}
		buf.Reset()
	}
	depth := 0
	inQuote := false
	inSheet := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && !inSheet:
			inQuote = !inQuote
			buf.WriteByte(c)
		case inQuote:
			buf.WriteByte(c)
		case c == '\'':
			inSheet = !inSheet
			buf.WriteByte(c)
		case inSheet:
			buf.WriteByte(c)
		case c == '(':
			depth++
			buf.WriteByte(c)
		case c == ')':
			if depth > 0 {
				depth--
			}
			buf.WriteByte(c)
		case depth == 0 && i+1 < len(s) && isTwoCharOperator(s[i:i+2]):
			flush()
			tokens = append(tokens, exprToken{text: s[i : i+2], op: true})
			i++
		case depth == 0 && strings.IndexByte(operatorChars, c) >= 0:
			flush()
			tokens = append(tokens, exprToken{text: string(c), op: true})
		default:
			buf.WriteByte(c)
		}
	}
	flush()
	return tokens
}

func isTwoCharOperator(s string) bool {
	for _, op := range twoCharOperators {
		if s == op {
			return true
		}
	}
	return false
}

// stripOuterParens removes one layer of parentheses if they enclose the
// whole string, returning ok=false otherwise.
func stripOuterParens(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s, false
	}
	depth := 0
	inQuote := false
	inSheet := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"' && !inSheet:
			inQuote = !inQuote
		case inQuote:
		case s[i] == '\'':
			inSheet = !inSheet
		case inSheet:
		case s[i] == '(':
			depth++
		case s[i] == ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				// The opening paren closes early, e.g. (A1)+(B2)
				return s, false
			}
		}
	}
	return s[1 : len(s)-1], true
}
