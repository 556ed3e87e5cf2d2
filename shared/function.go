package shared

import (
	"regexp"
	"strings"
)

// functionNameRe matches the identifier before the opening parenthesis
var functionNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// IsFunctionString reports whether s has function-call shape: an identifier
// followed by a parenthesis pair spanning the rest of the string. The
// argument content is not inspected.
func IsFunctionString(s string) bool {
	_, _, ok := splitFunction(s)
	return ok
}

// ParseArguments splits the interior of a function call at commas occurring
// at parenthesis depth 0 relative to that interior, so nested calls stay
// unsplit. Each argument is whitespace-trimmed; an empty interior yields no
// arguments. The returned substrings are raw and unclassified.
func ParseArguments(s string) (name string, args []string, err error) {
	name, interior, ok := splitFunction(s)
	if !ok {
		return "", nil, &UnrecognizedExpressionError{Expr: s}
	}
	if strings.TrimSpace(interior) == "" {
		return name, nil, nil
	}
	for _, arg := range splitTopLevel(interior, ',') {
		args = append(args, strings.TrimSpace(arg))
	}
	return name, args, nil
}

// splitFunction returns the function name and the interior of the outer
// parentheses, or ok=false if s is not function-shaped.
func splitFunction(s string) (name, interior string, ok bool) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	name = s[:open]
	if !functionNameRe.MatchString(name) {
		return "", "", false
	}
	// The parenthesis opened after the name must close at the final
	// character, otherwise s is an expression like SUM(A1)+1.
	depth := 0
	inQuote := false
	inSheet := false
	for i := open; i < len(s); i++ {
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
			if depth == 0 {
				if i != len(s)-1 {
					return "", "", false
				}
				return name, s[open+1 : i], true
			}
		}
	}
	return "", "", false
}

// splitTopLevel splits s by sep, ignoring sep inside parentheses, inside
// double-quoted string literals and inside single-quoted sheet names.
func splitTopLevel(s string, sep rune) []string {
	var res []string
	var buf strings.Builder
	depth := 0
	inQuote := false
	inSheet := false
	for _, r := range s {
		switch {
		case r == '"' && !inSheet:
			inQuote = !inQuote
			buf.WriteRune(r)
		case inQuote:
			buf.WriteRune(r)
		case r == '\'':
			inSheet = !inSheet
			buf.WriteRune(r)
		case inSheet:
			buf.WriteRune(r)
		case r == '(':
			depth++
			buf.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			buf.WriteRune(r)
		case r == sep && depth == 0:
			res = append(res, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	res = append(res, buf.String())
	return res
}
