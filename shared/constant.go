package shared

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRe matches integer and decimal literals with an optional sign
var numberRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// IsValidConstant reports whether s is a literal value: a number, a
// double-quoted string or a boolean keyword.
func IsValidConstant(s string) bool {
	s = strings.TrimSpace(s)
	if numberRe.MatchString(s) || isQuotedString(s) {
		return true
	}
	switch strings.ToUpper(s) {
	case "TRUE", "FALSE":
		return true
	}
	return false
}

// NewConstant parses literal text into a typed Constant node. The literal
// text is kept as written, so a quoted "5" and a numeric 5 stay distinct.
func NewConstant(literal string) (*Constant, error) {
	literal = strings.TrimSpace(literal)
	if numberRe.MatchString(literal) {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, &UnrecognizedExpressionError{Expr: literal}
		}
		return &Constant{Value: v, Literal: literal}, nil
	}
	if isQuotedString(literal) {
		return &Constant{Value: literal[1 : len(literal)-1], Literal: literal}, nil
	}
	switch strings.ToUpper(literal) {
	case "TRUE":
		return &Constant{Value: true, Literal: literal}, nil
	case "FALSE":
		return &Constant{Value: false, Literal: literal}, nil
	}
	return nil, &UnrecognizedExpressionError{Expr: literal}
}

func isQuotedString(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' &&
		!strings.Contains(s[1:len(s)-1], `"`)
}
