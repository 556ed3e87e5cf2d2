package shared

import "fmt"

// MalformedFormulaError reports formula text that fails the construction
// preconditions: a missing leading '=', unbalanced parentheses, or nesting
// deeper than the parser supports.
type MalformedFormulaError struct {
	Formula string
	Reason  string
}

func (e *MalformedFormulaError) Error() string {
	return fmt.Sprintf("malformed formula %q: %s", e.Formula, e.Reason)
}

// UnrecognizedExpressionError reports a substring that matched none of the
// classification rules.
type UnrecognizedExpressionError struct {
	Expr string
}

func (e *UnrecognizedExpressionError) Error() string {
	return fmt.Sprintf("unrecognized expression %q", e.Expr)
}

// InvalidReferenceError reports an invalid cell reference, either bad
// reference text or a translation that would shift a reference off the grid.
type InvalidReferenceError struct {
	Ref    string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid cell reference %q", e.Ref)
	}
	return fmt.Sprintf("invalid cell reference %q: %s", e.Ref, e.Reason)
}
