package shared

import "strings"

// IsValidRange reports whether s is a cell range: exactly one colon
// separating two independently valid references. The endpoints are not
// cross-validated, so 'A'!A1:'B'!C3 is accepted.
func IsValidRange(s string) bool {
	start, end, ok := splitRange(s)
	return ok && IsValidReference(start) && IsValidReference(end)
}

// ParseCellRange parses range text into a CellRange node.
func ParseCellRange(s string) (*CellRange, error) {
	start, end, ok := splitRange(s)
	if !ok {
		return nil, &InvalidReferenceError{Ref: s, Reason: "not a range"}
	}
	startRef, err := ParseReference(start)
	if err != nil {
		return nil, err
	}
	endRef, err := ParseReference(end)
	if err != nil {
		return nil, err
	}
	return NewCellRange(startRef, endRef), nil
}

// splitRange splits at the single colon outside quoted sheet names.
func splitRange(s string) (start, end string, ok bool) {
	s = strings.TrimSpace(s)
	sep := -1
	inQuote := false
	for i, c := range s {
		switch {
		case c == '\'':
			inQuote = !inQuote
		case c == ':' && !inQuote:
			if sep >= 0 {
				return "", "", false
			}
			sep = i
		}
	}
	if sep < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:sep]), strings.TrimSpace(s[sep+1:]), true
}
