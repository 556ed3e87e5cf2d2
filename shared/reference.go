package shared

import (
	"regexp"
	"strconv"
	"strings"
)

// referenceRe matches a cell reference like A1 or 'Sheet Name'!BC23.
// The column letter run is capped at six letters (over 300 million
// columns) so the base-26 conversion cannot overflow.
var referenceRe = regexp.MustCompile(`^(?:'([^'!]+)'!)?([A-Za-z]{1,6})([0-9]+)$`)

// IsValidReference reports whether s is a single cell reference,
// optionally sheet-qualified.
func IsValidReference(s string) bool {
	return referenceRe.MatchString(strings.TrimSpace(s))
}

// ParseReference parses a cell reference string into a Reference node.
func ParseReference(s string) (*Reference, error) {
	m := referenceRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, &InvalidReferenceError{Ref: s}
	}
	row, err := strconv.Atoi(m[3])
	if err != nil || row < 1 {
		return nil, &InvalidReferenceError{Ref: s, Reason: "row number must be >= 1"}
	}
	// Column letters are case-preserved as written; the derived column
	// number is case-insensitive.
	letters := m[2]
	r := &Reference{
		Sheet:        m[1],
		ColumnLetter: letters,
		ColumnNumber: ColumnLettersToNumber(letters),
		RowNumber:    row,
	}
	r.text = r.render()
	return r, nil
}

// NewReference builds a reference from numeric coordinates, deriving the
// column letters. Sheet may be empty for an unqualified reference.
func NewReference(sheet string, columnNumber, rowNumber int) (*Reference, error) {
	if columnNumber < 1 {
		return nil, &InvalidReferenceError{
			Ref:    sheet, // no text form yet
			Reason: "column number must be >= 1, got " + strconv.Itoa(columnNumber),
		}
	}
	if rowNumber < 1 {
		return nil, &InvalidReferenceError{
			Ref:    sheet,
			Reason: "row number must be >= 1, got " + strconv.Itoa(rowNumber),
		}
	}
	r := &Reference{
		Sheet:        sheet,
		ColumnLetter: ColumnNumberToLetters(columnNumber),
		ColumnNumber: columnNumber,
		RowNumber:    rowNumber,
	}
	r.text = r.render()
	return r, nil
}

func (r *Reference) render() string {
	coord := r.ColumnLetter + strconv.Itoa(r.RowNumber)
	if r.Sheet == "" {
		return coord
	}
	return "'" + r.Sheet + "'!" + coord
}

// SetColumnNumber updates the column, keeping the letter form and the
// cached text in sync.
func (r *Reference) SetColumnNumber(n int) error {
	if n < 1 {
		return &InvalidReferenceError{Ref: r.text, Reason: "column number must be >= 1"}
	}
	r.ColumnNumber = n
	r.ColumnLetter = ColumnNumberToLetters(n)
	r.text = r.render()
	return nil
}

// SetRowNumber updates the row, keeping the cached text in sync.
func (r *Reference) SetRowNumber(n int) error {
	if n < 1 {
		return &InvalidReferenceError{Ref: r.text, Reason: "row number must be >= 1"}
	}
	r.RowNumber = n
	r.text = r.render()
	return nil
}

// ColumnLettersToNumber converts column letters to a 1-based column number
// (A=1, Z=26, AA=27). Lowercase letters are accepted.
func ColumnLettersToNumber(letters string) int {
	n := 0
	for _, c := range strings.ToUpper(letters) {
		n = n*26 + int(c-'A'+1)
	}
	return n
}

// ColumnNumberToLetters converts a 1-based column number to its letter form.
// Inverse of ColumnLettersToNumber for all n >= 1.
func ColumnNumberToLetters(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}
