package shared

import (
	"bufio"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

// stripGrouping removes parentheses and whitespace, the two degrees of
// freedom reconstruction is allowed to change.
func stripGrouping(s string) string {
	r := strings.NewReplacer("(", "", ")", "", " ", "", "\t", "")
	return r.Replace(s)
}

func TestParserPreconditions(t *testing.T) {
	var malformed *MalformedFormulaError

	_, err := NewParser("SUM(A1,B2)")
	if !errors.As(err, &malformed) {
		t.Errorf("missing '=' should fail with MalformedFormulaError, got %v", err)
	}

	_, err = NewParser("=SUM(A1,B2")
	if !errors.As(err, &malformed) {
		t.Errorf("unbalanced parentheses should fail with MalformedFormulaError, got %v", err)
	}

	if _, err := NewParser("=SUM(A1,B2)"); err != nil {
		t.Errorf("valid formula rejected: %v", err)
	}
}

func TestParseClassification(t *testing.T) {
	p, err := NewParser("=SUM(A1, MAX(B1, C1 + D1))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fc, ok := tree.(*FunctionCall)
	if !ok {
		t.Fatalf("top node = %T, want *FunctionCall", tree)
	}
	if fc.Name != "SUM" || len(fc.Args) != 2 {
		t.Fatalf("top call = %s with %d args", fc.Name, len(fc.Args))
	}
	if _, ok := fc.Args[0].(*Reference); !ok {
		t.Errorf("first argument = %T, want *Reference", fc.Args[0])
	}
	inner, ok := fc.Args[1].(*FunctionCall)
	if !ok {
		t.Fatalf("second argument = %T, want *FunctionCall", fc.Args[1])
	}
	expr, ok := inner.Args[1].(*Expression)
	if !ok {
		t.Fatalf("nested argument = %T, want *Expression", inner.Args[1])
	}
	if len(expr.Parts) != 3 {
		t.Errorf("expression parts = %d, want 3 (operand, operator, operand)", len(expr.Parts))
	}
	if op, ok := expr.Parts[1].(*Operator); !ok || op.Symbol != "+" {
		t.Errorf("middle part = %v, want operator +", expr.Parts[1])
	}
}

func TestClassificationOrder(t *testing.T) {
	// Function shape must win over everything else, a range over its
	// two references, and a reference over the generic expression rule.
	cases := []struct {
		formula string
		kind    Kind
	}{
		{"=SUM(A1)", KindFunction},
		{"=A1:B2", KindRange},
		{"=A1", KindReference},
		{"=5", KindConstant},
		{`="A1"`, KindConstant},
		{"=A1+B2", KindExpression},
		{"=(A1)", KindExpression},
	}
	for _, c := range cases {
		p, err := NewParser(c.formula)
		if err != nil {
			t.Fatalf("NewParser(%q): %v", c.formula, err)
		}
		tree, err := p.Parse()
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.formula, err)
		}
		if tree.Kind() != c.kind {
			t.Errorf("%q classified as %s, want %s", c.formula, tree.Kind(), c.kind)
		}
	}
}

func TestRoundTripModuloGrouping(t *testing.T) {
	formula := "=SUM(A1, MAX(B1, C1 + D1))"
	p, err := NewParser(formula)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := p.ReconstructedFormula()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	noParens := func(s string) string {
		return strings.ReplaceAll(strings.ReplaceAll(s, "(", ""), ")", "")
	}
	if noParens(out) != noParens(formula) {
		t.Errorf("round-trip mismatch:\ninput:         %q\nreconstructed: %q", formula, out)
	}
}

func TestRoundTripCorpus(t *testing.T) {
	f, err := os.Open("../testdata/formulas.txt")
	if err != nil {
		t.Fatalf("failed to open formulas.txt: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := NewParser(line)
		if err != nil {
			t.Errorf("construction error on line %d: %v\ninput: %q", lineno, err, line)
			continue
		}
		out, err := p.ReconstructedFormula()
		if err != nil {
			t.Errorf("parse error on line %d: %v\ninput: %q", lineno, err, line)
			continue
		}
		if stripGrouping(out) != stripGrouping(line) {
			t.Errorf("round-trip mismatch on line %d:\ninput:         %q\nreconstructed: %q", lineno, line, out)
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanner error: %v", err)
	}
}

func TestParseReconstructIdempotent(t *testing.T) {
	for _, formula := range []string{
		"=SUM(A1, MAX(B1, C1 + D1))",
		"=A1 + B2 * 3",
		"=(A1 + B2)",
		"='Sheet'!A1:B2",
	} {
		p1, err := NewParser(formula)
		if err != nil {
			t.Fatalf("NewParser(%q): %v", formula, err)
		}
		tree1, err := p1.Parse()
		if err != nil {
			t.Fatalf("Parse(%q): %v", formula, err)
		}
		out, err := p1.ReconstructedFormula()
		if err != nil {
			t.Fatalf("ReconstructedFormula(%q): %v", formula, err)
		}
		p2, err := NewParser(out)
		if err != nil {
			t.Fatalf("NewParser(%q): %v", out, err)
		}
		tree2, err := p2.Parse()
		if err != nil {
			t.Fatalf("reparse of %q: %v", out, err)
		}
		if !reflect.DeepEqual(tree1, tree2) {
			t.Errorf("reparsed tree differs for %q:\nfirst:  %#v\nsecond: %#v", formula, tree1, tree2)
		}
	}
}

func TestReclassifyIdempotent(t *testing.T) {
	p, err := NewParser("=IF(AND(A1 > 0, B1 < 0), SUM(PRODUCT(A1, B2, MAX(C1, C2)), 10), 100)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := Reclassify(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tree, again) {
		t.Errorf("reclassified tree differs:\nfirst:  %#v\nsecond: %#v", tree, again)
	}
}

func TestSheetNamesWithSpecialCharacters(t *testing.T) {
	// Sheet names may contain operator, separator and parenthesis
	// characters; every reference the recognizer accepts must also parse
	// when embedded in an expression or argument list.
	cases := []struct {
		formula string
		want    string
	}{
		{"='A+B'!C1 + 1", "=('A+B'!C1 + 1)"},
		{"=SUM('Jan,Feb'!C1, 2)", "=SUM('Jan,Feb'!C1, 2)"},
		{"='Q(1'!A1", "='Q(1'!A1"},
	}
	for _, c := range cases {
		p, err := NewParser(c.formula)
		if err != nil {
			t.Errorf("NewParser(%q): %v", c.formula, err)
			continue
		}
		out, err := p.ReconstructedFormula()
		if err != nil {
			t.Errorf("Parse(%q): %v", c.formula, err)
			continue
		}
		if out != c.want {
			t.Errorf("ReconstructedFormula(%q) = %q, want %q", c.formula, out, c.want)
		}
	}
}

func TestLowercaseReferencesPreserved(t *testing.T) {
	p, err := NewParser("=a1 + b2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := p.ReconstructedFormula()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "=(a1 + b2)" {
		t.Errorf("lowercase references not preserved: got %q", out)
	}
}

func TestUnrecognizedExpressionFailsLoudly(t *testing.T) {
	var unrecognized *UnrecognizedExpressionError
	for _, formula := range []string{"=", "=A1B2C", "=@bad"} {
		p, err := NewParser(formula)
		if err != nil {
			t.Fatalf("NewParser(%q): %v", formula, err)
		}
		_, err = p.Parse()
		if !errors.As(err, &unrecognized) {
			t.Errorf("Parse(%q) = %v, want UnrecognizedExpressionError", formula, err)
		}
	}
}

func TestNestingDepthLimit(t *testing.T) {
	formula := "=" + strings.Repeat("(", 150) + "1" + strings.Repeat(")", 150)
	p, err := NewParser(formula)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	var malformed *MalformedFormulaError
	_, err = p.Parse()
	if !errors.As(err, &malformed) {
		t.Errorf("deeply nested formula should fail with MalformedFormulaError, got %v", err)
	}
}

func TestReconstructMatchesCachedText(t *testing.T) {
	p, err := NewParser("=AVERAGE(SUM(A1:A10, B1), MAX(C1:C10), MIN(D1 + D2, E1))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Reconstruct(tree) != tree.String() {
		t.Errorf("structural reconstruction %q differs from cached text %q",
			Reconstruct(tree), tree.String())
	}
}
