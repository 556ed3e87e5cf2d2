package shared

import (
	"reflect"
	"testing"
)

func TestIsFunctionString(t *testing.T) {
	valid := []string{"SUM(A1)", "MAX()", "min(a1, b2)", "BETA.DIST(1, 2, 3)", "_agg(A1)"}
	invalid := []string{"", "SUM", "(A1)", "SUM(A1", "SUM(A1)+1", "1SUM(A1)", "A1:B2"}
	for _, s := range valid {
		if !IsFunctionString(s) {
			t.Errorf("IsFunctionString(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsFunctionString(s) {
			t.Errorf("IsFunctionString(%q) = true, want false", s)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cases := []struct {
		input string
		name  string
		args  []string
	}{
		{"SUM(A1, B2)", "SUM", []string{"A1", "B2"}},
		{"NOW()", "NOW", nil},
		{"IF(A1 > 0, 1, 2)", "IF", []string{"A1 > 0", "1", "2"}},
		// Commas inside quoted strings or sheet names are not split points
		{`CONCAT("a,b", C1)`, "CONCAT", []string{`"a,b"`, "C1"}},
		{"SUM('Jan,Feb'!C1, 2)", "SUM", []string{"'Jan,Feb'!C1", "2"}},
	}
	for _, c := range cases {
		name, args, err := ParseArguments(c.input)
		if err != nil {
			t.Errorf("ParseArguments(%q) unexpected error: %v", c.input, err)
			continue
		}
		if name != c.name || !reflect.DeepEqual(args, c.args) {
			t.Errorf("ParseArguments(%q) = %q, %v, want %q, %v", c.input, name, args, c.name, c.args)
		}
	}
}

func TestParseArgumentsNestedCall(t *testing.T) {
	// The nested call must survive as a single unsplit argument.
	name, args, err := ParseArguments("PRODUCT(A1, B2, MAX(C1, C2))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "PRODUCT" {
		t.Errorf("name = %q, want PRODUCT", name)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 top-level arguments, got %d: %v", len(args), args)
	}
	if args[2] != "MAX(C1, C2)" {
		t.Errorf("third argument = %q, want %q", args[2], "MAX(C1, C2)")
	}
}

func TestSplitTopLevel(t *testing.T) {
	got := splitTopLevel("A1, MAX(B1, C1), D1", ',')
	want := []string{"A1", " MAX(B1, C1)", " D1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitTopLevel = %v, want %v", got, want)
	}
}
