package shared

import (
	"fmt"
	"strconv"
)

// ToStructured converts a node to a plain nested map/slice value suitable
// for JSON serialization. The wire shape pairs each node's kind key with
// its canonical text and a "components" entry holding the structured form.
func ToStructured(n Node) map[string]any {
	switch v := n.(type) {
	case *FunctionCall:
		args := make([]any, len(v.Args))
		for i, a := range v.Args {
			args[i] = ToStructured(a)
		}
		return map[string]any{
			"function": v.String(),
			"components": map[string]any{
				"name":      v.Name,
				"arguments": args,
			},
		}
	case *CellRange:
		return map[string]any{
			"range": v.String(),
			"components": map[string]any{
				"start": ToStructured(v.Start),
				"end":   ToStructured(v.End),
			},
		}
	case *Reference:
		var sheet any
		if v.Sheet != "" {
			sheet = v.Sheet
		}
		return map[string]any{
			"reference": v.String(),
			"components": map[string]any{
				"sheet_name":    sheet,
				"column_letter": v.ColumnLetter,
				"column_number": v.ColumnNumber,
				"row_number":    v.RowNumber,
			},
		}
	case *Constant:
		return map[string]any{"constant": v.Value}
	case *Expression:
		parts := make([]any, len(v.Parts))
		for i, p := range v.Parts {
			parts[i] = ToStructured(p)
		}
		return map[string]any{
			"expression": v.String(),
			"components": parts,
		}
	case *Operator:
		return map[string]any{"operator": v.Symbol}
	default:
		return nil
	}
}

// FromStructured rebuilds a node from its structured form. Numeric fields
// are accepted as any Go integer or float type, so values that passed
// through JSON decode cleanly.
func FromStructured(m map[string]any) (Node, error) {
	switch {
	case m["function"] != nil:
		comps, err := componentMap(m)
		if err != nil {
			return nil, err
		}
		name, _ := comps["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("structured function missing name")
		}
		rawArgs, _ := comps["arguments"].([]any)
		args := make([]Node, len(rawArgs))
		for i, raw := range rawArgs {
			argMap, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("structured function argument %d is not a map", i)
			}
			arg, err := FromStructured(argMap)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return NewFunctionCall(name, args), nil
	case m["range"] != nil:
		comps, err := componentMap(m)
		if err != nil {
			return nil, err
		}
		start, err := structuredReference(comps["start"])
		if err != nil {
			return nil, err
		}
		end, err := structuredReference(comps["end"])
		if err != nil {
			return nil, err
		}
		return NewCellRange(start, end), nil
	case m["reference"] != nil:
		return structuredReference(m)
	case m["constant"] != nil:
		return constantFromValue(m["constant"])
	case m["expression"] != nil:
		rawParts, ok := m["components"].([]any)
		if !ok {
			return nil, fmt.Errorf("structured expression missing components")
		}
		parts := make([]Node, len(rawParts))
		for i, raw := range rawParts {
			partMap, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("structured expression part %d is not a map", i)
			}
			part, err := FromStructured(partMap)
			if err != nil {
				return nil, err
			}
			parts[i] = part
		}
		return NewExpression(parts), nil
	case m["operator"] != nil:
		sym, _ := m["operator"].(string)
		if !IsOperatorSymbol(sym) {
			return nil, fmt.Errorf("invalid operator symbol %q", sym)
		}
		return NewOperator(sym), nil
	}
	return nil, fmt.Errorf("structured value has no recognized kind key")
}

func componentMap(m map[string]any) (map[string]any, error) {
	comps, ok := m["components"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("structured value missing components")
	}
	return comps, nil
}

func structuredReference(v any) (*Reference, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("structured reference is not a map")
	}
	// Accept both the wrapped node form and a bare components map.
	if inner, ok := m["components"].(map[string]any); ok {
		m = inner
	}
	col, err := asInt(m["column_number"])
	if err != nil {
		return nil, fmt.Errorf("structured reference column: %w", err)
	}
	row, err := asInt(m["row_number"])
	if err != nil {
		return nil, fmt.Errorf("structured reference row: %w", err)
	}
	sheet, _ := m["sheet_name"].(string)
	return NewReference(sheet, col, row)
}

func constantFromValue(v any) (*Constant, error) {
	switch c := v.(type) {
	case string:
		return &Constant{Value: c, Literal: strconv.Quote(c)}, nil
	case bool:
		if c {
			return &Constant{Value: true, Literal: "TRUE"}, nil
		}
		return &Constant{Value: false, Literal: "FALSE"}, nil
	default:
		f, err := asFloat(v)
		if err != nil {
			return nil, fmt.Errorf("structured constant: %w", err)
		}
		return &Constant{Value: f, Literal: strconv.FormatFloat(f, 'f', -1, 64)}, nil
	}
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}
