package builtins

import "fmt"

// asNumber coerces a JSON-decoded argument into a float64. Descriptions
// arrive as untyped JSON, so integers and floats both land here.
func asNumber(name string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("argument %q: expected a number, got %T", name, v)
	}
}

func asString(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q: expected a string, got %T", name, v)
	}
	return s, nil
}

func asNumberList(name string, v any) ([]float64, error) {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]float64); ok {
			return typed, nil
		}
		return nil, fmt.Errorf("argument %q: expected an array, got %T", name, v)
	}

	out := make([]float64, 0, len(items))
	for i, item := range items {
		n, err := asNumber(fmt.Sprintf("%s[%d]", name, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
