package schema

// ForObject infers a schema from a sample value. Maps become object
// schemas with per-key properties, slices become array schemas with the
// item shape taken from the first element.
func ForObject(v any, title string) *Schema {
	s := valueSchema(v)
	if title != "" {
		s.Title = title
	}
	return s
}

func valueSchema(v any) *Schema {
	switch val := v.(type) {
	case map[string]any:
		s := &Schema{Type: "object", Properties: make(map[string]*Schema, len(val))}
		for key, item := range val {
			prop := valueSchema(item)
			prop.Title = key
			s.Properties[key] = prop
		}
		return s
	case []any:
		s := &Schema{Type: "array"}
		if len(val) > 0 {
			s.Items = valueSchema(val[0])
		}
		return s
	case string:
		return &Schema{Type: "string"}
	case bool:
		return &Schema{Type: "boolean"}
	case int, int64:
		return &Schema{Type: "integer"}
	case float32, float64:
		return &Schema{Type: "number"}
	case nil:
		return &Schema{Type: "null"}
	default:
		return &Schema{Type: "string"}
	}
}
