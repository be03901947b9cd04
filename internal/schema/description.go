package schema

// ForDescription returns the static schema of the graph description
// format itself, used by editors to validate configurations before
// submitting them.
func ForDescription() *Schema {
	return &Schema{
		Type:  "object",
		Title: "Graph Description",
		Properties: map[string]*Schema{
			"name": {
				Type:        "string",
				Title:       "Graph Name",
				Description: "Name of the graph",
			},
			"nodes": {
				Type:        "array",
				Title:       "Nodes",
				Description: "Function nodes in the graph",
				Items: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"id":          {Type: "string"},
						"function":    {Type: "string"},
						"output_name": {Type: "string"},
					},
					Required: []string{"id", "function"},
				},
			},
			"edges": {
				Type:        "array",
				Title:       "Edges",
				Description: "Connections between nodes",
				Items: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"source":       {Type: "string"},
						"target":       {Type: "string"},
						"sourceOutput": {Type: "string"},
						"targetInput":  {Type: "string"},
					},
					Required: []string{"source", "target"},
				},
			},
			"params": {
				Type:        "object",
				Title:       "Parameters",
				Description: "Literal parameter overrides keyed by node id",
			},
		},
		Required: []string{"name", "nodes"},
	}
}
