package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kaptinlin/jsonrepair"
)

// Parse decodes a graph description from JSON. Unknown fields and type
// mismatches are rejected; a malformed byte stream yields ParseError and a
// description missing required fields yields StructuralError. Emptiness and
// reference checks are Build's concern, not Parse's.
func Parse(r io.Reader) (*Description, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var desc Description
	if err := dec.Decode(&desc); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, &StructuralError{
				Kind:   KindMissingField,
				Detail: fmt.Sprintf("invalid type for field %q: %v", typeErr.Field, err),
			}
		}
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}

	if err := checkFields(&desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

// ParseBytes is Parse over an in-memory description.
func ParseBytes(b []byte) (*Description, error) {
	return Parse(bytes.NewReader(b))
}

// ParseLenient behaves like ParseBytes but, when the input is not valid
// JSON, first runs it through jsonrepair and retries once. Descriptions
// pasted from editors or produced by language models often carry trailing
// commas or single quotes that repair cleanly.
func ParseLenient(b []byte) (*Description, error) {
	desc, err := Parse(bytes.NewReader(b))
	if err == nil {
		return desc, nil
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return nil, err
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(b))
	if repairErr != nil {
		return nil, err
	}
	return Parse(bytes.NewReader([]byte(repaired)))
}

// checkFields enforces the per-entry required fields of a description.
func checkFields(desc *Description) error {
	for i, n := range desc.Nodes {
		if n.ID == "" {
			return &StructuralError{
				Kind:   KindMissingField,
				Detail: fmt.Sprintf("nodes[%d]: missing required field \"id\"", i),
			}
		}
		if n.Function == "" {
			return &StructuralError{
				Kind:   KindMissingField,
				NodeID: n.ID,
				Detail: "missing required field \"function\"",
			}
		}
	}
	for i, e := range desc.Edges {
		if e.Source == "" {
			return &StructuralError{
				Kind:   KindMissingField,
				Detail: fmt.Sprintf("edges[%d]: missing required field \"source\"", i),
			}
		}
		if e.Target == "" {
			return &StructuralError{
				Kind:   KindMissingField,
				Detail: fmt.Sprintf("edges[%d]: missing required field \"target\"", i),
			}
		}
	}
	return nil
}
