package registry

import (
	"context"
	"fmt"
)

// Type tags used in signature metadata. They deliberately match JSON Schema
// type names so the schema layer can pass them through untranslated.
const (
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeAny     = "any"
)

// Parameter kinds, mirroring the dispatch positions a caller may use.
const (
	KindPositionalOrKeyword = "POSITIONAL_OR_KEYWORD"
	KindKeywordOnly         = "KEYWORD_ONLY"
)

// Callable is the invocation shape every registered function shares: named
// arguments in, one value out.
type Callable func(ctx context.Context, args map[string]any) (any, error)

// Param describes one parameter of a registered function.
type Param struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Default    any    `json:"default,omitempty"`
	HasDefault bool   `json:"has_default"`
	Kind       string `json:"kind"`
}

// Signature is the introspectable metadata of a registered function,
// consumed by the schema layer for form generation.
type Signature struct {
	Name    string  `json:"name"`
	Doc     string  `json:"doc,omitempty"`
	Params  []Param `json:"parameters"`
	Returns string  `json:"return_type"`
}

// Function pairs a callable with its declared signature.
type Function struct {
	Signature
	Fn Callable `json:"-"`
}

// MissingArgumentError reports a required parameter that had no binding,
// no override, no global input, and no declared default.
type MissingArgumentError struct {
	Function string
	Param    string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("function %q: missing required argument %q", e.Function, e.Param)
}

// Call invokes the function with the supplied named arguments. Declared
// defaults fill in absent parameters; a required parameter left unsupplied
// fails with MissingArgumentError before the callable runs. Argument names
// outside the declared signature are rejected.
func (f *Function) Call(ctx context.Context, args map[string]any) (any, error) {
	declared := make(map[string]bool, len(f.Params))
	final := make(map[string]any, len(f.Params))

	for _, p := range f.Params {
		declared[p.Name] = true
		if v, ok := args[p.Name]; ok {
			final[p.Name] = v
			continue
		}
		if !p.HasDefault {
			return nil, &MissingArgumentError{Function: f.Name, Param: p.Name}
		}
		final[p.Name] = p.Default
	}

	for name := range args {
		if !declared[name] {
			return nil, fmt.Errorf("function %q: unexpected argument %q", f.Name, name)
		}
	}

	return f.Fn(ctx, final)
}

// validate checks the structural integrity of a Function before it enters
// the registry.
func (f *Function) validate() error {
	if f.Name == "" {
		return fmt.Errorf("function has no name")
	}
	if f.Fn == nil {
		return fmt.Errorf("function %q has no callable", f.Name)
	}
	seen := make(map[string]bool, len(f.Params))
	for _, p := range f.Params {
		if p.Name == "" {
			return fmt.Errorf("function %q has an unnamed parameter", f.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("function %q declares parameter %q twice", f.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
