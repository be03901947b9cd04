package builtins

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/meshkit/meshd/internal/registry"
)

// Module implements registry.Module for the builtin function set.
type Module struct{}

// Register adds every builtin function to the registry. Duplicate names are
// a programmer error and panic.
func (m *Module) Register(r *registry.Registry) {
	for _, fn := range functions() {
		r.MustRegister(fn)
	}
}

// numParam is a shorthand for a required numeric parameter.
func numParam(name string) registry.Param {
	return registry.Param{Name: name, Type: registry.TypeNumber, Kind: registry.KindPositionalOrKeyword}
}

func strParam(name string) registry.Param {
	return registry.Param{Name: name, Type: registry.TypeString, Kind: registry.KindPositionalOrKeyword}
}

func functions() []*registry.Function {
	return []*registry.Function{
		{
			Signature: registry.Signature{
				Name:    "add",
				Doc:     "Add two numbers.",
				Params:  []registry.Param{numParam("a"), numParam("b")},
				Returns: registry.TypeNumber,
			},
			Fn: binaryNumeric(func(a, b float64) (float64, error) { return a + b, nil }),
		},
		{
			Signature: registry.Signature{
				Name:    "multiply",
				Doc:     "Multiply two numbers.",
				Params:  []registry.Param{numParam("a"), numParam("b")},
				Returns: registry.TypeNumber,
			},
			Fn: binaryNumeric(func(a, b float64) (float64, error) { return a * b, nil }),
		},
		{
			Signature: registry.Signature{
				Name:    "subtract",
				Doc:     "Subtract b from a.",
				Params:  []registry.Param{numParam("a"), numParam("b")},
				Returns: registry.TypeNumber,
			},
			Fn: binaryNumeric(func(a, b float64) (float64, error) { return a - b, nil }),
		},
		{
			Signature: registry.Signature{
				Name:    "divide",
				Doc:     "Divide a by b.",
				Params:  []registry.Param{numParam("a"), numParam("b")},
				Returns: registry.TypeNumber,
			},
			Fn: binaryNumeric(func(a, b float64) (float64, error) {
				if b == 0 {
					return 0, fmt.Errorf("cannot divide by zero")
				}
				return a / b, nil
			}),
		},
		{
			Signature: registry.Signature{
				Name: "power",
				Doc:  "Raise base to the power of exponent.",
				Params: []registry.Param{
					numParam("base"),
					{Name: "exponent", Type: registry.TypeNumber, Default: 2.0, HasDefault: true, Kind: registry.KindPositionalOrKeyword},
				},
				Returns: registry.TypeNumber,
			},
			Fn: func(ctx context.Context, args map[string]any) (any, error) {
				base, err := asNumber("base", args["base"])
				if err != nil {
					return nil, err
				}
				exp, err := asNumber("exponent", args["exponent"])
				if err != nil {
					return nil, err
				}
				return math.Pow(base, exp), nil
			},
		},
		{
			Signature: registry.Signature{
				Name:    "absolute_value",
				Doc:     "Get the absolute value of x.",
				Params:  []registry.Param{numParam("x")},
				Returns: registry.TypeNumber,
			},
			Fn: func(ctx context.Context, args map[string]any) (any, error) {
				x, err := asNumber("x", args["x"])
				if err != nil {
					return nil, err
				}
				return math.Abs(x), nil
			},
		},
		{
			Signature: registry.Signature{
				Name: "concatenate",
				Doc:  "Concatenate two strings with a separator.",
				Params: []registry.Param{
					strParam("a"),
					strParam("b"),
					{Name: "separator", Type: registry.TypeString, Default: " ", HasDefault: true, Kind: registry.KindPositionalOrKeyword},
				},
				Returns: registry.TypeString,
			},
			Fn: func(ctx context.Context, args map[string]any) (any, error) {
				a, err := asString("a", args["a"])
				if err != nil {
					return nil, err
				}
				b, err := asString("b", args["b"])
				if err != nil {
					return nil, err
				}
				sep, err := asString("separator", args["separator"])
				if err != nil {
					return nil, err
				}
				return a + sep + b, nil
			},
		},
		{
			Signature: registry.Signature{
				Name:    "to_uppercase",
				Doc:     "Convert text to uppercase.",
				Params:  []registry.Param{strParam("text")},
				Returns: registry.TypeString,
			},
			Fn: unaryString(strings.ToUpper),
		},
		{
			Signature: registry.Signature{
				Name:    "to_lowercase",
				Doc:     "Convert text to lowercase.",
				Params:  []registry.Param{strParam("text")},
				Returns: registry.TypeString,
			},
			Fn: unaryString(strings.ToLower),
		},
		{
			Signature: registry.Signature{
				Name:    "string_length",
				Doc:     "Get the length of a string in characters.",
				Params:  []registry.Param{strParam("text")},
				Returns: registry.TypeInteger,
			},
			Fn: func(ctx context.Context, args map[string]any) (any, error) {
				text, err := asString("text", args["text"])
				if err != nil {
					return nil, err
				}
				return utf8.RuneCountInString(text), nil
			},
		},
		{
			Signature: registry.Signature{
				Name:    "list_sum",
				Doc:     "Sum all numbers in a list.",
				Params:  []registry.Param{{Name: "numbers", Type: registry.TypeArray, Kind: registry.KindPositionalOrKeyword}},
				Returns: registry.TypeNumber,
			},
			Fn: func(ctx context.Context, args map[string]any) (any, error) {
				numbers, err := asNumberList("numbers", args["numbers"])
				if err != nil {
					return nil, err
				}
				var sum float64
				for _, n := range numbers {
					sum += n
				}
				return sum, nil
			},
		},
		{
			Signature: registry.Signature{
				Name:    "list_average",
				Doc:     "Calculate the average of numbers in a list.",
				Params:  []registry.Param{{Name: "numbers", Type: registry.TypeArray, Kind: registry.KindPositionalOrKeyword}},
				Returns: registry.TypeNumber,
			},
			Fn: func(ctx context.Context, args map[string]any) (any, error) {
				numbers, err := asNumberList("numbers", args["numbers"])
				if err != nil {
					return nil, err
				}
				if len(numbers) == 0 {
					return nil, fmt.Errorf("cannot calculate average of empty list")
				}
				var sum float64
				for _, n := range numbers {
					sum += n
				}
				return sum / float64(len(numbers)), nil
			},
		},
		httpGet(),
	}
}

// binaryNumeric adapts an (a, b) float function into a Callable.
func binaryNumeric(op func(a, b float64) (float64, error)) registry.Callable {
	return func(ctx context.Context, args map[string]any) (any, error) {
		a, err := asNumber("a", args["a"])
		if err != nil {
			return nil, err
		}
		b, err := asNumber("b", args["b"])
		if err != nil {
			return nil, err
		}
		return op(a, b)
	}
}

func unaryString(op func(string) string) registry.Callable {
	return func(ctx context.Context, args map[string]any) (any, error) {
		text, err := asString("text", args["text"])
		if err != nil {
			return nil, err
		}
		return op(text), nil
	}
}
