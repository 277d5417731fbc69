package funcs

import (
	"context"
	"fmt"
	"math"

	"github.com/whatif-sh/whatif/internal/scenario"
)

// RegisterBuiltins installs the built-in compute functions into the registry.
func RegisterBuiltins(r *Registry) error {
	builtins := []Func{
		productFunc{},
		squareFunc{},
		polynomialFunc{},
	}
	for _, f := range builtins {
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}

// productFunc computes res = x*y and diff = x-y.
type productFunc struct{}

func (productFunc) Metadata() Metadata {
	return Metadata{
		Name:        "product",
		Description: "res = x*y, diff = x-y",
		Inputs:      []string{"x", "y"},
		Outputs:     []string{"res", "diff"},
	}
}

func (productFunc) Compute(_ context.Context, in scenario.Inputs) (scenario.Outputs, error) {
	return scenario.Outputs{
		"res":  in["x"] * in["y"],
		"diff": in["x"] - in["y"],
	}, nil
}

// squareFunc computes sq = x².
type squareFunc struct{}

func (squareFunc) Metadata() Metadata {
	return Metadata{
		Name:        "square",
		Description: "sq = x^2",
		Inputs:      []string{"x"},
		Outputs:     []string{"sq"},
	}
}

func (squareFunc) Compute(_ context.Context, in scenario.Inputs) (scenario.Outputs, error) {
	return scenario.Outputs{"sq": in["x"] * in["x"]}, nil
}

// polynomialFunc evaluates y = c0 + c1*x + c2*x².
type polynomialFunc struct{}

func (polynomialFunc) Metadata() Metadata {
	return Metadata{
		Name:        "polynomial",
		Description: "y = c0 + c1*x + c2*x^2",
		Inputs:      []string{"x", "c0", "c1", "c2"},
		Outputs:     []string{"y"},
	}
}

func (polynomialFunc) Compute(_ context.Context, in scenario.Inputs) (scenario.Outputs, error) {
	x := in["x"]
	y := in["c0"] + in["c1"]*x + in["c2"]*x*x
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return nil, fmt.Errorf("polynomial evaluation is not finite for x=%v", x)
	}
	return scenario.Outputs{"y": y}, nil
}
