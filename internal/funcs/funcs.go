package funcs

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/whatif-sh/whatif/internal/scenario"
	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

// Func is a named compute function a workbook can bind its scenarios to.
// Compute receives a snapshot of one scenario's inputs and never sees the
// table; it may be slow and it may fail.
type Func interface {
	// Metadata returns the function's identity and declared parameters.
	Metadata() Metadata

	// Compute produces outputs from the given inputs.
	Compute(ctx context.Context, inputs scenario.Inputs) (scenario.Outputs, error)
}

// Metadata describes a compute function for listing and input validation.
type Metadata struct {
	Name        string
	Description string
	Inputs      []string // required input parameter names
	Outputs     []string // output names the function produces
}

// Registry holds the compute functions available to workbooks.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty function registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds a function under its metadata name.
func (r *Registry) Register(f Func) error {
	if f == nil {
		return whatiferrors.NewFuncError("", fmt.Errorf("func is nil"))
	}

	name := f.Metadata().Name
	if name == "" {
		return whatiferrors.NewFuncError(name, fmt.Errorf("func name is empty"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return whatiferrors.NewFuncError(name, fmt.Errorf("func already registered"))
	}

	r.funcs[name] = f
	return nil
}

// Get retrieves a function by name.
func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.funcs[name]
	if !ok {
		return nil, whatiferrors.NewFuncError(name, fmt.Errorf("no func registered"))
	}

	return f, nil
}

// List returns metadata for all registered functions sorted by name.
func (r *Registry) List() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metadata, 0, len(r.funcs))
	for _, f := range r.funcs {
		out = append(out, f.Metadata())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CheckInputs verifies the inputs carry every parameter the function
// declares. Missing parameters fail before dispatch so a slow function is
// never invoked with an incomplete row.
func CheckInputs(meta Metadata, inputs scenario.Inputs) error {
	var missing []string
	for _, name := range meta.Inputs {
		if _, ok := inputs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing inputs: %v", missing)
	}
	return nil
}

// Bind adapts a registered function into the table's compute signature,
// validating required inputs up front.
func Bind(f Func) scenario.Func {
	meta := f.Metadata()
	return func(ctx context.Context, inputs scenario.Inputs) (scenario.Outputs, error) {
		if err := CheckInputs(meta, inputs); err != nil {
			return nil, err
		}
		return f.Compute(ctx, inputs)
	}
}
