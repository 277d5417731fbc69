package workbook

import (
	"time"
)

// Workbook is the full on-disk scenario document.
type Workbook struct {
	Version     string         `yaml:"version" validate:"required,semver"`
	Name        string         `yaml:"name" validate:"required,min=1,max=100"`
	Description string         `yaml:"description,omitempty"`
	Function    string         `yaml:"function" validate:"required,func_name"`
	Settings    Settings       `yaml:"settings,omitempty"`
	Commands    []CommandSpec  `yaml:"commands,omitempty" validate:"omitempty,dive"`
	Scenarios   []ScenarioSpec `yaml:"scenarios,omitempty" validate:"omitempty,dive"`
}

// Settings holds execution parameters for run --all and per-compute timeouts.
type Settings struct {
	Parallel int `yaml:"parallel,omitempty" validate:"omitempty,min=1,max=32"`
	Timeout  int `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=3600"`
}

// CommandSpec declares an external compute function provided by the workbook:
// a shell command receiving inputs as environment variables.
type CommandSpec struct {
	Name        string   `yaml:"name" validate:"required,func_name"`
	Description string   `yaml:"description,omitempty"`
	Command     string   `yaml:"command" validate:"required"`
	Shell       string   `yaml:"shell,omitempty"`
	Inputs      []string `yaml:"inputs,omitempty"`
	WorkDir     string   `yaml:"workdir,omitempty"`
}

// ScenarioSpec is one persisted scenario row. A row with a result and no
// stale marker loads as fresh; everything else loads dirty.
type ScenarioSpec struct {
	ID         string             `yaml:"id" validate:"required,scenario_id"`
	Name       string             `yaml:"name,omitempty"`
	Inputs     map[string]float64 `yaml:"inputs" validate:"required,min=1"`
	Result     map[string]float64 `yaml:"result,omitempty"`
	Stale      bool               `yaml:"stale,omitempty"`
	ComputedAt *time.Time         `yaml:"computed_at,omitempty"`
}

// DefaultParallel bounds run --all when the workbook does not set one.
const DefaultParallel = 4

// DefaultTimeout is the per-compute timeout in seconds when unset.
const DefaultTimeout = 60

// ParallelOrDefault returns the configured parallelism, defaulted.
func (s Settings) ParallelOrDefault() int {
	if s.Parallel > 0 {
		return s.Parallel
	}
	return DefaultParallel
}

// TimeoutOrDefault returns the per-compute timeout, defaulted.
func (s Settings) TimeoutOrDefault() time.Duration {
	if s.Timeout > 0 {
		return time.Duration(s.Timeout) * time.Second
	}
	return DefaultTimeout * time.Second
}

// New creates an empty workbook with the given name bound to a function.
func New(name, function string) *Workbook {
	return &Workbook{
		Version:  "1.0",
		Name:     name,
		Function: function,
	}
}
