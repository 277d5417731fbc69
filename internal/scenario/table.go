package scenario

import (
	"sync"
	"time"

	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

// Table owns an ordered collection of scenario rows keyed by unique ID.
// Insertion order is the display order. All methods are safe for concurrent
// use; compute functions never run under the table lock.
type Table struct {
	mu      sync.RWMutex
	rows    []*Scenario
	index   map[string]*Scenario
	nextGen uint64
}

// NewTable creates an empty scenario table.
func NewTable() *Table {
	return &Table{
		index: make(map[string]*Scenario),
	}
}

// Add appends a new row with the given name and inputs. The ID is generated
// from the name and made unique within the table. The row starts dirty with
// no result.
func (t *Table) Add(name string, inputs Inputs) Scenario {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.uniqueIDLocked(GenerateScenarioID(name))
	return t.insertLocked(id, name, inputs)
}

// AddWithID appends a new row with an explicit ID, used when loading a
// workbook. Fails if the ID is already taken or invalid.
func (t *Table) AddWithID(id, name string, inputs Inputs) (Scenario, error) {
	if err := ValidateScenarioID(id); err != nil {
		return Scenario{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.index[id]; exists {
		return Scenario{}, whatiferrors.NewValidationError("id", "scenario ID already exists: "+id, nil)
	}

	return t.insertLocked(id, name, inputs), nil
}

// Duplicate creates a new row copying the named row's name and inputs. The
// copy gets a fresh unique ID and starts dirty with no result.
func (t *Table) Duplicate(id string) (Scenario, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	src, ok := t.index[id]
	if !ok {
		return Scenario{}, whatiferrors.NewNotFoundError(id)
	}

	copyID := t.uniqueIDLocked(src.ID)
	return t.insertLocked(copyID, src.Name, src.Inputs.Clone()), nil
}

// UpdateInputs replaces a row's inputs and marks it stale. The previous
// result stays in place until the next successful compute; a recorded compute
// failure is cleared since it no longer describes the current inputs.
func (t *Table) UpdateInputs(id string, inputs Inputs) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.index[id]
	if !ok {
		return whatiferrors.NewNotFoundError(id)
	}

	row.Inputs = inputs.Clone()
	row.Dirty = true
	row.Err = ""
	row.revision++
	return nil
}

// SetInput updates a single parameter on a row, marking it stale.
func (t *Table) SetInput(id, param string, value float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.index[id]
	if !ok {
		return whatiferrors.NewNotFoundError(id)
	}

	if row.Inputs == nil {
		row.Inputs = make(Inputs, 1)
	}
	row.Inputs[param] = value
	row.Dirty = true
	row.Err = ""
	row.revision++
	return nil
}

// RestoreResult installs a previously computed result on a row, keeping its
// original timestamp. Used when loading persisted rows; it bypasses the
// Begin/Complete protocol and must not race a live compute.
func (t *Table) RestoreResult(id string, result Outputs, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.index[id]
	if !ok {
		return whatiferrors.NewNotFoundError(id)
	}

	row.Result = result.Clone()
	row.Dirty = false
	row.Err = ""
	row.ComputedAt = at
	return nil
}

// Rename changes a row's display name. The ID never changes.
func (t *Table) Rename(id, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.index[id]
	if !ok {
		return whatiferrors.NewNotFoundError(id)
	}

	row.Name = name
	return nil
}

// Remove deletes a row and all its state. A compute still in flight for the
// row completes into nothing: its write-back is discarded silently.
func (t *Table) Remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.index[id]; !ok {
		return whatiferrors.NewNotFoundError(id)
	}

	delete(t.index, id)
	for i, row := range t.rows {
		if row.ID == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the named row.
func (t *Table) Get(id string) (Scenario, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.index[id]
	if !ok {
		return Scenario{}, whatiferrors.NewNotFoundError(id)
	}
	return row.view(), nil
}

// Snapshot returns copies of all rows in table order. The copies share no
// state with the table; callers can iterate and re-iterate freely.
func (t *Table) Snapshot() []Scenario {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Scenario, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row.view())
	}
	return out
}

// IDs returns all row IDs in table order.
func (t *Table) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		ids = append(ids, row.ID)
	}
	return ids
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// InFlight reports whether the row currently has a compute running.
func (t *Table) InFlight(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.index[id]
	return ok && row.Computing
}

func (t *Table) insertLocked(id, name string, inputs Inputs) Scenario {
	t.nextGen++
	row := &Scenario{
		ID:        id,
		Name:      name,
		Inputs:    inputs.Clone(),
		Dirty:     true,
		CreatedAt: time.Now(),
		gen:       t.nextGen,
	}
	t.rows = append(t.rows, row)
	t.index[id] = row
	return row.view()
}

// uniqueIDLocked suffixes the base ID with -2, -3, ... until it is free.
func (t *Table) uniqueIDLocked(base string) string {
	if base == "" {
		base = "scenario-" + randomIDSuffix(randomIDSuffixLength)
	}
	if _, taken := t.index[base]; !taken {
		return base
	}
	for n := 2; ; n++ {
		candidate := appendIDSuffix(base, n)
		if _, taken := t.index[candidate]; !taken {
			return candidate
		}
	}
}
