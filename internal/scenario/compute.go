package scenario

import (
	"context"
	"time"

	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

// Func computes outputs from a snapshot of one scenario's inputs. It may be
// slow and it may fail; the table only ever inspects its outcome.
type Func func(ctx context.Context, inputs Inputs) (Outputs, error)

// Ticket is issued by Begin and redeemed by Complete or Abort. It carries the
// inputs snapshotted at trigger time, so the stored result always reflects
// the inputs the user saw when they hit compute, not whatever the row holds
// when the function finishes.
type Ticket struct {
	ScenarioID string
	Inputs     Inputs
	revision   uint64
	gen        uint64
}

// Outcome describes what Complete did with a finished compute.
type Outcome int

const (
	// OutcomeStored means the result was written and the row is now fresh.
	OutcomeStored Outcome = iota
	// OutcomeFailed means the failure was recorded; prior result and dirty
	// flag are untouched.
	OutcomeFailed
	// OutcomeDiscarded means the row was removed mid-flight; the result was
	// dropped silently.
	OutcomeDiscarded
	// OutcomeSuperseded means the inputs were edited mid-flight; the stale
	// result was dropped and the row stays dirty.
	OutcomeSuperseded
)

// Begin reserves a row for computation. It fails with NotFoundError if the
// row is absent and InProgressError if the row already has a compute in
// flight (duplicate triggers are rejected, not coalesced). On success the
// returned ticket holds a copy of the row's inputs at this instant.
func (t *Table) Begin(id string) (Ticket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.index[id]
	if !ok {
		return Ticket{}, whatiferrors.NewNotFoundError(id)
	}
	if row.Computing {
		return Ticket{}, whatiferrors.NewInProgressError(id)
	}

	row.Computing = true
	return Ticket{
		ScenarioID: id,
		Inputs:     row.Inputs.Clone(),
		revision:   row.revision,
		gen:        row.gen,
	}, nil
}

// Complete writes back the outcome of a compute started with Begin. Each row
// transition is atomic with respect to that row only; no other row is read
// or written.
func (t *Table) Complete(tk Ticket, result Outputs, err error) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.index[tk.ScenarioID]
	if !ok || row.gen != tk.gen {
		// Removal wins over a late result, even when another row has since
		// been added under the same ID.
		return OutcomeDiscarded
	}

	row.Computing = false

	if row.revision != tk.revision {
		// Inputs were edited while the compute ran. The result no longer
		// describes the row, so drop it and leave the row stale.
		return OutcomeSuperseded
	}

	if err != nil {
		row.Err = err.Error()
		return OutcomeFailed
	}

	row.Result = result.Clone()
	row.Dirty = false
	row.Err = ""
	row.ComputedAt = time.Now()
	return OutcomeStored
}

// Abort releases a ticket without recording anything, as if the compute was
// never triggered. Used for cancellation.
func (t *Table) Abort(tk Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if row, ok := t.index[tk.ScenarioID]; ok && row.gen == tk.gen {
		row.Computing = false
	}
}

// Compute runs fn against the named row synchronously: Begin, invoke, write
// back. Cancellation leaves the row exactly as it was before the trigger.
func (t *Table) Compute(ctx context.Context, id string, fn Func) (Outputs, error) {
	tk, err := t.Begin(id)
	if err != nil {
		return nil, err
	}

	result, fnErr := fn(ctx, tk.Inputs)

	if ctx.Err() != nil {
		t.Abort(tk)
		return nil, ctx.Err()
	}

	if fnErr != nil {
		t.Complete(tk, nil, fnErr)
		return nil, whatiferrors.NewComputeError(id, "", fnErr)
	}

	t.Complete(tk, result, nil)
	return result.Clone(), nil
}
