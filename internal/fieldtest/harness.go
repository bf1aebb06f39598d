// Package fieldtest drives a visual-spatial field through its exported APIs
// only, so end-to-end scenarios can live outside the field package. The
// harness mirrors how a caller wires the pieces: scene + oracles + tuning in,
// field out, then move batches and projections.
package fieldtest

import (
	"testing"

	"mindseye.ai/internal/field"
	"mindseye.ai/internal/recog"
	"mindseye.ai/internal/scenario"
	"mindseye.ai/internal/scene"
	"mindseye.ai/internal/trace"
)

type Harness struct {
	T     *testing.T
	Field *field.Field
	STM   *recog.RecordingSTM
	Trace *trace.Memory
}

// DefaultConfig matches configs/timing.yaml so harness arithmetic and the
// shipped tuning agree.
func DefaultConfig() field.Config {
	return field.Config{
		ObjectEncodeCost:      25,
		EmptySquareEncodeCost: 10,
		FieldAccessCost:       100,
		AccessCost:            100,
		MoveCost:              50,
		RecognisedLifespan:    10000,
		UnrecognisedLifespan:  8000,
		FixationBudget:        20,
		EncodeCreator:         true,
		EncodeGhosts:          true,
	}
}

// NewHarness constructs a field from the scene and scripted oracles, failing
// the test on any construction error.
func NewHarness(t *testing.T, sc *scene.Scene, oracle recog.Oracle, policy recog.FixationPolicy, cfg field.Config, start int64) *Harness {
	t.Helper()

	stm := &recog.RecordingSTM{}
	mem := &trace.Memory{}
	cfg.Trace = mem

	f, err := field.Construct(sc, oracle, policy, stm, cfg, start)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	return &Harness{T: t, Field: f, STM: stm, Trace: mem}
}

// NewScenarioHarness builds the harness from a scenario document.
func NewScenarioHarness(t *testing.T, doc *scenario.Document, cfg field.Config) *Harness {
	t.Helper()
	sc, err := doc.BuildScene()
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	return NewHarness(t, sc, doc.Oracle(), doc.Policy(), cfg, doc.StartTime)
}

// Move applies a batch and fails the test on rejection.
func (h *Harness) Move(batch field.MoveBatch, at int64) {
	h.T.Helper()
	if err := h.Field.MoveObjects(batch, at); err != nil {
		h.T.Fatalf("move at %d: %v", at, err)
	}
}

// AliveAt returns the identifiers alive on a square at an instant, in
// history order.
func (h *Harness) AliveAt(col, row int, at int64) []string {
	var ids []string
	for _, o := range h.Field.SquareContents(col, row) {
		if o.Alive(at) {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
