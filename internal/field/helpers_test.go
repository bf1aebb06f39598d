package field

import (
	"testing"

	"mindseye.ai/internal/scene"
)

// testConfig is the timing table the construction and move tests are
// calibrated against. Creation times and clock values in assertions are
// derived from these numbers.
func testConfig() Config {
	return Config{
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

// pawnScene is a 2x2 scene: pawn-1 at (0,0), empties at (1,0) and (0,1),
// blind at (1,1).
func pawnScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc := scene.New("pawn", 2, 2, true)
	mustPlace(t, sc, 0, 0, scene.Item{ID: "pawn-1", Class: "pawn"})
	mustReveal(t, sc, 1, 0)
	mustReveal(t, sc, 0, 1)
	return sc
}

func mustReveal(t *testing.T, sc *scene.Scene, col, row int) {
	t.Helper()
	if err := sc.Reveal(col, row); err != nil {
		t.Fatalf("reveal (%d,%d): %v", col, row, err)
	}
}

func mustPlace(t *testing.T, sc *scene.Scene, col, row int, it scene.Item) {
	t.Helper()
	if err := sc.PlaceItem(col, row, it); err != nil {
		t.Fatalf("place %s at (%d,%d): %v", it.ID, col, row, err)
	}
}

func mustConstruct(t *testing.T, sc *scene.Scene, cfg Config, start int64) *Field {
	t.Helper()
	f, err := Construct(sc, nil, nil, nil, cfg, start)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	return f
}

// objAt returns the object with the given identifier from the square's
// history, failing the test when absent.
func objAt(t *testing.T, f *Field, col, row int, id string) SpatialObject {
	t.Helper()
	for _, o := range f.SquareContents(col, row) {
		if o.ID == id {
			return o
		}
	}
	t.Fatalf("no %q in history of (%d,%d)", id, col, row)
	return SpatialObject{}
}

func wantTerminus(t *testing.T, o SpatialObject, want int64) {
	t.Helper()
	if o.Terminus == nil {
		t.Fatalf("%s has nil terminus, want %d", o.ID, want)
	}
	if *o.Terminus != want {
		t.Fatalf("%s terminus = %d, want %d", o.ID, *o.Terminus, want)
	}
}
