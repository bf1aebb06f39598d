package field

import (
	"mindseye.ai/internal/scene"
	"mindseye.ai/internal/tuning"
)

// Config carries the timing table and encoding flags for one field, plus the
// optional trace recorder. Zero-value costs are legal; negative ones are not.
type Config struct {
	ObjectEncodeCost      int64
	EmptySquareEncodeCost int64
	FieldAccessCost       int64
	AccessCost            int64
	MoveCost              int64

	RecognisedLifespan   int64
	UnrecognisedLifespan int64

	FixationBudget int

	EncodeCreator bool
	EncodeGhosts  bool

	Trace Recorder
}

// ConfigFromTiming lifts a loaded timing table into a field config.
func ConfigFromTiming(t tuning.Timing) Config {
	return Config{
		ObjectEncodeCost:      t.ObjectEncodeCost,
		EmptySquareEncodeCost: t.EmptySquareEncodeCost,
		FieldAccessCost:       t.FieldAccessCost,
		AccessCost:            t.AccessCost,
		MoveCost:              t.MoveCost,
		RecognisedLifespan:    t.RecognisedLifespan,
		UnrecognisedLifespan:  t.UnrecognisedLifespan,
		FixationBudget:        t.FixationBudget,
		EncodeCreator:         t.EncodeCreator,
		EncodeGhosts:          t.EncodeGhosts,
	}
}

func (c Config) validate() error {
	costs := []struct {
		name string
		v    int64
	}{
		{"object encode cost", c.ObjectEncodeCost},
		{"empty square encode cost", c.EmptySquareEncodeCost},
		{"field access cost", c.FieldAccessCost},
		{"access cost", c.AccessCost},
		{"move cost", c.MoveCost},
	}
	for _, cost := range costs {
		if cost.v < 0 {
			return &ConstructionError{Reason: "negative " + cost.name}
		}
	}
	if c.RecognisedLifespan <= 0 {
		return &ConstructionError{Reason: "recognised lifespan must be positive"}
	}
	if c.UnrecognisedLifespan <= 0 {
		return &ConstructionError{Reason: "unrecognised lifespan must be positive"}
	}
	if c.FixationBudget < 0 {
		return &ConstructionError{Reason: "negative fixation budget"}
	}
	return nil
}

// Field is one visual-spatial field: the grid of occupancy histories, the
// attention clock that serialises mutations, and the blindness shape of the
// source environment retained for move-time queries. A field is exclusively
// owned; it is not safe for concurrent use and does not need to be, per the
// attention model.
type Field struct {
	grid  *Grid
	clock AttentionClock
	cfg   Config
	rec   Recorder

	// blind[col+row*width] mirrors the source environment's blind squares.
	blind  []bool
	width  int
	height int
}

// AttentionClock returns the logical time the attention resource frees up.
func (f *Field) AttentionClock() int64 { return f.clock.Now() }

func (f *Field) Width() int { return f.width }

func (f *Field) Height() int { return f.height }

// SourceBlind reports whether the square is blind in the real environment the
// field was constructed from.
func (f *Field) SourceBlind(col, row int) bool {
	if col < 0 || col >= f.width || row < 0 || row >= f.height {
		return true
	}
	return f.blind[col+row*f.width]
}

// SquareContents returns the square's full occupancy history, oldest first,
// as value snapshots. The internal records stay owned by the field.
func (f *Field) SquareContents(col, row int) []SpatialObject {
	hist := f.grid.History(col, row)
	if len(hist) == 0 {
		return nil
	}
	out := make([]SpatialObject, len(hist))
	for i, o := range hist {
		out[i] = *o
		if o.Terminus != nil {
			v := *o.Terminus
			out[i].Terminus = &v
		}
	}
	return out
}

func newField(src *scene.Scene, cfg Config) *Field {
	w, h := src.Width(), src.Height()
	f := &Field{
		grid:   NewGrid(w, h),
		cfg:    cfg,
		rec:    cfg.Trace,
		blind:  make([]bool, w*h),
		width:  w,
		height: h,
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			f.blind[col+row*w] = src.IsBlind(col, row)
		}
	}
	return f
}
