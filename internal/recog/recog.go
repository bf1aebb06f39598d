// Package recog defines the surface the field core consumes from the
// recognition network and the fixation policy. Both are oracles: the core
// calls them synchronously and treats their answers as given.
package recog

import "mindseye.ai/internal/scene"

// Fixation is one sampled query point fed to the recognition oracle.
type Fixation struct {
	Col int
	Row int
}

// ChunkEntry is one item-location pair of a learned chunk. ItemID is the
// oracle-assigned identity of the entry; it is what ties a re-recognised
// hypothesis back to an earlier one.
type ChunkEntry struct {
	ItemID string
	Class  string
	Col    int
	Row    int
}

// Chunk is a learned, ordered sequence of item-location entries returned by
// the recognition oracle for one fixation.
type Chunk struct {
	Node    string
	Entries []ChunkEntry
}

// Oracle answers fixations with previously learned chunks. A false second
// return means the oracle declines (nothing recognised at that fixation).
type Oracle interface {
	Recognise(fix Fixation, at int64) (Chunk, bool)
}

// FixationPolicy decides which square of the source scene to sample next.
// A false second return ends the scan early.
type FixationPolicy interface {
	Next(sc *scene.Scene) (Fixation, bool)
}

// STM is the short-term-memory sink retrieved chunks are pushed into as the
// scan observes them. It is a side-effect-only collaborator.
type STM interface {
	Record(c Chunk, at int64)
}
