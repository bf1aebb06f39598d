package recog

import "mindseye.ai/internal/scene"

// ScriptedOracle answers fixations from a fixed table, for deterministic
// fixtures. Fixations with no scripted chunk are declined.
type ScriptedOracle struct {
	chunks map[Fixation]Chunk
}

func NewScriptedOracle() *ScriptedOracle {
	return &ScriptedOracle{chunks: map[Fixation]Chunk{}}
}

// Script registers the chunk returned for a fixation.
func (o *ScriptedOracle) Script(fix Fixation, c Chunk) {
	o.chunks[fix] = c
}

func (o *ScriptedOracle) Recognise(fix Fixation, at int64) (Chunk, bool) {
	c, ok := o.chunks[fix]
	return c, ok
}

// ScriptedPolicy replays a fixed fixation sequence, then stops.
type ScriptedPolicy struct {
	fixations []Fixation
	next      int
}

func NewScriptedPolicy(fixations ...Fixation) *ScriptedPolicy {
	return &ScriptedPolicy{fixations: fixations}
}

func (p *ScriptedPolicy) Next(sc *scene.Scene) (Fixation, bool) {
	if p.next >= len(p.fixations) {
		return Fixation{}, false
	}
	f := p.fixations[p.next]
	p.next++
	return f, true
}

// RasterPolicy walks every perceptible square west to east, south to north.
// It is the default policy when a scenario scripts none.
type RasterPolicy struct {
	col, row int
	started  bool
}

func (p *RasterPolicy) Next(sc *scene.Scene) (Fixation, bool) {
	if !p.started {
		p.started = true
		p.col, p.row = 0, 0
	} else {
		p.advance(sc)
	}
	for p.row < sc.Height() {
		if !sc.IsBlind(p.col, p.row) {
			return Fixation{Col: p.col, Row: p.row}, true
		}
		p.advance(sc)
	}
	return Fixation{}, false
}

func (p *RasterPolicy) advance(sc *scene.Scene) {
	p.col++
	if p.col >= sc.Width() {
		p.col = 0
		p.row++
	}
}

// RecordedChunk is one STM entry: the chunk plus the time it was retrieved.
type RecordedChunk struct {
	Chunk Chunk
	At    int64
}

// RecordingSTM collects retrieved chunks in arrival order.
type RecordingSTM struct {
	Chunks []RecordedChunk
}

func (s *RecordingSTM) Record(c Chunk, at int64) {
	s.Chunks = append(s.Chunks, RecordedChunk{Chunk: c, At: at})
}
