package field

import "fmt"

// MoveStep states where an object is (first step) or goes (later steps).
type MoveStep struct {
	ID  string
	Col int
	Row int
}

// MoveSequence chains one object through consecutive squares: origin first,
// then at least one destination. Intermediate hops carry no timing cost of
// their own; only the origin removal and the final placement are timed.
type MoveSequence []MoveStep

// MoveBatch groups sequences that are logically simultaneous in their origin
// effects. The batch is atomic: fully applied or fully rejected.
type MoveBatch []MoveSequence

// MoveObjects validates and executes a batch of object relocations.
//
// Clock arithmetic: the access cost is charged once for the batch; every
// sequence's final placement then costs one move cost, so sequence k (first
// is 1) places at requestedTime+accessCost+k*moveCost and the clock finishes
// at requestedTime+accessCost+n*moveCost.
func (f *Field) MoveObjects(batch MoveBatch, requestedTime int64) error {
	if requestedTime < f.clock.Now() {
		err := &AttentionBusyError{Requested: requestedTime, Clock: f.clock.Now()}
		f.emit(Event{T: requestedTime, Type: EventReject, Code: err.Code(), Detail: err.Error()})
		return err
	}

	origins, err := f.validateBatch(batch, requestedTime)
	if err != nil {
		f.emit(Event{T: requestedTime, Type: EventReject, Code: ErrorCode(err), Detail: err.Error()})
		return err
	}

	removeAt := requestedTime + f.cfg.AccessCost
	for i, seq := range batch {
		f.removeFromOrigin(origins[i], seq[0], removeAt)
	}
	placeAt := removeAt
	for i, seq := range batch {
		placeAt += f.cfg.MoveCost
		f.placeAtDestination(origins[i], seq[len(seq)-1], placeAt)
	}

	f.clock.AdvanceTo(placeAt)
	return nil
}

// validateBatch checks the whole batch against the pre-batch state before any
// mutation, returning the resolved origin object of each sequence.
func (f *Field) validateBatch(batch MoveBatch, at int64) ([]*SpatialObject, error) {
	if len(batch) == 0 {
		return nil, &IllegalMoveError{Sequence: 0, Reason: "empty batch"}
	}
	origins := make([]*SpatialObject, len(batch))
	seen := make(map[*SpatialObject]int, len(batch))
	for i, seq := range batch {
		if len(seq) < 2 {
			return nil, &IllegalMoveError{Sequence: i, Reason: "sequence needs an origin and at least one destination"}
		}
		first := seq[0]
		if !f.grid.InBounds(first.Col, first.Row) {
			return nil, &IllegalMoveError{Sequence: i, Reason: fmt.Sprintf("origin (%d,%d) out of bounds", first.Col, first.Row)}
		}
		obj, ok := f.grid.Find(first.Col, first.Row, first.ID, at)
		if !ok {
			return nil, &IllegalMoveError{Sequence: i, Reason: fmt.Sprintf("%q is not alive at (%d,%d)", first.ID, first.Col, first.Row)}
		}
		if obj.Placeholder() {
			return nil, &IllegalMoveError{Sequence: i, Reason: fmt.Sprintf("%q is a placeholder and cannot move", first.ID)}
		}
		if obj.Creator() {
			return nil, &IllegalMoveError{Sequence: i, Reason: "the creator's avatar cannot move"}
		}
		if j, dup := seen[obj]; dup {
			return nil, &IllegalMoveError{Sequence: i, Reason: fmt.Sprintf("%q at (%d,%d) is already moved by sequence %d", first.ID, first.Col, first.Row, j)}
		}
		seen[obj] = i
		for k := 1; k < len(seq); k++ {
			step := seq[k]
			if step.ID != first.ID {
				return nil, &IllegalMoveError{Sequence: i, Reason: fmt.Sprintf("step %d names %q, sequence moves %q", k, step.ID, first.ID)}
			}
			if !f.grid.InBounds(step.Col, step.Row) {
				return nil, &IllegalMoveError{Sequence: i, Reason: fmt.Sprintf("step %d (%d,%d) out of bounds", k, step.Col, step.Row)}
			}
			prev := seq[k-1]
			if step.Col == prev.Col && step.Row == prev.Row {
				return nil, &IllegalMoveError{Sequence: i, Reason: fmt.Sprintf("step %d does not leave (%d,%d)", k, prev.Col, prev.Row)}
			}
		}
		origins[i] = obj
	}
	return origins, nil
}

// removeFromOrigin ends the moved object's stay at its origin square and, when
// nothing else remains alive there, re-opens the square as an empty or blind
// placeholder.
func (f *Field) removeFromOrigin(obj *SpatialObject, origin MoveStep, at int64) {
	obj.SetTerminus(at)
	f.emit(Event{T: at, Type: EventMove, Object: obj.ID, Class: obj.Class, Col: origin.Col, Row: origin.Row, Detail: "removed from origin"})

	if len(f.grid.Alive(origin.Col, origin.Row, at)) > 0 {
		return
	}
	if f.SourceBlind(origin.Col, origin.Row) {
		// Blind re-opens without a terminus.
		f.grid.Append(origin.Col, origin.Row, &SpatialObject{
			ID:      ClassBlind,
			Class:   ClassBlind,
			Created: at,
		})
		return
	}
	placeholder := &SpatialObject{
		ID:      ClassEmpty,
		Class:   ClassEmpty,
		Created: at,
	}
	placeholder.SetTerminus(at + f.cfg.UnrecognisedLifespan)
	f.grid.Append(origin.Col, origin.Row, placeholder)
}

// placeAtDestination lands the moved object on its final square. A blind
// destination swallows the object: the origin removal stands but no record is
// created. Moved objects are never re-marked recognised.
func (f *Field) placeAtDestination(obj *SpatialObject, dest MoveStep, at int64) {
	if f.SourceBlind(dest.Col, dest.Row) {
		f.emit(Event{T: at, Type: EventMoveDropped, Object: obj.ID, Class: obj.Class, Col: dest.Col, Row: dest.Row, Detail: "destination blind"})
		return
	}

	for _, o := range f.grid.Alive(dest.Col, dest.Row, at) {
		if o.Creator() {
			continue
		}
		if o.Placeholder() {
			o.SetTerminus(at)
			continue
		}
		// Co-habitation keeps neighbors fresh.
		o.ExtendTerminus(at + f.cfg.UnrecognisedLifespan)
	}

	moved := &SpatialObject{
		ID:      obj.ID,
		Class:   obj.Class,
		Created: at,
		Ghost:   obj.Ghost,
	}
	moved.SetTerminus(at + f.cfg.UnrecognisedLifespan)
	f.grid.Append(dest.Col, dest.Row, moved)
	f.emit(Event{T: at, Type: EventMove, Object: moved.ID, Class: moved.Class, Col: dest.Col, Row: dest.Row, Detail: "placed"})
}
