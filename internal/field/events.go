package field

// Event types emitted through the trace recorder.
const (
	EventConstructStart = "CONSTRUCT_START"
	EventConstructDone  = "CONSTRUCT_DONE"
	EventEncode         = "ENCODE"
	EventGhost          = "GHOST"
	EventRecognised     = "RECOGNISED"
	EventMove           = "MOVE"
	EventMoveDropped    = "MOVE_DROPPED"
	EventReject         = "REJECT"
)

// Event is one structured trace record. T is logical time, not wall clock.
type Event struct {
	T      int64  `json:"t"`
	Type   string `json:"type"`
	Object string `json:"object,omitempty"`
	Class  string `json:"class,omitempty"`
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Recorder receives the field's trace events. Implementations must tolerate
// being called from the field's single logical thread only.
type Recorder interface {
	Record(ev Event)
}

func (f *Field) emit(ev Event) {
	if f.rec != nil {
		f.rec.Record(ev)
	}
}
