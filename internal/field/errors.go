package field

import "fmt"

// Stable machine codes for the error taxonomy.
const (
	CodeAttentionBusy   = "E_ATTENTION_BUSY"
	CodeConstruction    = "E_CONSTRUCTION"
	CodeDuplicateObject = "E_DUPLICATE_OBJECT"
	CodeIllegalMove     = "E_ILLEGAL_MOVE"
)

// AttentionBusyError rejects a timed operation requested before the attention
// resource is free. Recoverable: resubmit at or after Clock.
type AttentionBusyError struct {
	Requested int64
	Clock     int64
}

func (e *AttentionBusyError) Error() string {
	return fmt.Sprintf("attention busy until %d, requested %d", e.Clock, e.Requested)
}

func (e *AttentionBusyError) Code() string { return CodeAttentionBusy }

// ConstructionError rejects invalid construction parameters.
type ConstructionError struct {
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("construction: %s: %v", e.Reason, e.Err)
	}
	return "construction: " + e.Reason
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func (e *ConstructionError) Code() string { return CodeConstruction }

// DuplicateObjectError reports the same identifier on two distinct squares
// after construction. Fatal to that construction attempt.
type DuplicateObjectError struct {
	ID     string
	First  Coord
	Second Coord
}

func (e *DuplicateObjectError) Error() string {
	return fmt.Sprintf("duplicate object %q at %v and %v", e.ID, e.First, e.Second)
}

func (e *DuplicateObjectError) Code() string { return CodeDuplicateObject }

// IllegalMoveError reports a malformed or inconsistent move sequence. The
// whole batch it belongs to is rejected.
type IllegalMoveError struct {
	Sequence int
	Reason   string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move in sequence %d: %s", e.Sequence, e.Reason)
}

func (e *IllegalMoveError) Code() string { return CodeIllegalMove }

type coder interface {
	Code() string
}

// ErrorCode extracts the machine code from a field error, or "" for nil and
// foreign errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if c, ok := err.(coder); ok {
		return c.Code()
	}
	return ""
}
