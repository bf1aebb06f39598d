package field

// AttentionClock is the single shared logical counter serialising every
// field-mutating operation. Exactly one party holds attention at a time;
// requests arriving before the holder is free are refused outright, never
// queued.
type AttentionClock struct {
	now int64
}

// Now returns the time the attention resource becomes free.
func (c *AttentionClock) Now() int64 { return c.now }

// Request claims attention at time t. It fails when t is before the clock,
// with no side effects; on success the clock moves to t and the caller owns
// the subsequent advances of its operation.
func (c *AttentionClock) Request(t int64) error {
	if t < c.now {
		return &AttentionBusyError{Requested: t, Clock: c.now}
	}
	c.now = t
	return nil
}

// AdvanceTo moves the clock forward to t. Backwards advances are ignored so
// the clock stays monotonic.
func (c *AttentionClock) AdvanceTo(t int64) {
	if t > c.now {
		c.now = t
	}
}
