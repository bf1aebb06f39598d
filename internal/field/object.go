package field

import "mindseye.ai/internal/scene"

// Reserved classes for placeholder and avatar records. Blind and empty
// placeholders reuse the class as their identifier and are exempt from the
// duplicate-identifier audit.
const (
	ClassBlind   = scene.BlindToken
	ClassEmpty   = scene.EmptyToken
	ClassCreator = scene.CreatorToken
)

// GhostIDPrefix is the reserved prefix of identifiers assigned to hypothesised
// objects, numbered by order of first creation within one construction call.
const GhostIDPrefix = "ghost-"

// SpatialObject is a single timestamped item occupying one grid square.
// A nil terminus means the object never decays; that is reserved for the
// creator's avatar and freshly re-opened blind placeholders.
type SpatialObject struct {
	ID         string
	Class      string
	Created    int64
	Terminus   *int64
	Recognised bool
	Ghost      bool
}

// Alive reports whether the object is visible at time t.
func (o *SpatialObject) Alive(t int64) bool {
	if t < o.Created {
		return false
	}
	return o.Terminus == nil || *o.Terminus > t
}

// RecognisedAt reports whether the object counts as recognised at time t.
func (o *SpatialObject) RecognisedAt(t int64) bool {
	return o.Recognised && t >= o.Created
}

// Placeholder reports whether the object is a blind or empty sentinel.
func (o *SpatialObject) Placeholder() bool {
	return o.Class == ClassBlind || o.Class == ClassEmpty
}

// Creator reports whether the object is the scene creator's avatar.
func (o *SpatialObject) Creator() bool {
	return o.Class == ClassCreator
}

// SetTerminus overwrites the terminus. The creator's avatar is immutable and
// is left untouched.
func (o *SpatialObject) SetTerminus(t int64) {
	if o.Creator() {
		return
	}
	v := t
	o.Terminus = &v
}

// ExtendTerminus raises the terminus to at least t. Objects that never decay
// (nil terminus) and the creator's avatar are left untouched.
func (o *SpatialObject) ExtendTerminus(t int64) {
	if o.Creator() || o.Terminus == nil {
		return
	}
	if *o.Terminus < t {
		v := t
		o.Terminus = &v
	}
}
