package scene

import "fmt"

// Reserved tokens for squares that hold no ordinary item. They double as the
// identifier and the class of the corresponding placeholder records, and are
// deliberately non-unique across the grid.
const (
	BlindToken   = "blind"
	EmptyToken   = "empty"
	CreatorToken = "creator"
)

// Item is one named, classed occupant of a square.
type Item struct {
	ID    string
	Class string
}

// Creator reports whether the item is the scene creator's marker.
func (it Item) Creator() bool {
	return it.Class == CreatorToken
}

type square struct {
	blind bool
	items []Item
}

// Scene is a rectangular grid of squares, each blind, empty, or holding a set
// of named items. Column 0 is the western edge, row 0 the southern edge.
type Scene struct {
	name    string
	width   int
	height  int
	squares []square // col + row*width
}

// New returns a scene with every square blind when blind is true, otherwise
// every square empty.
func New(name string, width, height int, blind bool) *Scene {
	s := &Scene{
		name:    name,
		width:   width,
		height:  height,
		squares: make([]square, width*height),
	}
	if blind {
		for i := range s.squares {
			s.squares[i].blind = true
		}
	}
	return s
}

func (s *Scene) Name() string { return s.name }

func (s *Scene) Width() int { return s.width }

func (s *Scene) Height() int { return s.height }

func (s *Scene) InBounds(col, row int) bool {
	return col >= 0 && col < s.width && row >= 0 && row < s.height
}

func (s *Scene) index(col, row int) int {
	return col + row*s.width
}

// IsBlind reports whether the square is outside the perceptual field.
// Out-of-bounds squares count as blind.
func (s *Scene) IsBlind(col, row int) bool {
	if !s.InBounds(col, row) {
		return true
	}
	return s.squares[s.index(col, row)].blind
}

// IsEmpty reports whether the square is known to hold nothing.
func (s *Scene) IsEmpty(col, row int) bool {
	if !s.InBounds(col, row) {
		return false
	}
	sq := s.squares[s.index(col, row)]
	return !sq.blind && len(sq.items) == 0
}

// Items returns the occupants of a square, oldest placement first.
func (s *Scene) Items(col, row int) []Item {
	if !s.InBounds(col, row) {
		return nil
	}
	sq := s.squares[s.index(col, row)]
	out := make([]Item, len(sq.items))
	copy(out, sq.items)
	return out
}

// HasItemOfClass reports whether the square holds an item of the given class,
// returning that item when present.
func (s *Scene) HasItemOfClass(col, row int, class string) (Item, bool) {
	if !s.InBounds(col, row) {
		return Item{}, false
	}
	sq := s.squares[s.index(col, row)]
	if sq.blind {
		return Item{}, false
	}
	for _, it := range sq.items {
		if it.Class == class {
			return it, true
		}
	}
	return Item{}, false
}

// Reveal marks a square as perceptible (empty until an item is placed).
func (s *Scene) Reveal(col, row int) error {
	if !s.InBounds(col, row) {
		return fmt.Errorf("scene %q: reveal out of bounds (%d,%d)", s.name, col, row)
	}
	s.squares[s.index(col, row)].blind = false
	return nil
}

// PlaceItem adds an item to a square, revealing it first if it was blind.
func (s *Scene) PlaceItem(col, row int, it Item) error {
	if !s.InBounds(col, row) {
		return fmt.Errorf("scene %q: place %q out of bounds (%d,%d)", s.name, it.ID, col, row)
	}
	sq := &s.squares[s.index(col, row)]
	sq.blind = false
	sq.items = append(sq.items, it)
	return nil
}

// PlaceCreator marks the square as holding the scene creator's avatar.
func (s *Scene) PlaceCreator(col, row int) error {
	return s.PlaceItem(col, row, Item{ID: CreatorToken, Class: CreatorToken})
}

// CreatorLocation returns the square holding the creator marker, if any.
func (s *Scene) CreatorLocation() (col, row int, ok bool) {
	for r := 0; r < s.height; r++ {
		for c := 0; c < s.width; c++ {
			for _, it := range s.squares[s.index(c, r)].items {
				if it.Creator() {
					return c, r, true
				}
			}
		}
	}
	return 0, 0, false
}

// AllBlind reports whether no square of the scene is perceptible.
func (s *Scene) AllBlind() bool {
	for i := range s.squares {
		if !s.squares[i].blind {
			return false
		}
	}
	return true
}
