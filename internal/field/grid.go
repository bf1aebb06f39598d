package field

import "fmt"

// Coord addresses one grid square. Column 0 is west, row 0 is south.
type Coord struct {
	Col int
	Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Grid owns, per square, the append-only history of SpatialObjects that ever
// occupied it, oldest first. Entries are never physically removed; a removal
// is a terminus plus a newer placeholder.
type Grid struct {
	width  int
	height int
	cells  [][]*SpatialObject // col + row*width
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([][]*SpatialObject, width*height),
	}
}

func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

func (g *Grid) index(col, row int) int {
	return col + row*g.width
}

// Append records a new object at the square, preserving creation order.
func (g *Grid) Append(col, row int, o *SpatialObject) {
	i := g.index(col, row)
	g.cells[i] = append(g.cells[i], o)
}

// History returns the square's full occupancy log, oldest first.
func (g *Grid) History(col, row int) []*SpatialObject {
	if !g.InBounds(col, row) {
		return nil
	}
	cell := g.cells[g.index(col, row)]
	out := make([]*SpatialObject, len(cell))
	copy(out, cell)
	return out
}

// Alive returns the square's occupants visible at time t, oldest first.
func (g *Grid) Alive(col, row int, t int64) []*SpatialObject {
	if !g.InBounds(col, row) {
		return nil
	}
	var out []*SpatialObject
	for _, o := range g.cells[g.index(col, row)] {
		if o.Alive(t) {
			out = append(out, o)
		}
	}
	return out
}

// Find returns the alive object with the given identifier at the square, if
// present.
func (g *Grid) Find(col, row int, id string, t int64) (*SpatialObject, bool) {
	for _, o := range g.Alive(col, row, t) {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// AuditDuplicates checks every non-placeholder identifier for reuse across
// distinct squares. Run once after the full set of squares is assembled, not
// incrementally.
func (g *Grid) AuditDuplicates() error {
	seen := make(map[string]Coord)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			for _, o := range g.cells[g.index(col, row)] {
				if o.Placeholder() {
					continue
				}
				at := Coord{Col: col, Row: row}
				if first, ok := seen[o.ID]; ok {
					if first != at {
						return &DuplicateObjectError{ID: o.ID, First: first, Second: at}
					}
					continue
				}
				seen[o.ID] = at
			}
		}
	}
	return nil
}
