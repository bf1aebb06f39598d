package field

import (
	"fmt"

	"mindseye.ai/internal/scene"
)

// AsScene renders the field at one instant into an environment-shaped
// snapshot. Co-habitation is allowed internally, but a square projects at
// most one representative occupant: the most recently created alive object,
// ghosts considered only when includeGhosts is true. Squares with no alive
// occupant project as blind.
//
// Projection is a pure read; calling it twice on an unmutated field yields
// identical output.
func (f *Field) AsScene(instant int64, includeGhosts bool) *scene.Scene {
	out := scene.New(fmt.Sprintf("field@%d", instant), f.width, f.height, true)
	for row := 0; row < f.height; row++ {
		for col := 0; col < f.width; col++ {
			o := f.representative(col, row, instant, includeGhosts)
			if o == nil || o.Class == ClassBlind {
				continue
			}
			_ = out.Reveal(col, row)
			if o.Class == ClassEmpty {
				continue
			}
			_ = out.PlaceItem(col, row, scene.Item{ID: o.ID, Class: o.Class})
		}
	}
	return out
}

func (f *Field) representative(col, row int, instant int64, includeGhosts bool) *SpatialObject {
	var best *SpatialObject
	for _, o := range f.grid.Alive(col, row, instant) {
		if o.Ghost && !includeGhosts {
			continue
		}
		// Later creation wins; append order breaks creation-time ties in
		// favor of the newest record.
		if best == nil || o.Created >= best.Created {
			best = o
		}
	}
	return best
}
