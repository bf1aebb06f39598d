package field

import (
	"fmt"

	"mindseye.ai/internal/recog"
	"mindseye.ai/internal/scene"
)

// Construct scans the source environment and builds a visual-spatial field
// from it. Up to cfg.FixationBudget fixations are driven through the policy
// and the recognition oracle; recognised chunk entries are encoded first, in
// chunk order, then every remaining perceptible square is encoded in raster
// order (west to east within a row, rows south to north). Retrieved chunks
// are pushed into stm as they are observed.
//
// Construction is all-or-nothing: a duplicate identifier across two distinct
// squares aborts the attempt and no field is returned.
func Construct(src *scene.Scene, oracle recog.Oracle, policy recog.FixationPolicy, stm recog.STM, cfg Config, startTime int64) (*Field, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, &ConstructionError{Reason: "nil source scene"}
	}

	var clk AttentionClock
	if err := clk.Request(startTime); err != nil {
		return nil, &ConstructionError{Reason: "start time before attention clock", Err: err}
	}

	// Field access overhead is charged up front, even for a fully blind
	// environment.
	clk.AdvanceTo(startTime + cfg.FieldAccessCost)

	if src.AllBlind() {
		f := &Field{grid: NewGrid(0, 0), cfg: cfg, rec: cfg.Trace, clock: clk}
		f.emit(Event{T: clk.Now(), Type: EventConstructDone, Detail: "environment fully blind"})
		return f, nil
	}

	f := newField(src, cfg)
	f.clock = clk
	f.emit(Event{T: startTime, Type: EventConstructStart, Detail: src.Name()})

	// Every square starts as an unbounded blind placeholder until the scan
	// says otherwise.
	for row := 0; row < f.height; row++ {
		for col := 0; col < f.width; col++ {
			f.grid.Append(col, row, &SpatialObject{
				ID:      ClassBlind,
				Class:   ClassBlind,
				Created: startTime,
			})
		}
	}

	c := constructor{
		f:          f,
		src:        src,
		cfg:        cfg,
		encodeTime: clk.Now(),
		encoded:    make([]bool, f.width*f.height),
		ghosts:     make(map[string]*SpatialObject),
	}
	if cfg.EncodeCreator {
		c.creatorCol, c.creatorRow, c.hasCreator = src.CreatorLocation()
	}

	c.runFixations(oracle, policy, stm)
	c.encodeRemainder()

	f.clock.AdvanceTo(c.encodeTime)

	if err := f.grid.AuditDuplicates(); err != nil {
		return nil, err
	}

	f.emit(Event{T: f.clock.Now(), Type: EventConstructDone,
		Detail: fmt.Sprintf("ghosts=%d", c.ghostSeq)})
	return f, nil
}

// constructor is the per-call working state of one construction pass.
type constructor struct {
	f   *Field
	src *scene.Scene
	cfg Config

	encodeTime int64
	encoded    []bool // square finalized by a recognised real object

	// Ghost identity is the oracle-assigned chunk-entry identifier, scoped to
	// this construction call. Two chunks hypothesising the same class and
	// location under different entry identifiers stay distinct ghosts.
	ghosts   map[string]*SpatialObject
	ghostSeq int

	hasCreator bool
	creatorCol int
	creatorRow int
}

func (c *constructor) runFixations(oracle recog.Oracle, policy recog.FixationPolicy, stm recog.STM) {
	if oracle == nil || policy == nil {
		return
	}
	for i := 0; i < c.cfg.FixationBudget; i++ {
		fix, ok := policy.Next(c.src)
		if !ok {
			break
		}
		chunk, ok := oracle.Recognise(fix, c.encodeTime)
		if !ok {
			continue
		}
		if stm != nil {
			stm.Record(chunk, c.encodeTime)
		}
		for _, e := range chunk.Entries {
			c.encodeEntry(e)
		}
	}
}

// encodeEntry places one chunk entry, real or ghost, charging one object
// encode cost per entry that creates or extends an object. Entries dropped by
// precedence rules have no timing cost.
func (c *constructor) encodeEntry(e recog.ChunkEntry) {
	if !c.f.grid.InBounds(e.Col, e.Row) {
		return
	}
	if c.hasCreator && e.Col == c.creatorCol && e.Row == c.creatorRow {
		// The creator's square is never disturbed by recognition.
		return
	}
	if it, ok := c.src.HasItemOfClass(e.Col, e.Row, e.Class); ok && !it.Creator() {
		c.encodeReal(e, it)
		return
	}
	c.encodeGhost(e)
}

func (c *constructor) encodeReal(e recog.ChunkEntry, it scene.Item) {
	alive := c.f.grid.Alive(e.Col, e.Row, c.encodeTime)

	// Re-recognition of an object already placed by an earlier chunk extends
	// its lifespan rather than duplicating it.
	for _, o := range alive {
		if o.Recognised && !o.Ghost && o.ID == it.ID {
			o.ExtendTerminus(c.encodeTime + c.cfg.RecognisedLifespan)
			c.f.emit(Event{T: c.encodeTime, Type: EventRecognised, Object: o.ID, Class: o.Class, Col: e.Col, Row: e.Row, Detail: "extended"})
			c.encodeTime += c.cfg.ObjectEncodeCost
			return
		}
	}

	// Only blind placeholders and ghosts give way to a recognised object; a
	// square already finalized by anything else is left alone at no cost.
	for _, o := range alive {
		if !o.Ghost && o.Class != ClassBlind {
			return
		}
	}
	for _, o := range alive {
		o.SetTerminus(c.encodeTime)
	}

	obj := &SpatialObject{
		ID:         it.ID,
		Class:      e.Class,
		Created:    c.encodeTime,
		Recognised: true,
	}
	obj.SetTerminus(c.encodeTime + c.cfg.RecognisedLifespan)
	c.f.grid.Append(e.Col, e.Row, obj)
	c.markEncoded(e.Col, e.Row)
	c.f.emit(Event{T: c.encodeTime, Type: EventRecognised, Object: obj.ID, Class: obj.Class, Col: e.Col, Row: e.Row})
	c.encodeTime += c.cfg.ObjectEncodeCost
}

func (c *constructor) encodeGhost(e recog.ChunkEntry) {
	if !c.cfg.EncodeGhosts {
		return
	}

	// The same hypothesis recognised again extends the existing ghost, but
	// only while that ghost still occupies its square. A ghost retired by a
	// real recognition stays retired; the entry falls through to the
	// precedence rules like a fresh hypothesis.
	if g, ok := c.ghosts[e.ItemID]; ok && g.Alive(c.encodeTime) {
		g.ExtendTerminus(c.encodeTime + c.cfg.RecognisedLifespan)
		c.f.emit(Event{T: c.encodeTime, Type: EventGhost, Object: g.ID, Class: g.Class, Col: e.Col, Row: e.Row, Detail: "extended"})
		c.encodeTime += c.cfg.ObjectEncodeCost
		return
	}

	alive := c.f.grid.Alive(e.Col, e.Row, c.encodeTime)
	for _, o := range alive {
		if o.Ghost {
			// A different ghost already occupies the square; the new
			// hypothesis is dropped, not merged.
			return
		}
		if !o.Placeholder() {
			// A real object on the square always wins; no timing cost.
			return
		}
	}
	for _, o := range alive {
		o.SetTerminus(c.encodeTime)
	}

	obj := &SpatialObject{
		ID:         fmt.Sprintf("%s%d", GhostIDPrefix, c.ghostSeq),
		Class:      e.Class,
		Created:    c.encodeTime,
		Recognised: true,
		Ghost:      true,
	}
	obj.SetTerminus(c.encodeTime + c.cfg.RecognisedLifespan)
	c.ghostSeq++
	c.ghosts[e.ItemID] = obj
	c.f.grid.Append(e.Col, e.Row, obj)
	c.f.emit(Event{T: c.encodeTime, Type: EventGhost, Object: obj.ID, Class: obj.Class, Col: e.Col, Row: e.Row})
	c.encodeTime += c.cfg.ObjectEncodeCost
}

// encodeRemainder walks every perceptible square not finalized by a
// recognised object, in raster order: columns west to east within a row, rows
// south to north. Creation times of unrecognised objects and empty squares
// follow this order, so it is load-bearing for reproducibility.
func (c *constructor) encodeRemainder() {
	for row := 0; row < c.f.height; row++ {
		for col := 0; col < c.f.width; col++ {
			if c.src.IsBlind(col, row) {
				continue
			}
			if c.encoded[col+row*c.f.width] {
				continue
			}
			c.encodeSquare(col, row)
		}
	}
}

func (c *constructor) encodeSquare(col, row int) {
	if c.hasCreator && col == c.creatorCol && row == c.creatorRow {
		c.retirePlaceholders(col, row)
		avatar := &SpatialObject{
			ID:      scene.CreatorToken,
			Class:   ClassCreator,
			Created: c.encodeTime,
			// Terminus stays nil: the avatar never decays.
		}
		c.f.grid.Append(col, row, avatar)
		c.f.emit(Event{T: c.encodeTime, Type: EventEncode, Object: avatar.ID, Class: avatar.Class, Col: col, Row: row})
		c.encodeTime += c.cfg.ObjectEncodeCost
		return
	}

	var items []scene.Item
	for _, it := range c.src.Items(col, row) {
		if !it.Creator() {
			items = append(items, it)
		}
	}

	if len(items) == 0 {
		// Empty in the real environment. Ghosts never block this overwrite.
		c.retirePlaceholders(col, row)
		obj := &SpatialObject{
			ID:      ClassEmpty,
			Class:   ClassEmpty,
			Created: c.encodeTime,
		}
		obj.SetTerminus(c.encodeTime + c.cfg.UnrecognisedLifespan)
		c.f.grid.Append(col, row, obj)
		c.f.emit(Event{T: c.encodeTime, Type: EventEncode, Class: ClassEmpty, Col: col, Row: row})
		c.encodeTime += c.cfg.EmptySquareEncodeCost
		return
	}

	c.retirePlaceholders(col, row)
	for _, it := range items {
		obj := &SpatialObject{
			ID:      it.ID,
			Class:   it.Class,
			Created: c.encodeTime,
		}
		obj.SetTerminus(c.encodeTime + c.cfg.UnrecognisedLifespan)
		c.f.grid.Append(col, row, obj)
		c.f.emit(Event{T: c.encodeTime, Type: EventEncode, Object: obj.ID, Class: obj.Class, Col: col, Row: row})
		c.encodeTime += c.cfg.ObjectEncodeCost
	}
}

// retirePlaceholders ends the visible lifetime of whatever blind or ghost
// object occupied the square, at the instant of the overwrite.
func (c *constructor) retirePlaceholders(col, row int) {
	for _, o := range c.f.grid.Alive(col, row, c.encodeTime) {
		if o.Class == ClassBlind || o.Ghost {
			o.SetTerminus(c.encodeTime)
		}
	}
}

func (c *constructor) markEncoded(col, row int) {
	c.encoded[col+row*c.f.width] = true
}
