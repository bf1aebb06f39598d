// Package scenario loads scripted simulation fixtures: a source environment,
// the chunks the recognition oracle answers per fixation, and move batches to
// run after construction. Documents are schema-validated before decoding.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"mindseye.ai/internal/field"
	"mindseye.ai/internal/recog"
	"mindseye.ai/internal/scene"
)

type Document struct {
	Name        string      `json:"name"`
	StartTime   int64       `json:"start_time"`
	Environment Environment `json:"environment"`
	Fixations   []Fixation  `json:"fixations"`
	Moves       []MoveBatch `json:"moves"`
}

// Environment draws the source scene as row strings, northernmost row first.
// '*' is blind, '.' is empty, '@' is the creator marker; any other rune names
// a legend entry.
type Environment struct {
	Rows   []string        `json:"rows"`
	Legend map[string]Item `json:"legend"`
}

type Item struct {
	ID    string `json:"id"`
	Class string `json:"class"`
}

type Fixation struct {
	Col   int    `json:"col"`
	Row   int    `json:"row"`
	Chunk *Chunk `json:"chunk,omitempty"`
}

type Chunk struct {
	Node    string  `json:"node"`
	Entries []Entry `json:"entries"`
}

type Entry struct {
	Item  string `json:"item"`
	Class string `json:"class"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
}

type MoveBatch struct {
	At        int64    `json:"at"`
	Sequences [][]Step `json:"sequences"`
}

type Step struct {
	ID  string `json:"id"`
	Col int    `json:"col"`
	Row int    `json:"row"`
}

// Load reads, schema-validates, and decodes a scenario document.
func Load(docPath, schemaPath string) (*Document, error) {
	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", schemaPath, err)
	}
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return nil, err
	}
	var loose any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("%s: %w", docPath, err)
	}
	if err := schema.Validate(loose); err != nil {
		return nil, fmt.Errorf("%s: %w", docPath, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", docPath, err)
	}
	return &doc, nil
}

// BuildScene materialises the drawn environment. Row strings are listed north
// to south, so the first row maps to the highest row index.
func (d *Document) BuildScene() (*scene.Scene, error) {
	height := len(d.Environment.Rows)
	width := 0
	for _, r := range d.Environment.Rows {
		if len(r) > width {
			width = len(r)
		}
	}
	sc := scene.New(d.Name, width, height, true)
	for i, rowStr := range d.Environment.Rows {
		row := height - 1 - i
		for col, ch := range rowStr {
			switch ch {
			case '*':
				// stays blind
			case '.':
				if err := sc.Reveal(col, row); err != nil {
					return nil, err
				}
			case '@':
				if err := sc.PlaceCreator(col, row); err != nil {
					return nil, err
				}
			default:
				it, ok := d.Environment.Legend[string(ch)]
				if !ok {
					return nil, fmt.Errorf("scenario %q: rune %q at (%d,%d) missing from legend", d.Name, ch, col, row)
				}
				if err := sc.PlaceItem(col, row, scene.Item{ID: it.ID, Class: it.Class}); err != nil {
					return nil, err
				}
			}
		}
	}
	return sc, nil
}

// Oracle returns the scripted recognition oracle for the document's chunks.
func (d *Document) Oracle() *recog.ScriptedOracle {
	o := recog.NewScriptedOracle()
	for _, f := range d.Fixations {
		if f.Chunk == nil {
			continue
		}
		c := recog.Chunk{Node: f.Chunk.Node}
		for _, e := range f.Chunk.Entries {
			c.Entries = append(c.Entries, recog.ChunkEntry{
				ItemID: e.Item,
				Class:  e.Class,
				Col:    e.Col,
				Row:    e.Row,
			})
		}
		o.Script(recog.Fixation{Col: f.Col, Row: f.Row}, c)
	}
	return o
}

// Policy returns the document's fixation sequence as a policy.
func (d *Document) Policy() *recog.ScriptedPolicy {
	fixations := make([]recog.Fixation, len(d.Fixations))
	for i, f := range d.Fixations {
		fixations[i] = recog.Fixation{Col: f.Col, Row: f.Row}
	}
	return recog.NewScriptedPolicy(fixations...)
}

// Batches converts the document's move batches into engine form.
func (d *Document) Batches() []TimedBatch {
	out := make([]TimedBatch, len(d.Moves))
	for i, mb := range d.Moves {
		tb := TimedBatch{At: mb.At}
		for _, seq := range mb.Sequences {
			ms := make(field.MoveSequence, len(seq))
			for k, s := range seq {
				ms[k] = field.MoveStep{ID: s.ID, Col: s.Col, Row: s.Row}
			}
			tb.Batch = append(tb.Batch, ms)
		}
		out[i] = tb
	}
	return out
}

// TimedBatch is one move batch plus the logical time it is submitted at.
type TimedBatch struct {
	At    int64
	Batch field.MoveBatch
}
