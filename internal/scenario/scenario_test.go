package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"mindseye.ai/internal/recog"
)

const schemaPath = "../../schemas/scenario.schema.json"

func TestLoad_Fixture(t *testing.T) {
	doc, err := Load("testdata/knight_scan.json", schemaPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Name != "knight-scan" || len(doc.Fixations) != 2 || len(doc.Moves) != 1 {
		t.Fatalf("document = %+v", doc)
	}
}

func TestLoad_RejectsMalformedDocument(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"environment":{"rows":["."]}}`},
		{"empty rows", `{"name":"x","environment":{"rows":[]}}`},
		{"negative fixation", `{"name":"x","environment":{"rows":["."]},"fixations":[{"col":-1,"row":0}]}`},
		{"single-step sequence", `{"name":"x","environment":{"rows":["."]},"moves":[{"at":0,"sequences":[[{"id":"a","col":0,"row":0}]]}]}`},
		{"unknown key", `{"name":"x","environment":{"rows":["."]},"surprise":true}`},
		{"not json", `rows: [".."]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "doc.json")
			if err := os.WriteFile(p, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := Load(p, schemaPath); err == nil {
				t.Fatal("malformed document accepted")
			}
		})
	}
}

func TestBuildScene_RowOrderAndLegend(t *testing.T) {
	doc, err := Load("testdata/knight_scan.json", schemaPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sc, err := doc.BuildScene()
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}

	// First row string is the northernmost: (0,2) blind.
	if !sc.IsBlind(0, 2) {
		t.Fatal("(0,2) should be blind")
	}
	if it, ok := sc.HasItemOfClass(1, 1, "knight"); !ok || it.ID != "knight-1" {
		t.Fatalf("(1,1) = %v %v, want knight-1", it, ok)
	}
	col, row, ok := sc.CreatorLocation()
	if !ok || col != 0 || row != 0 {
		t.Fatalf("creator at (%d,%d,%v), want (0,0)", col, row, ok)
	}
	if !sc.IsEmpty(2, 0) {
		t.Fatal("(2,0) should be empty")
	}
}

func TestBuildScene_UnknownRune(t *testing.T) {
	doc := &Document{
		Name:        "bad",
		Environment: Environment{Rows: []string{"?"}},
	}
	if _, err := doc.BuildScene(); err == nil {
		t.Fatal("unknown rune accepted")
	}
}

func TestOraclePolicyBatches(t *testing.T) {
	doc, err := Load("testdata/knight_scan.json", schemaPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	oracle := doc.Oracle()
	chunk, ok := oracle.Recognise(recog.Fixation{Col: 1, Row: 1}, 0)
	if !ok || chunk.Node != "cluster-7" || len(chunk.Entries) != 2 {
		t.Fatalf("chunk = %+v %v", chunk, ok)
	}
	if _, ok := oracle.Recognise(recog.Fixation{Col: 2, Row: 0}, 0); ok {
		t.Fatal("chunk returned for a fixation without one")
	}

	sc, err := doc.BuildScene()
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	policy := doc.Policy()
	first, ok := policy.Next(sc)
	if !ok || first != (recog.Fixation{Col: 1, Row: 1}) {
		t.Fatalf("first fixation = %+v %v", first, ok)
	}

	batches := doc.Batches()
	if len(batches) != 1 || batches[0].At != 400 {
		t.Fatalf("batches = %+v", batches)
	}
	seq := batches[0].Batch[0]
	if len(seq) != 2 || seq[0].ID != "knight-1" || seq[1].Col != 2 {
		t.Fatalf("sequence = %+v", seq)
	}
}
