package trace

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"mindseye.ai/internal/field"
)

func TestMemory_RecordsInOrder(t *testing.T) {
	var m Memory
	m.Record(field.Event{T: 1, Type: field.EventConstructStart})
	m.Record(field.Event{T: 2, Type: field.EventEncode, Object: "pawn-1"})
	m.Record(field.Event{T: 3, Type: field.EventEncode, Object: "rook-1"})

	evs := m.Events()
	if len(evs) != 3 || evs[0].T != 1 || evs[2].Object != "rook-1" {
		t.Fatalf("events = %+v", evs)
	}

	encodes := m.OfType(field.EventEncode)
	if len(encodes) != 2 || encodes[0].Object != "pawn-1" {
		t.Fatalf("OfType = %+v", encodes)
	}
}

func TestJSONLZstdWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "field")

	want := []field.Event{
		{T: 100, Type: field.EventEncode, Object: "pawn-1", Class: "pawn"},
		{T: 300, Type: field.EventMove, Object: "pawn-1", Col: 1, Row: 1, Detail: "placed"},
	}
	for _, ev := range want {
		w.Record(ev)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "field-*.jsonl.zst"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("trace files = %v (%v), want one", matches, err)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()

	var got []field.Event
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var ev field.Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		got = append(got, ev)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("read %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestJSONLZstdWriter_ErrSurfacesFailure(t *testing.T) {
	// A base dir that is a file forces rotation to fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	w := NewJSONLZstdWriter(filepath.Join(blocker, "sub"), "field")
	w.Record(field.Event{T: 1, Type: field.EventEncode})
	if w.Err() == nil {
		t.Fatal("write failure not surfaced")
	}
}
