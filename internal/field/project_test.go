package field

import (
	"reflect"
	"testing"

	"mindseye.ai/internal/recog"
	"mindseye.ai/internal/scene"
)

func TestProject_Idempotent(t *testing.T) {
	f := moveField(t)
	at := f.AttentionClock()
	first := f.AsScene(at, true)
	second := f.AsScene(at, true)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("projection of an unmutated field differs between calls")
	}
}

func TestProject_ReportsAliveOccupants(t *testing.T) {
	f := moveField(t)
	sc := f.AsScene(f.AttentionClock(), false)

	if it, ok := sc.HasItemOfClass(0, 0, "pawn"); !ok || it.ID != "x" {
		t.Fatalf("(0,0) = %v, want pawn x", it)
	}
	if it, ok := sc.HasItemOfClass(1, 1, "rook"); !ok || it.ID != "y" {
		t.Fatalf("(1,1) = %v, want rook y", it)
	}
	if !sc.IsEmpty(1, 0) || !sc.IsEmpty(0, 1) {
		t.Fatal("encoded empty squares did not project as empty")
	}
}

func TestProject_TerminusFiltering(t *testing.T) {
	f := moveField(t)

	// Everything unrecognised decays by 8145; only blindness remains.
	sc := f.AsScene(9000, false)
	for row := 0; row < sc.Height(); row++ {
		for col := 0; col < sc.Width(); col++ {
			if !sc.IsBlind(col, row) {
				t.Fatalf("(%d,%d) still visible after decay", col, row)
			}
		}
	}

	// Before construction reached a square, it projects as blind too.
	sc = f.AsScene(99, false)
	if !sc.IsBlind(0, 0) {
		t.Fatal("square visible before its encode time")
	}
}

func TestProject_GhostInclusion(t *testing.T) {
	oracle := recog.NewScriptedOracle()
	oracle.Script(recog.Fixation{Col: 0, Row: 0}, recog.Chunk{
		Node:    "n1",
		Entries: []recog.ChunkEntry{{ItemID: "i2", Class: "knight", Col: 1, Row: 1}},
	})
	policy := recog.NewScriptedPolicy(recog.Fixation{Col: 0, Row: 0})
	f, err := Construct(pawnScene(t), oracle, policy, nil, testConfig(), 0)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	at := f.AttentionClock()
	with := f.AsScene(at, true)
	if _, ok := with.HasItemOfClass(1, 1, "knight"); !ok {
		t.Fatal("ghost excluded despite includeGhosts")
	}
	without := f.AsScene(at, false)
	if !without.IsBlind(1, 1) {
		t.Fatal("ghost square should fall back to blind without ghosts")
	}
}

func TestProject_MostRecentOccupantWins(t *testing.T) {
	f := moveField(t)
	batch := MoveBatch{{
		{ID: "x", Col: 0, Row: 0},
		{ID: "x", Col: 1, Row: 1},
	}}
	if err := f.MoveObjects(batch, 200); err != nil {
		t.Fatalf("move: %v", err)
	}

	// x (placed at 350) and y (created 145, extended) cohabit (1,1); the
	// most recently created object represents the square.
	sc := f.AsScene(f.AttentionClock(), false)
	items := sc.Items(1, 1)
	if len(items) != 1 || items[0].ID != "x" {
		t.Fatalf("projection at (1,1) = %v, want x only", items)
	}
}

func TestProject_CreatorAvatarProjects(t *testing.T) {
	sc := scene.New("self", 1, 1, true)
	if err := sc.PlaceCreator(0, 0); err != nil {
		t.Fatalf("place creator: %v", err)
	}
	f := mustConstruct(t, sc, testConfig(), 0)

	// The avatar never decays, no matter how late the instant.
	snap := f.AsScene(1<<40, false)
	items := snap.Items(0, 0)
	if len(items) != 1 || !items[0].Creator() {
		t.Fatalf("creator square = %v, want the avatar", items)
	}
}
