package connection

import (
	"testing"

	"github.com/hucklog/ultimate-stats/internal/domain/action"
)

func TestInitializeMapCompleteness(t *testing.T) {
	t.Parallel()

	roster := []string{"a", "b", "c", "d"}
	pairs := InitializeMap(roster, "g1", "t1")

	if len(pairs) != 12 {
		t.Fatalf("expected N*(N-1)=12 pairs, got %d", len(pairs))
	}
	for key, rec := range pairs {
		if key.ThrowerID == key.ReceiverID {
			t.Fatalf("self-pair %v must not exist", key)
		}
		if !rec.IsZero() {
			t.Fatalf("pair %v must start zero-valued: %+v", key, rec)
		}
		if rec.GameID != "g1" || rec.TeamID != "t1" {
			t.Fatalf("pair %v missing scope: %+v", key, rec)
		}
	}
}

func TestTrack(t *testing.T) {
	t.Parallel()

	pairs := InitializeMap([]string{"a", "b", "c"}, "g1", "t1")
	Track(pairs, []action.Action{
		{Number: 1, Type: action.TypeCatch, PlayerOne: "a"},
		{Number: 2, Type: action.TypeCatch, PlayerOne: "b", PlayerTwo: "a"},
		{Number: 3, Type: action.TypeDrop, PlayerOne: "c", PlayerTwo: "b"},
		{Number: 4, Type: action.TypeCatch, PlayerOne: "c", PlayerTwo: "b"},
		{Number: 5, Type: action.TypeTeamOneScore, PlayerOne: "a", PlayerTwo: "c"},
	})

	aToB := pairs[Key{ThrowerID: "a", ReceiverID: "b"}]
	if aToB.Catches != 1 || aToB.Drops != 0 || aToB.Scores != 0 {
		t.Fatalf("a->b: %+v", aToB)
	}

	bToC := pairs[Key{ThrowerID: "b", ReceiverID: "c"}]
	if bToC.Catches != 1 || bToC.Drops != 1 {
		t.Fatalf("b->c: %+v", bToC)
	}

	// Scores count as catches too.
	cToA := pairs[Key{ThrowerID: "c", ReceiverID: "a"}]
	if cToA.Catches != 1 || cToA.Scores != 1 {
		t.Fatalf("c->a: %+v", cToA)
	}

	active := Active(pairs)
	if len(active) != 3 {
		t.Fatalf("expected 3 active pairs, got %d", len(active))
	}
}

func TestTrackSkipsUnknownAndIncomplete(t *testing.T) {
	t.Parallel()

	pairs := InitializeMap([]string{"a", "b"}, "g1", "t1")
	Track(pairs, []action.Action{
		{Number: 1, Type: action.TypeCatch, PlayerOne: "a"},                                 // no thrower
		{Number: 2, Type: action.TypeCatch, PlayerOne: "z", PlayerTwo: "a"},                 // receiver off roster
		{Number: 3, Type: action.TypeTimeout},                                              // no actors at all
		{Number: 4, Type: action.TypeThrowaway, PlayerOne: "a", PlayerTwo: "b"},             // not a tracked action
	})

	for key, rec := range pairs {
		if !rec.IsZero() {
			t.Fatalf("pair %v should have no activity: %+v", key, rec)
		}
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := Record{ThrowerID: "a", ReceiverID: "b", GameID: "g1", Catches: 2, Drops: 1}
	delta := Record{ThrowerID: "a", ReceiverID: "b", GameID: "g1", Catches: 3, Scores: 1}

	got := Merge(base, delta)
	if got.Catches != 5 || got.Drops != 1 || got.Scores != 1 {
		t.Fatalf("unexpected merge: %+v", got)
	}
	if got.ThrowerID != "a" || got.ReceiverID != "b" || got.GameID != "g1" {
		t.Fatalf("merge must keep the base key: %+v", got)
	}
}
