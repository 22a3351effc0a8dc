package playerstats

import "testing"

func TestMergeIsFieldWiseSum(t *testing.T) {
	t.Parallel()

	a := StatLine{Goals: 1, Assists: 2, Blocks: 3, Touches: 10, Catches: 8, CompletedPasses: 7, PointsPlayed: 4, Pulls: 1}
	b := StatLine{Goals: 2, Assists: 1, Blocks: 1, Touches: 5, Catches: 4, CompletedPasses: 3, PointsPlayed: 3, Callahans: 1}

	got := Merge(a, b)
	if got.Goals != 3 || got.Assists != 3 || got.Blocks != 4 {
		t.Fatalf("unexpected scoring counters: %+v", got)
	}
	if got.Touches != 15 || got.Catches != 12 || got.CompletedPasses != 10 {
		t.Fatalf("unexpected throwing counters: %+v", got)
	}
	if got.PointsPlayed != 7 || got.Pulls != 1 || got.Callahans != 1 {
		t.Fatalf("unexpected usage counters: %+v", got)
	}
}

func TestMergeStallsAbsorbsDeltaDrops(t *testing.T) {
	t.Parallel()

	base := StatLine{Stalls: 2, Drops: 1}
	delta := StatLine{Stalls: 5, Drops: 3}

	got := Merge(base, delta)
	if got.Drops != 4 {
		t.Fatalf("drops must sum normally: got=%d want=4", got.Drops)
	}
	// Inherited quirk: the delta's drops feed stalls, its stalls do not.
	if got.Stalls != 5 {
		t.Fatalf("stalls must absorb the delta's drops: got=%d want=5", got.Stalls)
	}
}

func TestMergeAssociativity(t *testing.T) {
	t.Parallel()

	a := StatLine{Goals: 1, Touches: 2, PointsPlayed: 1}
	b := StatLine{Assists: 2, Touches: 1, PointsPlayed: 1}
	c := StatLine{Blocks: 1, Catches: 3, PointsPlayed: 1}

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	if left != right {
		t.Fatalf("merge not associative: left=%+v right=%+v", left, right)
	}
}

func TestPlusMinus(t *testing.T) {
	t.Parallel()

	s := StatLine{Goals: 3, Assists: 2, Blocks: 1, Throwaways: 2, Drops: 1}
	if got := s.PlusMinus(); got != 3 {
		t.Fatalf("unexpected plus-minus: got=%d want=3", got)
	}
}

func TestDerivedRatios(t *testing.T) {
	t.Parallel()

	s := StatLine{Catches: 9, Drops: 1, CompletedPasses: 18, Throwaways: 2, Wins: 3, Losses: 1, Goals: 4, PointsPlayed: 16}

	if got := s.CatchingPercentage(); got != 0.9 {
		t.Fatalf("catching percentage: got=%v want=0.9", got)
	}
	if got := s.ThrowingPercentage(); got != 0.9 {
		t.Fatalf("throwing percentage: got=%v want=0.9", got)
	}
	if got := s.WinPercentage(); got != 0.75 {
		t.Fatalf("win percentage: got=%v want=0.75", got)
	}
	if got := s.GoalsPerPoint(); got != 0.25 {
		t.Fatalf("goals per point: got=%v want=0.25", got)
	}

	var zero StatLine
	if zero.CatchingPercentage() != 0 || zero.WinPercentage() != 0 || zero.GoalsPerPoint() != 0 {
		t.Fatal("ratios over zero denominators must be 0")
	}
}
