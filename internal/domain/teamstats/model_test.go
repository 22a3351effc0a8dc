package teamstats

import "testing"

func TestMergeIsFieldWiseSum(t *testing.T) {
	t.Parallel()

	a := StatLine{Wins: 1, GoalsFor: 11, GoalsAgainst: 8, Holds: 6, Breaks: 2, OffensePoints: 9, DefensePoints: 10, Turnovers: 7, TurnoversForced: 5}
	b := StatLine{Losses: 1, GoalsFor: 9, GoalsAgainst: 13, Holds: 5, Breaks: 1, TurnoverFreeHolds: 3, OffensePoints: 10, DefensePoints: 12, Turnovers: 9, TurnoversForced: 4}

	got := Merge(a, b)
	want := StatLine{Wins: 1, Losses: 1, GoalsFor: 20, GoalsAgainst: 21, Holds: 11, Breaks: 3, TurnoverFreeHolds: 3, OffensePoints: 19, DefensePoints: 22, Turnovers: 16, TurnoversForced: 9}
	if got != want {
		t.Fatalf("unexpected merge: got=%+v want=%+v", got, want)
	}

	if swapped := Merge(b, a); swapped != want {
		t.Fatalf("merge must commute: got=%+v want=%+v", swapped, want)
	}
}

func TestConversions(t *testing.T) {
	t.Parallel()

	s := StatLine{Wins: 3, Losses: 1, Holds: 6, OffensePoints: 8, Breaks: 2, DefensePoints: 10}
	if got := s.WinPercentage(); got != 0.75 {
		t.Fatalf("win percentage: got=%v want=0.75", got)
	}
	if got := s.OffensiveConversion(); got != 0.75 {
		t.Fatalf("offensive conversion: got=%v want=0.75", got)
	}
	if got := s.DefensiveConversion(); got != 0.2 {
		t.Fatalf("defensive conversion: got=%v want=0.2", got)
	}

	var zero StatLine
	if zero.WinPercentage() != 0 || zero.OffensiveConversion() != 0 || zero.DefensiveConversion() != 0 {
		t.Fatal("ratios over zero denominators must be 0")
	}
}
