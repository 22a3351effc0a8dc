package game

import (
	"testing"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
)

func TestLeaderboardConsider(t *testing.T) {
	t.Parallel()

	alice := playerstats.Identity{ID: "p1", Name: "Alice"}
	bob := playerstats.Identity{ID: "p2", Name: "Bob"}

	t.Run("empty slot takes the first non-zero total", func(t *testing.T) {
		var lb Leaderboard
		lb.Consider(alice, playerstats.StatLine{Goals: 2, PointsPlayed: 1})

		if lb.Goals == nil || lb.Goals.PlayerID != "p1" || lb.Goals.Total != 2 {
			t.Fatalf("goals slot: %+v", lb.Goals)
		}
		if lb.Assists != nil {
			t.Fatalf("assists slot must stay empty: %+v", lb.Assists)
		}
	})

	t.Run("zero totals never create a leader", func(t *testing.T) {
		var lb Leaderboard
		lb.Consider(alice, playerstats.StatLine{})

		if lb.Goals != nil || lb.Turnovers != nil || lb.PointsPlayed != nil {
			t.Fatalf("untouched leaderboard must expose no leader: %+v", lb)
		}
	})

	t.Run("ties keep the incumbent", func(t *testing.T) {
		var lb Leaderboard
		lb.Consider(alice, playerstats.StatLine{Blocks: 3, PointsPlayed: 3})
		lb.Consider(bob, playerstats.StatLine{Blocks: 3, PointsPlayed: 4})

		if lb.Blocks.PlayerID != "p1" {
			t.Fatalf("equal total must not replace the leader: %+v", lb.Blocks)
		}
		if lb.PointsPlayed.PlayerID != "p2" || lb.PointsPlayed.Total != 4 {
			t.Fatalf("greater total must replace: %+v", lb.PointsPlayed)
		}
	})

	t.Run("turnovers and plus-minus derive from components", func(t *testing.T) {
		var lb Leaderboard
		lb.Consider(alice, playerstats.StatLine{Goals: 2, Assists: 1, Blocks: 1, Drops: 1, Throwaways: 2, PointsPlayed: 5})

		if lb.Turnovers.Total != 3 {
			t.Fatalf("turnovers = drops + throwaways: %+v", lb.Turnovers)
		}
		if lb.PlusMinus.Total != 1 {
			t.Fatalf("plus-minus = g+a+b-t-d: %+v", lb.PlusMinus)
		}
	})
}

func TestLeaderboardRename(t *testing.T) {
	t.Parallel()

	var lb Leaderboard
	lb.Consider(playerstats.Identity{ID: "guest-1", Name: "Guest"}, playerstats.StatLine{Goals: 2, PointsPlayed: 1})
	lb.Consider(playerstats.Identity{ID: "p9", Name: "Niamh"}, playerstats.StatLine{Assists: 1, PointsPlayed: 2})

	lb.Rename("guest-1", playerstats.Identity{ID: "p7", Name: "Dana"})

	if lb.Goals.PlayerID != "p7" || lb.Goals.PlayerName != "Dana" || lb.Goals.Total != 2 {
		t.Fatalf("guest slot must be re-keyed: %+v", lb.Goals)
	}
	if lb.Assists.PlayerID != "p9" {
		t.Fatalf("other slots untouched: %+v", lb.Assists)
	}
}
