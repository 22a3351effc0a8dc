package usecase

import (
	"errors"
	"testing"

	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
	"github.com/hucklog/ultimate-stats/internal/infrastructure/repository/memory"
)

func TestStatsViewService_GetPlayerTotals(t *testing.T) {
	playerRepo := memory.NewPlayerStatsRepository()
	svc := NewStatsViewService(playerRepo, memory.NewTeamStatsRepository(), memory.NewConnectionRepository())

	err := playerRepo.ApplyTotalsDelta(t.Context(), playerstats.TotalRecord{
		PlayerID:   "alice",
		PlayerName: "Alice",
		Username:   "alice",
		StatLine: playerstats.StatLine{
			Goals:           4,
			Assists:         2,
			Blocks:          1,
			Throwaways:      1,
			Drops:           1,
			Catches:         9,
			CompletedPasses: 18,
			PointsPlayed:    10,
			Wins:            3,
			Losses:          1,
		},
	})
	if err != nil {
		t.Fatalf("seed totals failed: %v", err)
	}

	view, err := svc.GetPlayerTotals(t.Context(), "alice")
	if err != nil {
		t.Fatalf("get player totals failed: %v", err)
	}
	if view.Derived.PlusMinus != 5 {
		t.Fatalf("unexpected plus-minus: %d", view.Derived.PlusMinus)
	}
	if view.Derived.Turnovers != 2 {
		t.Fatalf("unexpected turnovers: %d", view.Derived.Turnovers)
	}
	if view.Derived.CatchingPercentage != 0.9 {
		t.Fatalf("unexpected catching percentage: %f", view.Derived.CatchingPercentage)
	}
	if view.Derived.WinPercentage != 0.75 {
		t.Fatalf("unexpected win percentage: %f", view.Derived.WinPercentage)
	}
	if view.Derived.GoalsPerPoint != 0.4 {
		t.Fatalf("unexpected goals per point: %f", view.Derived.GoalsPerPoint)
	}

	_, err = svc.GetPlayerTotals(t.Context(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsViewService_GetTeamTotals(t *testing.T) {
	teamRepo := memory.NewTeamStatsRepository()
	svc := NewStatsViewService(memory.NewPlayerStatsRepository(), teamRepo, memory.NewConnectionRepository())

	err := teamRepo.ApplyTotalsDelta(t.Context(), teamstats.TotalRecord{
		TeamID: "team-1",
		StatLine: teamstats.StatLine{
			Wins:          3,
			Losses:        1,
			OffensePoints: 10,
			Holds:         8,
			DefensePoints: 10,
			Breaks:        3,
		},
	})
	if err != nil {
		t.Fatalf("seed totals failed: %v", err)
	}

	view, err := svc.GetTeamTotals(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("get team totals failed: %v", err)
	}
	if view.Derived.WinPercentage != 0.75 {
		t.Fatalf("unexpected win percentage: %f", view.Derived.WinPercentage)
	}
	if view.Derived.OffensiveConversion != 0.8 {
		t.Fatalf("unexpected offensive conversion: %f", view.Derived.OffensiveConversion)
	}
	if view.Derived.DefensiveConversion != 0.3 {
		t.Fatalf("unexpected defensive conversion: %f", view.Derived.DefensiveConversion)
	}
}

func TestStatsViewService_ListConnectionsByThrower(t *testing.T) {
	connRepo := memory.NewConnectionRepository()
	svc := NewStatsViewService(memory.NewPlayerStatsRepository(), memory.NewTeamStatsRepository(), connRepo)

	rows := []connection.Record{
		{ThrowerID: "alice", ReceiverID: "bob", GameID: "game-1", TeamID: "team-1", Catches: 3},
		{ThrowerID: "alice", ReceiverID: "bob", GameID: "", TeamID: "team-1", Catches: 7, Scores: 2},
		{ThrowerID: "alice", ReceiverID: "carol", GameID: "", TeamID: "team-1", Catches: 4},
	}
	for _, row := range rows {
		if err := connRepo.ApplyDelta(t.Context(), row); err != nil {
			t.Fatalf("seed connection failed: %v", err)
		}
	}

	lifetime, err := svc.ListConnectionsByThrower(t.Context(), "alice")
	if err != nil {
		t.Fatalf("list connections failed: %v", err)
	}
	if len(lifetime) != 2 {
		t.Fatalf("expected 2 lifetime rows, got %d", len(lifetime))
	}
	for _, rec := range lifetime {
		if rec.GameID != "" {
			t.Fatalf("expected lifetime rows only, got game %q", rec.GameID)
		}
	}
}
