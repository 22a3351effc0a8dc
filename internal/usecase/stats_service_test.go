package usecase

import (
	"errors"
	"testing"

	"github.com/hucklog/ultimate-stats/internal/domain/action"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/infrastructure/repository/memory"
)

func newStatsFixture() (*StatsService, *memory.GameRepository, *memory.PlayerStatsRepository, *memory.TeamStatsRepository, *memory.ConnectionRepository) {
	gameRepo := memory.NewGameRepository()
	playerRepo := memory.NewPlayerStatsRepository()
	teamRepo := memory.NewTeamStatsRepository()
	connRepo := memory.NewConnectionRepository()
	svc := NewStatsService(gameRepo, playerRepo, teamRepo, connRepo, nil)
	return svc, gameRepo, playerRepo, teamRepo, connRepo
}

func holdPointInput(gameID string) IngestPointInput {
	return IngestPointInput{
		GameID: gameID,
		TeamOne: PointRoster{
			TeamID: "team-1",
			Players: []playerstats.Identity{
				{ID: "alice", Name: "Alice", Username: "alice"},
				{ID: "bob", Name: "Bob", Username: "bob"},
				{ID: "carol", Name: "Carol", Username: "carol"},
			},
		},
		TeamTwo: PointRoster{
			TeamID: "team-2",
			Players: []playerstats.Identity{
				{ID: "xavier", Name: "Xavier", Username: "xavier"},
				{ID: "yusuf", Name: "Yusuf", Username: "yusuf"},
			},
		},
		TeamOneActions: []action.Action{
			{Number: 2, Type: action.TypeCatch, PlayerOne: "alice"},
			{Number: 3, Type: action.TypeCatch, PlayerOne: "bob", PlayerTwo: "alice"},
			{Number: 4, Type: action.TypeTeamOneScore, PlayerOne: "carol", PlayerTwo: "bob"},
		},
		TeamTwoActions: []action.Action{
			{Number: 1, Type: action.TypePull, PlayerOne: "xavier"},
		},
		PullingTeamID:   "team-2",
		ReceivingTeamID: "team-1",
	}
}

func TestStatsService_IngestPoint_HoldPoint(t *testing.T) {
	svc, gameRepo, playerRepo, teamRepo, connRepo := newStatsFixture()

	if _, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-2"); err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	if err := svc.IngestPoint(t.Context(), holdPointInput("game-1")); err != nil {
		t.Fatalf("ingest point failed: %v", err)
	}

	g, ok, err := gameRepo.Find(t.Context(), "game-1")
	if err != nil || !ok {
		t.Fatalf("find game: ok=%v err=%v", ok, err)
	}
	if len(g.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(g.Points))
	}
	if g.Points[0].ScoringTeamID != "team-1" {
		t.Fatalf("unexpected scoring team: %s", g.Points[0].ScoringTeamID)
	}
	if len(g.Points[0].Players) != 5 {
		t.Fatalf("expected 5 point players, got %d", len(g.Points[0].Players))
	}

	carol, ok, err := playerRepo.FindGameRecord(t.Context(), "carol", "game-1", "team-1")
	if err != nil || !ok {
		t.Fatalf("find carol game record: ok=%v err=%v", ok, err)
	}
	if carol.Goals != 1 || carol.Touches != 1 || carol.Catches != 1 || carol.PointsPlayed != 1 {
		t.Fatalf("unexpected carol line: %+v", carol.StatLine)
	}

	alice, ok, err := playerRepo.FindGameRecord(t.Context(), "alice", "game-1", "team-1")
	if err != nil || !ok {
		t.Fatalf("find alice game record: ok=%v err=%v", ok, err)
	}
	if alice.Touches != 1 || alice.Catches != 1 || alice.CompletedPasses != 1 || alice.HockeyAssists != 1 {
		t.Fatalf("unexpected alice line: %+v", alice.StatLine)
	}

	bob, _, err := playerRepo.FindGameRecord(t.Context(), "bob", "game-1", "team-1")
	if err != nil {
		t.Fatalf("find bob game record: %v", err)
	}
	if bob.Assists != 1 || bob.CompletedPasses != 1 {
		t.Fatalf("unexpected bob line: %+v", bob.StatLine)
	}

	xavier, _, err := playerRepo.FindTotals(t.Context(), "xavier")
	if err != nil {
		t.Fatalf("find xavier totals: %v", err)
	}
	if xavier.Pulls != 1 || xavier.PointsPlayed != 1 {
		t.Fatalf("unexpected xavier totals: %+v", xavier.StatLine)
	}

	teamOne, ok, err := teamRepo.FindGameRecord(t.Context(), "team-1", "game-1")
	if err != nil || !ok {
		t.Fatalf("find team-1 game record: ok=%v err=%v", ok, err)
	}
	if teamOne.GoalsFor != 1 || teamOne.OffensePoints != 1 || teamOne.Holds != 1 || teamOne.TurnoverFreeHolds != 1 {
		t.Fatalf("unexpected team-1 line: %+v", teamOne.StatLine)
	}
	teamTwo, _, err := teamRepo.FindGameRecord(t.Context(), "team-2", "game-1")
	if err != nil {
		t.Fatalf("find team-2 game record: %v", err)
	}
	if teamTwo.GoalsAgainst != 1 || teamTwo.DefensePoints != 1 {
		t.Fatalf("unexpected team-2 line: %+v", teamTwo.StatLine)
	}

	pair, ok, err := connRepo.Find(t.Context(), "alice", "bob", "game-1")
	if err != nil || !ok {
		t.Fatalf("find alice->bob connection: ok=%v err=%v", ok, err)
	}
	if pair.Catches != 1 {
		t.Fatalf("unexpected alice->bob catches: %d", pair.Catches)
	}
	lifetime, ok, err := connRepo.Find(t.Context(), "bob", "carol", "")
	if err != nil || !ok {
		t.Fatalf("find bob->carol lifetime connection: ok=%v err=%v", ok, err)
	}
	if lifetime.Catches != 1 || lifetime.Scores != 1 {
		t.Fatalf("unexpected bob->carol lifetime line: %+v", lifetime)
	}

	if g.Leaders.Goals == nil || g.Leaders.Goals.PlayerID != "carol" || g.Leaders.Goals.Total != 1 {
		t.Fatalf("unexpected goals leader: %+v", g.Leaders.Goals)
	}
	if g.Leaders.Assists == nil || g.Leaders.Assists.PlayerID != "bob" {
		t.Fatalf("unexpected assists leader: %+v", g.Leaders.Assists)
	}
	if g.Leaders.Turnovers != nil {
		t.Fatalf("expected empty turnovers slot, got %+v", g.Leaders.Turnovers)
	}
}

func TestStatsService_IngestPoint_UnknownGame(t *testing.T) {
	svc, _, _, _, _ := newStatsFixture()

	err := svc.IngestPoint(t.Context(), holdPointInput("missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsService_IngestPoint_CompletedGame(t *testing.T) {
	svc, _, _, _, _ := newStatsFixture()

	if _, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-2"); err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	if err := svc.IngestPoint(t.Context(), holdPointInput("game-1")); err != nil {
		t.Fatalf("ingest point failed: %v", err)
	}
	if err := svc.CompleteGame(t.Context(), "game-1", "team-1"); err != nil {
		t.Fatalf("complete game failed: %v", err)
	}

	err := svc.IngestPoint(t.Context(), holdPointInput("game-1"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_CreateGame_GeneratesID(t *testing.T) {
	svc, gameRepo, _, _, _ := newStatsFixture()

	created, err := svc.CreateGame(t.Context(), "", "team-1", "team-2")
	if err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated game id")
	}
	if _, ok, err := gameRepo.Find(t.Context(), created.ID); err != nil || !ok {
		t.Fatalf("find generated game: ok=%v err=%v", ok, err)
	}
}

func TestStatsService_CreateGame_SameTeams(t *testing.T) {
	svc, _, _, _, _ := newStatsFixture()

	_, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_CreateGame_Duplicate(t *testing.T) {
	svc, _, _, _, _ := newStatsFixture()

	if _, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-2"); err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	_, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-2")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestStatsService_CompleteGame_CreditsOutcomes(t *testing.T) {
	svc, gameRepo, playerRepo, teamRepo, _ := newStatsFixture()

	if _, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-2"); err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	if err := svc.IngestPoint(t.Context(), holdPointInput("game-1")); err != nil {
		t.Fatalf("ingest point failed: %v", err)
	}
	if err := svc.CompleteGame(t.Context(), "game-1", "team-1"); err != nil {
		t.Fatalf("complete game failed: %v", err)
	}

	g, _, err := gameRepo.Find(t.Context(), "game-1")
	if err != nil {
		t.Fatalf("find game: %v", err)
	}
	if !g.Completed || g.WinningTeamID != "team-1" {
		t.Fatalf("game not finalized: completed=%v winner=%s", g.Completed, g.WinningTeamID)
	}

	alice, _, err := playerRepo.FindTotals(t.Context(), "alice")
	if err != nil {
		t.Fatalf("find alice totals: %v", err)
	}
	if alice.Wins != 1 || alice.Losses != 0 {
		t.Fatalf("unexpected alice outcome: wins=%d losses=%d", alice.Wins, alice.Losses)
	}
	xavier, _, err := playerRepo.FindTotals(t.Context(), "xavier")
	if err != nil {
		t.Fatalf("find xavier totals: %v", err)
	}
	if xavier.Wins != 0 || xavier.Losses != 1 {
		t.Fatalf("unexpected xavier outcome: wins=%d losses=%d", xavier.Wins, xavier.Losses)
	}

	teamTwo, _, err := teamRepo.FindTotals(t.Context(), "team-2")
	if err != nil {
		t.Fatalf("find team-2 totals: %v", err)
	}
	if teamTwo.Losses != 1 {
		t.Fatalf("unexpected team-2 losses: %d", teamTwo.Losses)
	}

	if err := svc.CompleteGame(t.Context(), "game-1", "team-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on double completion, got %v", err)
	}
}

func TestStatsService_CompleteGame_WrongTeam(t *testing.T) {
	svc, _, _, _, _ := newStatsFixture()

	if _, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-2"); err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	err := svc.CompleteGame(t.Context(), "game-1", "team-9")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_GetGameSummary(t *testing.T) {
	svc, _, _, _, _ := newStatsFixture()

	if _, err := svc.CreateGame(t.Context(), "game-1", "team-1", "team-2"); err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	if err := svc.IngestPoint(t.Context(), holdPointInput("game-1")); err != nil {
		t.Fatalf("ingest point failed: %v", err)
	}

	summary, err := svc.GetGameSummary(t.Context(), "game-1")
	if err != nil {
		t.Fatalf("get game summary failed: %v", err)
	}
	if summary.Game == nil || summary.Game.ID != "game-1" {
		t.Fatalf("unexpected game in summary: %+v", summary.Game)
	}
	if len(summary.Players) != 5 {
		t.Fatalf("expected 5 player records, got %d", len(summary.Players))
	}
	if len(summary.Teams) != 2 {
		t.Fatalf("expected 2 team records, got %d", len(summary.Teams))
	}
	if len(summary.Connections) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(summary.Connections))
	}

	_, err = svc.GetGameSummary(t.Context(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
