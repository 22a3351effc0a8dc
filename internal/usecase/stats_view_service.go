package usecase

import (
	"context"
	"fmt"

	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
)

// StatsViewService serves the read side: lifetime and per-game views
// with ratios derived at read time from the raw counters.
type StatsViewService struct {
	playerRepo playerstats.Repository
	teamRepo   teamstats.Repository
	connRepo   connection.Repository
}

func NewStatsViewService(
	playerRepo playerstats.Repository,
	teamRepo teamstats.Repository,
	connRepo connection.Repository,
) *StatsViewService {
	return &StatsViewService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		connRepo:   connRepo,
	}
}

// PlayerStatsView is a stat line plus every derived figure. Derived
// values are never stored; they are computed here from the counters.
type PlayerStatsView struct {
	PlayerID   string               `json:"playerId"`
	PlayerName string               `json:"playerName"`
	Username   string               `json:"username"`
	GameID     string               `json:"gameId,omitempty"`
	TeamID     string               `json:"teamId,omitempty"`
	Stats      playerstats.StatLine `json:"stats"`
	Derived    PlayerDerivedStats   `json:"derived"`
}

type PlayerDerivedStats struct {
	PlusMinus          int     `json:"plusMinus"`
	Turnovers          int     `json:"turnovers"`
	CatchingPercentage float64 `json:"catchingPercentage"`
	ThrowingPercentage float64 `json:"throwingPercentage"`
	WinPercentage      float64 `json:"winPercentage"`
	GoalsPerPoint      float64 `json:"goalsPerPoint"`
	AssistsPerPoint    float64 `json:"assistsPerPoint"`
	BlocksPerPoint     float64 `json:"blocksPerPoint"`
	ThrowawaysPerPoint float64 `json:"throwawaysPerPoint"`
	DropsPerPoint      float64 `json:"dropsPerPoint"`
}

type TeamStatsView struct {
	TeamID  string             `json:"teamId"`
	GameID  string             `json:"gameId,omitempty"`
	Stats   teamstats.StatLine `json:"stats"`
	Derived TeamDerivedStats   `json:"derived"`
}

type TeamDerivedStats struct {
	WinPercentage       float64 `json:"winPercentage"`
	OffensiveConversion float64 `json:"offensiveConversion"`
	DefensiveConversion float64 `json:"defensiveConversion"`
}

// GetPlayerTotals returns the lifetime view for one player.
func (s *StatsViewService) GetPlayerTotals(ctx context.Context, playerID string) (PlayerStatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsViewService.GetPlayerTotals")
	defer span.End()

	totals, ok, err := s.playerRepo.FindTotals(ctx, playerID)
	if err != nil {
		return PlayerStatsView{}, fmt.Errorf("find player totals: %w", err)
	}
	if !ok {
		return PlayerStatsView{}, fmt.Errorf("%w: player %s has no recorded stats", ErrNotFound, playerID)
	}
	return PlayerStatsView{
		PlayerID:   totals.PlayerID,
		PlayerName: totals.PlayerName,
		Username:   totals.Username,
		Stats:      totals.StatLine,
		Derived:    derivePlayerStats(totals.StatLine),
	}, nil
}

// ListPlayerGames returns one view per game the player appeared in.
func (s *StatsViewService) ListPlayerGames(ctx context.Context, playerID string) ([]PlayerStatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsViewService.ListPlayerGames")
	defer span.End()

	records, err := s.playerRepo.ListGameRecordsByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list player game records: %w", err)
	}
	views := make([]PlayerStatsView, 0, len(records))
	for _, rec := range records {
		views = append(views, PlayerStatsView{
			PlayerID:   rec.PlayerID,
			PlayerName: rec.PlayerName,
			Username:   rec.Username,
			GameID:     rec.GameID,
			TeamID:     rec.TeamID,
			Stats:      rec.StatLine,
			Derived:    derivePlayerStats(rec.StatLine),
		})
	}
	return views, nil
}

// GetTeamTotals returns the lifetime view for one team.
func (s *StatsViewService) GetTeamTotals(ctx context.Context, teamID string) (TeamStatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsViewService.GetTeamTotals")
	defer span.End()

	totals, ok, err := s.teamRepo.FindTotals(ctx, teamID)
	if err != nil {
		return TeamStatsView{}, fmt.Errorf("find team totals: %w", err)
	}
	if !ok {
		return TeamStatsView{}, fmt.Errorf("%w: team %s has no recorded stats", ErrNotFound, teamID)
	}
	return TeamStatsView{
		TeamID:  totals.TeamID,
		Stats:   totals.StatLine,
		Derived: deriveTeamStats(totals.StatLine),
	}, nil
}

// GetTeamGameRecord returns one team's line for one game.
func (s *StatsViewService) GetTeamGameRecord(ctx context.Context, teamID, gameID string) (TeamStatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsViewService.GetTeamGameRecord")
	defer span.End()

	rec, ok, err := s.teamRepo.FindGameRecord(ctx, teamID, gameID)
	if err != nil {
		return TeamStatsView{}, fmt.Errorf("find team game record: %w", err)
	}
	if !ok {
		return TeamStatsView{}, fmt.Errorf("%w: team %s has no record for game %s", ErrNotFound, teamID, gameID)
	}
	return TeamStatsView{
		TeamID:  rec.TeamID,
		GameID:  rec.GameID,
		Stats:   rec.StatLine,
		Derived: deriveTeamStats(rec.StatLine),
	}, nil
}

// ListConnectionsByGame returns every active throwing pair in a game.
func (s *StatsViewService) ListConnectionsByGame(ctx context.Context, gameID string) ([]connection.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsViewService.ListConnectionsByGame")
	defer span.End()

	records, err := s.connRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list connections by game: %w", err)
	}
	return records, nil
}

// ListConnectionsByThrower returns a thrower's lifetime pairs, the rows
// kept under the empty game id.
func (s *StatsViewService) ListConnectionsByThrower(ctx context.Context, throwerID string) ([]connection.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsViewService.ListConnectionsByThrower")
	defer span.End()

	records, err := s.connRepo.ListByThrower(ctx, throwerID)
	if err != nil {
		return nil, fmt.Errorf("list connections by thrower: %w", err)
	}
	lifetime := records[:0]
	for _, rec := range records {
		if rec.GameID == "" {
			lifetime = append(lifetime, rec)
		}
	}
	return lifetime, nil
}

func derivePlayerStats(line playerstats.StatLine) PlayerDerivedStats {
	return PlayerDerivedStats{
		PlusMinus:          line.PlusMinus(),
		Turnovers:          line.Turnovers(),
		CatchingPercentage: line.CatchingPercentage(),
		ThrowingPercentage: line.ThrowingPercentage(),
		WinPercentage:      line.WinPercentage(),
		GoalsPerPoint:      line.GoalsPerPoint(),
		AssistsPerPoint:    line.AssistsPerPoint(),
		BlocksPerPoint:     line.BlocksPerPoint(),
		ThrowawaysPerPoint: line.ThrowawaysPerPoint(),
		DropsPerPoint:      line.DropsPerPoint(),
	}
}

func deriveTeamStats(line teamstats.StatLine) TeamDerivedStats {
	return TeamDerivedStats{
		WinPercentage:       line.WinPercentage(),
		OffensiveConversion: line.OffensiveConversion(),
		DefensiveConversion: line.DefensiveConversion(),
	}
}
