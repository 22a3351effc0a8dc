package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/hucklog/ultimate-stats/internal/domain/action"
	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/game"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/pointstats"
	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
	"github.com/hucklog/ultimate-stats/internal/platform/id"
	"github.com/hucklog/ultimate-stats/internal/platform/logging"
)

// StatsService owns the point-ingestion path: reducing action
// sequences into deltas and folding those deltas into per-game and
// lifetime aggregates. All merges are additive, so ingesting different
// points concurrently commutes; the repositories guarantee each
// individual apply is atomic.
type StatsService struct {
	gameRepo   game.Repository
	playerRepo playerstats.Repository
	teamRepo   teamstats.Repository
	connRepo   connection.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewStatsService(
	gameRepo game.Repository,
	playerRepo playerstats.Repository,
	teamRepo teamstats.Repository,
	connRepo connection.Repository,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		connRepo:   connRepo,
		idGen:      id.NewRandomGenerator(),
		logger:     logger,
		now:        time.Now,
	}
}

// PointRoster is one side's lineup for a single point.
type PointRoster struct {
	TeamID  string
	Players []playerstats.Identity
}

// IngestPointInput is one completed point for an existing game. Action
// order inside each list is not trusted; the reducer re-sorts by
// action number.
type IngestPointInput struct {
	GameID          string
	TeamOne         PointRoster
	TeamTwo         PointRoster
	TeamOneActions  []action.Action
	TeamTwoActions  []action.Action
	PullingTeamID   string
	ReceivingTeamID string
}

// CreateGame registers an empty game between two teams. An empty id
// gets a generated one.
func (s *StatsService) CreateGame(ctx context.Context, gameID, teamOneID, teamTwoID string) (*game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CreateGame")
	defer span.End()

	if teamOneID == "" || teamTwoID == "" || teamOneID == teamTwoID {
		return nil, fmt.Errorf("%w: game needs two distinct teams", ErrInvalidInput)
	}
	if gameID == "" {
		generated, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate game id: %w", err)
		}
		gameID = generated
	}

	now := s.now().UTC()
	g := &game.Game{
		ID:        gameID,
		TeamOneID: teamOneID,
		TeamTwoID: teamTwoID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.gameRepo.Create(ctx, g); err != nil {
		if errors.Is(err, game.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: game %s", ErrConflict, gameID)
		}
		return nil, fmt.Errorf("create game: %w", err)
	}
	return g, nil
}

// IngestPoint folds one point's action sequences into every aggregate:
// the game's embedded point list, per-game player and team records,
// lifetime totals, connection records, and the game's leader slots.
func (s *StatsService) IngestPoint(ctx context.Context, input IngestPointInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.IngestPoint")
	defer span.End()

	g, ok, err := s.gameRepo.Find(ctx, input.GameID)
	if err != nil {
		return fmt.Errorf("find game for ingestion: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: game %s", ErrNotFound, input.GameID)
	}
	if g.Completed {
		return fmt.Errorf("%w: game %s is completed", ErrInvalidInput, input.GameID)
	}

	sides := []struct {
		roster  PointRoster
		actions []action.Action
		side    pointstats.Side
	}{
		{roster: input.TeamOne, actions: input.TeamOneActions, side: pointstats.SideTeamOne},
		{roster: input.TeamTwo, actions: input.TeamTwoActions, side: pointstats.SideTeamTwo},
	}

	point := game.Point{
		Number:          len(g.Points) + 1,
		PullingTeamID:   input.PullingTeamID,
		ReceivingTeamID: input.ReceivingTeamID,
		TeamOneActions:  input.TeamOneActions,
		TeamTwoActions:  input.TeamTwoActions,
	}

	for _, sideInput := range sides {
		persp := pointstats.Perspective{
			TeamID:   sideInput.roster.TeamID,
			Side:     sideInput.side,
			Pulled:   sideInput.roster.TeamID == input.PullingTeamID,
			Received: sideInput.roster.TeamID == input.ReceivingTeamID,
		}

		playerDeltas := pointstats.ReducePlayers(sideInput.roster.Players, sideInput.actions)
		teamDelta := pointstats.ReduceTeam(sideInput.actions, persp)
		if teamDelta.GoalsFor > 0 {
			point.ScoringTeamID = sideInput.roster.TeamID
		}

		pairs := connection.InitializeMap(rosterIDs(sideInput.roster), input.GameID, sideInput.roster.TeamID)
		connection.Track(pairs, sideInput.actions)
		activePairs := connection.Active(pairs)

		for _, member := range sideInput.roster.Players {
			delta := playerDeltas[member.ID]
			point.Players = append(point.Players, game.PointPlayer{
				PlayerID: member.ID,
				Name:     member.Name,
				Username: member.Username,
				TeamID:   sideInput.roster.TeamID,
				Stats:    delta,
			})

			gameDelta := playerstats.GameRecord{
				PlayerID:   member.ID,
				GameID:     input.GameID,
				TeamID:     sideInput.roster.TeamID,
				PlayerName: member.Name,
				Username:   member.Username,
				StatLine:   delta,
			}
			if err := s.playerRepo.ApplyGameDelta(ctx, gameDelta); err != nil {
				return fmt.Errorf("apply player game delta: %w", err)
			}
			totalsDelta := playerstats.TotalRecord{
				PlayerID:   member.ID,
				PlayerName: member.Name,
				Username:   member.Username,
				StatLine:   delta,
			}
			if err := s.playerRepo.ApplyTotalsDelta(ctx, totalsDelta); err != nil {
				return fmt.Errorf("apply player totals delta: %w", err)
			}

			merged, found, err := s.playerRepo.FindGameRecord(ctx, member.ID, input.GameID, sideInput.roster.TeamID)
			if err != nil {
				return fmt.Errorf("read back player game record: %w", err)
			}
			if found {
				g.Leaders.Consider(member, merged.StatLine)
			}
		}

		if err := s.teamRepo.ApplyGameDelta(ctx, teamstats.GameRecord{
			TeamID:   sideInput.roster.TeamID,
			GameID:   input.GameID,
			StatLine: teamDelta,
		}); err != nil {
			return fmt.Errorf("apply team game delta: %w", err)
		}
		if err := s.teamRepo.ApplyTotalsDelta(ctx, teamstats.TotalRecord{
			TeamID:   sideInput.roster.TeamID,
			StatLine: teamDelta,
		}); err != nil {
			return fmt.Errorf("apply team totals delta: %w", err)
		}

		for _, pair := range activePairs {
			if err := s.connRepo.ApplyDelta(ctx, pair); err != nil {
				return fmt.Errorf("apply game connection delta: %w", err)
			}
			lifetime := pair
			lifetime.GameID = ""
			if err := s.connRepo.ApplyDelta(ctx, lifetime); err != nil {
				return fmt.Errorf("apply lifetime connection delta: %w", err)
			}
			point.Connections = append(point.Connections, pair)
		}
	}

	g.Points = append(g.Points, point)
	g.UpdatedAt = s.now().UTC()
	if err := s.gameRepo.Save(ctx, g); err != nil {
		return fmt.Errorf("save game after ingestion: %w", err)
	}

	s.logger.InfoContext(ctx, "point ingested",
		"game_id", input.GameID,
		"point", point.Number,
		"scoring_team_id", point.ScoringTeamID,
	)
	return nil
}

// CompleteGame finalizes a game and credits wins and losses to both
// team records and to every player who appeared in at least one point.
func (s *StatsService) CompleteGame(ctx context.Context, gameID, winningTeamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CompleteGame")
	defer span.End()

	g, ok, err := s.gameRepo.Find(ctx, gameID)
	if err != nil {
		return fmt.Errorf("find game for completion: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	if g.Completed {
		return fmt.Errorf("%w: game %s already completed", ErrConflict, gameID)
	}
	if winningTeamID != g.TeamOneID && winningTeamID != g.TeamTwoID {
		return fmt.Errorf("%w: team %s did not play game %s", ErrInvalidInput, winningTeamID, gameID)
	}

	for _, teamID := range []string{g.TeamOneID, g.TeamTwoID} {
		outcome := teamstats.StatLine{Losses: 1}
		if teamID == winningTeamID {
			outcome = teamstats.StatLine{Wins: 1}
		}
		if err := s.teamRepo.ApplyGameDelta(ctx, teamstats.GameRecord{TeamID: teamID, GameID: gameID, StatLine: outcome}); err != nil {
			return fmt.Errorf("apply team outcome: %w", err)
		}
		if err := s.teamRepo.ApplyTotalsDelta(ctx, teamstats.TotalRecord{TeamID: teamID, StatLine: outcome}); err != nil {
			return fmt.Errorf("apply team totals outcome: %w", err)
		}
	}

	records, err := s.playerRepo.ListGameRecordsByGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("list player records for completion: %w", err)
	}
	for _, rec := range records {
		outcome := playerstats.StatLine{Losses: 1}
		if rec.TeamID == winningTeamID {
			outcome = playerstats.StatLine{Wins: 1}
		}
		delta := playerstats.GameRecord{
			PlayerID:   rec.PlayerID,
			GameID:     gameID,
			TeamID:     rec.TeamID,
			PlayerName: rec.PlayerName,
			Username:   rec.Username,
			StatLine:   outcome,
		}
		if err := s.playerRepo.ApplyGameDelta(ctx, delta); err != nil {
			return fmt.Errorf("apply player outcome: %w", err)
		}
		if err := s.playerRepo.ApplyTotalsDelta(ctx, playerstats.TotalRecord{
			PlayerID:   rec.PlayerID,
			PlayerName: rec.PlayerName,
			Username:   rec.Username,
			StatLine:   outcome,
		}); err != nil {
			return fmt.Errorf("apply player totals outcome: %w", err)
		}
	}

	g.Completed = true
	g.WinningTeamID = winningTeamID
	g.UpdatedAt = s.now().UTC()
	if err := s.gameRepo.Save(ctx, g); err != nil {
		return fmt.Errorf("save completed game: %w", err)
	}

	s.logger.InfoContext(ctx, "game completed", "game_id", gameID, "winning_team_id", winningTeamID)
	return nil
}

// GameSummary is the combined read model for one game.
type GameSummary struct {
	Game        *game.Game
	Players     []playerstats.GameRecord
	Teams       []teamstats.GameRecord
	Connections []connection.Record
}

// GetGameSummary assembles the game view; the four reads are
// independent and fetched concurrently.
func (s *StatsService) GetGameSummary(ctx context.Context, gameID string) (GameSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetGameSummary")
	defer span.End()

	var summary GameSummary

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		g, ok, err := s.gameRepo.Find(ctx, gameID)
		if err != nil {
			return fmt.Errorf("find game: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: game %s", ErrNotFound, gameID)
		}
		summary.Game = g
		return nil
	})
	p.Go(func(ctx context.Context) error {
		records, err := s.playerRepo.ListGameRecordsByGame(ctx, gameID)
		if err != nil {
			return fmt.Errorf("list player records: %w", err)
		}
		summary.Players = records
		return nil
	})
	p.Go(func(ctx context.Context) error {
		records, err := s.teamRepo.ListGameRecordsByGame(ctx, gameID)
		if err != nil {
			return fmt.Errorf("list team records: %w", err)
		}
		summary.Teams = records
		return nil
	})
	p.Go(func(ctx context.Context) error {
		records, err := s.connRepo.ListByGame(ctx, gameID)
		if err != nil {
			return fmt.Errorf("list connections: %w", err)
		}
		summary.Connections = records
		return nil
	})

	if err := p.Wait(); err != nil {
		return GameSummary{}, err
	}
	return summary, nil
}

// GetGameLeaders returns the game's leader slots.
func (s *StatsService) GetGameLeaders(ctx context.Context, gameID string) (game.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetGameLeaders")
	defer span.End()

	g, ok, err := s.gameRepo.Find(ctx, gameID)
	if err != nil {
		return game.Leaderboard{}, fmt.Errorf("find game for leaders: %w", err)
	}
	if !ok {
		return game.Leaderboard{}, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	return g.Leaders, nil
}

func rosterIDs(roster PointRoster) []string {
	ids := make([]string, 0, len(roster.Players))
	for _, member := range roster.Players {
		ids = append(ids, member.ID)
	}
	return ids
}
