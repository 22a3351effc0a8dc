package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/hucklog/ultimate-stats/internal/domain/game"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/platform/logging"
)

const (
	recomputeStatusClean   = "clean"
	recomputeStatusDrift   = "drift"
	recomputeStatusMissing = "missing"

	defaultRecomputeWorkers = 8
)

// RecomputeService audits lifetime player totals against the per-game
// records they were accumulated from. Ingestion fans out writes across
// several stores without a surrounding transaction, so a crash mid
// point can leave the lifetime row short; this job finds those rows.
// It reports drift rather than rewriting totals: every write to the
// totals store stays an additive fold from ingestion or reconciliation.
type RecomputeService struct {
	gameRepo   game.Repository
	playerRepo playerstats.Repository
	logger     *logging.Logger
}

func NewRecomputeService(gameRepo game.Repository, playerRepo playerstats.Repository, logger *logging.Logger) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecomputeService{gameRepo: gameRepo, playerRepo: playerRepo, logger: logger}
}

type RecomputeInput struct {
	TeamIDs    []string
	MaxWorkers int
}

type RecomputeResult struct {
	GameCount    int                 `json:"game_count"`
	PlayerCount  int                 `json:"player_count"`
	CleanCount   int                 `json:"clean_count"`
	DriftCount   int                 `json:"drift_count"`
	MissingCount int                 `json:"missing_count"`
	WorkerCount  int                 `json:"worker_count"`
	Players      []RecomputePlayerRow `json:"players"`
}

type RecomputePlayerRow struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Status     string   `json:"status"`
	Fields     []string `json:"fields,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

// RecomputeLifetimeTotals sums every per-game record for the given
// teams' games and compares the result to each player's stored
// lifetime row.
func (s *RecomputeService) RecomputeLifetimeTotals(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.RecomputeLifetimeTotals")
	defer span.End()

	if len(input.TeamIDs) == 0 {
		return RecomputeResult{}, fmt.Errorf("%w: at least one team id is required", ErrInvalidInput)
	}

	games, err := s.gameRepo.ListByTeams(ctx, input.TeamIDs)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list games for recompute: %w", err)
	}

	expected := make(map[string]playerstats.TotalRecord)
	for _, g := range games {
		records, err := s.playerRepo.ListGameRecordsByGame(ctx, g.ID)
		if err != nil {
			return RecomputeResult{}, fmt.Errorf("list game records for recompute: %w", err)
		}
		for _, rec := range records {
			sum := expected[rec.PlayerID]
			sum.PlayerID = rec.PlayerID
			sum.PlayerName = rec.PlayerName
			sum.Username = rec.Username
			sum.StatLine = playerstats.Merge(sum.StatLine, rec.StatLine)
			expected[rec.PlayerID] = sum
		}
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultRecomputeWorkers
	}
	if workerCount > len(expected) && len(expected) > 0 {
		workerCount = len(expected)
	}

	result := RecomputeResult{
		GameCount:   len(games),
		PlayerCount: len(expected),
		WorkerCount: workerCount,
		Players:     make([]RecomputePlayerRow, 0, len(expected)),
	}
	if len(expected) == 0 {
		return result, nil
	}

	rows := make(chan RecomputePlayerRow, len(expected))

	var cleanCount atomic.Int32
	var driftCount atomic.Int32
	var missingCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, want := range expected {
		want := want
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecomputePlayerRow{
				PlayerID:   want.PlayerID,
				PlayerName: want.PlayerName,
			}

			stored, found, err := s.playerRepo.FindTotals(ctx, want.PlayerID)
			switch {
			case err != nil:
				row.Status = recomputeStatusMissing
				missingCount.Add(1)
			case !found:
				row.Status = recomputeStatusMissing
				missingCount.Add(1)
			default:
				row.Fields = driftFields(stored.StatLine, want.StatLine)
				if len(row.Fields) == 0 {
					row.Status = recomputeStatusClean
					cleanCount.Add(1)
				} else {
					row.Status = recomputeStatusDrift
					driftCount.Add(1)
				}
			}
			row.DurationMs = time.Since(start).Milliseconds()

			rows <- row
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit player to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Players = append(result.Players, row)
	}
	sort.SliceStable(result.Players, func(i, j int) bool {
		return result.Players[i].PlayerID < result.Players[j].PlayerID
	})

	result.CleanCount = int(cleanCount.Load())
	result.DriftCount = int(driftCount.Load())
	result.MissingCount = int(missingCount.Load())

	if result.DriftCount > 0 || result.MissingCount > 0 {
		s.logger.WarnContext(ctx, "lifetime totals drift detected",
			"players", result.PlayerCount,
			"drift", result.DriftCount,
			"missing", result.MissingCount,
		)
	}
	return result, nil
}

// driftFields compares a stored lifetime line against the replayed sum
// of per-game records. Stalls is skipped: the merge rule it inherited
// makes the stored value depend on write order, so a replay cannot
// reproduce it.
func driftFields(stored, want playerstats.StatLine) []string {
	var fields []string
	add := func(name string, got, exp int) {
		if got != exp {
			fields = append(fields, name)
		}
	}
	add("goals", stored.Goals, want.Goals)
	add("assists", stored.Assists, want.Assists)
	add("hockey_assists", stored.HockeyAssists, want.HockeyAssists)
	add("blocks", stored.Blocks, want.Blocks)
	add("callahans", stored.Callahans, want.Callahans)
	add("completed_passes", stored.CompletedPasses, want.CompletedPasses)
	add("dropped_passes", stored.DroppedPasses, want.DroppedPasses)
	add("throwaways", stored.Throwaways, want.Throwaways)
	add("drops", stored.Drops, want.Drops)
	add("catches", stored.Catches, want.Catches)
	add("touches", stored.Touches, want.Touches)
	add("pulls", stored.Pulls, want.Pulls)
	add("points_played", stored.PointsPlayed, want.PointsPlayed)
	add("wins", stored.Wins, want.Wins)
	add("losses", stored.Losses, want.Losses)
	return fields
}
