package memory

import (
	"context"
	"sync"

	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
)

type teamGameKey struct {
	teamID string
	gameID string
}

type TeamStatsRepository struct {
	mu     sync.RWMutex
	games  map[teamGameKey]teamstats.GameRecord
	totals map[string]teamstats.TotalRecord
}

func NewTeamStatsRepository() *TeamStatsRepository {
	return &TeamStatsRepository{
		games:  make(map[teamGameKey]teamstats.GameRecord),
		totals: make(map[string]teamstats.TotalRecord),
	}
}

func (r *TeamStatsRepository) FindGameRecord(_ context.Context, teamID, gameID string) (teamstats.GameRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.games[teamGameKey{teamID: teamID, gameID: gameID}]
	return rec, ok, nil
}

func (r *TeamStatsRepository) ListGameRecordsByGame(_ context.Context, gameID string) ([]teamstats.GameRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamstats.GameRecord, 0, 2)
	for key, rec := range r.games {
		if key.gameID == gameID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *TeamStatsRepository) ApplyGameDelta(_ context.Context, delta teamstats.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := teamGameKey{teamID: delta.TeamID, gameID: delta.GameID}
	existing, ok := r.games[key]
	if !ok {
		r.games[key] = delta
		return nil
	}

	existing.StatLine = teamstats.Merge(existing.StatLine, delta.StatLine)
	r.games[key] = existing
	return nil
}

func (r *TeamStatsRepository) FindTotals(_ context.Context, teamID string) (teamstats.TotalRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.totals[teamID]
	return rec, ok, nil
}

func (r *TeamStatsRepository) ApplyTotalsDelta(_ context.Context, delta teamstats.TotalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.totals[delta.TeamID]
	if !ok {
		r.totals[delta.TeamID] = delta
		return nil
	}

	existing.StatLine = teamstats.Merge(existing.StatLine, delta.StatLine)
	r.totals[delta.TeamID] = existing
	return nil
}
