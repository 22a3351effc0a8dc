package memory

import (
	"context"
	"sync"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
)

type playerGameKey struct {
	playerID string
	gameID   string
	teamID   string
}

// PlayerStatsRepository is the in-memory implementation used by tests
// and local mode. Apply operations hold the write lock for the whole
// read-merge-write, which gives the same lost-update protection the
// postgres implementation gets from its atomic upsert.
type PlayerStatsRepository struct {
	mu     sync.RWMutex
	games  map[playerGameKey]playerstats.GameRecord
	totals map[string]playerstats.TotalRecord
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{
		games:  make(map[playerGameKey]playerstats.GameRecord),
		totals: make(map[string]playerstats.TotalRecord),
	}
}

func (r *PlayerStatsRepository) FindGameRecord(_ context.Context, playerID, gameID, teamID string) (playerstats.GameRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.games[playerGameKey{playerID: playerID, gameID: gameID, teamID: teamID}]
	return rec, ok, nil
}

func (r *PlayerStatsRepository) ListGameRecordsByGame(_ context.Context, gameID string) ([]playerstats.GameRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.GameRecord, 0)
	for key, rec := range r.games {
		if key.gameID == gameID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *PlayerStatsRepository) ListGameRecordsByPlayer(_ context.Context, playerID string) ([]playerstats.GameRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.GameRecord, 0)
	for key, rec := range r.games {
		if key.playerID == playerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *PlayerStatsRepository) ApplyGameDelta(_ context.Context, delta playerstats.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerGameKey{playerID: delta.PlayerID, gameID: delta.GameID, teamID: delta.TeamID}
	existing, ok := r.games[key]
	if !ok {
		r.games[key] = delta
		return nil
	}

	existing.StatLine = playerstats.Merge(existing.StatLine, delta.StatLine)
	r.games[key] = existing
	return nil
}

func (r *PlayerStatsRepository) RekeyGameRecord(_ context.Context, playerID, gameID, teamID string, to playerstats.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerGameKey{playerID: playerID, gameID: gameID, teamID: teamID}
	rec, ok := r.games[key]
	if !ok {
		return nil
	}

	delete(r.games, key)
	rec.PlayerID = to.ID
	rec.PlayerName = to.Name
	rec.Username = to.Username
	r.games[playerGameKey{playerID: to.ID, gameID: gameID, teamID: teamID}] = rec
	return nil
}

func (r *PlayerStatsRepository) DeleteGameRecord(_ context.Context, playerID, gameID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.games, playerGameKey{playerID: playerID, gameID: gameID, teamID: teamID})
	return nil
}

func (r *PlayerStatsRepository) FindTotals(_ context.Context, playerID string) (playerstats.TotalRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.totals[playerID]
	return rec, ok, nil
}

func (r *PlayerStatsRepository) ApplyTotalsDelta(_ context.Context, delta playerstats.TotalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.totals[delta.PlayerID]
	if !ok {
		r.totals[delta.PlayerID] = delta
		return nil
	}

	existing.StatLine = playerstats.Merge(existing.StatLine, delta.StatLine)
	r.totals[delta.PlayerID] = existing
	return nil
}

func (r *PlayerStatsRepository) RekeyTotals(_ context.Context, playerID string, to playerstats.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.totals[playerID]
	if !ok {
		return nil
	}

	delete(r.totals, playerID)
	rec.PlayerID = to.ID
	rec.PlayerName = to.Name
	rec.Username = to.Username
	r.totals[to.ID] = rec
	return nil
}

func (r *PlayerStatsRepository) DeleteTotals(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.totals, playerID)
	return nil
}
