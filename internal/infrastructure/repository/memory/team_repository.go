package memory

import (
	"context"
	"sync"

	"github.com/hucklog/ultimate-stats/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = cloneTeam(item)
	}
	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(item), true, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		item, ok := r.teams[id]
		if !ok {
			continue
		}
		out = append(out, cloneTeam(item))
	}
	return out, nil
}

func (r *TeamRepository) Save(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[t.ID] = cloneTeam(t)
	return nil
}

func cloneTeam(t team.Team) team.Team {
	t.PlayerIDs = append([]string(nil), t.PlayerIDs...)
	return t
}
