package memory

import (
	"context"
	"sync"

	"github.com/hucklog/ultimate-stats/internal/domain/action"
	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/game"
)

// GameRepository keeps whole game aggregates. Find hands out deep
// copies so callers mutate their own view and persist it with Save,
// matching how the postgres implementation round-trips the JSON
// columns.
type GameRepository struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

func NewGameRepository() *GameRepository {
	return &GameRepository{games: make(map[string]*game.Game)}
}

func (r *GameRepository) Create(_ context.Context, g *game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[g.ID]; ok {
		return game.ErrAlreadyExists
	}
	r.games[g.ID] = cloneGame(g)
	return nil
}

func (r *GameRepository) Find(_ context.Context, id string) (*game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.games[id]
	if !ok {
		return nil, false, nil
	}
	return cloneGame(stored), true, nil
}

func (r *GameRepository) Save(_ context.Context, g *game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games[g.ID] = cloneGame(g)
	return nil
}

func (r *GameRepository) ListByTeams(_ context.Context, teamIDs []string) ([]*game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}

	out := make([]*game.Game, 0)
	for _, stored := range r.games {
		if _, ok := wanted[stored.TeamOneID]; ok {
			out = append(out, cloneGame(stored))
			continue
		}
		if _, ok := wanted[stored.TeamTwoID]; ok {
			out = append(out, cloneGame(stored))
		}
	}
	return out, nil
}

func cloneGame(g *game.Game) *game.Game {
	cloned := *g
	cloned.Points = make([]game.Point, len(g.Points))
	for i, pt := range g.Points {
		cp := pt
		cp.TeamOneActions = append([]action.Action(nil), pt.TeamOneActions...)
		cp.TeamTwoActions = append([]action.Action(nil), pt.TeamTwoActions...)
		cp.Players = append([]game.PointPlayer(nil), pt.Players...)
		cp.Connections = append([]connection.Record(nil), pt.Connections...)
		cloned.Points[i] = cp
	}
	cloned.Leaders = cloneLeaderboard(g.Leaders)
	return &cloned
}

func cloneLeaderboard(lb game.Leaderboard) game.Leaderboard {
	cloneSlot := func(l *game.Leader) *game.Leader {
		if l == nil {
			return nil
		}
		cp := *l
		return &cp
	}
	return game.Leaderboard{
		Goals:        cloneSlot(lb.Goals),
		Assists:      cloneSlot(lb.Assists),
		Blocks:       cloneSlot(lb.Blocks),
		Turnovers:    cloneSlot(lb.Turnovers),
		PlusMinus:    cloneSlot(lb.PlusMinus),
		PointsPlayed: cloneSlot(lb.PointsPlayed),
	}
}
