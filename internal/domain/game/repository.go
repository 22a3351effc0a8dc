package game

import "context"

// Repository persists games as whole units, embedded points included.
type Repository interface {
	Create(ctx context.Context, g *Game) error
	Find(ctx context.Context, id string) (*Game, bool, error)
	// Save writes back a game previously loaded with Find, points and
	// leaders included.
	Save(ctx context.Context, g *Game) error
	// ListByTeams returns every game either side of which is one of the
	// given teams. Reconciliation walks these.
	ListByTeams(ctx context.Context, teamIDs []string) ([]*Game, error)
}
