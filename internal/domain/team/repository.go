package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	Save(ctx context.Context, t Team) error
}
