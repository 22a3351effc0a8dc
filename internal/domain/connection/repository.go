package connection

import "context"

// Repository is the persistence contract for connection records.
// ApplyDelta is an atomic additive upsert keyed by (thrower, receiver,
// game); lifetime records use a game id of "".
type Repository interface {
	Find(ctx context.Context, throwerID, receiverID, gameID string) (Record, bool, error)
	ListByGame(ctx context.Context, gameID string) ([]Record, error)
	ListByThrower(ctx context.Context, throwerID string) ([]Record, error)
	// ListByParticipant returns every record where the player threw or
	// received, across the given games. Reconciliation walks this.
	ListByParticipant(ctx context.Context, playerID string, gameIDs []string) ([]Record, error)
	ApplyDelta(ctx context.Context, delta Record) error
	// Rekey replaces one side of the pair key without touching counters.
	Rekey(ctx context.Context, rec Record, throwerID, receiverID string) error
	Delete(ctx context.Context, throwerID, receiverID, gameID string) error
}
