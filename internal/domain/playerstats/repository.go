package playerstats

import "context"

// Repository is the persistence contract for per-game and lifetime
// player records. ApplyGameDelta and ApplyTotalsDelta are
// create-or-additively-merge operations: the stored record's counters
// grow by the delta's counters atomically, so concurrent ingestion of
// different points cannot lose updates.
type Repository interface {
	FindGameRecord(ctx context.Context, playerID, gameID, teamID string) (GameRecord, bool, error)
	ListGameRecordsByGame(ctx context.Context, gameID string) ([]GameRecord, error)
	ListGameRecordsByPlayer(ctx context.Context, playerID string) ([]GameRecord, error)
	ApplyGameDelta(ctx context.Context, delta GameRecord) error
	// RekeyGameRecord moves a record to a new owning identity without
	// touching its counters. Identifying fields follow the new owner.
	RekeyGameRecord(ctx context.Context, playerID, gameID, teamID string, to Identity) error
	DeleteGameRecord(ctx context.Context, playerID, gameID, teamID string) error

	FindTotals(ctx context.Context, playerID string) (TotalRecord, bool, error)
	ApplyTotalsDelta(ctx context.Context, delta TotalRecord) error
	RekeyTotals(ctx context.Context, playerID string, to Identity) error
	DeleteTotals(ctx context.Context, playerID string) error
}
