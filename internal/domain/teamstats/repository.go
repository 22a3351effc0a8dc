package teamstats

import "context"

// Repository is the persistence contract for per-game and lifetime team
// records. Both Apply operations are atomic additive upserts.
type Repository interface {
	FindGameRecord(ctx context.Context, teamID, gameID string) (GameRecord, bool, error)
	ListGameRecordsByGame(ctx context.Context, gameID string) ([]GameRecord, error)
	ApplyGameDelta(ctx context.Context, delta GameRecord) error

	FindTotals(ctx context.Context, teamID string) (TotalRecord, bool, error)
	ApplyTotalsDelta(ctx context.Context, delta TotalRecord) error
}
