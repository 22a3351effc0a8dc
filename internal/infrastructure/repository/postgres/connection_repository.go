package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	qb "github.com/hucklog/ultimate-stats/internal/platform/querybuilder"
)

// connectionMergeSuffix folds the delta's counters into the stored
// pair record in one statement. A game id of '' keys the lifetime row.
const connectionMergeSuffix = `ON CONFLICT (thrower_id, receiver_id, game_id) DO UPDATE SET
    catches = connections.catches + EXCLUDED.catches,
    drops = connections.drops + EXCLUDED.drops,
    scores = connections.scores + EXCLUDED.scores,
    updated_at = NOW()`

type ConnectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func (r *ConnectionRepository) Find(ctx context.Context, throwerID, receiverID, gameID string) (connection.Record, bool, error) {
	query, args, err := qb.Select("*").From("connections").
		Where(
			qb.Eq("thrower_id", throwerID),
			qb.Eq("receiver_id", receiverID),
			qb.Eq("game_id", gameID),
		).
		ToSQL()
	if err != nil {
		return connection.Record{}, false, fmt.Errorf("build select connection query: %w", err)
	}

	var row connectionRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return connection.Record{}, false, nil
		}
		return connection.Record{}, false, fmt.Errorf("select connection: %w", err)
	}

	return row.Record, true, nil
}

func (r *ConnectionRepository) ListByGame(ctx context.Context, gameID string) ([]connection.Record, error) {
	query, args, err := qb.Select("*").From("connections").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("thrower_id", "receiver_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list connections by game query: %w", err)
	}

	return r.selectRecords(ctx, query, args)
}

func (r *ConnectionRepository) ListByThrower(ctx context.Context, throwerID string) ([]connection.Record, error) {
	query, args, err := qb.Select("*").From("connections").
		Where(qb.Eq("thrower_id", throwerID)).
		OrderBy("game_id", "receiver_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list connections by thrower query: %w", err)
	}

	return r.selectRecords(ctx, query, args)
}

func (r *ConnectionRepository) ListByParticipant(ctx context.Context, playerID string, gameIDs []string) ([]connection.Record, error) {
	ids := make([]any, 0, len(gameIDs))
	for _, id := range gameIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("connections").
		Where(
			qb.Expr("(thrower_id = ? OR receiver_id = ?)", playerID, playerID),
			qb.In("game_id", ids),
		).
		OrderBy("game_id", "thrower_id", "receiver_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list connections by participant query: %w", err)
	}

	return r.selectRecords(ctx, query, args)
}

func (r *ConnectionRepository) ApplyDelta(ctx context.Context, delta connection.Record) error {
	query, args, err := qb.InsertModel("connections", delta, connectionMergeSuffix)
	if err != nil {
		return fmt.Errorf("build upsert connection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert connection %s->%s game=%s: %w", delta.ThrowerID, delta.ReceiverID, delta.GameID, err)
	}
	return nil
}

func (r *ConnectionRepository) Rekey(ctx context.Context, rec connection.Record, throwerID, receiverID string) error {
	query, args, err := qb.Update("connections").
		Set("thrower_id", throwerID).
		Set("receiver_id", receiverID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("thrower_id", rec.ThrowerID),
			qb.Eq("receiver_id", rec.ReceiverID),
			qb.Eq("game_id", rec.GameID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build rekey connection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("rekey connection %s->%s game=%s: %w", rec.ThrowerID, rec.ReceiverID, rec.GameID, err)
	}
	return nil
}

func (r *ConnectionRepository) Delete(ctx context.Context, throwerID, receiverID, gameID string) error {
	const query = "DELETE FROM connections WHERE thrower_id = $1 AND receiver_id = $2 AND game_id = $3"
	if _, err := r.db.ExecContext(ctx, query, throwerID, receiverID, gameID); err != nil {
		return fmt.Errorf("delete connection %s->%s game=%s: %w", throwerID, receiverID, gameID, err)
	}
	return nil
}

func (r *ConnectionRepository) selectRecords(ctx context.Context, query string, args []any) ([]connection.Record, error) {
	var rows []connectionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	out := make([]connection.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Record)
	}
	return out, nil
}

type connectionRow struct {
	connection.Record
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
