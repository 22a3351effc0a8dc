package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	qb "github.com/hucklog/ultimate-stats/internal/platform/querybuilder"
)

// playerStatUpsertSuffix keeps every counter an additive fold so the
// merge happens inside one statement and concurrent ingestion cannot
// lose updates. Identity columns keep the stored values.
//
// stalls deliberately grows by EXCLUDED.drops, matching the merge rule
// in the playerstats domain package.
const playerStatMergeColumns = `
    goals = %[1]s.goals + EXCLUDED.goals,
    assists = %[1]s.assists + EXCLUDED.assists,
    hockey_assists = %[1]s.hockey_assists + EXCLUDED.hockey_assists,
    blocks = %[1]s.blocks + EXCLUDED.blocks,
    throwaways = %[1]s.throwaways + EXCLUDED.throwaways,
    drops = %[1]s.drops + EXCLUDED.drops,
    stalls = %[1]s.stalls + EXCLUDED.drops,
    touches = %[1]s.touches + EXCLUDED.touches,
    catches = %[1]s.catches + EXCLUDED.catches,
    completed_passes = %[1]s.completed_passes + EXCLUDED.completed_passes,
    dropped_passes = %[1]s.dropped_passes + EXCLUDED.dropped_passes,
    callahans = %[1]s.callahans + EXCLUDED.callahans,
    points_played = %[1]s.points_played + EXCLUDED.points_played,
    pulls = %[1]s.pulls + EXCLUDED.pulls,
    wins = %[1]s.wins + EXCLUDED.wins,
    losses = %[1]s.losses + EXCLUDED.losses,
    updated_at = NOW()`

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) FindGameRecord(ctx context.Context, playerID, gameID, teamID string) (playerstats.GameRecord, bool, error) {
	query, args, err := qb.Select("*").From("player_game_stats").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("game_id", gameID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return playerstats.GameRecord{}, false, fmt.Errorf("build select player game stats query: %w", err)
	}

	var row playerGameStatRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.GameRecord{}, false, nil
		}
		return playerstats.GameRecord{}, false, fmt.Errorf("select player game stats: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerStatsRepository) ListGameRecordsByGame(ctx context.Context, gameID string) ([]playerstats.GameRecord, error) {
	query, args, err := qb.Select("*").From("player_game_stats").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player game stats by game query: %w", err)
	}

	var rows []playerGameStatRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player game stats by game: %w", err)
	}

	out := make([]playerstats.GameRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerStatsRepository) ListGameRecordsByPlayer(ctx context.Context, playerID string) ([]playerstats.GameRecord, error) {
	query, args, err := qb.Select("*").From("player_game_stats").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player game stats by player query: %w", err)
	}

	var rows []playerGameStatRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player game stats by player: %w", err)
	}

	out := make([]playerstats.GameRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerStatsRepository) ApplyGameDelta(ctx context.Context, delta playerstats.GameRecord) error {
	suffix := fmt.Sprintf("ON CONFLICT (player_id, game_id, team_id) DO UPDATE SET"+playerStatMergeColumns, "player_game_stats")
	query, args, err := qb.InsertModel("player_game_stats", newPlayerGameStatInsertModel(delta), suffix)
	if err != nil {
		return fmt.Errorf("build upsert player game stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player game stats player=%s game=%s: %w", delta.PlayerID, delta.GameID, err)
	}
	return nil
}

func (r *PlayerStatsRepository) RekeyGameRecord(ctx context.Context, playerID, gameID, teamID string, to playerstats.Identity) error {
	query, args, err := qb.Update("player_game_stats").
		Set("player_id", to.ID).
		Set("player_name", to.Name).
		Set("username", to.Username).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("game_id", gameID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build rekey player game stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("rekey player game stats %s -> %s: %w", playerID, to.ID, err)
	}
	return nil
}

func (r *PlayerStatsRepository) DeleteGameRecord(ctx context.Context, playerID, gameID, teamID string) error {
	const query = "DELETE FROM player_game_stats WHERE player_id = $1 AND game_id = $2 AND team_id = $3"
	if _, err := r.db.ExecContext(ctx, query, playerID, gameID, teamID); err != nil {
		return fmt.Errorf("delete player game stats player=%s game=%s: %w", playerID, gameID, err)
	}
	return nil
}

func (r *PlayerStatsRepository) FindTotals(ctx context.Context, playerID string) (playerstats.TotalRecord, bool, error) {
	query, args, err := qb.Select("*").From("player_totals").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return playerstats.TotalRecord{}, false, fmt.Errorf("build select player totals query: %w", err)
	}

	var row playerTotalRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.TotalRecord{}, false, nil
		}
		return playerstats.TotalRecord{}, false, fmt.Errorf("select player totals: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerStatsRepository) ApplyTotalsDelta(ctx context.Context, delta playerstats.TotalRecord) error {
	suffix := fmt.Sprintf("ON CONFLICT (player_id) DO UPDATE SET"+playerStatMergeColumns, "player_totals")
	query, args, err := qb.InsertModel("player_totals", newPlayerTotalInsertModel(delta), suffix)
	if err != nil {
		return fmt.Errorf("build upsert player totals query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player totals player=%s: %w", delta.PlayerID, err)
	}
	return nil
}

func (r *PlayerStatsRepository) RekeyTotals(ctx context.Context, playerID string, to playerstats.Identity) error {
	query, args, err := qb.Update("player_totals").
		Set("player_id", to.ID).
		Set("player_name", to.Name).
		Set("username", to.Username).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build rekey player totals query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("rekey player totals %s -> %s: %w", playerID, to.ID, err)
	}
	return nil
}

func (r *PlayerStatsRepository) DeleteTotals(ctx context.Context, playerID string) error {
	const query = "DELETE FROM player_totals WHERE player_id = $1"
	if _, err := r.db.ExecContext(ctx, query, playerID); err != nil {
		return fmt.Errorf("delete player totals player=%s: %w", playerID, err)
	}
	return nil
}
