package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
	qb "github.com/hucklog/ultimate-stats/internal/platform/querybuilder"
)

const teamStatMergeColumns = `
    wins = %[1]s.wins + EXCLUDED.wins,
    losses = %[1]s.losses + EXCLUDED.losses,
    goals_for = %[1]s.goals_for + EXCLUDED.goals_for,
    goals_against = %[1]s.goals_against + EXCLUDED.goals_against,
    holds = %[1]s.holds + EXCLUDED.holds,
    breaks = %[1]s.breaks + EXCLUDED.breaks,
    turnover_free_holds = %[1]s.turnover_free_holds + EXCLUDED.turnover_free_holds,
    offense_points = %[1]s.offense_points + EXCLUDED.offense_points,
    defense_points = %[1]s.defense_points + EXCLUDED.defense_points,
    turnovers = %[1]s.turnovers + EXCLUDED.turnovers,
    turnovers_forced = %[1]s.turnovers_forced + EXCLUDED.turnovers_forced,
    updated_at = NOW()`

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) FindGameRecord(ctx context.Context, teamID, gameID string) (teamstats.GameRecord, bool, error) {
	query, args, err := qb.Select("*").From("team_game_stats").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("game_id", gameID),
		).
		ToSQL()
	if err != nil {
		return teamstats.GameRecord{}, false, fmt.Errorf("build select team game stats query: %w", err)
	}

	var row teamGameStatRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamstats.GameRecord{}, false, nil
		}
		return teamstats.GameRecord{}, false, fmt.Errorf("select team game stats: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamStatsRepository) ListGameRecordsByGame(ctx context.Context, gameID string) ([]teamstats.GameRecord, error) {
	query, args, err := qb.Select("*").From("team_game_stats").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team game stats query: %w", err)
	}

	var rows []teamGameStatRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team game stats: %w", err)
	}

	out := make([]teamstats.GameRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamStatsRepository) ApplyGameDelta(ctx context.Context, delta teamstats.GameRecord) error {
	suffix := fmt.Sprintf("ON CONFLICT (team_id, game_id) DO UPDATE SET"+teamStatMergeColumns, "team_game_stats")
	query, args, err := qb.InsertModel("team_game_stats", newTeamGameStatInsertModel(delta), suffix)
	if err != nil {
		return fmt.Errorf("build upsert team game stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team game stats team=%s game=%s: %w", delta.TeamID, delta.GameID, err)
	}
	return nil
}

func (r *TeamStatsRepository) FindTotals(ctx context.Context, teamID string) (teamstats.TotalRecord, bool, error) {
	query, args, err := qb.Select("*").From("team_totals").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return teamstats.TotalRecord{}, false, fmt.Errorf("build select team totals query: %w", err)
	}

	var row teamTotalRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamstats.TotalRecord{}, false, nil
		}
		return teamstats.TotalRecord{}, false, fmt.Errorf("select team totals: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamStatsRepository) ApplyTotalsDelta(ctx context.Context, delta teamstats.TotalRecord) error {
	suffix := fmt.Sprintf("ON CONFLICT (team_id) DO UPDATE SET"+teamStatMergeColumns, "team_totals")
	query, args, err := qb.InsertModel("team_totals", newTeamTotalInsertModel(delta), suffix)
	if err != nil {
		return fmt.Errorf("build upsert team totals query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team totals team=%s: %w", delta.TeamID, err)
	}
	return nil
}
