package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/hucklog/ultimate-stats/internal/domain/team"
	qb "github.com/hucklog/ultimate-stats/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	t, err := row.toDomain()
	if err != nil {
		return team.Team{}, false, err
	}
	return t, true, nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	ids := make([]any, 0, len(teamIDs))
	for _, id := range teamIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("teams").
		Where(qb.In("id", ids)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TeamRepository) Save(ctx context.Context, t team.Team) error {
	playerIDs, err := sonic.Marshal(t.PlayerIDs)
	if err != nil {
		return fmt.Errorf("encode team %s roster: %w", t.ID, err)
	}

	model := teamInsertModel{
		ID:        t.ID,
		Name:      t.Name,
		PlayerIDs: string(playerIDs),
	}
	query, args, err := qb.InsertModel("teams", model, `ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    player_ids = EXCLUDED.player_ids,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team %s: %w", t.ID, err)
	}
	return nil
}

type teamRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	PlayerIDs string    `db:"player_ids"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row teamRow) toDomain() (team.Team, error) {
	t := team.Team{
		ID:        row.ID,
		Name:      row.Name,
		PlayerIDs: make([]string, 0),
	}
	if err := sonic.Unmarshal([]byte(row.PlayerIDs), &t.PlayerIDs); err != nil {
		return team.Team{}, fmt.Errorf("decode team %s roster: %w", row.ID, err)
	}
	return t, nil
}

type teamInsertModel struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	PlayerIDs string `db:"player_ids"`
}
