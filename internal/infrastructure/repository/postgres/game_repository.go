package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/hucklog/ultimate-stats/internal/domain/game"
	qb "github.com/hucklog/ultimate-stats/internal/platform/querybuilder"
)

// GameRepository stores each game as one row with its points and
// leaderboard serialized to JSONB. Games are loaded and saved as whole
// aggregates, so normalizing the embedded blocks buys nothing.
type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(ctx context.Context, g *game.Game) error {
	model, err := newGameInsertModel(g)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("games", model, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", g.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert game %s rows affected: %w", g.ID, err)
	}
	if affected == 0 {
		return game.ErrAlreadyExists
	}
	return nil
}

func (r *GameRepository) Find(ctx context.Context, id string) (*game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select game: %w", err)
	}

	g, err := row.toDomain()
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

func (r *GameRepository) Save(ctx context.Context, g *game.Game) error {
	points, err := sonic.Marshal(g.Points)
	if err != nil {
		return fmt.Errorf("encode game %s points: %w", g.ID, err)
	}
	leaders, err := sonic.Marshal(g.Leaders)
	if err != nil {
		return fmt.Errorf("encode game %s leaders: %w", g.ID, err)
	}

	query, args, err := qb.Update("games").
		Set("points", string(points)).
		Set("leaders", string(leaders)).
		Set("completed", g.Completed).
		Set("winning_team_id", g.WinningTeamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", g.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game %s: %w", g.ID, err)
	}
	return nil
}

func (r *GameRepository) ListByTeams(ctx context.Context, teamIDs []string) ([]*game.Game, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(teamIDs)*2)
	placeholders := ""
	for i, id := range teamIDs {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		ids = append(ids, id)
	}
	for _, id := range teamIDs {
		ids = append(ids, id)
	}

	expr := fmt.Sprintf("(team_one_id IN (%[1]s) OR team_two_id IN (%[1]s))", placeholders)
	query, args, err := qb.Select("*").From("games").
		Where(qb.Expr(expr, ids...)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by teams query: %w", err)
	}

	var rows []gameRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games by teams: %w", err)
	}

	out := make([]*game.Game, 0, len(rows))
	for _, row := range rows {
		g, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

type gameRow struct {
	ID            string    `db:"id"`
	TeamOneID     string    `db:"team_one_id"`
	TeamTwoID     string    `db:"team_two_id"`
	Points        string    `db:"points"`
	Leaders       string    `db:"leaders"`
	Completed     bool      `db:"completed"`
	WinningTeamID string    `db:"winning_team_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row gameRow) toDomain() (*game.Game, error) {
	g := &game.Game{
		ID:            row.ID,
		TeamOneID:     row.TeamOneID,
		TeamTwoID:     row.TeamTwoID,
		Points:        make([]game.Point, 0),
		Completed:     row.Completed,
		WinningTeamID: row.WinningTeamID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if err := sonic.Unmarshal([]byte(row.Points), &g.Points); err != nil {
		return nil, fmt.Errorf("decode game %s points: %w", row.ID, err)
	}
	if err := sonic.Unmarshal([]byte(row.Leaders), &g.Leaders); err != nil {
		return nil, fmt.Errorf("decode game %s leaders: %w", row.ID, err)
	}
	return g, nil
}

type gameInsertModel struct {
	ID            string    `db:"id"`
	TeamOneID     string    `db:"team_one_id"`
	TeamTwoID     string    `db:"team_two_id"`
	Points        string    `db:"points"`
	Leaders       string    `db:"leaders"`
	Completed     bool      `db:"completed"`
	WinningTeamID string    `db:"winning_team_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func newGameInsertModel(g *game.Game) (gameInsertModel, error) {
	points, err := sonic.Marshal(g.Points)
	if err != nil {
		return gameInsertModel{}, fmt.Errorf("encode game %s points: %w", g.ID, err)
	}
	leaders, err := sonic.Marshal(g.Leaders)
	if err != nil {
		return gameInsertModel{}, fmt.Errorf("encode game %s leaders: %w", g.ID, err)
	}

	return gameInsertModel{
		ID:            g.ID,
		TeamOneID:     g.TeamOneID,
		TeamTwoID:     g.TeamTwoID,
		Points:        string(points),
		Leaders:       string(leaders),
		Completed:     g.Completed,
		WinningTeamID: g.WinningTeamID,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}, nil
}
