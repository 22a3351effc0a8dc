package postgres

import (
	"time"

	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
)

type teamGameStatRow struct {
	TeamID string `db:"team_id"`
	GameID string `db:"game_id"`
	teamstats.StatLine
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row teamGameStatRow) toDomain() teamstats.GameRecord {
	return teamstats.GameRecord{
		TeamID:   row.TeamID,
		GameID:   row.GameID,
		StatLine: row.StatLine,
	}
}

type teamTotalRow struct {
	TeamID string `db:"team_id"`
	teamstats.StatLine
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row teamTotalRow) toDomain() teamstats.TotalRecord {
	return teamstats.TotalRecord{
		TeamID:   row.TeamID,
		StatLine: row.StatLine,
	}
}

type teamGameStatInsertModel struct {
	TeamID string `db:"team_id"`
	GameID string `db:"game_id"`
	teamstats.StatLine
}

type teamTotalInsertModel struct {
	TeamID string `db:"team_id"`
	teamstats.StatLine
}

func newTeamGameStatInsertModel(rec teamstats.GameRecord) teamGameStatInsertModel {
	return teamGameStatInsertModel{
		TeamID:   rec.TeamID,
		GameID:   rec.GameID,
		StatLine: rec.StatLine,
	}
}

func newTeamTotalInsertModel(rec teamstats.TotalRecord) teamTotalInsertModel {
	return teamTotalInsertModel{
		TeamID:   rec.TeamID,
		StatLine: rec.StatLine,
	}
}
