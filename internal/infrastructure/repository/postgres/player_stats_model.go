package postgres

import (
	"time"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
)

type playerGameStatRow struct {
	PlayerID   string `db:"player_id"`
	GameID     string `db:"game_id"`
	TeamID     string `db:"team_id"`
	PlayerName string `db:"player_name"`
	Username   string `db:"username"`
	playerstats.StatLine
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row playerGameStatRow) toDomain() playerstats.GameRecord {
	return playerstats.GameRecord{
		PlayerID:   row.PlayerID,
		GameID:     row.GameID,
		TeamID:     row.TeamID,
		PlayerName: row.PlayerName,
		Username:   row.Username,
		StatLine:   row.StatLine,
	}
}

type playerTotalRow struct {
	PlayerID   string `db:"player_id"`
	PlayerName string `db:"player_name"`
	Username   string `db:"username"`
	playerstats.StatLine
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row playerTotalRow) toDomain() playerstats.TotalRecord {
	return playerstats.TotalRecord{
		PlayerID:   row.PlayerID,
		PlayerName: row.PlayerName,
		Username:   row.Username,
		StatLine:   row.StatLine,
	}
}

type playerGameStatInsertModel struct {
	PlayerID   string `db:"player_id"`
	GameID     string `db:"game_id"`
	TeamID     string `db:"team_id"`
	PlayerName string `db:"player_name"`
	Username   string `db:"username"`
	playerstats.StatLine
}

type playerTotalInsertModel struct {
	PlayerID   string `db:"player_id"`
	PlayerName string `db:"player_name"`
	Username   string `db:"username"`
	playerstats.StatLine
}

func newPlayerGameStatInsertModel(rec playerstats.GameRecord) playerGameStatInsertModel {
	return playerGameStatInsertModel{
		PlayerID:   rec.PlayerID,
		GameID:     rec.GameID,
		TeamID:     rec.TeamID,
		PlayerName: rec.PlayerName,
		Username:   rec.Username,
		StatLine:   rec.StatLine,
	}
}

func newPlayerTotalInsertModel(rec playerstats.TotalRecord) playerTotalInsertModel {
	return playerTotalInsertModel{
		PlayerID:   rec.PlayerID,
		PlayerName: rec.PlayerName,
		Username:   rec.Username,
		StatLine:   rec.StatLine,
	}
}
