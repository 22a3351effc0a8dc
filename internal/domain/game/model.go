package game

import (
	"errors"
	"time"

	"github.com/hucklog/ultimate-stats/internal/domain/action"
	"github.com/hucklog/ultimate-stats/internal/domain/connection"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
)

var (
	ErrAlreadyExists = errors.New("game already exists")
	ErrCompleted     = errors.New("game already completed")
)

// PointPlayer is one roster member's embedded stat block for a single
// point. The block is additive data owned by the point, not a pointer
// into the per-game records; reconciliation rewrites it in place.
type PointPlayer struct {
	PlayerID string               `json:"playerId"`
	Name     string               `json:"name"`
	Username string               `json:"username,omitempty"`
	TeamID   string               `json:"teamId"`
	Stats    playerstats.StatLine `json:"stats"`
}

// Point is one scored point of a game: who pulled, who received, who
// scored, the action sequences both sides recorded, and the derived
// per-player and per-pair blocks. Points are saved with their game as
// a unit.
type Point struct {
	Number          int                 `json:"number"`
	PullingTeamID   string              `json:"pullingTeamId"`
	ReceivingTeamID string              `json:"receivingTeamId"`
	ScoringTeamID   string              `json:"scoringTeamId,omitempty"`
	TeamOneActions  []action.Action     `json:"teamOneActions,omitempty"`
	TeamTwoActions  []action.Action     `json:"teamTwoActions,omitempty"`
	Players         []PointPlayer       `json:"players"`
	Connections     []connection.Record `json:"connections,omitempty"`
}

// Game is the aggregate root for one recorded game.
type Game struct {
	ID            string      `json:"id"`
	TeamOneID     string      `json:"teamOneId"`
	TeamTwoID     string      `json:"teamTwoId"`
	Points        []Point     `json:"points"`
	Leaders       Leaderboard `json:"leaders"`
	Completed     bool        `json:"completed"`
	WinningTeamID string      `json:"winningTeamId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// PlayerIDs returns the distinct players that appeared in any point.
func (g *Game) PlayerIDs() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, pt := range g.Points {
		for _, pp := range pt.Players {
			if _, ok := seen[pp.PlayerID]; ok {
				continue
			}
			seen[pp.PlayerID] = struct{}{}
			out = append(out, pp.PlayerID)
		}
	}
	return out
}
