package teamstats

import "github.com/hucklog/ultimate-stats/internal/domain/stats"

// StatLine is the additive counter block for one team. Like player
// records, accumulated counters only grow through Merge.
type StatLine struct {
	Wins              int `db:"wins" json:"wins"`
	Losses            int `db:"losses" json:"losses"`
	GoalsFor          int `db:"goals_for" json:"goalsFor"`
	GoalsAgainst      int `db:"goals_against" json:"goalsAgainst"`
	Holds             int `db:"holds" json:"holds"`
	Breaks            int `db:"breaks" json:"breaks"`
	TurnoverFreeHolds int `db:"turnover_free_holds" json:"turnoverFreeHolds"`
	OffensePoints     int `db:"offense_points" json:"offensePoints"`
	DefensePoints     int `db:"defense_points" json:"defensePoints"`
	Turnovers         int `db:"turnovers" json:"turnovers"`
	TurnoversForced   int `db:"turnovers_forced" json:"turnoversForced"`
}

// Merge returns the field-wise sum of base and delta.
func Merge(base, delta StatLine) StatLine {
	return StatLine{
		Wins:              base.Wins + delta.Wins,
		Losses:            base.Losses + delta.Losses,
		GoalsFor:          base.GoalsFor + delta.GoalsFor,
		GoalsAgainst:      base.GoalsAgainst + delta.GoalsAgainst,
		Holds:             base.Holds + delta.Holds,
		Breaks:            base.Breaks + delta.Breaks,
		TurnoverFreeHolds: base.TurnoverFreeHolds + delta.TurnoverFreeHolds,
		OffensePoints:     base.OffensePoints + delta.OffensePoints,
		DefensePoints:     base.DefensePoints + delta.DefensePoints,
		Turnovers:         base.Turnovers + delta.Turnovers,
		TurnoversForced:   base.TurnoversForced + delta.TurnoversForced,
	}
}

func (s StatLine) WinPercentage() float64 {
	return stats.SafeFraction(float64(s.Wins), float64(s.Wins+s.Losses))
}

// OffensiveConversion is the share of received points the team held.
func (s StatLine) OffensiveConversion() float64 {
	return stats.SafeFraction(float64(s.Holds), float64(s.OffensePoints))
}

// DefensiveConversion is the share of pulled points the team broke.
func (s StatLine) DefensiveConversion() float64 {
	return stats.SafeFraction(float64(s.Breaks), float64(s.DefensePoints))
}

// GameRecord is the per-(team, game) aggregate.
type GameRecord struct {
	TeamID string
	GameID string
	StatLine
}

// TotalRecord is the lifetime per-team aggregate.
type TotalRecord struct {
	TeamID string
	StatLine
}
