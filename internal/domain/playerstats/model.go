package playerstats

import "github.com/hucklog/ultimate-stats/internal/domain/stats"

// Identity carries the identifying fields stamped onto every record a
// player owns. Reconciliation rewrites these when a guest's records
// move to a real account.
type Identity struct {
	ID       string
	Name     string
	Username string
}

// StatLine is the additive counter block for one player. Records are
// only ever mutated by additive merge once created; derived values are
// computed on read and never stored.
type StatLine struct {
	Goals           int `db:"goals" json:"goals"`
	Assists         int `db:"assists" json:"assists"`
	HockeyAssists   int `db:"hockey_assists" json:"hockeyAssists"`
	Blocks          int `db:"blocks" json:"blocks"`
	Throwaways      int `db:"throwaways" json:"throwaways"`
	Drops           int `db:"drops" json:"drops"`
	Stalls          int `db:"stalls" json:"stalls"`
	Touches         int `db:"touches" json:"touches"`
	Catches         int `db:"catches" json:"catches"`
	CompletedPasses int `db:"completed_passes" json:"completedPasses"`
	DroppedPasses   int `db:"dropped_passes" json:"droppedPasses"`
	Callahans       int `db:"callahans" json:"callahans"`
	PointsPlayed    int `db:"points_played" json:"pointsPlayed"`
	Pulls           int `db:"pulls" json:"pulls"`
	Wins            int `db:"wins" json:"wins"`
	Losses          int `db:"losses" json:"losses"`
}

// Merge returns the field-wise sum of base and delta.
//
// Stalls intentionally absorbs the delta's drops instead of its stalls.
// The behavior is inherited from the system this engine replaced and is
// kept until the original intent is confirmed; stalls and drops are
// tracked as distinct counters everywhere else.
func Merge(base, delta StatLine) StatLine {
	return StatLine{
		Goals:           base.Goals + delta.Goals,
		Assists:         base.Assists + delta.Assists,
		HockeyAssists:   base.HockeyAssists + delta.HockeyAssists,
		Blocks:          base.Blocks + delta.Blocks,
		Throwaways:      base.Throwaways + delta.Throwaways,
		Drops:           base.Drops + delta.Drops,
		Stalls:          base.Stalls + delta.Drops,
		Touches:         base.Touches + delta.Touches,
		Catches:         base.Catches + delta.Catches,
		CompletedPasses: base.CompletedPasses + delta.CompletedPasses,
		DroppedPasses:   base.DroppedPasses + delta.DroppedPasses,
		Callahans:       base.Callahans + delta.Callahans,
		PointsPlayed:    base.PointsPlayed + delta.PointsPlayed,
		Pulls:           base.Pulls + delta.Pulls,
		Wins:            base.Wins + delta.Wins,
		Losses:          base.Losses + delta.Losses,
	}
}

// IsZero reports whether no counter has accumulated anything yet.
func (s StatLine) IsZero() bool {
	return s == StatLine{}
}

// PlusMinus is the classic contribution differential.
func (s StatLine) PlusMinus() int {
	return s.Goals + s.Assists + s.Blocks - s.Throwaways - s.Drops
}

// Turnovers combines the two ways a player gives the disc away.
func (s StatLine) Turnovers() int {
	return s.Drops + s.Throwaways
}

func (s StatLine) CatchingPercentage() float64 {
	return stats.SafeFraction(float64(s.Catches), float64(s.Catches+s.Drops))
}

func (s StatLine) ThrowingPercentage() float64 {
	return stats.SafeFraction(float64(s.CompletedPasses), float64(s.CompletedPasses+s.Throwaways))
}

func (s StatLine) WinPercentage() float64 {
	return stats.SafeFraction(float64(s.Wins), float64(s.Wins+s.Losses))
}

func (s StatLine) GoalsPerPoint() float64 {
	return stats.SafeFraction(float64(s.Goals), float64(s.PointsPlayed))
}

func (s StatLine) AssistsPerPoint() float64 {
	return stats.SafeFraction(float64(s.Assists), float64(s.PointsPlayed))
}

func (s StatLine) BlocksPerPoint() float64 {
	return stats.SafeFraction(float64(s.Blocks), float64(s.PointsPlayed))
}

func (s StatLine) ThrowawaysPerPoint() float64 {
	return stats.SafeFraction(float64(s.Throwaways), float64(s.PointsPlayed))
}

func (s StatLine) DropsPerPoint() float64 {
	return stats.SafeFraction(float64(s.Drops), float64(s.PointsPlayed))
}

// GameRecord is the atomic per-(player, game, team) aggregate.
type GameRecord struct {
	PlayerID   string
	GameID     string
	TeamID     string
	PlayerName string
	Username   string
	StatLine
}

// TotalRecord is the lifetime per-player aggregate.
type TotalRecord struct {
	PlayerID   string
	PlayerName string
	Username   string
	StatLine
}
