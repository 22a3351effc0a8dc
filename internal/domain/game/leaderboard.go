package game

import "github.com/hucklog/ultimate-stats/internal/domain/playerstats"

// Leader is the current best player for one tracked category within a
// game, together with the total that earned the slot.
type Leader struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Total      int    `json:"total"`
}

// Leaderboard tracks the six in-game leader slots. A nil slot means no
// player has contributed to the category yet; an untouched leaderboard
// never reports a zero-value leader.
type Leaderboard struct {
	Goals        *Leader `json:"goals,omitempty"`
	Assists      *Leader `json:"assists,omitempty"`
	Blocks       *Leader `json:"blocks,omitempty"`
	Turnovers    *Leader `json:"turnovers,omitempty"`
	PlusMinus    *Leader `json:"plusMinus,omitempty"`
	PointsPlayed *Leader `json:"pointsPlayed,omitempty"`
}

// Consider offers a candidate's updated in-game totals to every slot.
// A slot changes hands only on a strictly greater total; ties keep the
// incumbent. Turnovers and plus-minus are computed from the candidate's
// components at comparison time, never read from a stored counter.
func (lb *Leaderboard) Consider(identity playerstats.Identity, totals playerstats.StatLine) {
	lb.Goals = challenge(lb.Goals, identity, totals.Goals)
	lb.Assists = challenge(lb.Assists, identity, totals.Assists)
	lb.Blocks = challenge(lb.Blocks, identity, totals.Blocks)
	lb.Turnovers = challenge(lb.Turnovers, identity, totals.Turnovers())
	lb.PlusMinus = challenge(lb.PlusMinus, identity, totals.PlusMinus())
	lb.PointsPlayed = challenge(lb.PointsPlayed, identity, totals.PointsPlayed)
}

// Rename updates the display fields of every slot a player holds and
// reports whether any slot changed. Reconciliation uses it when a
// guest's slots move to a real account.
func (lb *Leaderboard) Rename(playerID string, to playerstats.Identity) bool {
	renamed := false
	for _, slot := range []*Leader{lb.Goals, lb.Assists, lb.Blocks, lb.Turnovers, lb.PlusMinus, lb.PointsPlayed} {
		if slot == nil || slot.PlayerID != playerID {
			continue
		}
		slot.PlayerID = to.ID
		slot.PlayerName = to.Name
		renamed = true
	}
	return renamed
}

func challenge(current *Leader, identity playerstats.Identity, total int) *Leader {
	if current == nil {
		if total == 0 {
			return nil
		}
		return &Leader{PlayerID: identity.ID, PlayerName: identity.Name, Total: total}
	}
	if total > current.Total {
		return &Leader{PlayerID: identity.ID, PlayerName: identity.Name, Total: total}
	}
	return current
}
