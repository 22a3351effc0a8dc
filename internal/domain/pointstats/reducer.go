// Package pointstats folds one team's ordered action sequence for a
// single point into additive per-player and per-team stat deltas. The
// same reduction runs once per side; a Perspective parameter tells it
// which score type belongs to "us" and whether we pulled or received,
// so there is no separate team-one/team-two code path to drift apart.
package pointstats

import (
	"sort"

	"github.com/hucklog/ultimate-stats/internal/domain/action"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
	"github.com/hucklog/ultimate-stats/internal/domain/teamstats"
)

// Side distinguishes the two recording sides of a game.
type Side int

const (
	SideTeamOne Side = iota + 1
	SideTeamTwo
)

// ScoreType is the action type that means this side scored.
func (s Side) ScoreType() action.Type {
	if s == SideTeamOne {
		return action.TypeTeamOneScore
	}
	return action.TypeTeamTwoScore
}

// Perspective is one side's view of a point.
type Perspective struct {
	TeamID   string
	Side     Side
	Pulled   bool
	Received bool
}

// sortActions returns the sequence ordered by action number. Caller
// order is never trusted; the reducer is deterministic under any input
// permutation.
func sortActions(actions []action.Action) []action.Action {
	sorted := make([]action.Action, len(actions))
	copy(sorted, actions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})
	return sorted
}

// ReducePlayers computes each roster member's delta for the point.
// Every roster member starts with PointsPlayed = 1 whether or not they
// touched the disc. Actions without a primary actor are skipped.
func ReducePlayers(roster []playerstats.Identity, actions []action.Action) map[string]playerstats.StatLine {
	deltas := make(map[string]playerstats.StatLine, len(roster))
	for _, member := range roster {
		deltas[member.ID] = playerstats.StatLine{PointsPlayed: 1}
	}

	var prev *action.Action
	for _, act := range sortActions(actions) {
		act := act
		if !act.HasActor() {
			continue
		}

		row, known := deltaTable[act.Type]
		if known && row.primary != nil {
			line := deltas[act.PlayerOne]
			row.primary(&line)
			if action.IsCallahan(act, prev) {
				// The scorer intercepted the disc themselves: the goal
				// counts as both a block and a callahan on top of the
				// usual score credits.
				line.Callahans++
				line.Blocks++
			}
			deltas[act.PlayerOne] = line
		}
		if known && row.secondary != nil && act.HasReceiver() {
			line := deltas[act.PlayerTwo]
			row.secondary(&line)
			deltas[act.PlayerTwo] = line
		}
		if action.IsScore(act) && prev != nil && prev.Type == action.TypeCatch && prev.HasReceiver() {
			// The throw before the assist: a hockey assist for whoever
			// put the disc in the assister's hands.
			line := deltas[prev.PlayerTwo]
			line.HockeyAssists++
			deltas[prev.PlayerTwo] = line
		}

		if action.IsDiscMovement(act) {
			prev = &act
		}
	}

	return deltas
}

// ReduceTeam computes the side's team delta for the point and
// classifies the point as an offense or defense point from the
// perspective's pull assignment. A side that neither pulled nor
// received gets no classification.
func ReduceTeam(actions []action.Action, persp Perspective) teamstats.StatLine {
	var delta teamstats.StatLine
	scored := false

	var prev *action.Action
	for _, act := range sortActions(actions) {
		act := act
		switch {
		case act.Type == action.TypeDrop || act.Type == action.TypeThrowaway:
			delta.Turnovers++
		case act.Type == action.TypeBlock:
			delta.TurnoversForced++
		case act.Type == action.TypePickup:
			// A pickup off a live disc forced a turnover unless the
			// block right before it already took the credit.
			if prev == nil || prev.Type != action.TypeBlock {
				delta.TurnoversForced++
			}
		case action.IsScore(act):
			if act.Type == persp.Side.ScoreType() {
				delta.GoalsFor++
				scored = true
				// A callahan is our own interception: the score itself
				// forced the turnover.
				if action.IsCallahan(act, prev) {
					delta.TurnoversForced++
				}
			} else {
				delta.GoalsAgainst++
			}
		}

		if action.IsDiscMovement(act) {
			prev = &act
		}
	}

	switch {
	case persp.Pulled:
		delta.DefensePoints++
		if scored {
			delta.Breaks++
		}
	case persp.Received:
		delta.OffensePoints++
		if scored {
			delta.Holds++
			if delta.Turnovers == 0 {
				delta.TurnoverFreeHolds++
			}
		}
	}

	return delta
}
