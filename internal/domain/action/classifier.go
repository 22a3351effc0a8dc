package action

// Stateless predicates over a single action, sometimes paired with the
// previous disc-movement action from the same team's sequence. Every
// predicate treats a missing previous action as "no" instead of
// failing, so callers never guard the first action of a point.

// IsTurnover reports whether the acting team gave the disc away.
func IsTurnover(a Action) bool {
	switch a.Type {
	case TypeThrowaway, TypeDrop, TypeStall:
		return true
	}
	return false
}

// IsScore reports whether the action ends the point, for either side.
func IsScore(a Action) bool {
	return a.Type == TypeTeamOneScore || a.Type == TypeTeamTwoScore
}

// IsOpposingTurnoverRecovery reports whether this action picked the
// disc up off a possession the other team lost: a Pickup or Block
// immediately after a Pull, Throwaway, Drop, or Stall.
func IsOpposingTurnoverRecovery(a Action, prev *Action) bool {
	if prev == nil {
		return false
	}
	if a.Type != TypePickup && a.Type != TypeBlock {
		return false
	}
	switch prev.Type {
	case TypePull, TypeThrowaway, TypeDrop, TypeStall:
		return true
	}
	return false
}

// IsCallahan reports whether a score converted a turnover directly
// into a goal with no intervening catch. The previous action must be
// the same team's last disc-movement action.
func IsCallahan(a Action, prev *Action) bool {
	if prev == nil || !IsScore(a) {
		return false
	}
	switch prev.Type {
	case TypePull, TypeDrop, TypeThrowaway:
		return true
	}
	return false
}

// IsCompletion reports whether a catch counts as a completed pass.
// The very first action of a point is the catch of the pull, which is
// not a pass between teammates.
func IsCompletion(a Action) bool {
	return a.Type == TypeCatch && a.Number != 1
}

// IsDiscMovement reports whether the action moves the disc. Stoppages
// must never become the "previous action" used by the context-sensitive
// predicates above.
func IsDiscMovement(a Action) bool {
	switch a.Type {
	case TypeTimeout, TypeSubstitution, TypeCallOnField:
		return false
	}
	return true
}
