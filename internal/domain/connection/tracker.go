package connection

import "github.com/hucklog/ultimate-stats/internal/domain/action"

// InitializeMap returns a zero-valued record for every ordered pair of
// distinct roster members, N*(N-1) entries in total, so every possible
// pairing has a defined record even with zero activity.
func InitializeMap(playerIDs []string, gameID, teamID string) map[Key]*Record {
	out := make(map[Key]*Record, len(playerIDs)*(len(playerIDs)-1))
	for _, thrower := range playerIDs {
		for _, receiver := range playerIDs {
			if thrower == receiver {
				continue
			}
			key := Key{ThrowerID: thrower, ReceiverID: receiver}
			out[key] = &Record{
				ThrowerID:  thrower,
				ReceiverID: receiver,
				GameID:     gameID,
				TeamID:     teamID,
			}
		}
	}
	return out
}

// Track folds one team's action sequence into the pre-populated pair
// map. The secondary actor of a Catch, Drop, or score is the thrower
// and the primary actor the receiver, so the pair key is (secondary,
// primary). Actions missing either actor, or naming a pairing outside
// the roster, are skipped.
func Track(pairs map[Key]*Record, actions []action.Action) {
	for _, act := range actions {
		if !act.HasActor() || !act.HasReceiver() {
			continue
		}

		rec, ok := pairs[Key{ThrowerID: act.PlayerTwo, ReceiverID: act.PlayerOne}]
		if !ok {
			continue
		}

		switch {
		case act.Type == action.TypeCatch:
			rec.Catches++
		case act.Type == action.TypeDrop:
			rec.Drops++
		case action.IsScore(act):
			// A score is by construction also a completed catch.
			rec.Catches++
			rec.Scores++
		}
	}
}

// Active filters the pair map down to records that saw any activity.
func Active(pairs map[Key]*Record) []Record {
	out := make([]Record, 0, len(pairs))
	for _, rec := range pairs {
		if rec.IsZero() {
			continue
		}
		out = append(out, *rec)
	}
	return out
}
