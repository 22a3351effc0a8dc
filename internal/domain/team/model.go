package team

import "fmt"

// Team is one club and its membership. PlayerIDs is a set expressed as
// a slice; membership carries no counters, so reconciliation edits it
// by removal or in-place replacement rather than by merging.
type Team struct {
	ID        string
	Name      string
	PlayerIDs []string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// HasPlayer reports whether the player is on the roster.
func (t Team) HasPlayer(playerID string) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// ReplacePlayer swaps every occurrence of from with to, in place.
func (t *Team) ReplacePlayer(from, to string) {
	for i, id := range t.PlayerIDs {
		if id == from {
			t.PlayerIDs[i] = to
		}
	}
}

// RemovePlayer drops every occurrence of the player from the roster.
func (t *Team) RemovePlayer(playerID string) {
	kept := t.PlayerIDs[:0]
	for _, id := range t.PlayerIDs {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	t.PlayerIDs = kept
}
