package connection

// Key identifies a thrower/receiver pairing. The pair is ordered:
// (A, B) tracks A throwing to B, (B, A) is a separate record.
type Key struct {
	ThrowerID  string
	ReceiverID string
}

// Record accumulates what happened between one thrower and one
// receiver, optionally scoped to a game. A GameID of "" marks the
// lifetime aggregate for the pair.
type Record struct {
	ThrowerID  string `db:"thrower_id" json:"throwerId"`
	ReceiverID string `db:"receiver_id" json:"receiverId"`
	GameID     string `db:"game_id" json:"gameId,omitempty"`
	TeamID     string `db:"team_id" json:"teamId,omitempty"`
	Catches    int    `db:"catches" json:"catches"`
	Drops      int    `db:"drops" json:"drops"`
	Scores     int    `db:"scores" json:"scores"`
}

func (r Record) Key() Key {
	return Key{ThrowerID: r.ThrowerID, ReceiverID: r.ReceiverID}
}

// IsZero reports whether the pair has no recorded activity.
func (r Record) IsZero() bool {
	return r.Catches == 0 && r.Drops == 0 && r.Scores == 0
}

// Merge returns a record with base's key and the summed counters of
// both records. Keys are not compared; the caller picks the records to
// fold together.
func Merge(base, delta Record) Record {
	base.Catches += delta.Catches
	base.Drops += delta.Drops
	base.Scores += delta.Scores
	return base
}
