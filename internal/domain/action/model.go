package action

// Type is the closed set of recordable play-by-play actions.
type Type string

const (
	TypePull         Type = "Pull"
	TypeCatch        Type = "Catch"
	TypeDrop         Type = "Drop"
	TypeThrowaway    Type = "Throwaway"
	TypeBlock        Type = "Block"
	TypePickup       Type = "Pickup"
	TypeTeamOneScore Type = "TeamOneScore"
	TypeTeamTwoScore Type = "TeamTwoScore"
	TypeTimeout      Type = "Timeout"
	TypeSubstitution Type = "Substitution"
	TypeCallOnField  Type = "CallOnField"
	TypeStall        Type = "Stall"
)

// AllTypes is used by payload validation to reject unknown action names.
var AllTypes = map[Type]struct{}{
	TypePull:         {},
	TypeCatch:        {},
	TypeDrop:         {},
	TypeThrowaway:    {},
	TypeBlock:        {},
	TypePickup:       {},
	TypeTeamOneScore: {},
	TypeTeamTwoScore: {},
	TypeTimeout:      {},
	TypeSubstitution: {},
	TypeCallOnField:  {},
	TypeStall:        {},
}

// Action is one discrete event inside a point. Number defines the
// processing order within the point; PlayerOne is the primary actor
// (thrower, defender, or puller depending on Type) and PlayerTwo the
// optional secondary actor (the receiver or the prior thrower).
type Action struct {
	Number    int    `json:"number"`
	Type      Type   `json:"type"`
	PlayerOne string `json:"playerOne,omitempty"`
	PlayerTwo string `json:"playerTwo,omitempty"`
}

// HasActor reports whether the action names a primary actor. Actions
// without one are skipped by the reducer rather than rejected.
func (a Action) HasActor() bool {
	return a.PlayerOne != ""
}

func (a Action) HasReceiver() bool {
	return a.PlayerTwo != ""
}
