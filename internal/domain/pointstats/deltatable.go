package pointstats

import (
	"github.com/hucklog/ultimate-stats/internal/domain/action"
	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
)

// statDelta is one row of the static (action type, role) mapping: the
// counters credited to the primary actor and, when present, to the
// secondary actor.
type statDelta struct {
	primary   func(*playerstats.StatLine)
	secondary func(*playerstats.StatLine)
}

var scoreDelta = statDelta{
	primary: func(s *playerstats.StatLine) {
		s.Goals++
		s.Touches++
		s.Catches++
	},
	secondary: func(s *playerstats.StatLine) {
		s.Assists++
		s.CompletedPasses++
	},
}

// deltaTable maps every action type to its role credits. Stoppages map
// to nothing on purpose; they are listed so an unknown type can be told
// apart from a known no-op.
var deltaTable = map[action.Type]statDelta{
	action.TypePull: {
		primary: func(s *playerstats.StatLine) { s.Pulls++ },
	},
	action.TypeCatch: {
		primary: func(s *playerstats.StatLine) {
			s.Touches++
			s.Catches++
		},
		secondary: func(s *playerstats.StatLine) { s.CompletedPasses++ },
	},
	action.TypeDrop: {
		primary:   func(s *playerstats.StatLine) { s.Drops++ },
		secondary: func(s *playerstats.StatLine) { s.DroppedPasses++ },
	},
	action.TypeThrowaway: {
		primary: func(s *playerstats.StatLine) { s.Throwaways++ },
	},
	action.TypeBlock: {
		primary: func(s *playerstats.StatLine) { s.Blocks++ },
	},
	action.TypePickup: {
		primary: func(s *playerstats.StatLine) { s.Touches++ },
	},
	action.TypeStall: {
		primary: func(s *playerstats.StatLine) { s.Stalls++ },
	},
	action.TypeTeamOneScore: scoreDelta,
	action.TypeTeamTwoScore: scoreDelta,
	action.TypeTimeout:      {},
	action.TypeSubstitution: {},
	action.TypeCallOnField:  {},
}
