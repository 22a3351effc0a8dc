package memory

import "github.com/hucklog/ultimate-stats/internal/domain/team"

// SeedTeams returns a small fixture roster for running the service
// without a database. IDs are stable so local clients can script
// against them.
func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID:   "huckers",
			Name: "Midnight Huckers",
			PlayerIDs: []string{
				"alice", "bob", "carol", "dmitri", "erin", "frank", "grace",
			},
		},
		{
			ID:   "breakside",
			Name: "Breakside Union",
			PlayerIDs: []string{
				"xavier", "yusuf", "zara", "quinn", "piotr", "nadia", "omar",
			},
		},
	}
}
