package domain

// RecencyQuery selects the players' last WindowSize games
type RecencyQuery struct {
	Filter     PlayerFilter
	WindowSize int
	// Empty selects points
	SortKey StatKey
	Page    int
	Limit   int
}

// StreakQuery selects the players' active runs of Kind within the last Lookback games
type StreakQuery struct {
	Filter PlayerFilter
	Kind   PredicateKind
	// Zero selects the default lookback
	Lookback int
	// Empty selects the stat of Kind
	SortKey StatKey
	Page    int
	Limit   int
}

// LeaderboardRequest is a leaderboard query as received from a client, before parsing
type LeaderboardRequest struct {
	ActiveFilter string
	Position     string
	SortBy       string
	SearchQuery  string
	Page         int
	Limit        int
}
