package domaintest

import (
	"slices"

	"github.com/rinkstats/streaks/internal/domain"
)

type playerBuilder struct {
	player *domain.PlayerGames
}

func (pb *playerBuilder) WithName(firstName, lastName string) *playerBuilder {
	pb.player.Identity.FirstName = firstName
	pb.player.Identity.LastName = lastName
	return pb
}

func (pb *playerBuilder) WithTeam(teamAbbrev string) *playerBuilder {
	pb.player.Identity.TeamAbbrev = teamAbbrev
	return pb
}

func (pb *playerBuilder) WithPosition(position domain.Position) *playerBuilder {
	pb.player.Identity.Position = position
	return pb
}

func (pb *playerBuilder) WithGames(games ...domain.GameRecord) *playerBuilder {
	pb.player.Games = append(pb.player.Games, games...)
	return pb
}

// WithGoalLog adds one game per consecutive day starting at firstDay, with the given goals
func (pb *playerBuilder) WithGoalLog(firstDay int, goals ...int) *playerBuilder {
	for i, g := range goals {
		pb.player.Games = append(pb.player.Games,
			NewGameBuilder(pb.player.Identity.PlayerID, Day(firstDay+i)).WithGoals(g).WithShots(g+2).Build(),
		)
	}
	return pb
}

// WithAssistLog adds one game per consecutive day starting at firstDay, with the given assists
func (pb *playerBuilder) WithAssistLog(firstDay int, assists ...int) *playerBuilder {
	for i, a := range assists {
		pb.player.Games = append(pb.player.Games,
			NewGameBuilder(pb.player.Identity.PlayerID, Day(firstDay+i)).WithAssists(a).WithShots(1).Build(),
		)
	}
	return pb
}

func (pb *playerBuilder) Build() domain.PlayerGames {
	// Make a copy, so further mutations to the builder don't affect the returned player
	return domain.PlayerGames{
		Identity: pb.player.Identity,
		Games:    slices.Clone(pb.player.Games),
	}
}

func NewPlayerBuilder(playerID string) *playerBuilder {
	return &playerBuilder{
		player: &domain.PlayerGames{
			Identity: domain.PlayerIdentity{
				PlayerID:   playerID,
				FirstName:  "First" + playerID,
				LastName:   "Last" + playerID,
				TeamAbbrev: "DET",
				Position:   domain.PositionCenter,
			},
		},
	}
}
