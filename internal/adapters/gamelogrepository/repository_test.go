package gamelogrepository

import (
	"slices"
	"testing"
	"time"

	"github.com/rinkstats/streaks/internal/app"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/domaintest"
	"github.com/stretchr/testify/require"
)

// testRepository runs the behaviour shared by all repository implementations
func testRepository(t *testing.T, newRepository func(t *testing.T) GameLogRepository) {
	t.Helper()

	larkin := domaintest.NewPlayerBuilder("8477946").
		WithName("Dylan", "Larkin").
		WithPosition(domain.PositionCenter).
		WithGoalLog(0, 1, 0, 2).
		Build()
	raymond := domaintest.NewPlayerBuilder("8482078").
		WithName("Lucas", "Raymond").
		WithPosition("Right Wing").
		WithGoalLog(0, 0, 1).
		Build()
	seider := domaintest.NewPlayerBuilder("8481542").
		WithName("Moritz", "Seider").
		WithPosition("Defense").
		WithAssistLog(1, 1, 1).
		Build()
	percent := domaintest.NewPlayerBuilder("9000001").
		WithName("Under_score", "100%").
		WithPosition("D").
		WithGoalLog(0, 1).
		Build()

	all := []domain.PlayerGames{larkin, raymond, seider, percent}

	playerIDs := func(players []domain.PlayerGames) []string {
		ids := make([]string, len(players))
		for i, player := range players {
			ids[i] = player.Identity.PlayerID
		}
		return ids
	}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		repo := newRepository(t)

		players, err := repo.GetPlayerGames(t.Context(), domain.PlayerFilter{})
		require.NoError(t, err)
		require.Empty(t, players)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		repo := newRepository(t)
		require.NoError(t, repo.StorePlayerGames(t.Context(), all))

		players, err := repo.GetPlayerGames(t.Context(), domain.PlayerFilter{})
		require.NoError(t, err)

		// Ordered by player id
		require.Equal(t, []string{"8477946", "8481542", "8482078", "9000001"}, playerIDs(players))
		require.Equal(t, larkin.Identity, players[0].Identity)
		require.Len(t, players[0].Games, 3)
		for i, game := range players[0].Games {
			require.True(t, game.GameDate.Equal(domaintest.Day(i)))
			require.Equal(t, larkin.Games[i].Goals, game.Goals)
			require.Equal(t, larkin.Games[i].Shots, game.Shots)
			require.Equal(t, 15*time.Minute, game.TimeOnIce)
		}
		require.Equal(t, domain.Position("Right Wing"), players[2].Identity.Position)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		t.Parallel()
		repo := newRepository(t)
		require.NoError(t, repo.StorePlayerGames(t.Context(), []domain.PlayerGames{larkin}))

		traded := domaintest.NewPlayerBuilder("8477946").
			WithName("Dylan", "Larkin").
			WithTeam("TOR").
			WithGames(domaintest.NewGameBuilder("8477946", domaintest.Day(0)).WithGoals(3).Build()).
			Build()
		require.NoError(t, repo.StorePlayerGames(t.Context(), []domain.PlayerGames{traded}))

		players, err := repo.GetPlayerGames(t.Context(), domain.PlayerFilter{})
		require.NoError(t, err)
		require.Len(t, players, 1)
		require.Equal(t, "TOR", players[0].Identity.TeamAbbrev)
		require.Len(t, players[0].Games, 3)
		require.Equal(t, 3, players[0].Games[0].Goals)
	})

	t.Run("filter pushdown", func(t *testing.T) {
		t.Parallel()
		repo := newRepository(t)

		debrincat := domaintest.NewPlayerBuilder("8477952").
			WithName("Alex", "DeBrincat").
			WithPosition("LEFT_WING").
			WithGoalLog(0, 1).
			Build()
		copp := domaintest.NewPlayerBuilder("8477589").
			WithName("Andrew", "Copp").
			WithPosition(" center ").
			WithGoalLog(0, 0).
			Build()
		berube := domaintest.NewPlayerBuilder("9000002").
			WithName("Élie", "Bérubé").
			WithPosition("C").
			WithGoalLog(0, 1).
			Build()
		kane := domaintest.NewPlayerBuilder("8474141").
			WithName("Patrick", "\u212Aane").
			WithPosition("rw").
			WithGoalLog(0, 1).
			Build()
		stored := append(slices.Clone(all), debrincat, copp, berube, kane)
		require.NoError(t, repo.StorePlayerGames(t.Context(), stored))

		everyone, err := repo.GetPlayerGames(t.Context(), domain.PlayerFilter{})
		require.NoError(t, err)

		cases := []struct {
			name   string
			filter domain.PlayerFilter
			want   []string
		}{
			{name: "center", filter: domain.PlayerFilter{Position: "C"}, want: []string{"8477589", "8477946", "9000002"}},
			{name: "full word spelling", filter: domain.PlayerFilter{Position: "r"}, want: []string{"8474141", "8482078"}},
			{name: "left wing encodings", filter: domain.PlayerFilter{Position: "L"}, want: []string{"8477952"}},
			{name: "defense both spellings", filter: domain.PlayerFilter{Position: "Defense"}, want: []string{"8481542", "9000001"}},
			{name: "unknown position", filter: domain.PlayerFilter{Position: "G"}, want: []string{}},
			{name: "last name", filter: domain.PlayerFilter{NameQuery: "LARK"}, want: []string{"8477946"}},
			{name: "first name", filter: domain.PlayerFilter{NameQuery: "cas"}, want: []string{"8482078"}},
			{name: "accented name", filter: domain.PlayerFilter{NameQuery: "élie"}, want: []string{"9000002"}},
			{name: "accented name uppercase", filter: domain.PlayerFilter{NameQuery: "BÉRUB"}, want: []string{"9000002"}},
			{name: "unicode case folding", filter: domain.PlayerFilter{NameQuery: "kane"}, want: []string{"8474141"}},
			{name: "underscore is literal", filter: domain.PlayerFilter{NameQuery: "r_s"}, want: []string{"9000001"}},
			{name: "percent is literal", filter: domain.PlayerFilter{NameQuery: "0%"}, want: []string{"9000001"}},
			{name: "wildcard does not match", filter: domain.PlayerFilter{NameQuery: "%"}, want: []string{"9000001"}},
			{name: "combined", filter: domain.PlayerFilter{Position: "D", NameQuery: "seid"}, want: []string{"8481542"}},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				pushedDown, err := repo.GetPlayerGames(t.Context(), c.filter)
				require.NoError(t, err)

				// The pushdown may keep extra players, but never drops one the filter accepts
				require.Equal(t, c.want, playerIDs(app.FilterPlayers(pushedDown, c.filter)))
				require.Equal(t, app.FilterPlayers(everyone, c.filter), app.FilterPlayers(pushedDown, c.filter))
			})
		}
	})

	t.Run("invalid player", func(t *testing.T) {
		t.Parallel()
		repo := newRepository(t)

		err := repo.StorePlayerGames(t.Context(), []domain.PlayerGames{{}})
		require.Error(t, err)
	})
}
