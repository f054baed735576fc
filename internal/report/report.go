package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rinkstats/streaks/internal/domain"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func playerName(identity domain.PlayerIdentity) string {
	return fmt.Sprintf("%s %s", identity.FirstName, identity.LastName)
}

// PrintRecencyTable writes one line per row, ranked as given.
// rank is the position of the first row, so later pages keep counting.
func PrintRecencyTable(w io.Writer, rows []domain.AggregateRow, rank int) error {
	table := newTable(w)
	table.Header("#", "PLAYER", "TEAM", "POS", "GP", "G", "A", "P", "SOG", "TOI")

	for i, row := range rows {
		err := table.Append(
			strconv.Itoa(rank+i),
			playerName(row.Player),
			row.Player.TeamAbbrev,
			string(domain.NormalizePosition(string(row.Player.Position))),
			strconv.Itoa(row.GamesPlayed),
			strconv.Itoa(row.TotalGoals),
			strconv.Itoa(row.TotalAssists),
			strconv.Itoa(row.TotalPoints),
			strconv.Itoa(row.TotalShots),
			domain.FormatTOI(row.AvgTOI),
		)
		if err != nil {
			return fmt.Errorf("append row for player %s: %w", row.Player.PlayerID, err)
		}
	}
	return table.Render()
}

// PrintStreakTable is PrintRecencyTable with the streak length and dates
func PrintStreakTable(w io.Writer, rows []domain.AggregateRow, rank int) error {
	table := newTable(w)
	table.Header("#", "PLAYER", "TEAM", "POS", "STREAK", "FROM", "TO", "G", "A", "P", "SOG", "TOI")

	for i, row := range rows {
		err := table.Append(
			strconv.Itoa(rank+i),
			playerName(row.Player),
			row.Player.TeamAbbrev,
			string(domain.NormalizePosition(string(row.Player.Position))),
			strconv.Itoa(row.StreakLength),
			row.StreakStart.Format(time.DateOnly),
			row.StreakEnd.Format(time.DateOnly),
			strconv.Itoa(row.TotalGoals),
			strconv.Itoa(row.TotalAssists),
			strconv.Itoa(row.TotalPoints),
			strconv.Itoa(row.TotalShots),
			domain.FormatTOI(row.AvgTOI),
		)
		if err != nil {
			return fmt.Errorf("append row for player %s: %w", row.Player.PlayerID, err)
		}
	}
	return table.Render()
}

// PrintNextGame writes a one line summary of a team's next game
func PrintNextGame(w io.Writer, nextGame domain.NextGame) {
	venue := "at"
	if nextGame.IsHome {
		venue = "vs"
	}
	when := nextGame.StartTimeUTC.UTC().Format("2006-01-02 15:04 MST")
	if nextGame.IsToday {
		when = "today " + nextGame.StartTimeUTC.UTC().Format("15:04 MST")
	}
	fmt.Fprintf(w, "%s %s %s, %s\n", nextGame.Team, venue, nextGame.Opponent, when)
}
