package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const gameLogFixture = `[
	{
		"player_id": "8477946", "first_name": "Dylan", "last_name": "Larkin", "team_abbrev": "DET", "position": "C",
		"games": [
			{"game_date": "2024-10-10", "goals": 1, "assists": 0, "shots": 4, "toi": "19:42"},
			{"game_date": "2024-10-12", "goals": 0, "assists": 0, "shots": 2, "toi": "18:10"},
			{"game_date": "2024-10-14", "goals": 2, "assists": 1, "shots": 5, "toi": "20:01"},
			{"game_date": "2024-10-16", "goals": 1, "assists": 1, "shots": 3, "toi": "21:30"}
		]
	},
	{
		"player_id": "8480069", "first_name": "Cale", "last_name": "Makar", "team_abbrev": "COL", "position": "Defense",
		"games": [
			{"game_date": "2024-10-11", "goals": 0, "assists": 1, "shots": 1, "toi": "24:00"},
			{"game_date": "2024-10-13", "goals": 1, "assists": 2, "shots": 6, "toi": "25:00"},
			{"game_date": "2024-10-15", "goals": 0, "assists": 1, "shots": 2, "toi": "26:00"}
		]
	}
]`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// Not parallel, the commands share flag variables
func TestCLI(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nested", "games.db")
	fixture := filepath.Join(dir, "games.json")
	require.NoError(t, os.WriteFile(fixture, []byte(gameLogFixture), 0o644))

	out, err := runCLI(t, "--db", db, "import", fixture)
	require.NoError(t, err)
	require.Contains(t, out, "Imported 7 games for 2 players")

	out, err = runCLI(t, "--db", db, "recency", "--window", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Dylan Larkin")
	require.Contains(t, out, "Cale Makar")

	out, err = runCLI(t, "--db", db, "recency", "--window", "3", "--position", "defense")
	require.NoError(t, err)
	require.Contains(t, out, "Cale Makar")
	require.NotContains(t, out, "Larkin")

	out, err = runCLI(t, "--db", db, "streak", "--kind", "goal", "--position", "", "--name", "lark")
	require.NoError(t, err)
	require.Contains(t, out, "2024-10-14")
	require.Contains(t, out, "2024-10-16")

	out, err = runCLI(t, "--db", db, "streak", "--kind", "goal", "--name", "makar")
	require.NoError(t, err)
	require.Contains(t, out, "No players match")

	_, err = runCLI(t, "--db", db, "recency", "--window", "4", "--name", "")
	require.ErrorContains(t, err, "window size 4")

	_, err = runCLI(t, "--db", db, "streak", "--kind", "hattrick")
	require.Error(t, err)

	_, err = runCLI(t, "--db", db, "recency", "--window", "3", "--sort", "toi")
	require.ErrorContains(t, err, "unsupported --sort")
}
