package gamelogrepository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rinkstats/streaks/internal/domain"
)

type dbGameLogRow struct {
	PlayerID   string `db:"player_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	TeamAbbrev string `db:"team_abbrev"`
	Position   string `db:"position"`
	GameDate   string `db:"game_date"`
	Goals      int    `db:"goals"`
	Assists    int    `db:"assists"`
	Shots      int    `db:"shots"`
	TOISeconds int    `db:"toi_seconds"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// sqlDialect holds the per-database parts of the select query
type sqlDialect struct {
	// tablePrefix qualifies the tables
	tablePrefix string
	// dateExpr renders game_date as YYYY-MM-DD
	dateExpr string
	// lowerFunc must lowercase like strings.ToLower. Empty disables the name pushdown.
	lowerFunc string
}

// filterClause renders the pushdown filter as a WHERE clause using ? placeholders.
// The clause may select more players than app.FilterPlayers keeps, never fewer.
func filterClause(dialect sqlDialect, filter domain.PlayerFilter) (string, []any) {
	conditions := []string{}
	args := []any{}

	if token := strings.TrimSpace(filter.Position); token != "" {
		wanted := domain.NormalizePosition(token)
		if wanted.IsKnown() {
			// The stored value may carry surrounding whitespace
			spellings := wanted.Spellings()
			matches := make([]string, len(spellings))
			for i, spelling := range spellings {
				matches[i] = `upper(p.position) LIKE ? ESCAPE '\'`
				args = append(args, containsPattern(spelling))
			}
			conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
		} else {
			conditions = append(conditions, "p.position = ?")
			args = append(args, string(wanted))
		}
	}

	if dialect.lowerFunc != "" && strings.TrimSpace(filter.NameQuery) != "" {
		pattern := containsPattern(strings.ToLower(filter.NameQuery))
		conditions = append(conditions, fmt.Sprintf(
			`(%[1]s(p.first_name) LIKE ? ESCAPE '\' OR %[1]s(p.last_name) LIKE ? ESCAPE '\')`,
			dialect.lowerFunc,
		))
		args = append(args, pattern, pattern)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// selectPlayerGamesQuery joins players and game logs
func selectPlayerGamesQuery(dialect sqlDialect, filter domain.PlayerFilter) (string, []any) {
	where, args := filterClause(dialect, filter)
	query := fmt.Sprintf(`SELECT
		p.player_id, p.first_name, p.last_name, p.team_abbrev, p.position,
		%s AS game_date, g.goals, g.assists, g.shots, g.toi_seconds
		FROM %splayers p
		JOIN %sgame_logs g ON g.player_id = p.player_id
		%s
		ORDER BY p.player_id ASC, g.game_date ASC`,
		dialect.dateExpr, dialect.tablePrefix, dialect.tablePrefix, where,
	)
	return query, args
}

// groupRows folds rows ordered by player into one entry per player
func groupRows(rows []dbGameLogRow) ([]domain.PlayerGames, error) {
	players := []domain.PlayerGames{}
	for _, row := range rows {
		gameDate, err := time.Parse(time.DateOnly, row.GameDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse game date %q for player %s: %w", row.GameDate, row.PlayerID, err)
		}

		if len(players) == 0 || players[len(players)-1].Identity.PlayerID != row.PlayerID {
			players = append(players, domain.PlayerGames{
				Identity: domain.PlayerIdentity{
					PlayerID:   row.PlayerID,
					FirstName:  row.FirstName,
					LastName:   row.LastName,
					TeamAbbrev: row.TeamAbbrev,
					Position:   domain.Position(row.Position),
				},
			})
		}

		current := &players[len(players)-1]
		current.Games = append(current.Games, domain.GameRecord{
			PlayerID:  row.PlayerID,
			GameDate:  gameDate,
			Goals:     row.Goals,
			Assists:   row.Assists,
			Shots:     row.Shots,
			TimeOnIce: time.Duration(row.TOISeconds) * time.Second,
		})
	}
	return players, nil
}

// storePlayerGames upserts within txx. Tables are referenced unqualified.
func storePlayerGames(ctx context.Context, txx *sqlx.Tx, players []domain.PlayerGames) error {
	upsertPlayer := txx.Rebind(`INSERT INTO players
		(player_id, first_name, last_name, team_abbrev, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (player_id)
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			team_abbrev = EXCLUDED.team_abbrev,
			position = EXCLUDED.position`)

	upsertGame := txx.Rebind(`INSERT INTO game_logs
		(player_id, game_date, goals, assists, shots, toi_seconds)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (player_id, game_date)
		DO UPDATE SET
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			shots = EXCLUDED.shots,
			toi_seconds = EXCLUDED.toi_seconds`)

	for _, player := range players {
		identity := player.Identity
		if identity.PlayerID == "" {
			return fmt.Errorf("player id is empty")
		}

		_, err := txx.ExecContext(ctx, upsertPlayer,
			identity.PlayerID, identity.FirstName, identity.LastName, identity.TeamAbbrev, string(identity.Position),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", identity.PlayerID, err)
		}

		for _, game := range player.Games {
			_, err := txx.ExecContext(ctx, upsertGame,
				identity.PlayerID,
				game.GameDate.Format(time.DateOnly),
				game.Goals,
				game.Assists,
				game.Shots,
				int64(game.TimeOnIce/time.Second),
			)
			if err != nil {
				return fmt.Errorf("failed to upsert game log for player %s on %s: %w", identity.PlayerID, game.GameDate.Format(time.DateOnly), err)
			}
		}
	}
	return nil
}
