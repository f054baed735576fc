package gamelogrepository

import (
	"context"
	"database/sql/driver"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"modernc.org/sqlite"
)

//go:embed schema.sql
var sqliteSchema string

// The builtin lower() only folds ASCII
const sqliteLowerFunc = "unicode_lower"

var sqliteDialect = sqlDialect{
	tablePrefix: "",
	dateExpr:    "g.game_date",
	lowerFunc:   sqliteLowerFunc,
}

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}

type SQLite struct {
	db *sqlx.DB

	tracer trace.Tracer
}

// OpenSQLite opens or creates the game log database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One connection, so an in-memory database is shared by all queries
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLite{
		db:     db,
		tracer: otel.Tracer("rinkstats/gamelogrepository/sqlite"),
	}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) GetPlayerGames(ctx context.Context, filter domain.PlayerFilter) ([]domain.PlayerGames, error) {
	ctx, span := s.tracer.Start(ctx, "SQLite.GetPlayerGames")
	defer span.End()

	query, args := selectPlayerGamesQuery(sqliteDialect, filter)

	var rows []dbGameLogRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		err := fmt.Errorf("failed to select game logs: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"position":  filter.Position,
			"nameQuery": filter.NameQuery,
		})
		return nil, err
	}

	players, err := groupRows(rows)
	if err != nil {
		reporting.Report(ctx, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("players", len(players)), attribute.Int("rows", len(rows)))

	return players, nil
}

func (s *SQLite) StorePlayerGames(ctx context.Context, players []domain.PlayerGames) error {
	ctx, span := s.tracer.Start(ctx, "SQLite.StorePlayerGames")
	defer span.End()

	txx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("failed to start transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}
	defer txx.Rollback()

	if err := storePlayerGames(ctx, txx, players); err != nil {
		reporting.Report(ctx, err, map[string]string{
			"players": strconv.Itoa(len(players)),
		})
		return err
	}

	if err := txx.Commit(); err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	return nil
}
