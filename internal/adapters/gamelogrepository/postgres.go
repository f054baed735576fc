package gamelogrepository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Postgres struct {
	db     *sqlx.DB
	schema string

	tracer trace.Tracer
}

func NewPostgres(db *sqlx.DB, schema string) *Postgres {
	return &Postgres{
		db:     db,
		schema: schema,

		tracer: otel.Tracer("rinkstats/gamelogrepository/postgres"),
	}
}

func (p *Postgres) GetPlayerGames(ctx context.Context, filter domain.PlayerFilter) ([]domain.PlayerGames, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetPlayerGames")
	defer span.End()

	query, args := selectPlayerGamesQuery(sqlDialect{
		tablePrefix: pq.QuoteIdentifier(p.schema) + ".",
		dateExpr:    "to_char(g.game_date, 'YYYY-MM-DD')",
		// Case folding in postgres depends on the database locale, names are filtered in memory
		lowerFunc: "",
	}, filter)

	var rows []dbGameLogRow
	if err := p.db.SelectContext(ctx, &rows, p.db.Rebind(query), args...); err != nil {
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

func (p *Postgres) StorePlayerGames(ctx context.Context, players []domain.PlayerGames) error {
	ctx, span := p.tracer.Start(ctx, "Postgres.StorePlayerGames")
	defer span.End()

	txx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("failed to start transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}
	defer txx.Rollback()

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(p.schema)))
	if err != nil {
		err := fmt.Errorf("failed to set search path: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"schema": p.schema,
		})
		return err
	}

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
