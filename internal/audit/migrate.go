package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the tables this package writes to. Kept as plain
// inline DDL rather than an external migration tool, matching the
// teacher's own approach to schema setup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists signal_log (
			id bigserial primary key,
			symbol text not null,
			timeframe text not null,
			closed_at bigint not null,
			regime text not null,
			signal text not null,
			score int not null,
			price double precision not null,
			entry_hint double precision not null,
			sl_hint double precision not null,
			tp_hint double precision not null,
			rationale jsonb not null default '[]'::jsonb,
			indicators jsonb not null default '{}'::jsonb,
			sr jsonb not null default '{}'::jsonb,
			recorded_at timestamptz not null default now()
		);`,
		`create index if not exists signal_log_symbol_tf_closed_idx
			on signal_log(symbol, timeframe, closed_at desc);`,
		`create table if not exists snapshot_log (
			id bigserial primary key,
			symbol text not null,
			closed_at bigint not null,
			consensus text not null,
			per_tf jsonb not null default '{}'::jsonb,
			recorded_at timestamptz not null default now()
		);`,
		`create index if not exists snapshot_log_symbol_closed_idx
			on snapshot_log(symbol, closed_at desc);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
