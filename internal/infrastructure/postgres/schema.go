package postgres

import (
	"context"
	"fmt"
)

// schema crea las dos colecciones planas: users e invoices.
// Filas y abonos viajan como JSONB dentro de la factura (se persiste siempre completa).
const schema = `
CREATE TABLE IF NOT EXISTS users (
	username   TEXT PRIMARY KEY,
	password   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invoices (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	name         TEXT NOT NULL,
	date         TEXT NOT NULL,
	status       TEXT NOT NULL,
	items        JSONB NOT NULL DEFAULT '[]',
	paid_amounts JSONB NOT NULL DEFAULT '[]',
	grand_total  NUMERIC NOT NULL DEFAULT 0,
	total_paid   NUMERIC NOT NULL DEFAULT 0,
	balance      NUMERIC NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_invoices_user_id ON invoices (user_id);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
