package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id    BIGSERIAL PRIMARY KEY,
    name  VARCHAR(255) NOT NULL,
    email VARCHAR(512) NOT NULL,
    CONSTRAINT uq_users_email UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR(255) NOT NULL,
    description VARCHAR(512) NOT NULL,
    available   BOOLEAN NOT NULL,
    owner_id    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    request_id  BIGINT
);

CREATE INDEX IF NOT EXISTS idx_items_owner_id ON items (owner_id);

CREATE TABLE IF NOT EXISTS bookings (
    id         BIGSERIAL PRIMARY KEY,
    start_date TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    end_date   TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    item_id    BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
    booker_id  BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    status     VARCHAR(16) NOT NULL,
    created_at TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    updated_at TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    CONSTRAINT chk_bookings_dates CHECK (start_date < end_date),
    CONSTRAINT chk_bookings_status CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED', 'CANCELED'))
);

CREATE INDEX IF NOT EXISTS idx_bookings_booker_start ON bookings (booker_id, start_date DESC);
CREATE INDEX IF NOT EXISTS idx_bookings_item_status_start ON bookings (item_id, status, start_date);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id    INTEGER PRIMARY KEY,
    name  TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL,
    available   BOOLEAN NOT NULL,
    owner_id    INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    request_id  INTEGER
);

CREATE INDEX IF NOT EXISTS idx_items_owner_id ON items (owner_id);

CREATE TABLE IF NOT EXISTS bookings (
    id         INTEGER PRIMARY KEY,
    start_date DATETIME NOT NULL,
    end_date   DATETIME NOT NULL,
    item_id    INTEGER NOT NULL REFERENCES items (id) ON DELETE CASCADE,
    booker_id  INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    status     TEXT NOT NULL CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED', 'CANCELED')),
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    CHECK (start_date < end_date)
);

CREATE INDEX IF NOT EXISTS idx_bookings_booker_start ON bookings (booker_id, start_date DESC);
CREATE INDEX IF NOT EXISTS idx_bookings_item_status_start ON bookings (item_id, status, start_date);
`

// EnsureSchema создает таблицы, если их нет
func EnsureSchema(ctx context.Context, db *sql.DB, dialect psqlbuilder.Dialect) error {
	schema := postgresSchema
	if dialect == psqlbuilder.SQLite {
		schema = sqliteSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
