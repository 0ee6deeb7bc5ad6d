package database

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PgxDialect implements Dialect for PostgreSQL through the pgx stdlib driver.
// It shares the SQL and migrations of PostgresDialect.
type PgxDialect struct {
	PostgresDialect
}

// NewPgxDialect creates a new pgx-backed PostgreSQL dialect
func NewPgxDialect() *PgxDialect {
	return &PgxDialect{}
}

func (d *PgxDialect) DriverName() string {
	return "pgx"
}

func (d *PgxDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return nil
}
