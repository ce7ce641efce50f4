package dialects

import "strconv"

// PostgresDialect implements PostgreSQL-specific SQL dialect.
// It is also the default dialect.
type PostgresDialect struct{}

func init() {
	RegisterDialect("", &PostgresDialect{})
	RegisterDialect("default", &PostgresDialect{})
	RegisterDialect("postgres", &PostgresDialect{})
	RegisterDialect("postgresql", &PostgresDialect{})
}

// Name returns "postgresql".
func (d *PostgresDialect) Name() string {
	return "postgresql"
}

// Paginate returns "LIMIT <limit> OFFSET <offset>".
func (d *PostgresDialect) Paginate(limit, offset int) string {
	return "LIMIT " + strconv.Itoa(limit) + " OFFSET " + strconv.Itoa(offset)
}
