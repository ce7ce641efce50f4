//go:build integration
// +build integration

package test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO required)
)

// DatabaseSetup encapsulates database connection and cleanup.
type DatabaseSetup struct {
	DB        *sqlx.DB
	Container testcontainers.Container
	Engine    string
}

// Close cleans up database resources.
func (ds *DatabaseSetup) Close() {
	if ds.DB != nil {
		ds.DB.Close() //nolint:errcheck
	}
	if ds.Container != nil {
		ds.Container.Terminate(context.Background()) //nolint:errcheck
	}
}

// SetupPostgreSQLTestDB creates a PostgreSQL test database.
// Uses testcontainers if available, falls back to env DSN.
func SetupPostgreSQLTestDB(t *testing.T) *DatabaseSetup {
	ctx := context.Background()

	if dsn := os.Getenv("POSTGRES_TEST_DSN"); dsn != "" {
		db, err := sqlx.Connect("postgres", dsn)
		require.NoError(t, err)
		return &DatabaseSetup{DB: db, Engine: "postgres"}
	}

	pgContainer, err := postgres.Run(
		ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skip("Docker not available for PostgreSQL integration tests: " + err.Error())
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	return &DatabaseSetup{
		DB:        db,
		Container: pgContainer,
		Engine:    "postgres",
	}
}

// SetupMySQLTestDB creates a MySQL test database.
// Uses testcontainers if available, falls back to env DSN.
//
// The session runs in ANSI mode so double-quoted identifiers and
// "LOWER (" with a space parse the same way they do in PostgreSQL.
func SetupMySQLTestDB(t *testing.T) *DatabaseSetup {
	ctx := context.Background()

	if dsn := os.Getenv("MYSQL_TEST_DSN"); dsn != "" {
		db, err := sqlx.Connect("mysql", withANSIMode(dsn))
		require.NoError(t, err)
		return &DatabaseSetup{DB: db, Engine: "mysql"}
	}

	mysqlContainer, err := mysql.Run(
		ctx,
		"mysql:8.0",
		mysql.WithDatabase("testdb"),
		mysql.WithUsername("user"),
		mysql.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skip("Docker not available for MySQL integration tests: " + err.Error())
	}

	dsn, err := mysqlContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := sqlx.Connect("mysql", withANSIMode(dsn))
	require.NoError(t, err)

	return &DatabaseSetup{
		DB:        db,
		Container: mysqlContainer,
		Engine:    "mysql",
	}
}

// SetupSQLiteTestDB creates an in-memory SQLite database.
// Always works, no external dependencies.
func SetupSQLiteTestDB(t *testing.T) *DatabaseSetup {
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	return &DatabaseSetup{
		DB:     db,
		Engine: "sqlite",
	}
}

func withANSIMode(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&sql_mode=ANSI"
	}
	return dsn + "?sql_mode=ANSI"
}

// CreateDirectoryTables creates and fills the users, country and continent
// tables shared by every integration test.
func CreateDirectoryTables(t *testing.T, ds *DatabaseSetup) {
	pk := "INTEGER PRIMARY KEY"
	if ds.Engine == "mysql" {
		pk = "INT PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE continent (id ` + pk + `, "continentName" VARCHAR(100))`,
		`CREATE TABLE country (id ` + pk + `, "countryName" VARCHAR(100), continent INTEGER)`,
		`CREATE TABLE users (
			id ` + pk + `,
			"firstName" VARCHAR(100),
			"lastName" VARCHAR(100),
			age INTEGER,
			status VARCHAR(20),
			country INTEGER
		)`,
		`INSERT INTO continent VALUES (1, 'Asia'), (2, 'Europe')`,
		`INSERT INTO country VALUES (1, 'Indonesia', 1), (2, 'France', 2), (3, 'Atlantis', NULL)`,
		`INSERT INTO users VALUES
			(1, 'Agung', 'Hercules', 30, 'Single', 1),
			(2, 'Charlie', 'Brown', 40, 'Married', 2),
			(3, 'Sally', 'BROWNING', 20, 'Single', 1),
			(4, 'Linus', 'Van Pelt', 18, 'Single', NULL)`,
	}

	ctx := context.Background()
	for _, stmt := range statements {
		_, err := ds.DB.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
}
