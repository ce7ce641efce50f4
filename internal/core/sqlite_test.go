package core

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // SQLite driver
)

// openSchema opens an in-memory SQLite database with the tables used by the
// rendering scenarios.
func openSchema(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(context.Background(), `
		CREATE TABLE user (
			id INTEGER PRIMARY KEY,
			"firstName" TEXT,
			"lastName" TEXT,
			age INTEGER,
			status TEXT,
			country INTEGER
		);
		CREATE TABLE country (
			id INTEGER PRIMARY KEY,
			"countryName" TEXT,
			country TEXT,
			continent INTEGER
		);
		CREATE TABLE continent (
			id INTEGER PRIMARY KEY,
			"continentName" TEXT
		);
		INSERT INTO continent VALUES (1, 'Asia');
		INSERT INTO country VALUES (1, 'Indonesia', 'ID', 1);
		INSERT INTO user VALUES
			(1, 'Agung', 'Hercules', 30, 'Single', 1),
			(2, 'Charlie', 'Brown', 40, 'Married', 1),
			(3, 'Sally', 'BROWNING', 20, 'Single', 1);
	`)
	require.NoError(t, err)

	return db
}

// TestRender_SQLiteAcceptsStatements verifies rendered default-dialect
// statements are valid SQL for a real engine.
func TestRender_SQLiteAcceptsStatements(t *testing.T) {
	db := openSchema(t)
	ctx := context.Background()

	queries := map[string]*QueryBuilder{
		"select all": New().From(Table("user")),
		"columns":    New().SelectColumns("firstName", "lastName", "age").From(Table("user")),
		"join where order": New().
			Select(ColumnRef{Table: "user", Column: "firstName"}).
			From(TableRef{Table: "user"}).
			Join(Join{Type: "FULL JOIN", LeftTable: "country", RightTable: "user", LeftKey: "country", RightKey: "id"}).
			Where(Condition{Column: ColumnRef{Table: "user", Column: "firstName"}, Operator: "=", Value: "Agung"}).
			OrderBy(Order{Column: ColumnRef{Table: "user", Column: "firstName"}, Direction: "ASC"}),
		"double join with aliases": New().
			Select(ColumnRef{Table: "a", Column: "firstName"}).
			Select(ColumnRef{Table: "b", Column: "countryName"}).
			Select(ColumnRef{Table: "c", Column: "continentName", Alias: "continent_name"}).
			From(TableRef{Table: "user", Alias: "a"}).
			Join(Join{Type: "LEFT JOIN", LeftTable: "country", LeftAlias: "b", RightTable: "user", RightAlias: "a", LeftKey: "id", RightKey: "country"}).
			Join(Join{Type: "LEFT JOIN", LeftTable: "continent", LeftAlias: "c", RightTable: "country", RightAlias: "b", LeftKey: "id", RightKey: "continent"}),
		"case insensitive like with pagination": New().
			SelectColumns("firstName").
			From(Table("user")).
			Where(Condition{Column: Column("age"), Operator: ">", Value: 25}).
			Where(Condition{Column: ColumnRef{Table: "user", Column: "lastName", Type: ColumnTypeString}, Operator: "LIKE", Value: "%brown%"}).
			OrderBy(Column("id")).
			Limit(10).
			Offset(0),
	}

	for name, qb := range queries {
		t.Run(name, func(t *testing.T) {
			query, err := qb.Build()
			require.NoError(t, err)

			stmt, err := db.PrepareContext(ctx, query)
			require.NoError(t, err, query)
			require.NoError(t, stmt.Close())
		})
	}
}

// TestRender_SQLiteCaseInsensitiveMatch verifies LOWER wrapping matches regardless of case.
func TestRender_SQLiteCaseInsensitiveMatch(t *testing.T) {
	db := openSchema(t)

	query, err := New().
		Select(ColumnRef{Table: "user", Column: "firstName"}).
		From(Table("user")).
		Where(Condition{Column: ColumnRef{Table: "user", Column: "lastName", Type: ColumnTypeString}, Operator: "LIKE", Value: "%BROWN%"}).
		OrderBy(Order{Column: ColumnRef{Table: "user", Column: "id"}, Direction: "ASC"}).
		Build()
	require.NoError(t, err)

	rows, err := db.QueryContext(context.Background(), query)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{"Charlie", "Sally"}, names)
}

// TestRender_SQLitePagination verifies LIMIT/OFFSET select the expected window.
func TestRender_SQLitePagination(t *testing.T) {
	db := openSchema(t)

	query := New().
		SelectColumns(`"firstName"`).
		From(Table("user")).
		OrderBy(Column("id")).
		Limit(1).
		Offset(1).
		Render()

	var name string
	require.NoError(t, db.QueryRowContext(context.Background(), query).Scan(&name))
	assert.Equal(t, "Charlie", name)
}
