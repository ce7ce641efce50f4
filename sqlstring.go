// Package sqlstring provides a fluent builder that accumulates SELECT
// clauses (columns, table, joins, filters, ordering, pagination) and renders
// them into a single SQL statement string. Pagination follows the target
// dialect: LIMIT/OFFSET for PostgreSQL (the default) and
// OFFSET ... FETCH NEXT for SQL Server.
//
// The builder produces text only. It does not execute queries and, unless
// WithLiteralEscaping is set, does not escape values.
//
//	query := sqlstring.New().
//	    SelectColumns("firstName", "lastName").
//	    From(sqlstring.Table("user")).
//	    Where(sqlstring.Condition{Column: sqlstring.Column("age"), Operator: ">", Value: 25}).
//	    Render()
//	// SELECT firstName, lastName FROM user WHERE age > '25';
package sqlstring

import (
	"github.com/coregx/sqlstring/internal/core"
	"github.com/coregx/sqlstring/internal/dialects"
	"github.com/coregx/sqlstring/internal/logger"
	"github.com/coregx/sqlstring/internal/security"
	"github.com/coregx/sqlstring/internal/tracer"
)

type (
	// QueryBuilder accumulates clauses and renders a SELECT statement.
	QueryBuilder = core.QueryBuilder
	// Option is a functional option for configuring a QueryBuilder.
	Option = core.Option

	// SelectItem is an entry of the SELECT list (Column or ColumnRef).
	SelectItem = core.SelectItem
	// TableSource is the FROM target (Table or TableRef).
	TableSource = core.TableSource
	// ColumnExpr is the column side of a WHERE condition (Column or ColumnRef).
	ColumnExpr = core.ColumnExpr
	// OrderItem is an ORDER BY entry (Column or Order).
	OrderItem = core.OrderItem

	// Column is a plain column name rendered verbatim.
	Column = core.Column
	// ColumnRef is a table-qualified column rendered as table."column".
	ColumnRef = core.ColumnRef
	// Table is a plain table name rendered verbatim.
	Table = core.Table
	// TableRef is a table with an optional alias.
	TableRef = core.TableRef
	// Join describes a JOIN clause.
	Join = core.Join
	// Condition is a WHERE predicate.
	Condition = core.Condition
	// Order is a table-qualified sort key with a direction.
	Order = core.Order

	// Dialect controls pagination syntax.
	Dialect = dialects.Dialect
	// Logger is the structured logging interface used by Build.
	Logger = logger.Logger
	// Tracer starts spans around Build.
	Tracer = tracer.Tracer
	// Validator rejects suspicious values and statements.
	Validator = security.Validator
)

// ColumnTypeString marks a ColumnRef as textual; LIKE on it is case-insensitive.
const ColumnTypeString = core.ColumnTypeString

// Errors returned by Build.
var (
	ErrIncompleteQuery    = core.ErrIncompleteQuery
	ErrUnsupportedDialect = core.ErrUnsupportedDialect
	ErrInvalidPagination  = core.ErrInvalidPagination
	ErrUnsafeValue        = core.ErrUnsafeValue
)

// Dialects.
var (
	PostgreSQL Dialect = &dialects.PostgresDialect{}
	SQLServer  Dialect = &dialects.SQLServerDialect{}
)

// Re-export core functions.
var (
	New          = core.New
	Columns      = core.Columns
	ModelColumns = core.ModelColumns
	ParseDialect = core.ParseDialect

	WithDialect         = core.WithDialect
	WithDialectName     = core.WithDialectName
	WithLogger          = core.WithLogger
	WithSensitiveFields = core.WithSensitiveFields
	WithTracer          = core.WithTracer
	WithValidator       = core.WithValidator
	WithLiteralEscaping = core.WithLiteralEscaping

	RegisterDialect = dialects.RegisterDialect

	NewSlogLogger   = logger.NewSlogAdapter
	NewOtelTracer   = tracer.NewOtelTracer
	NewValidator    = security.NewValidator
	WithStrict      = security.WithStrict
	QuoteIdentifier = security.QuoteIdentifier
)
