// Package core implements the fluent SELECT builder behind sqlstring:
// clause accumulation, rendering, dialect-specific pagination, and the
// optional logging, tracing and validation hooks around Build.
package core

import (
	"context"
	"slices"

	"github.com/coregx/sqlstring/internal/dialects"
	"github.com/coregx/sqlstring/internal/logger"
	"github.com/coregx/sqlstring/internal/security"
	"github.com/coregx/sqlstring/internal/tracer"
)

// QueryBuilder accumulates SELECT clauses and renders them into SQL text.
//
// Every mutator returns the receiver so calls can be chained. A builder is
// owned by a single caller; Render and Build only read its state and may be
// called concurrently once mutation has stopped.
type QueryBuilder struct {
	selects []SelectItem
	joins   []Join
	wheres  []Condition
	orders  []OrderItem
	table   TableSource
	limit   *int
	offset  *int

	dialect   dialects.Dialect
	logger    logger.Logger
	sanitizer *logger.Sanitizer
	tracer    tracer.Tracer
	validator *security.Validator // nil disables validation
	quote     security.LiteralQuoter
	escape    bool
	ctx       context.Context // context for Build
	err       error           // configuration error surfaced by Build
}

// New creates an empty builder. Without options it targets PostgreSQL
// pagination, logs nothing and records no spans.
func New(opts ...Option) *QueryBuilder {
	qb := &QueryBuilder{
		dialect:   dialects.Default(),
		logger:    &logger.NoopLogger{},
		sanitizer: logger.NewSanitizer(nil),
		tracer:    &tracer.NoopTracer{},
	}

	for _, opt := range opts {
		opt(qb)
	}

	if qb.escape {
		qb.quote = security.QuoterFor(qb.dialect.Name())
	}

	return qb
}

// WithContext sets the context used for tracing by Build.
func (qb *QueryBuilder) WithContext(ctx context.Context) *QueryBuilder {
	qb.ctx = ctx
	return qb
}

// Select appends one item to the SELECT list.
func (qb *QueryBuilder) Select(item SelectItem) *QueryBuilder {
	qb.selects = append(qb.selects, item)
	return qb
}

// SelectMany appends items to the SELECT list, preserving their order.
func (qb *QueryBuilder) SelectMany(items ...SelectItem) *QueryBuilder {
	qb.selects = append(qb.selects, items...)
	return qb
}

// SelectColumns appends plain column names to the SELECT list.
//
//	New().SelectColumns("firstName", "lastName", "age").From(Table("user"))
func (qb *QueryBuilder) SelectColumns(names ...string) *QueryBuilder {
	return qb.SelectMany(Columns(names...)...)
}

// SelectModel appends the columns of a db-tagged struct qualified by table.
// An invalid model is reported by Build.
func (qb *QueryBuilder) SelectModel(table string, model interface{}) *QueryBuilder {
	items, err := ModelColumns(table, model)
	if err != nil {
		if qb.err == nil {
			qb.err = WrapError(err, "select model")
		}
		return qb
	}
	return qb.SelectMany(items...)
}

// RemoveSelect removes every SELECT entry equal to item.
// A Column never equals a ColumnRef, even if both render the same text.
func (qb *QueryBuilder) RemoveSelect(item SelectItem) *QueryBuilder {
	qb.selects = slices.DeleteFunc(qb.selects, func(s SelectItem) bool {
		return s == item
	})
	return qb
}

// From sets the FROM target.
func (qb *QueryBuilder) From(src TableSource) *QueryBuilder {
	qb.table = src
	return qb
}

// Join appends a JOIN clause.
func (qb *QueryBuilder) Join(j Join) *QueryBuilder {
	qb.joins = append(qb.joins, j)
	return qb
}

// Where appends a condition. Multiple conditions are combined with AND.
func (qb *QueryBuilder) Where(cond Condition) *QueryBuilder {
	qb.wheres = append(qb.wheres, cond)
	return qb
}

// OrderBy appends a sort key.
func (qb *QueryBuilder) OrderBy(item OrderItem) *QueryBuilder {
	qb.orders = append(qb.orders, item)
	return qb
}

// Limit sets the maximum number of rows.
// Pagination is only rendered when both Limit and Offset are set.
func (qb *QueryBuilder) Limit(n int) *QueryBuilder {
	qb.limit = &n
	return qb
}

// Offset sets the number of rows to skip.
// Pagination is only rendered when both Limit and Offset are set.
func (qb *QueryBuilder) Offset(n int) *QueryBuilder {
	qb.offset = &n
	return qb
}

// Reset drops every accumulated clause. Options are kept.
func (qb *QueryBuilder) Reset() *QueryBuilder {
	qb.selects = nil
	qb.joins = nil
	qb.wheres = nil
	qb.orders = nil
	qb.table = nil
	qb.limit = nil
	qb.offset = nil
	return qb
}

// Clone returns an independent copy of the builder. Clause lists are copied
// so mutating the clone never affects the original.
func (qb *QueryBuilder) Clone() *QueryBuilder {
	c := *qb
	c.selects = slices.Clone(qb.selects)
	c.joins = slices.Clone(qb.joins)
	c.wheres = slices.Clone(qb.wheres)
	c.orders = slices.Clone(qb.orders)
	if qb.limit != nil {
		n := *qb.limit
		c.limit = &n
	}
	if qb.offset != nil {
		n := *qb.offset
		c.offset = &n
	}
	return &c
}

// Dialect returns the dialect used for pagination.
func (qb *QueryBuilder) Dialect() dialects.Dialect {
	return qb.dialect
}

// Err returns the configuration error recorded by an option, if any.
func (qb *QueryBuilder) Err() error {
	return qb.err
}
