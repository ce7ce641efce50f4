package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/coregx/sqlstring/internal/tracer"
)

// multiSpace matches every run the final pass collapses into one space.
// The class covers the same runes as unicode.IsSpace: ASCII whitespace
// including \v, U+0085, and the Unicode separators (NBSP, U+2000..U+200A, ...).
var multiSpace = regexp.MustCompile(`[\s\v\p{Z}\x{85}]{2,}`)

// Render serializes the accumulated clauses into a SELECT statement
// terminated by ';'.
//
// Render never fails: a missing FROM target renders as an empty table name
// and operators are passed through verbatim. Use Build to get an error
// for incomplete or unsafe queries instead.
func (qb *QueryBuilder) Render() string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if len(qb.selects) == 0 {
		sb.WriteString("* ")
	} else {
		items := make([]string, len(qb.selects))
		for i, item := range qb.selects {
			items[i] = selectSQL(item)
		}
		sb.WriteString(strings.Join(items, ", "))
		sb.WriteString(" ")
	}

	sb.WriteString("FROM " + tableSQL(qb.table) + " ")

	for _, j := range qb.joins {
		sb.WriteString(joinSQL(j))
	}

	if len(qb.wheres) > 0 {
		conds := make([]string, len(qb.wheres))
		for i, cond := range qb.wheres {
			conds[i] = qb.conditionSQL(cond)
		}
		sb.WriteString("WHERE " + strings.Join(conds, " AND ") + " ")
	}

	if len(qb.orders) > 0 {
		items := make([]string, len(qb.orders))
		for i, item := range qb.orders {
			items[i] = orderSQL(item)
		}
		sb.WriteString("ORDER BY " + strings.Join(items, ", ") + " ")
	}

	if qb.paginated() {
		sb.WriteString(qb.dialect.Paginate(*qb.limit, *qb.offset) + " ")
	}

	query := strings.TrimRightFunc(sb.String(), unicode.IsSpace) + ";"
	return multiSpace.ReplaceAllString(query, " ")
}

// Build renders the statement like Render but fails on incomplete or
// unsafe input:
//   - ErrUnsupportedDialect if WithDialectName got an unknown name
//   - ErrIncompleteQuery if no FROM target is set
//   - ErrInvalidPagination for a negative limit or offset
//   - ErrUnsafeValue if a configured validator rejects a value or the statement
//
// Build records a span on the configured tracer and logs the outcome.
func (qb *QueryBuilder) Build() (string, error) {
	ctx := qb.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	_, span := qb.tracer.StartSpan(ctx, tracer.SpanBuild)
	defer span.End()

	start := time.Now()
	query, err := qb.build()
	meta := qb.metadata(query, time.Since(start), err)
	tracer.AddRenderAttributes(span, meta)

	if err == nil && (qb.limit == nil) != (qb.offset == nil) {
		qb.logger.Warn("pagination skipped: limit and offset must both be set",
			"limit_set", qb.limit != nil,
			"offset_set", qb.offset != nil,
		)
	}

	if err != nil {
		qb.logger.Error("query build failed",
			"dialect", meta.Dialect,
			"table", meta.Table,
			"error", err,
		)
		return "", err
	}

	qb.logger.Debug("query rendered",
		"dialect", meta.Dialect,
		"table", meta.Table,
		"selects", meta.Selects,
		"joins", meta.Joins,
		"conditions", qb.maskedValues(),
		"orders", meta.Orders,
		"paginated", meta.Paginated,
		"duration_us", meta.Duration.Microseconds(),
	)
	return query, nil
}

func (qb *QueryBuilder) build() (string, error) {
	if qb.err != nil {
		return "", qb.err
	}
	if strings.TrimSpace(tableName(qb.table)) == "" {
		return "", ErrIncompleteQuery
	}
	if (qb.limit != nil && *qb.limit < 0) || (qb.offset != nil && *qb.offset < 0) {
		return "", ErrInvalidPagination
	}

	if qb.validator != nil {
		if err := qb.validator.ValidateValues(qb.values()); err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnsafeValue, err)
		}
	}

	query := qb.Render()

	if qb.validator != nil {
		if err := qb.validator.ValidateStatement(query); err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnsafeValue, err)
		}
	}

	return query, nil
}

func (qb *QueryBuilder) paginated() bool {
	return qb.limit != nil && qb.offset != nil
}

func (qb *QueryBuilder) metadata(query string, elapsed time.Duration, err error) *tracer.RenderMetadata {
	return &tracer.RenderMetadata{
		Statement:  query,
		Dialect:    qb.dialect.Name(),
		Table:      strings.TrimSpace(tableSQL(qb.table)),
		Duration:   elapsed,
		Selects:    len(qb.selects),
		Joins:      len(qb.joins),
		Conditions: len(qb.wheres),
		Orders:     len(qb.orders),
		Paginated:  qb.paginated(),
		Error:      err,
	}
}

// values returns the WHERE values in clause order.
func (qb *QueryBuilder) values() []interface{} {
	values := make([]interface{}, len(qb.wheres))
	for i, cond := range qb.wheres {
		values[i] = cond.Value
	}
	return values
}

// maskedValues formats WHERE values for logging with sensitive columns masked.
func (qb *QueryBuilder) maskedValues() string {
	columns := make([]string, len(qb.wheres))
	for i, cond := range qb.wheres {
		columns[i] = columnSQL(cond.Column)
	}
	return qb.sanitizer.FormatParams(qb.sanitizer.MaskValues(columns, qb.values()))
}

func (qb *QueryBuilder) conditionSQL(cond Condition) string {
	col := columnSQL(cond.Column)
	literal := qb.literal(cond.Value)

	if cond.caseInsensitive() {
		return "LOWER (" + col + ") LIKE LOWER (" + literal + ")"
	}
	return col + " " + cond.Operator + " " + literal
}

// literal quotes a WHERE value. Without escaping the value is wrapped in
// single quotes as is, numbers included.
func (qb *QueryBuilder) literal(v interface{}) string {
	if qb.quote != nil {
		return qb.quote(v)
	}
	if v == nil {
		return "''"
	}
	return "'" + fmt.Sprint(v) + "'"
}

func selectSQL(item SelectItem) string {
	switch it := item.(type) {
	case Column:
		return string(it)
	case ColumnRef:
		s := qualified(it.Table, it.Column)
		if it.Alias != "" {
			s += ` AS "` + it.Alias + `"`
		}
		return s
	}
	return ""
}

func tableSQL(src TableSource) string {
	switch t := src.(type) {
	case Table:
		return string(t)
	case TableRef:
		return t.Table + " " + t.Alias
	}
	return ""
}

// tableName returns the table part of the FROM target, without alias.
func tableName(src TableSource) string {
	switch t := src.(type) {
	case Table:
		return string(t)
	case TableRef:
		return t.Table
	}
	return ""
}

func joinSQL(j Join) string {
	return j.Type + " " + j.LeftTable + " " + j.LeftAlias +
		" ON " + qualified(orDefault(j.LeftAlias, j.LeftTable), j.LeftKey) +
		" = " + qualified(orDefault(j.RightAlias, j.RightTable), j.RightKey) + " "
}

func columnSQL(col ColumnExpr) string {
	switch c := col.(type) {
	case Column:
		return string(c)
	case ColumnRef:
		return qualified(c.Table, c.Column)
	}
	return ""
}

func orderSQL(item OrderItem) string {
	switch o := item.(type) {
	case Column:
		return string(o)
	case Order:
		return qualified(o.Column.Table, o.Column.Column) + " " + o.Direction
	}
	return ""
}

// qualified renders table."column".
func qualified(table, column string) string {
	return table + `."` + column + `"`
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
