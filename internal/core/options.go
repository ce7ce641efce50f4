package core

import (
	"fmt"

	"github.com/coregx/sqlstring/internal/dialects"
	"github.com/coregx/sqlstring/internal/logger"
	"github.com/coregx/sqlstring/internal/security"
	"github.com/coregx/sqlstring/internal/tracer"
)

// Option is a functional option for configuring a QueryBuilder.
type Option func(*QueryBuilder)

// WithDialect sets the dialect used for pagination. nil keeps the default.
func WithDialect(d dialects.Dialect) Option {
	return func(qb *QueryBuilder) {
		if d != nil {
			qb.dialect = d
		}
	}
}

// WithDialectName selects a registered dialect by name ("postgresql",
// "sqlserver", ...). An unknown name keeps the default dialect and makes
// Build fail with ErrUnsupportedDialect.
func WithDialectName(name string) Option {
	return func(qb *QueryBuilder) {
		d, err := ParseDialect(name)
		if err != nil {
			qb.err = err
			return
		}
		qb.dialect = d
	}
}

// ParseDialect looks up a registered dialect by name.
func ParseDialect(name string) (dialects.Dialect, error) {
	d, ok := dialects.Lookup(name)
	if !ok {
		return nil, WrapError(ErrUnsupportedDialect, fmt.Sprintf("dialect %q", name))
	}
	return d, nil
}

// WithLogger sets the logger used by Build. nil keeps the no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(qb *QueryBuilder) {
		if l != nil {
			qb.logger = l
		}
	}
}

// WithSensitiveFields replaces the column names whose WHERE values are
// masked in logs.
func WithSensitiveFields(fields ...string) Option {
	return func(qb *QueryBuilder) {
		qb.sanitizer = logger.NewSanitizer(fields)
	}
}

// WithTracer sets the tracer used by Build. nil keeps the no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(qb *QueryBuilder) {
		if t != nil {
			qb.tracer = t
		}
	}
}

// WithValidator makes Build reject suspicious WHERE values and statements.
func WithValidator(v *security.Validator) Option {
	return func(qb *QueryBuilder) {
		qb.validator = v
	}
}

// WithLiteralEscaping escapes WHERE values for the configured dialect
// instead of wrapping them in quotes verbatim.
func WithLiteralEscaping() Option {
	return func(qb *QueryBuilder) {
		qb.escape = true
	}
}
