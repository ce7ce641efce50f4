// Package security holds the optional collaborators that harden rendered
// SQL: an injection-pattern validator and literal escaping. The builder's
// rendering core never escapes anything on its own.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator checks WHERE values and rendered statements against known
// SQL injection patterns.
type Validator struct {
	patterns []*regexp.Regexp
	strict   bool
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithStrict enables strict validation mode (more aggressive).
func WithStrict(strict bool) ValidatorOption {
	return func(v *Validator) {
		v.strict = strict
	}
}

// NewValidator creates a new SQL injection validator with default dangerous patterns.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		patterns: compilePatterns(dangerousPatterns),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.strict {
		v.patterns = append(v.patterns, compilePatterns(strictPatterns)...)
	}

	return v
}

// dangerousPatterns are matched against the upper-cased statement.
var dangerousPatterns = []string{
	// comments
	`--[\s]`,
	`/\*.*\*/`,
	`#[\s]`,

	// stacked statements
	`;\s*DROP\s+`,
	`;\s*DELETE\s+`,
	`;\s*TRUNCATE\s+`,
	`;\s*ALTER\s+`,
	`;\s*CREATE\s+`,

	// UNION-based
	`UNION\s+ALL\s+SELECT`,
	`UNION\s+SELECT`,

	// procedure execution
	`XP_CMDSHELL`,
	`\bEXEC\s*\(`,
	`\bEXECUTE\s*\(`,
	`SP_EXECUTESQL`,
	`\bEXEC\s+XP_`,
	`\bEXEC\s+SP_`,

	// metadata and timing
	`INFORMATION_SCHEMA`,
	`PG_SLEEP\s*\(`,
	`BENCHMARK\s*\(`,
	`WAITFOR\s+DELAY`,

	// boolean-based blind injection
	`\s+OR\s+1\s*=\s*1\b`,
	`\s+OR\s+'1'\s*=\s*'1'`,
	`\s+AND\s+1\s*=\s*0\b`,
}

// strictPatterns may reject legitimate statements.
var strictPatterns = []string{
	`\bOR\b`,
	`\bUNION\b`,
	`\bEXEC\b`,
	`\bEXECUTE\b`,
}

// ValidateStatement checks a rendered statement for dangerous SQL patterns.
func (v *Validator) ValidateStatement(statement string) error {
	normalized := strings.ToUpper(statement)

	for _, pattern := range v.patterns {
		if pattern.MatchString(normalized) {
			return fmt.Errorf("dangerous SQL pattern detected: statement contains unsafe construct")
		}
	}

	return nil
}

// ValidateValues checks WHERE values for injection attempts. Only string
// values (and fmt.Stringer implementations) are inspected.
func (v *Validator) ValidateValues(values []interface{}) error {
	for i, value := range values {
		var str string
		switch val := value.(type) {
		case string:
			str = val
		case fmt.Stringer:
			str = val.String()
		default:
			continue
		}

		if containsSQLInjection(str) {
			return fmt.Errorf("suspicious value at index %d: contains SQL injection patterns", i)
		}
	}

	return nil
}

// containsSQLInjection reports whether a literal tries to break out of its quotes.
func containsSQLInjection(value string) bool {
	indicators := []string{
		"'--",
		"';",
		"' OR ",
		"' AND ",
		"/*",
		"*/",
		"' UNION ",
		"' DROP ",
		"XP_",
	}

	upper := strings.ToUpper(value)
	for _, indicator := range indicators {
		if strings.Contains(upper, indicator) {
			return true
		}
	}

	return false
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}
