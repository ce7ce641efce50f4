package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// Sanitizer masks WHERE values bound to sensitive columns so that rendered
// predicates never leak secrets into logs.
type Sanitizer struct {
	sensitiveFields []string
	maskValue       string
	patterns        []*regexp.Regexp
}

// NewSanitizer creates a new sanitizer with the specified sensitive field names.
// If no fields are provided, a default set of common sensitive field names is used.
func NewSanitizer(sensitiveFields []string) *Sanitizer {
	if len(sensitiveFields) == 0 {
		sensitiveFields = []string{
			"password", "passwd", "pwd",
			"token", "api_key", "apikey", "api_token",
			"secret", "auth", "authorization",
			"credit_card", "card_number", "cvv", "cvc",
			"ssn", "social_security",
			"private_key", "priv_key",
		}
	}

	patterns := make([]*regexp.Regexp, 0, len(sensitiveFields))
	for _, field := range sensitiveFields {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(field) + `\b`)
		patterns = append(patterns, pattern)
	}

	return &Sanitizer{
		sensitiveFields: sensitiveFields,
		maskValue:       "***REDACTED***",
		patterns:        patterns,
	}
}

// IsSensitive reports whether a rendered column reference (for example
// user."password" or api_key) names a sensitive field.
func (s *Sanitizer) IsSensitive(column string) bool {
	for _, pattern := range s.patterns {
		if pattern.MatchString(column) {
			return true
		}
	}
	return false
}

// MaskValues returns a copy of values where every value whose column is
// sensitive is replaced by the mask. columns[i] is the column of values[i];
// values without a matching column are kept. The input is not modified.
func (s *Sanitizer) MaskValues(columns []string, values []interface{}) []interface{} {
	if len(values) == 0 {
		return values
	}

	masked := make([]interface{}, len(values))
	for i, v := range values {
		if i < len(columns) && s.IsSensitive(columns[i]) {
			masked[i] = s.maskValue
			continue
		}
		masked[i] = v
	}
	return masked
}

// FormatParams converts values to a safe string representation for logging.
// Sensitive values should be masked using MaskValues before calling this.
func (s *Sanitizer) FormatParams(params []interface{}) string {
	if len(params) == 0 {
		return "[]"
	}

	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = s.formatValue(p)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// formatValue truncates very long values to keep log lines bounded.
func (s *Sanitizer) formatValue(v interface{}) string {
	if v == nil {
		return "NULL"
	}

	str := fmt.Sprintf("%v", v)

	const maxLen = 100
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}

	return str
}
