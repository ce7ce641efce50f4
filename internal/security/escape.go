package security

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// LiteralQuoter renders a WHERE value as a quoted SQL literal.
type LiteralQuoter func(value interface{}) string

// QuoterFor returns the escaping quoter for a dialect name.
// PostgreSQL literals go through pq.QuoteLiteral (E'' form for backslashes);
// every other dialect gets standard SQL quote doubling.
func QuoterFor(dialect string) LiteralQuoter {
	switch strings.ToLower(dialect) {
	case "", "default", "postgres", "postgresql":
		return func(value interface{}) string {
			return strings.TrimSpace(pq.QuoteLiteral(literalText(value)))
		}
	default:
		return func(value interface{}) string {
			return "'" + strings.ReplaceAll(literalText(value), "'", "''") + "'"
		}
	}
}

// QuoteIdentifier quotes an untrusted identifier with double quotes.
// Callers building ColumnRef or TableRef values from user input should
// pass each part through this first.
func QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

func literalText(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
