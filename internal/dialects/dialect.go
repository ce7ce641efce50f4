// Package dialects provides database-specific SQL dialect implementations.
// A dialect controls how pagination is rendered: PostgreSQL (the default)
// uses LIMIT/OFFSET, SQL Server uses OFFSET ... FETCH NEXT.
package dialects

import (
	"strings"
	"sync"
)

// Dialect defines database-specific behaviors.
type Dialect interface {
	// Name returns the canonical dialect name.
	Name() string
	// Paginate renders the pagination fragment for the given limit and offset.
	Paginate(limit, offset int) string
}

var (
	mu       sync.RWMutex
	dialects = make(map[string]Dialect)
)

// RegisterDialect registers a database dialect by name.
// Names are matched case-insensitively. Safe for concurrent use with Lookup.
func RegisterDialect(name string, d Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[strings.ToLower(strings.TrimSpace(name))] = d
}

// Lookup retrieves a registered dialect by name.
func Lookup(name string) (Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Default returns the dialect used when none is configured.
func Default() Dialect {
	return &PostgresDialect{}
}
