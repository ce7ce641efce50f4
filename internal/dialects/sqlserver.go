package dialects

import "fmt"

// SQLServerDialect implements Microsoft SQL Server pagination.
type SQLServerDialect struct{}

func init() {
	RegisterDialect("sqlserver", &SQLServerDialect{})
	RegisterDialect("mssql", &SQLServerDialect{})
}

// Name returns "sqlserver".
func (d *SQLServerDialect) Name() string {
	return "sqlserver"
}

// Paginate returns "OFFSET <offset> ROWS FETCH NEXT <limit> ROWS ONLY".
// SQL Server requires an ORDER BY for this form; the builder does not enforce it.
func (d *SQLServerDialect) Paginate(limit, offset int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}
