package store

import (
	"strconv"
	"strings"
)

// Dialect captures the few SQL differences between the supported backends.
type Dialect struct {
	Name   string
	Driver string
	// Now is the SQL expression stamped into updated_at.
	Now string
	// Numbered placeholders ($1, $2, ...) instead of ?.
	Numbered bool
}

var (
	sqliteDialect   = Dialect{Name: "sqlite", Driver: "sqlite", Now: "datetime('now')"}
	postgresDialect = Dialect{Name: "postgres", Driver: "pgx", Now: "now()", Numbered: true}
)

func dialectFor(dsn string) Dialect {
	if IsPostgresDSN(dsn) {
		return postgresDialect
	}
	return sqliteDialect
}

// Rebind rewrites ? placeholders for dialects that number them. Queries in
// this package never contain a literal question mark.
func (d Dialect) Rebind(q string) string {
	if !d.Numbered || !strings.Contains(q, "?") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}
