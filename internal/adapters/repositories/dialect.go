package repositories

import (
	"strconv"
	"strings"
)

// Dialect selects the placeholder style of the SQL driver.
type Dialect int

const (
	// DialectSQLite uses ? placeholders (modernc.org/sqlite).
	DialectSQLite Dialect = iota
	// DialectPostgres uses $n placeholders (pgx).
	DialectPostgres
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) Dialect {
	switch driver {
	case "pgx", "postgres":
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// Rebind rewrites ? placeholders for the dialect.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
