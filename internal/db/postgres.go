package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Open returns a database/sql handle over lib/pq, used by the catalog
// seeder. The serving path talks to Postgres through pgxpool instead.
func Open(url string) (*sql.DB, error) {
	return sql.Open("postgres", url)
}
