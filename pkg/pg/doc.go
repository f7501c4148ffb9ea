// Package pg manages the PostgreSQL connection pool and schema
// migrations for the API kit. Connections use pgx; migrations run through
// goose over a database/sql bridge on the same pool.
package pg
