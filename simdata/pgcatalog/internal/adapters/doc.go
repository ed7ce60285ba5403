// Package adapters provides database adapter implementations for the
// PostgreSQL document catalog.
//
// The catalog supports three PostgreSQL client libraries: pgxpool.Pool,
// sql.DB, and sqlx.DB. Each adapter presents the same DBAdapter interface
// for query execution and result handling, so the catalog itself stays
// independent of the connection type an application prefers.
//
// The pgx adapter optionally routes read queries to a replica pool, which
// suits the catalog's read-heavy retrieval traffic.
package adapters
