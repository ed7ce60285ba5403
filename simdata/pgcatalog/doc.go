// Package pgcatalog persists daily documents in a single PostgreSQL table,
// one row per dataset and date.
//
// The expected schema:
//
//	CREATE TABLE daily_documents (
//	    dataset       TEXT        NOT NULL,
//	    doc_date      DATE        NOT NULL,
//	    doc_name      TEXT        NOT NULL,
//	    total_records INTEGER     NOT NULL,
//	    payload       JSONB       NOT NULL,
//	    written_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (dataset, doc_date)
//	);
//
// Writes are upserts keyed on (dataset, doc_date), so re-running a
// simulated day replaces that day's row atomically. The payload column
// holds the complete document envelope, reads return it untouched.
//
// The catalog works with pgxpool.Pool, sql.DB, or sqlx.DB connections:
//
//	catalog, err := pgcatalog.NewStoreFromPGXPool(pool,
//		pgcatalog.WithTableName("daily_documents"),
//		pgcatalog.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = catalog.WriteDailyBatch(ctx, batch)
//
// For read-heavy API deployments, NewStoreFromPGXPoolWithReplica routes
// document reads and date listings to a replica pool while writes stay on
// the primary.
//
// The Store implements simdata.PartitionStore, simdata.DocumentReader,
// and simdata.PartitionCatalog.
package pgcatalog
