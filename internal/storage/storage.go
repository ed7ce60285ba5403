// Package storage wires the configured document storage backend for the
// generator and API binaries.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql connections

	"github.com/freightforge/supplychain-simdata-go/internal/config"
	"github.com/freightforge/supplychain-simdata-go/simdata"
	"github.com/freightforge/supplychain-simdata-go/simdata/filestore"
	"github.com/freightforge/supplychain-simdata-go/simdata/pgcatalog"
)

const sqlDriverName = "postgres"

// Backends bundles the three storage interfaces a binary may need. With
// the backends of this module all three are served by the same value.
type Backends struct {
	Store   simdata.PartitionStore
	Reader  simdata.DocumentReader
	Catalog simdata.PartitionCatalog

	closers []func()
}

// Close releases any database connections the backends hold.
func (b *Backends) Close() {
	for _, closer := range b.closers {
		closer()
	}
}

// Connect builds the backend selected by the configuration. Database
// connections are verified with a ping before use.
func Connect(ctx context.Context, cfg config.StorageConfig, log simdata.Logger) (*Backends, error) {
	switch cfg.Backend {
	case config.BackendFiles:
		return connectFiles(cfg, log)
	case config.BackendPostgres:
		return connectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q",
			simdata.ErrInvalidConfiguration, cfg.Backend)
	}
}

func connectFiles(cfg config.StorageConfig, log simdata.Logger) (*Backends, error) {
	store, err := filestore.NewStore(cfg.DataDir, filestore.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &Backends{
		Store:   store,
		Reader:  store,
		Catalog: store,
	}, nil
}

func connectPostgres(ctx context.Context, cfg config.StorageConfig, log simdata.Logger) (*Backends, error) {
	options := []pgcatalog.Option{pgcatalog.WithLogger(log)}
	if cfg.TableName != "" {
		options = append(options, pgcatalog.WithTableName(cfg.TableName))
	}

	switch cfg.PostgresDriver {
	case config.DriverSQL:
		return connectSQL(ctx, cfg, options)
	case config.DriverSQLX:
		return connectSQLX(ctx, cfg, options)
	default:
		return connectPGX(ctx, cfg, options)
	}
}

func connectPGX(ctx context.Context, cfg config.StorageConfig, options []pgcatalog.Option) (*Backends, error) {
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	backends := &Backends{closers: []func(){pool.Close}}

	var store pgcatalog.Store

	if cfg.PostgresReplicaDSN != "" {
		replica, err := pgxpool.New(ctx, cfg.PostgresReplicaDSN)
		if err != nil {
			backends.Close()
			return nil, fmt.Errorf("failed to create postgres replica pool: %w", err)
		}

		if err := replica.Ping(ctx); err != nil {
			replica.Close()
			backends.Close()

			return nil, fmt.Errorf("failed to ping postgres replica: %w", err)
		}

		backends.closers = append(backends.closers, replica.Close)

		store, err = pgcatalog.NewStoreFromPGXPoolWithReplica(pool, replica, options...)
		if err != nil {
			backends.Close()
			return nil, err
		}
	} else {
		store, err = pgcatalog.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			backends.Close()
			return nil, err
		}
	}

	backends.Store = store
	backends.Reader = store
	backends.Catalog = store

	return backends, nil
}

func connectSQL(ctx context.Context, cfg config.StorageConfig, options []pgcatalog.Option) (*Backends, error) {
	db, err := sql.Open(sqlDriverName, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store, err := pgcatalog.NewStoreFromSQLDB(db, options...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Backends{
		Store:   store,
		Reader:  store,
		Catalog: store,
		closers: []func(){func() { _ = db.Close() }},
	}, nil
}

func connectSQLX(ctx context.Context, cfg config.StorageConfig, options []pgcatalog.Option) (*Backends, error) {
	db, err := sqlx.ConnectContext(ctx, sqlDriverName, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	store, err := pgcatalog.NewStoreFromSQLX(db, options...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Backends{
		Store:   store,
		Reader:  store,
		Catalog: store,
		closers: []func(){func() { _ = db.Close() }},
	}, nil
}
