package main

import (
	"context"
	"fmt"
	"parcel-kpi-service/internal/adapters/repositories"
	"parcel-kpi-service/internal/config"
	"parcel-kpi-service/internal/platform/db"
	"parcel-kpi-service/internal/ports"
)

// openRecordSource connects the configured store. The returned func releases it.
func openRecordSource(ctx context.Context, cfg *config.Config) (ports.RecordSource, func(), error) {
	switch cfg.RecordStore {
	case config.StoreMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("open record source: %w", err)
		}
		repo := repositories.NewMongoRecordRepository(client.Database(cfg.MongoDB))
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	case config.StorePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open record source: %w", err)
		}
		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open record source: %w", err)
		}
		repo := repositories.NewSQLRecordRepository(conn, repositories.DialectPostgres)
		return repo, func() { _ = conn.Close() }, nil

	case config.StoreSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open record source: %w", err)
		}
		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open record source: %w", err)
		}
		repo := repositories.NewSQLRecordRepository(conn, repositories.DialectSQLite)
		return repo, func() { _ = conn.Close() }, nil

	case config.StoreMemory:
		repo := repositories.NewMemoryRecordRepository()
		// Local runs get one seeded batch so the endpoints have something to serve.
		if cfg.SeedDate != "" {
			records, err := repositories.LoadRecordsJSON(cfg.SeedPath)
			if err != nil {
				return nil, nil, fmt.Errorf("open record source: %w", err)
			}
			if err := repo.SeedBatch(ctx, cfg.SeedDate, records); err != nil {
				return nil, nil, fmt.Errorf("open record source: %w", err)
			}
		}
		return repo, func() {}, nil
	}

	return nil, nil, fmt.Errorf("open record source: unknown store %q", cfg.RecordStore)
}
