package main

import (
	"context"
	"database/sql"
	"parcel-kpi-service/internal/adapters/repositories"
	"parcel-kpi-service/internal/config"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/platform/db"
	"parcel-kpi-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Seeder is implemented by every store that can load a batch.
type seeder interface {
	SeedBatch(ctx context.Context, batchID string, records []domain.ParcelRecord) error
}

// dbtool initializes the schema of the configured store and loads SEED_PATH as the
// batch SEED_DATE.
func main() {
	log := obs.Logger()
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if strings.TrimSpace(cfg.SeedDate) == "" {
		log.Fatal("SEED_DATE is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := repositories.LoadRecordsJSON(cfg.SeedPath)
	if err != nil {
		log.Fatal(err)
	}

	var target seeder
	switch cfg.RecordStore {
	case config.StoreMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Disconnect(context.Background())
		target = repositories.NewMongoRecordRepository(client.Database(cfg.MongoDB))

	case config.StorePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		target = initSQL(conn, repositories.DialectPostgres)

	case config.StoreSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		target = initSQL(conn, repositories.DialectSQLite)

	default:
		log.Fatalf("store %q cannot be seeded", cfg.RecordStore)
	}

	log.Printf("Seeding batch %s with %d records...", cfg.SeedDate, len(records))
	if err := target.SeedBatch(ctx, cfg.SeedDate, records); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func initSQL(conn *sql.DB, dialect repositories.Dialect) seeder {
	log := obs.Logger()
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
	return repositories.NewSQLRecordRepository(conn, dialect)
}
