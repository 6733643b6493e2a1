package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"parcel-kpi-service/internal/domain"
)

// Initialize the SQL schema used by SQLRecordRepository. The statements are valid
// for both Postgres and SQLite.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBatchesQuery := `
	CREATE TABLE IF NOT EXISTS batches (
		batch_id TEXT PRIMARY KEY
	);
	`

	createRecordsQuery := `
	CREATE TABLE IF NOT EXISTS parcel_records (
		batch_id TEXT NOT NULL REFERENCES batches(batch_id),
		seq INTEGER NOT NULL,
		doc TEXT NOT NULL,
		PRIMARY KEY (batch_id, seq)
	);
	`

	statements := []string{
		createBatchesQuery,
		createRecordsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Read an array of parcel records from a JSON file.
func LoadRecordsJSON(jsonPath string) ([]domain.ParcelRecord, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load records: read %q: %w", jsonPath, err)
	}

	var data []domain.ParcelRecord
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load records: parse json: %w", err)
	}

	return data, nil
}

// Replace the contents of a batch with records, creating the batch if needed.
func (s *SQLRecordRepository) SeedBatch(ctx context.Context, batchID string, records []domain.ParcelRecord) error {
	if s.DB == nil {
		return errors.New("seed batch: DB is nil")
	}
	if batchID == "" {
		return errors.New("seed batch: batch id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed batch: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.rebind(`
	INSERT INTO batches (batch_id) VALUES (?)
	ON CONFLICT (batch_id) DO NOTHING;
	`), batchID); err != nil {
		return fmt.Errorf("seed batch: insert batch %q: %w", batchID, err)
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM parcel_records WHERE batch_id = ?;`), batchID); err != nil {
		return fmt.Errorf("seed batch: clear batch %q: %w", batchID, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
	INSERT INTO parcel_records (batch_id, seq, doc)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("seed batch: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		doc, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("seed batch: encode record #%d: %w", i+1, err)
		}
		if _, err := stmt.ExecContext(ctx, batchID, i, string(doc)); err != nil {
			return fmt.Errorf("seed batch: insert record #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed batch: commit tx: %w", err)
	}

	return nil
}
