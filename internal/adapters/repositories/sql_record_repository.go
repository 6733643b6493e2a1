package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/platform/obs"
	"parcel-kpi-service/internal/ports"
	"strconv"
	"strings"
)

// Placeholder style of the underlying driver.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// SQL-backed implementation of the RecordSource port. Records are stored as JSON
// documents so the relational store keeps the same loose schema as the document
// store.
type SQLRecordRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLRecordRepository(db *sql.DB, dialect Dialect) *SQLRecordRepository {
	return &SQLRecordRepository{DB: db, Dialect: dialect}
}

// Return every record of the batch in stored order.
func (s *SQLRecordRepository) ListRecords(ctx context.Context, batchID string) (_ []domain.ParcelRecord, err error) {
	defer obs.Time(ctx, "records.sql.ListRecords")(&err)

	if s.DB == nil {
		return nil, errors.New("sql record repository: DB is nil")
	}

	var one int
	err = s.DB.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM batches WHERE batch_id = ?;`), batchID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("list records: query batches table: %w", err)
	}

	query := `
	SELECT
		seq,
		doc
	FROM parcel_records
	WHERE batch_id = ?
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, s.rebind(query), batchID)
	if err != nil {
		return nil, fmt.Errorf("list records: query parcel_records table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ParcelRecord, 0, 256)
	skipped := 0
	for rows.Next() {
		var seq int
		var doc string
		if err := rows.Scan(&seq, &doc); err != nil {
			return nil, fmt.Errorf("list records: scan row: %w", err)
		}

		var rec domain.ParcelRecord
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: row iteration: %w", err)
	}

	if skipped > 0 {
		obs.Logger().WithField("req_id", obs.RequestID(ctx)).
			Warnf("skipped %d undecodable records in batch %s", skipped, batchID)
	}

	return records, nil
}

// Documents are opaque to SQL, so the lookup filters the loaded batch in memory.
func (s *SQLRecordRepository) FindParcels(
	ctx context.Context,
	batchID string,
	q domain.ParcelQuery,
) ([]domain.ParcelRecord, error) {
	records, err := s.ListRecords(ctx, batchID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ParcelRecord, 0)
	for i := range records {
		if q.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// rebind rewrites "?" placeholders to "$n" for Postgres.
func (s *SQLRecordRepository) rebind(q string) string {
	if s.Dialect != DialectPostgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
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
