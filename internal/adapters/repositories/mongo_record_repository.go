package repositories

import (
	"context"
	"errors"
	"fmt"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/platform/obs"
	"parcel-kpi-service/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB-backed implementation of the RecordSource port. Each batch is a collection
// named after its date.
type MongoRecordRepository struct {
	DB *mongo.Database
}

func NewMongoRecordRepository(db *mongo.Database) *MongoRecordRepository {
	return &MongoRecordRepository{DB: db}
}

// Return every record of the batch in insertion order.
func (m *MongoRecordRepository) ListRecords(ctx context.Context, batchID string) (_ []domain.ParcelRecord, err error) {
	defer obs.Time(ctx, "records.mongo.ListRecords")(&err)

	coll, err := m.collection(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return m.find(ctx, coll, bson.D{})
}

// Return the records of the batch matching q.
func (m *MongoRecordRepository) FindParcels(
	ctx context.Context,
	batchID string,
	q domain.ParcelQuery,
) (_ []domain.ParcelRecord, err error) {
	defer obs.Time(ctx, "records.mongo.FindParcels")(&err)

	var filter bson.D
	switch q.Field {
	case domain.SearchByHostID:
		filter = bson.D{{Key: "hostId", Value: q.Value}}
	case domain.SearchByBarcode:
		filter = bson.D{{Key: "barcodes", Value: bson.D{{Key: "$in", Value: bson.A{q.Value}}}}}
	case domain.SearchByAlibiID:
		filter = bson.D{{Key: "alibi_number", Value: q.Value}}
	default:
		return nil, fmt.Errorf("find parcels: unsupported search field %q", q.Field)
	}

	coll, err := m.collection(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return m.find(ctx, coll, filter)
}

// Insert records into the batch collection, creating it if needed.
func (m *MongoRecordRepository) SeedBatch(ctx context.Context, batchID string, records []domain.ParcelRecord) error {
	if m.DB == nil {
		return errors.New("mongo record repository: db is nil")
	}

	coll := m.DB.Collection(batchID)
	if len(records) == 0 {
		// An empty batch must still exist as a collection.
		if err := m.DB.CreateCollection(ctx, batchID); err != nil {
			var cmdErr mongo.CommandError
			if !errors.As(err, &cmdErr) || cmdErr.Name != "NamespaceExists" {
				return fmt.Errorf("seed batch %q: create collection: %w", batchID, err)
			}
		}
		return nil
	}

	docs := make([]any, 0, len(records))
	for _, r := range records {
		docs = append(docs, r)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed batch %q: insert %d records: %w", batchID, len(docs), err)
	}
	return nil
}

func (m *MongoRecordRepository) collection(ctx context.Context, batchID string) (*mongo.Collection, error) {
	if m.DB == nil {
		return nil, errors.New("mongo record repository: db is nil")
	}

	names, err := m.DB.ListCollectionNames(ctx, bson.D{{Key: "name", Value: batchID}})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	if len(names) == 0 {
		return nil, ports.ErrBatchNotFound
	}

	return m.DB.Collection(batchID), nil
}

// find decodes documents one at a time so a single malformed document is skipped
// (and logged) instead of failing the whole batch.
func (m *MongoRecordRepository) find(ctx context.Context, coll *mongo.Collection, filter bson.D) ([]domain.ParcelRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %q: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)

	records := make([]domain.ParcelRecord, 0, 256)
	skipped := 0
	for cur.Next(ctx) {
		var rec domain.ParcelRecord
		if err := cur.Decode(&rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find in %q: cursor: %w", coll.Name(), err)
	}

	if skipped > 0 {
		obs.Logger().WithField("req_id", obs.RequestID(ctx)).
			Warnf("skipped %d undecodable documents in %s", skipped, coll.Name())
	}

	return records, nil
}
