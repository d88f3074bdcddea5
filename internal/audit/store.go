package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devanr/downloadgate/internal/models"
)

const collectionName = "download_audit"

// MongoStore is the append-only ledger of successful downloads. Rows are
// inserted once and never updated; quota enforcement counts them instead of
// maintaining a separate counter that could drift from the log.
//
// Implementations wanting a hard quota guarantee under concurrency could
// replace Append with a conditional insert-if-count-below-limit; the soft
// count-then-insert sequence here is the documented contract.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(collectionName)}
}

// Append durably inserts one entry. A failure here must abort the download
// it was recording; callers never serve a file without a persisted row.
func (s *MongoStore) Append(ctx context.Context, entry models.AuditLogEntry) error {
	if _, err := s.col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// CountSince returns how many downloads count against the quota. A non-empty
// purchaseID scopes the count to that purchase; an empty one counts every
// download of the product by the user. windowStart optionally bounds the
// count to entries at or after that instant.
func (s *MongoStore) CountSince(ctx context.Context, userID, productID, purchaseID string, windowStart *time.Time) (int64, error) {
	filter := bson.M{"user_id": userID, "product_id": productID}
	if purchaseID != "" {
		filter["purchase_id"] = purchaseID
	}
	if windowStart != nil {
		filter["downloaded_at"] = bson.M{"$gte": *windowStart}
	}

	count, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return count, nil
}

// List returns entries newest first for the customer-support surface.
// Either filter may be empty to broaden the query.
func (s *MongoStore) List(ctx context.Context, userID, productID string, limit int64) ([]models.AuditLogEntry, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	if productID != "" {
		filter["product_id"] = productID
	}

	opts := options.Find().SetSort(bson.M{"downloaded_at": -1}).SetLimit(limit)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding audit entries: %w", err)
	}
	return entries, nil
}
