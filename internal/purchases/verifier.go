package purchases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devanr/downloadgate/internal/models"
)

// ErrNotEntitled means no completed purchase of the product exists for the
// user. It is an expected authorization outcome, not an operational error.
var ErrNotEntitled = errors.New("no qualifying purchase for this product")

// MongoVerifier reads purchase records written by the commerce system.
// The collection is ground truth for entitlement and is never written here.
type MongoVerifier struct {
	col *mongo.Collection
}

func NewMongoVerifier(db *mongo.Database) *MongoVerifier {
	return &MongoVerifier{col: db.Collection("purchases")}
}

// FindEntitlement returns the purchase record that grants the user download
// rights to the product. When the user bought the same product more than
// once, the most recent completed purchase wins.
func (v *MongoVerifier) FindEntitlement(ctx context.Context, userID, productID string) (models.Purchase, error) {
	filter := bson.M{
		"user_id":    userID,
		"product_id": productID,
		"status":     models.PurchaseStatusCompleted,
	}
	opts := options.FindOne().SetSort(bson.M{"completed_at": -1})

	var purchase models.Purchase
	err := v.col.FindOne(ctx, filter, opts).Decode(&purchase)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Purchase{}, ErrNotEntitled
	}
	if err != nil {
		return models.Purchase{}, fmt.Errorf("failed to look up purchase: %w", err)
	}
	return purchase, nil
}
