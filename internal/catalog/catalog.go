package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devanr/downloadgate/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// MongoCatalog provides read-only access to per-product download
// configuration: quota limit, quota scope and the blob object name.
type MongoCatalog struct {
	col *mongo.Collection
}

func NewMongoCatalog(db *mongo.Database) *MongoCatalog {
	return &MongoCatalog{col: db.Collection("products")}
}

func (c *MongoCatalog) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return models.Product{}, ErrProductNotFound
	}

	var product models.Product
	err = c.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to look up product: %w", err)
	}
	return product, nil
}
