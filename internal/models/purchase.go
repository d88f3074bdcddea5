package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseStatusCompleted is the only status that grants download rights.
const PurchaseStatusCompleted = "completed"

// Purchase is a record owned by the commerce system. This subsystem only
// ever reads it; the purchases collection is ground truth for entitlement.
type Purchase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"purchase_id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	ProductID   string             `bson:"product_id" json:"product_id"`
	Status      string             `bson:"status" json:"status"`
	CompletedAt time.Time          `bson:"completed_at" json:"completed_at"`
}
