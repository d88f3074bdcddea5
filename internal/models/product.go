package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quota scopes. Per-purchase counts downloads against one purchase record;
// per-product counts every download of the product by the user, across
// repeat purchases.
const (
	QuotaPerPurchase = "per_purchase"
	QuotaPerProduct  = "per_product"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	ObjectName    string             `bson:"object_name" json:"-"`
	DownloadLimit int                `bson:"download_limit" json:"download_limit"`
	QuotaScope    string             `bson:"quota_scope,omitempty" json:"quota_scope"`
}

// Scope normalizes the configured quota scope, defaulting to per-purchase.
func (p Product) Scope() string {
	if p.QuotaScope == QuotaPerProduct {
		return QuotaPerProduct
	}
	return QuotaPerPurchase
}
