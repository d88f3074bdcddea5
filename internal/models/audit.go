package models

import (
	"time"
)

// AuditLogEntry is one successful file retrieval. Entries are append-only:
// they are never updated or deleted, and the quota is always derived from
// counting them rather than from a separate counter.
type AuditLogEntry struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	ProductID     string    `bson:"product_id" json:"product_id"`
	PurchaseID    string    `bson:"purchase_id" json:"purchase_id"`
	DownloadedAt  time.Time `bson:"downloaded_at" json:"downloaded_at"`
	SourceAddress string    `bson:"source_address" json:"source_address"`
	ClientAgent   string    `bson:"client_agent" json:"client_agent"`
}
