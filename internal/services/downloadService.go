package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devanr/downloadgate/internal/models"
	"github.com/devanr/downloadgate/internal/quota"
	"github.com/devanr/downloadgate/internal/token"
)

// TokenSigner mints and checks download tokens. Satisfied by *token.Signer.
type TokenSigner interface {
	Issue(userID, productID, purchaseID string, now time.Time) (string, error)
	Verify(tok, expectedProductID string, now time.Time) (token.Claims, error)
}

// EntitlementSource answers whether a user acquired a product, and under
// which purchase record. Read path only.
type EntitlementSource interface {
	FindEntitlement(ctx context.Context, userID, productID string) (models.Purchase, error)
}

// ProductSource provides per-product download configuration.
type ProductSource interface {
	GetProduct(ctx context.Context, productID string) (models.Product, error)
}

// AuditStore is the append-only ledger the quota is derived from.
type AuditStore interface {
	Append(ctx context.Context, entry models.AuditLogEntry) error
	CountSince(ctx context.Context, userID, productID, purchaseID string, windowStart *time.Time) (int64, error)
}

// LinkResolver turns a product's object name into a fetchable file pointer.
type LinkResolver interface {
	DownloadURL(ctx context.Context, objectName string) (string, error)
}

// FetchRequest is the context of one actual download attempt.
type FetchRequest struct {
	Token         string
	ProductID     string
	UserID        string
	SourceAddress string
	ClientAgent   string
}

// UsageReport is the support view of one entitlement's quota state.
type UsageReport struct {
	UserID     string `json:"user_id"`
	ProductID  string `json:"product_id"`
	PurchaseID string `json:"purchase_id"`
	Scope      string `json:"scope"`
	Used       int    `json:"used"`
	Limit      int    `json:"limit"`
	Remaining  int    `json:"remaining"`
}

// DownloadService orchestrates entitlement, quota, token and audit into the
// two request flows: issuing a download link and serving a download.
type DownloadService struct {
	signer       TokenSigner
	entitlements EntitlementSource
	catalog      ProductSource
	audit        AuditStore
	blobs        LinkResolver
	limiter      *quota.Limiter
	defaultLimit int
	now          func() time.Time
}

func NewDownloadService(signer TokenSigner, entitlements EntitlementSource, catalog ProductSource, audit AuditStore, blobs LinkResolver, defaultLimit int) *DownloadService {
	return &DownloadService{
		signer:       signer,
		entitlements: entitlements,
		catalog:      catalog,
		audit:        audit,
		blobs:        blobs,
		limiter:      quota.NewLimiter(audit),
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

// RequestLink verifies entitlement and remaining capacity, then mints a
// token and returns the download URL embedding it. No audit entry is
// written here: issuing a link does not consume a download, and the quota
// check is re-run authoritatively when the link is used.
func (s *DownloadService) RequestLink(ctx context.Context, userID, productID string) (string, error) {
	purchase, err := s.entitlements.FindEntitlement(ctx, userID, productID)
	if err != nil {
		return "", err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return "", err
	}

	purchaseID := purchase.ID.Hex()
	if err := s.checkCapacity(ctx, userID, productID, product, purchaseID); err != nil {
		return "", err
	}

	tok, err := s.signer.Issue(userID, productID, purchaseID, s.now())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/download/%s?token=%s", productID, tok), nil
}

// Fetch authorizes one actual download. The purchase the attempt counts
// against always comes from the verified token, never from caller input,
// and the file pointer is only resolved after the attempt is durably
// logged. Any audit failure aborts the download.
func (s *DownloadService) Fetch(ctx context.Context, req FetchRequest) (string, error) {
	claims, err := s.signer.Verify(req.Token, req.ProductID, s.now())
	if err != nil {
		return "", err
	}
	if claims.UserID != req.UserID {
		return "", ErrUserMismatch
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return "", err
	}

	if err := s.checkCapacity(ctx, req.UserID, req.ProductID, product, claims.PurchaseID); err != nil {
		return "", err
	}

	entry := models.AuditLogEntry{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		ProductID:     req.ProductID,
		PurchaseID:    claims.PurchaseID,
		DownloadedAt:  s.now(),
		SourceAddress: req.SourceAddress,
		ClientAgent:   req.ClientAgent,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return "", &StorageError{Err: err}
	}

	url, err := s.blobs.DownloadURL(ctx, product.ObjectName)
	if err != nil {
		return "", &StorageError{Err: err}
	}
	return url, nil
}

// Usage reports current consumption against the configured limit for the
// user's entitlement to a product.
func (s *DownloadService) Usage(ctx context.Context, userID, productID string) (UsageReport, error) {
	purchase, err := s.entitlements.FindEntitlement(ctx, userID, productID)
	if err != nil {
		return UsageReport{}, err
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return UsageReport{}, err
	}

	purchaseID := purchase.ID.Hex()
	limit := s.limitFor(product)
	used, err := s.limiter.Used(ctx, userID, productID, s.scopeID(product, purchaseID))
	if err != nil {
		return UsageReport{}, err
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return UsageReport{
		UserID:     userID,
		ProductID:  productID,
		PurchaseID: purchaseID,
		Scope:      product.Scope(),
		Used:       used,
		Limit:      limit,
		Remaining:  remaining,
	}, nil
}

func (s *DownloadService) checkCapacity(ctx context.Context, userID, productID string, product models.Product, purchaseID string) error {
	limit := s.limitFor(product)
	used, err := s.limiter.Used(ctx, userID, productID, s.scopeID(product, purchaseID))
	if err != nil {
		return &StorageError{Err: err}
	}
	if used >= limit {
		return &QuotaExceededError{Used: used, Limit: limit}
	}
	return nil
}

func (s *DownloadService) limitFor(product models.Product) int {
	if product.DownloadLimit > 0 {
		return product.DownloadLimit
	}
	return s.defaultLimit
}

// scopeID picks the purchase filter for quota counting: per-purchase quotas
// count against one purchase record, per-product quotas count every
// download of the product by the user.
func (s *DownloadService) scopeID(product models.Product, purchaseID string) string {
	if product.Scope() == models.QuotaPerProduct {
		return ""
	}
	return purchaseID
}
