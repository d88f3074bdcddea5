package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/devanr/downloadgate/internal/models"
	"github.com/devanr/downloadgate/internal/services"
)

// AuditLister is the read side of the audit ledger the support surface
// consumes.
type AuditLister interface {
	List(ctx context.Context, userID, productID string, limit int64) ([]models.AuditLogEntry, error)
}

// AdminHandler exposes the customer-support view: the immutable download
// trail and per-entitlement usage, the consumers the audit log exists for.
type AdminHandler struct {
	audit AuditLister
	svc   *services.DownloadService
}

func NewAdminHandler(audit AuditLister, svc *services.DownloadService) *AdminHandler {
	return &AdminHandler{audit: audit, svc: svc}
}

// ListAudit returns download attempts, newest first, optionally filtered by
// user and product.
func (h *AdminHandler) ListAudit(c *fiber.Ctx) error {
	limit, err := strconv.ParseInt(c.Query("limit", "100"), 10, 64)
	if err != nil || limit < 1 || limit > 1000 {
		return respond(c, fiber.StatusBadRequest, "bad_request", "limit must be between 1 and 1000")
	}

	entries, err := h.audit.List(c.Context(), c.Query("user_id"), c.Query("product_id"), limit)
	if err != nil {
		return respond(c, fiber.StatusInternalServerError, "internal_error", "Failed to fetch audit entries")
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// Usage reports how much of the configured quota a user's entitlement to a
// product has consumed.
func (h *AdminHandler) Usage(c *fiber.Ctx) error {
	report, err := h.svc.Usage(c.Context(), c.Params("user_id"), c.Params("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
