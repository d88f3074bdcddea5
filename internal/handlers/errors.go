package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/devanr/downloadgate/internal/catalog"
	"github.com/devanr/downloadgate/internal/purchases"
	"github.com/devanr/downloadgate/internal/services"
	"github.com/devanr/downloadgate/internal/token"
)

// writeError maps domain errors onto HTTP statuses and machine-readable
// codes. Authorization denials are expected outcomes and are returned
// without logging; storage failures are operational and get logged before
// the fail-closed 500.
func writeError(c *fiber.Ctx, err error) error {
	var quotaErr *services.QuotaExceededError
	var storageErr *services.StorageError

	switch {
	case errors.Is(err, purchases.ErrNotEntitled):
		return respond(c, fiber.StatusForbidden, "not_entitled", err.Error())
	case errors.As(err, &quotaErr):
		return respond(c, fiber.StatusForbidden, "quota_exceeded", quotaErr.Error())
	case errors.Is(err, token.ErrInvalidSignature):
		return respond(c, fiber.StatusUnauthorized, "invalid_signature", "download token is invalid, request a new link")
	case errors.Is(err, token.ErrExpired):
		return respond(c, fiber.StatusUnauthorized, "token_expired", "download token has expired, request a new link")
	case errors.Is(err, token.ErrProductMismatch):
		return respond(c, fiber.StatusBadRequest, "product_mismatch", "download token was issued for a different product")
	case errors.Is(err, services.ErrUserMismatch):
		return respond(c, fiber.StatusUnauthorized, "invalid_token", "download token was issued to a different user")
	case errors.Is(err, catalog.ErrProductNotFound):
		return respond(c, fiber.StatusNotFound, "not_found", "product not found")
	case errors.As(err, &storageErr):
		log.Printf("download aborted on storage error: %v", storageErr)
		return respond(c, fiber.StatusInternalServerError, "storage_error", "download could not be recorded, try again later")
	default:
		log.Printf("unexpected error: %v", err)
		return respond(c, fiber.StatusInternalServerError, "internal_error", "internal error")
	}
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"code": code, "error": message})
}
