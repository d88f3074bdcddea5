package handlers

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/devanr/downloadgate/internal/services"
)

type DownloadHandler struct {
	svc *services.DownloadService
}

func NewDownloadHandler(svc *services.DownloadService) *DownloadHandler {
	return &DownloadHandler{svc: svc}
}

// RequestLink issues a tokenized download URL for one product.
func (h *DownloadHandler) RequestLink(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return respond(c, fiber.StatusUnauthorized, "unauthenticated", "invalid session")
	}

	url, err := h.svc.RequestLink(c.Context(), userID, c.Params("product_id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"url":        url,
		"expires_in": "15 minutes",
	})
}

// BatchRequestLinks issues links for several products in parallel.
func (h *DownloadHandler) BatchRequestLinks(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return respond(c, fiber.StatusUnauthorized, "unauthenticated", "invalid session")
	}

	var request struct {
		ProductIDs []string `json:"product_ids"`
	}
	if err := c.BodyParser(&request); err != nil || len(request.ProductIDs) == 0 {
		return respond(c, fiber.StatusBadRequest, "bad_request", "product_ids is required")
	}

	links := make(map[string]string)
	failures := make(map[string]string)
	var mu sync.Mutex

	// The fiber request context is not safe to share across goroutines.
	ctx := c.UserContext()

	var wg sync.WaitGroup
	wg.Add(len(request.ProductIDs))
	for _, productID := range request.ProductIDs {
		go func(pid string) {
			defer wg.Done()
			url, err := h.svc.RequestLink(ctx, userID, pid)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[pid] = err.Error()
			} else {
				links[pid] = url
			}
		}(productID)
	}
	wg.Wait()

	return c.JSON(fiber.Map{
		"links":  links,
		"errors": failures,
	})
}

// Fetch serves an actual download attempt: verifies the presented token,
// re-checks the quota, records the attempt and redirects to the resolved
// file pointer.
func (h *DownloadHandler) Fetch(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return respond(c, fiber.StatusUnauthorized, "unauthenticated", "invalid session")
	}

	url, err := h.svc.Fetch(c.Context(), services.FetchRequest{
		Token:         c.Query("token"),
		ProductID:     c.Params("product_id"),
		UserID:        userID,
		SourceAddress: c.IP(),
		ClientAgent:   c.Get("User-Agent"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Redirect(url, fiber.StatusFound)
}
