package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devanr/downloadgate/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return respond(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	user, err := h.auth.Register(c.Context(), request.Email, request.Password)
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	return c.JSON(fiber.Map{"message": "User registered successfully", "user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return respond(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	token, role, err := h.auth.Login(c.Context(), request.Email, request.Password)
	if err != nil {
		return respond(c, fiber.StatusUnauthorized, "unauthenticated", err.Error())
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  role,
	})
}
