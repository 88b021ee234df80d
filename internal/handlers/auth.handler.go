package handlers

import (
	"registry/internal/app"
	authController "registry/internal/controllers/auth"
	"registry/internal/handlers/middleware"
	"registry/internal/logger"
	. "registry/internal/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller authController.AuthController
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller: *app.AuthController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
	auth.Get("/session", h.getSession)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	user, token, err := h.controller.Login(c.UserContext(), loginRequest)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "invalid credentials"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})

	return c.JSON(fiber.Map{"message": "success", "user": user, "token": token})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	token := middleware.SessionToken(c)
	if err := h.controller.Logout(c.UserContext(), token); err != nil {
		log.Er("failed to log out", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AuthHandler) getSession(c *fiber.Ctx) error {
	token := middleware.SessionToken(c)

	user, err := h.controller.GetSession(c.UserContext(), token)
	if err != nil {
		return c.JSON(fiber.Map{"message": "success", "user": nil})
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}
