package handlers

import (
	"net/url"
	"registry/internal/app"
	profileController "registry/internal/controllers/profile"
	submitterController "registry/internal/controllers/submitter"
	"registry/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type SubmitterHandler struct {
	Handler
	controller submitterController.SubmitterController
	profiles   profileController.ProfileController
}

func NewSubmitterHandler(app app.App, router fiber.Router) *SubmitterHandler {
	log := logger.New("handlers").File("submitter_handler")
	return &SubmitterHandler{
		controller: *app.SubmitterController,
		profiles:   *app.ProfileController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SubmitterHandler) Register() {
	submitters := h.router.Group("/submitters")

	// The entry form resolves its session before any profile is submitted.
	submitters.Post("/session", h.resolveSession)
	submitters.Get("/session", h.getSession)

	submitters.Get("/", h.middleware.RequireAuth, h.getSubmitters)

	// The detail view is reachable by anyone who knows the mobile number; it
	// backs the submitter-facing "your records" page, not the admin list.
	submitters.Get("/:mobile", h.getRecordsBySubmitter)
}

type sessionRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

func (h *SubmitterHandler) resolveSession(c *fiber.Ctx) error {
	log := h.log.Function("resolveSession")

	var request sessionRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse session request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "failed to parse request"})
	}

	if request.Name == "" || request.Mobile == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "name and mobile are required"})
	}

	resolved := h.controller.Resolve(c.UserContext(), request.Name, request.Mobile)

	return c.JSON(fiber.Map{"message": "success", "session": resolved})
}

func (h *SubmitterHandler) getSession(c *fiber.Ctx) error {
	name := c.Query("name")
	mobile := c.Query("mobile")

	if name == "" || mobile == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "name and mobile are required"})
	}

	session := h.controller.GetSession(c.UserContext(), name, mobile)
	if session == nil {
		return c.JSON(fiber.Map{"message": "success", "session": nil})
	}

	return c.JSON(fiber.Map{"message": "success", "session": session})
}

func (h *SubmitterHandler) getSubmitters(c *fiber.Ctx) error {
	submitters, err := h.profiles.GetSubmitters(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get submitters"})
	}

	return c.JSON(fiber.Map{"message": "success", "submitters": submitters})
}

func (h *SubmitterHandler) getRecordsBySubmitter(c *fiber.Ctx) error {
	rawMobile := c.Params("mobile")
	if decoded, err := url.QueryUnescape(rawMobile); err == nil {
		rawMobile = decoded
	}

	profiles, submitterName := h.controller.FindRecordsByMobile(c.UserContext(), rawMobile)

	return c.JSON(fiber.Map{
		"message":       "success",
		"profiles":      profiles,
		"submitterName": submitterName,
	})
}
