package handlers

import (
	"registry/internal/app"
	profileController "registry/internal/controllers/profile"
	"registry/internal/logger"
	. "registry/internal/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Handler
	controller profileController.ProfileController
}

func NewProfileHandler(app app.App, router fiber.Router) *ProfileHandler {
	log := logger.New("handlers").File("profile_handler")
	return &ProfileHandler{
		controller: *app.ProfileController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ProfileHandler) Register() {
	profiles := h.router.Group("/profiles")

	// Submission is the one public write in the system.
	profiles.Post("/", h.createProfile)

	profiles.Get("/", h.middleware.RequireAuth, h.getProfiles)
	profiles.Get("/export", h.middleware.RequireAuth, h.exportProfiles)
	profiles.Put("/:id", h.middleware.RequireAuth, h.updateProfile)
	profiles.Delete("/:id", h.middleware.RequireAuth, h.deleteProfile)
}

func (h *ProfileHandler) createProfile(c *fiber.Ctx) error {
	log := h.log.Function("createProfile")

	var input ProfileInput
	if err := c.BodyParser(&input); err != nil {
		log.Er("failed to parse profile input", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "failed to parse profile"})
	}

	profile, resolved, err := h.controller.CreateProfile(c.UserContext(), input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "success",
		"profile": profile,
		"session": resolved,
	})
}

func (h *ProfileHandler) getProfiles(c *fiber.Ctx) error {
	profiles, err := h.controller.GetProfiles(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get profiles"})
	}

	return c.JSON(fiber.Map{"message": "success", "profiles": profiles})
}

func (h *ProfileHandler) exportProfiles(c *fiber.Ctx) error {
	data, err := h.controller.ExportProfilesCSV(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to export profiles"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="profiles.csv"`)

	return c.Send(data)
}

func (h *ProfileHandler) updateProfile(c *fiber.Ctx) error {
	log := h.log.Function("updateProfile")

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "invalid profile id"})
	}

	var input ProfileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		log.Er("failed to parse profile update", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "failed to parse profile"})
	}

	profile, err := h.controller.UpdateProfile(c.UserContext(), id, input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "profile": profile})
}

func (h *ProfileHandler) deleteProfile(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "invalid profile id"})
	}

	if err := h.controller.DeleteProfile(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "error", "error": "failed to delete profile"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
