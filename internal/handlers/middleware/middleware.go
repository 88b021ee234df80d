package middleware

import (
	"registry/config"
	"registry/internal/database"
	"registry/internal/events"
	"registry/internal/logger"
	. "registry/internal/models"
	"registry/internal/repositories"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookieName = "registry_session"
	sessionKeyPrefix  = "admin_session:"
)

type Middleware struct {
	db       database.DB
	config   config.Config
	userRepo repositories.UserRepository
	log      logger.Logger
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	userRepo repositories.UserRepository,
) Middleware {
	return Middleware{
		db:       db,
		config:   config,
		userRepo: userRepo,
		log:      logger.New("middleware"),
	}
}

// RequireAuth loads the admin user behind the request's session token into
// c.Locals("user"). Requests without a valid session get a 401.
func (m Middleware) RequireAuth(c *fiber.Ctx) error {
	log := m.log.Function("RequireAuth")

	token := SessionToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "authentication required"})
	}

	var session AdminSession
	found, err := database.NewCacheBuilder(m.db.Cache.Session, sessionKeyPrefix+token).
		WithContext(c.UserContext()).
		Get(&session)
	if err != nil {
		log.Er("failed to read admin session", err)
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "authentication required"})
	}
	if !found {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "session expired"})
	}

	user, err := m.userRepo.GetByID(c.UserContext(), session.UserID)
	if err != nil {
		log.Er("failed to load session user", err, "userID", session.UserID)
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "session expired"})
	}

	c.Locals("user", *user)

	return c.Next()
}

// SessionToken extracts the auth token from the session cookie or a bearer
// Authorization header, cookie first.
func SessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookieName); cookie != "" {
		return cookie
	}

	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
