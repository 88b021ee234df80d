package authController

import (
	"context"
	"fmt"
	"registry/config"
	"registry/internal/database"
	"registry/internal/events"
	"registry/internal/logger"
	. "registry/internal/models"
	"registry/internal/repositories"
	"time"

	"github.com/google/uuid"
)

const sessionKeyPrefix = "admin_session:"

// AuthController implements admin email/password sign-in with opaque tokens
// held in the session cache. Login and logout publish session-change events
// so connected clients can react.
type AuthController struct {
	userRepo repositories.UserRepository
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	log      logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
) *AuthController {
	return &AuthController{
		userRepo: userRepo,
		db:       db,
		eventBus: eventBus,
		config:   config,
		log:      logger.New("AuthController"),
	}
}

func (ac *AuthController) sessionTTL() time.Duration {
	minutes := ac.config.AdminSessionTTLMinutes
	if minutes <= 0 {
		minutes = 720
	}
	return time.Duration(minutes) * time.Minute
}

func (ac *AuthController) Login(
	ctx context.Context,
	request LoginRequest,
) (User, string, error) {
	log := ac.log.Function("Login")

	if err := request.Validate(); err != nil {
		return User{}, "", log.Err("invalid login request", err)
	}

	user, err := ac.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		return User{}, "", log.Error("invalid credentials", "email", request.Email)
	}

	if !user.CheckPassword(request.Password) {
		return User{}, "", log.Error("invalid credentials", "email", request.Email)
	}

	if !user.IsAdmin {
		return User{}, "", log.Error("user is not an administrator", "email", request.Email)
	}

	token := uuid.New().String()
	session := AdminSession{Token: token, UserID: user.ID}

	if err := database.NewCacheBuilder(ac.db.Cache.Session, sessionKeyPrefix+token).
		WithStruct(session).
		WithTTL(ac.sessionTTL()).
		WithContext(ctx).
		Set(); err != nil {
		return User{}, "", log.Err("failed to store admin session", err, "userID", user.ID)
	}

	ac.publishSessionChange("SIGNED_IN", user.ID)

	return *user, token, nil
}

// GetSession resolves an auth token back to its user. An unknown or expired
// token is an error; callers treat it as signed-out.
func (ac *AuthController) GetSession(ctx context.Context, token string) (User, error) {
	log := ac.log.Function("GetSession")

	if token == "" {
		return User{}, log.ErrMsg("missing auth token")
	}

	var session AdminSession
	found, err := database.NewCacheBuilder(ac.db.Cache.Session, sessionKeyPrefix+token).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return User{}, log.Err("failed to read admin session", err)
	}
	if !found {
		return User{}, fmt.Errorf("session not found")
	}

	user, err := ac.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return User{}, log.Err("failed to load session user", err, "userID", session.UserID)
	}

	return *user, nil
}

func (ac *AuthController) Logout(ctx context.Context, token string) error {
	log := ac.log.Function("Logout")

	if token == "" {
		return nil
	}

	var session AdminSession
	found, err := database.NewCacheBuilder(ac.db.Cache.Session, sessionKeyPrefix+token).
		WithContext(ctx).
		Get(&session)
	if err != nil || !found {
		return nil
	}

	if err := database.NewCacheBuilder(ac.db.Cache.Session, sessionKeyPrefix+token).
		WithContext(ctx).
		Delete(); err != nil {
		return log.Err("failed to delete admin session", err)
	}

	ac.publishSessionChange("SIGNED_OUT", session.UserID)

	return nil
}

func (ac *AuthController) publishSessionChange(action, userID string) {
	if ac.eventBus == nil {
		return
	}

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      "auth",
		Action:    action,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	if err := ac.eventBus.Publish("auth", event); err != nil {
		ac.log.Function("publishSessionChange").
			Warn("failed to publish session change", "action", action, "error", err)
	}
}
