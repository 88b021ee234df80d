package app

import (
	"registry/config"
	"registry/internal/database"
	"registry/internal/events"
	"registry/internal/handlers/middleware"
	"registry/internal/logger"
	"registry/internal/repositories"
	"registry/internal/services"
	"registry/internal/websockets"

	authController "registry/internal/controllers/auth"
	profileController "registry/internal/controllers/profile"
	submitterController "registry/internal/controllers/submitter"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	ProfileRepo repositories.ProfileRepository
	SessionRepo repositories.SessionRepository
	UserRepo    repositories.UserRepository

	// Controllers
	ProfileController   *profileController.ProfileController
	SubmitterController *submitterController.SubmitterController
	AuthController      *authController.AuthController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	profileRepo := repositories.NewProfile(db)
	sessionRepo := repositories.NewSession(db)
	userRepo := repositories.NewUser(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, eventBus, config, userRepo)
	submitterCtrl := submitterController.New(sessionRepo, profileRepo)
	profileCtrl := profileController.New(profileRepo, submitterCtrl, transactionService, eventBus)
	authCtrl := authController.New(userRepo, db, eventBus, config)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:            db,
		Config:              config,
		Middleware:          middleware,
		TransactionService:  transactionService,
		ProfileRepo:         profileRepo,
		SessionRepo:         sessionRepo,
		UserRepo:            userRepo,
		ProfileController:   profileCtrl,
		SubmitterController: submitterCtrl,
		AuthController:      authCtrl,
		Websocket:           websocket,
		EventBus:            eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.ProfileController,
		a.SubmitterController,
		a.AuthController,
		a.ProfileRepo,
		a.SessionRepo,
		a.UserRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
