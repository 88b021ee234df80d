package main

import (
	"fmt"
	"os"
	"os/signal"
	"registry/internal/app"
	"registry/internal/handlers"
	"registry/internal/logger"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}

	fiberApp := fiber.New(fiber.Config{
		AppName: "registry",
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins:     application.Config.CorsOrigin,
		AllowCredentials: true,
	}))

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		log.Info("Starting server", "address", address)
		if err := fiberApp.Listen(address); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := fiberApp.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
	if err := application.Close(); err != nil {
		log.Er("failed to close application", err)
	}
}
