package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-tracker/app"
	"project-tracker/config"
	"project-tracker/database"
	"project-tracker/handlers"
	"project-tracker/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.Load()

	logger := setupLogger()
	slog.SetDefault(logger)

	db, err := database.New(config.AppConfig.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash admin password", "error", err)
		os.Exit(1)
	}
	if err := db.SeedAdmin(config.AppConfig.AdminUsername, string(hash), config.AppConfig.AdminName); err != nil {
		logger.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}
	logger.Info("database initialized", "path", config.AppConfig.DBPath)

	a := app.New(db, config.AppConfig.TokenLifetime, logger)

	if err := middleware.RegisterMetrics(nil); err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	srv := newServer(a, logger)

	logger.Info("starting server", "port", config.AppConfig.Port, "env", config.AppConfig.Env)

	go func() {
		if err := srv.Listen(":" + config.AppConfig.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

// newServer builds the fiber app with the full middleware chain and
// route table.
func newServer(a *app.App, logger *slog.Logger) *fiber.App {
	srv := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: config.AppConfig.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
	})

	srv.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Metrics(),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins: config.AppConfig.CORSOrigins,
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept,Authorization,Token",
			MaxAge:       86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	srv.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	srv.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	srv.Post("/api/auth/login", handlers.Login(a))

	api := srv.Group("/api/v1", middleware.RequireToken(a.Tokens))

	api.Get("/contacts", handlers.GetContacts(a))
	api.Post("/contacts", handlers.CreateContact(a))
	api.Get("/contacts/:id", handlers.GetContact(a))
	api.Put("/contacts/:id", handlers.UpdateContact(a))
	api.Delete("/contacts/:id", handlers.DeleteContact(a))

	api.Get("/projects", handlers.GetProjects(a))
	api.Post("/projects", handlers.CreateProject(a))
	api.Get("/projects/:id", handlers.GetProject(a))
	api.Put("/projects/:id", handlers.UpdateProject(a))
	api.Delete("/projects/:id", handlers.DeleteProject(a))

	api.Get("/tasks", handlers.GetTasks(a))
	api.Post("/tasks", handlers.CreateTask(a))
	api.Get("/tasks/:id", handlers.GetTask(a))
	api.Put("/tasks/:id", handlers.UpdateTask(a))
	api.Post("/tasks/:id/end", handlers.EndTask(a))
	api.Delete("/tasks/:id", handlers.DeleteTask(a))

	return srv
}

func setupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: config.AppConfig.Env == "development",
	}

	if config.AppConfig.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	level := config.GetEnv("LOG_LEVEL", "info")
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"errorCode":        code,
			"errorDescription": message,
		})
	}
}
