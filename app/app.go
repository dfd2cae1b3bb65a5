package app

import (
	"log/slog"
	"time"

	"project-tracker/database"
	"project-tracker/services"
	"project-tracker/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	DB        *database.DB
	Users     *services.UserService
	Tokens    *services.TokenService
	Contacts  *services.ContactService
	Projects  *services.ProjectService
	Tasks     *services.TaskService
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New assembles every service around a shared store. Each service
// call opens its own unit of work from the factory, so nothing here
// is shared mutable request state.
func New(db *database.DB, tokenLifetime time.Duration, logger *slog.Logger) *App {
	uow := func() *database.UnitOfWork {
		return database.NewUnitOfWork(db)
	}

	return &App{
		DB:        db,
		Users:     services.NewUserService(uow),
		Tokens:    services.NewTokenService(uow, tokenLifetime),
		Contacts:  services.NewContactService(uow),
		Projects:  services.NewProjectService(uow),
		Tasks:     services.NewTaskService(uow),
		Validator: validator.New(),
		Logger:    logger,
	}
}
