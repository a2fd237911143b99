// Package http собирает HTTP сервер: приложение fiber, промежуточное ПО и маршруты.
package http

import (
	"github.com/gofiber/fiber/v3"

	"sharenote/internal/api/http/auth"
	"sharenote/internal/api/http/health"
	"sharenote/internal/api/http/middleware"
	"sharenote/internal/api/http/notes"
	"sharenote/internal/api/http/response"
	authapi "sharenote/internal/auth/ports/api"
	"sharenote/internal/config"
	notesapi "sharenote/internal/notes/ports/api"
)

// AppName - имя приложения в заголовках fiber.
const AppName = "sharenote"

// MsgRouteNotFound возвращается для неизвестных маршрутов.
const MsgRouteNotFound = "Route not found"

// Dependencies - сценарии, которые обслуживает HTTP API.
type Dependencies struct {
	Auth   authapi.AuthUseCase
	Notes  notesapi.NoteUseCase
	Health health.Pinger
}

// NewApp создает приложение fiber с таймаутами из конфигурации.
func NewApp(cfg config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: response.ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth)
	notesHandler := notes.NewHandler(deps.Notes)
	healthHandler := health.NewHandler(deps.Health)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)

	requireToken := middleware.NewAuthMiddleware(deps.Auth)

	// Маршруты заметок и поиска требуют авторизации.
	noteRoutes := api.Group("/notes")
	noteRoutes.Use(requireToken)
	noteRoutes.Get("/", notesHandler.ListNotes)
	noteRoutes.Post("/", notesHandler.CreateNote)
	noteRoutes.Get("/:"+notes.ParamNoteID, notesHandler.GetNote)
	noteRoutes.Put("/:"+notes.ParamNoteID, notesHandler.UpdateNote)
	noteRoutes.Delete("/:"+notes.ParamNoteID, notesHandler.DeleteNote)
	noteRoutes.Post("/:"+notes.ParamNoteID+"/share", notesHandler.ShareNote)
	noteRoutes.Delete("/:"+notes.ParamNoteID+"/share", notesHandler.UnshareNote)

	searchRoutes := api.Group("/search")
	searchRoutes.Use(requireToken)
	searchRoutes.Get("/", notesHandler.SearchNotes)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return response.NotFound(ctx, MsgRouteNotFound)
	})
}
