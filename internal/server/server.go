// Package server exposes a bay session over HTTP so a browser renderer can
// drive it. Every request runs one intent to completion under a mutex.
package server

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/project"
)

// Server owns the shared session and the store saves go to.
type Server struct {
	mu      sync.Mutex
	session *engine.Session
	store   project.Store
	logger  *log.Logger
}

// New wraps session. A nil logger falls back to log.Default().
func New(session *engine.Session, store project.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{session: session, store: store, logger: logger}
}

// RequestLogger returns the access log middleware.
func RequestLogger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

// NewApp builds the fiber application with middleware and every route.
func NewApp(cfg *Config, s *Server) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "ShelfPack",
	})

	app.Use(recover.New())
	if cfg.Environment != "test" {
		app.Use(RequestLogger())
	}

	s.Routes(app)
	return app
}

// Routes registers the handlers on app.
func (s *Server) Routes(app *fiber.App) {
	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	api := app.Group("/api")

	api.Get("/state", s.GetState)
	api.Get("/grid", s.GetGrid)
	api.Get("/bay", s.GetBay)
	api.Get("/report", s.GetReport)

	api.Post("/shapes", s.AddShape)
	api.Post("/shapes/:index/select", s.Select)
	api.Put("/shapes/:index/color", s.SetColor)
	api.Delete("/selection", s.ClearSelection)

	api.Post("/active/move", s.Move)
	api.Post("/active/rotate", s.Rotate)
	api.Post("/active/drag", s.Drag)
	api.Post("/keys/:key", s.Key)

	api.Put("/walls", s.SetWalls)
	api.Put("/dimensions", s.SetDimensions)
	api.Post("/orders", s.ImportOrders)
	api.Post("/reset", s.Reset)
	api.Post("/undo", s.Undo)
	api.Post("/redo", s.Redo)

	api.Post("/save", s.Save)
	api.Post("/load", s.Load)
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrPlacementFailed),
		errors.Is(err, engine.ErrBlockedMove),
		errors.Is(err, engine.ErrNothingToUndo),
		errors.Is(err, engine.ErrNothingToRedo):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidSelection):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrUnknownDirection),
		errors.Is(err, engine.ErrInvalidRotation),
		errors.Is(err, engine.ErrUnknownShape),
		errors.Is(err, engine.ErrInvalidDimensions):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func failErr(c fiber.Ctx, err error) error {
	return fail(c, statusFor(err), err.Error())
}
