// Package http translates requests into validated store operations and
// maps the error taxonomy to response codes.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/thinkful-ei22/dan-noteful-4/auth"
	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store"
	"github.com/thinkful-ei22/dan-noteful-4/validate"
	"github.com/thinkful-ei22/dan-noteful-4/ws"
)

type Server struct {
	store    store.Store
	validate *validate.Validator
	auth     *auth.Service
	hub      *ws.Hub
	log      zerolog.Logger
}

func NewServer(st store.Store, v *validate.Validator, svc *auth.Service, hub *ws.Hub, log zerolog.Logger) *Server {
	return &Server{store: st, validate: v, auth: svc, hub: hub, log: log}
}

// Register mounts all routes. Protected groups share the bearer-token
// middleware; public routes are registration and login only.
func (s *Server) Register(app *fiber.App) {
	app.Post("/users", s.handleRegister)
	app.Post("/auth/login", s.handleLogin)

	protected := auth.Middleware(s.auth)

	app.Post("/auth/refresh", protected, s.handleRefresh)

	notes := app.Group("/notes", protected)
	notes.Get("/", s.handleListNotes)
	notes.Post("/", s.handleCreateNote)
	notes.Get("/:id", s.handleGetNote)
	notes.Put("/:id", s.handleUpdateNote)
	notes.Delete("/:id", s.handleDeleteNote)

	folders := app.Group("/folders", protected)
	folders.Get("/", s.handleListFolders)
	folders.Post("/", s.handleCreateFolder)
	folders.Get("/:id", s.handleGetFolder)
	folders.Put("/:id", s.handleUpdateFolder)
	folders.Delete("/:id", s.handleDeleteFolder)

	tags := app.Group("/tags", protected)
	tags.Get("/", s.handleListTags)
	tags.Post("/", s.handleCreateTag)
	tags.Get("/:id", s.handleGetTag)
	tags.Put("/:id", s.handleUpdateTag)
	tags.Delete("/:id", s.handleDeleteTag)

	app.Use("/ws", protected, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		user, _ := conn.Locals(auth.LocalsKey).(domain.UserView)
		s.hub.Serve(conn, user.ID)
	}))
}

// ErrorHandler is the single place error codes become HTTP statuses.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return c.Status(ferr.Code).JSON(fiber.Map{
				"status":  ferr.Code,
				"message": ferr.Message,
			})
		}

		status := statusOf(domain.CodeOf(err))
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			message = "Internal Server Error"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":  status,
			"message": message,
		})
	}
}

func statusOf(code domain.Code) int {
	switch code {
	case domain.CodeInvalidInput, domain.CodeInvalidReference, domain.CodeConflict:
		return fiber.StatusBadRequest
	case domain.CodeUnprocessable:
		return fiber.StatusUnprocessableEntity
	case domain.CodeNotFound:
		return fiber.StatusNotFound
	case domain.CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				status = ferr.Code
			} else {
				status = statusOf(domain.CodeOf(err))
			}
		}

		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
