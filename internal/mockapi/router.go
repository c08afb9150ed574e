package mockapi

import (
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// NewApp assembles the stub server: middleware, handlers, routes.
func NewApp(store *Store, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	registerMiddlewares(app, logger)

	tickets := NewTicketsHandler(store)
	messages := NewMessagesHandler(store)
	ai := NewAIHandler()

	api := app.Group("/api")
	api.Get("/tickets", tickets.List)
	api.Get("/tickets/:id", tickets.Get)
	api.Post("/tickets", tickets.Create)
	api.Patch("/tickets/:id", tickets.Update)

	api.Get("/messages/:ticket_id", messages.ListByTicket)
	api.Post("/messages", messages.Create)
	api.Post("/messages/search", messages.Search)

	api.Post("/ai/generate-response", ai.Generate)

	return app
}

func registerMiddlewares(app *fiber.App, logger *zap.Logger) {
	app.Use(requestID())
	app.Use(errorHandlingMiddleware(logger))
	app.Use(requestLogger(logger))
}

// requestID tags each request so console-side failures can be matched
// against the stub's log.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("request_id", id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewTransportError("internal error", fiber.StatusInternalServerError, nil)
			}
			if err != nil {
				clientErr := apperrors.ToClientError(err)
				if clientErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(clientErr))
				}
				c.Status(clientErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"error": fiber.Map{
					"code":    clientErr.Code,
					"message": clientErr.Message,
				}})
				err = nil
			}
		}()
		return c.Next()
	}
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		requestID, _ := c.Locals("request_id").(string)
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}
