package serve

import (
	"strings"

	"cardpress/core/logger"
	"cardpress/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler serves artifacts from the store.
type Handler struct {
	store storage.Store
	log   *zap.Logger
}

// NewHandler creates the asset handler.
func NewHandler(store storage.Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// NewApp builds the Fiber application with middleware and routes.
func NewApp(store storage.Store, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Request ID first so every log line can be correlated.
	app.Use(RequestID())
	app.Use(accessLog(log))

	h := NewHandler(store, log)
	h.RegisterRoutes(app)
	return app
}

// RequestID attaches a generated request ID to the context and the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := uuid.NewString()
		c.Locals("request_id", rid)
		c.Set("X-Request-ID", rid)
		return c.Next()
	}
}

func accessLog(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		l := logger.WithRequestID(log, c)
		l.Info("request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// RegisterRoutes registers the asset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/healthz", h.HandleHealth)
	app.Get("/cards/*", h.HandleGetArtifact)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleGetArtifact streams one artifact by its storage key.
func (h *Handler) HandleGetArtifact(c *fiber.Ctx) error {
	key := strings.TrimPrefix(c.Params("*"), "/")
	if key == "" || strings.Contains(key, "..") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid artifact key",
		})
	}

	l := logger.WithRequestID(h.log, c)

	present, err := h.store.Exists(c.Context(), key)
	if err != nil {
		l.Error("artifact probe failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}
	if !present {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "artifact not found",
		})
	}

	data, err := h.store.Read(c.Context(), key)
	if err != nil {
		l.Error("artifact read failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	c.Set(fiber.HeaderContentType, storage.ContentTypeByExt(key))
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}
