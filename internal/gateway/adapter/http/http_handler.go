package http

import (
	"context"
	"errors"
	"time"

	"mongo-gateway/internal/gateway/usecase"
	"mongo-gateway/internal/shared/contextkeys"
	apperrors "mongo-gateway/internal/shared/errors"
	"mongo-gateway/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// HTTPHandler exposes the gateway's fixed operation set over REST.
type HTTPHandler struct {
	UC  usecase.GatewayUsecase
	Log logger.Logger
}

// NewGatewayHTTPHandler creates a new HTTPHandler.
func NewGatewayHTTPHandler(uc usecase.GatewayUsecase, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		UC:  uc,
		Log: log.WithComponent("gateway-http"),
	}
}

// RegisterRoutes registers every gateway endpoint behind the token allowlist.
func (h *HTTPHandler) RegisterRoutes(router fiber.Router, auth *AuthMiddleware) {
	api := router.Group("", auth.RequireToken())

	api.Get("/health", h.Health)

	api.Post("/create", h.CreateCollection)
	api.Delete("/delete", h.DropCollection)

	api.Get("/find", h.FindViaQuery)
	api.Post("/find", h.Find)
	api.Get("/aggregate", h.AggregateViaQuery)
	api.Post("/aggregate", h.Aggregate)

	api.Post("/insert", h.Insert)
	api.Post("/insertMany", h.InsertMany)

	api.Put("/findByIdAndUpdate", h.FindByIDAndUpdate)
	api.Post("/findByIdAndUpdate", h.FindByIDAndUpdate)
	api.Delete("/findByIdAndDelete", h.FindByIDAndDelete)
}

// Health reports gateway and database health.
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	if err := h.UC.Health(c.UserContext()); err != nil {
		h.Log.Error("Health check failed: ", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "UNHEALTHY",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":    "HEALTHY",
		"message":   "Mongo gateway is running",
		"timestamp": time.Now().UTC(),
	})
}

// opContext enriches the request context with operation and collection so the
// logger and downstream layers can pick them up.
func opContext(c *fiber.Ctx, operation, collection string) context.Context {
	ctx := c.UserContext()
	ctx = context.WithValue(ctx, contextkeys.OperationKey, operation)
	if collection != "" {
		ctx = context.WithValue(ctx, contextkeys.CollectionKey, collection)
	}
	if rid, ok := c.Locals(string(contextkeys.RequestIDKey)).(string); ok && rid != "" {
		ctx = context.WithValue(ctx, contextkeys.RequestIDKey, rid)
	}
	return ctx
}

// respondError renders an error using the canonical envelope. Authentication
// and validation failures get their category codes; everything else is a 500
// carrying failureCode and the database's own message, unmodified.
func (h *HTTPHandler) respondError(c *fiber.Ctx, err error, failureCode string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code := failureCode
		message := appErr.Message
		switch appErr.Type {
		case apperrors.ErrorTypeAuthentication:
			code = "unauthorized"
		case apperrors.ErrorTypeValidation:
			code = "invalid_request"
		case apperrors.ErrorTypeInfrastructure:
			if appErr.Cause != nil {
				message = appErr.Cause.Error()
			}
		}
		return c.Status(apperrors.HTTPStatus(appErr)).JSON(fiber.Map{
			"error":   code,
			"message": message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   failureCode,
		"message": err.Error(),
	})
}
