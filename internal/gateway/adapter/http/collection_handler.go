package http

import (
	"mongo-gateway/internal/gateway/usecase"

	"github.com/gofiber/fiber/v2"
)

// CreateCollection creates a collection, optionally with an index.
func (h *HTTPHandler) CreateCollection(c *fiber.Ctx) error {
	var req usecase.CreateCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	ctx := opContext(c, "create", req.Collection)
	h.Log.WithContext(ctx).Debug("Creating collection via HTTP")

	if err := h.UC.CreateCollection(ctx, req); err != nil {
		h.Log.WithContext(ctx).Error("Failed to create collection: ", err)
		return h.respondError(c, err, "create_collection_failed")
	}

	h.Log.WithContext(ctx).Info("Collection created successfully")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"collection": req.Collection,
		"created":    true,
	})
}

// DropCollection drops a collection.
func (h *HTTPHandler) DropCollection(c *fiber.Ctx) error {
	var req usecase.DropCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	ctx := opContext(c, "delete", req.Collection)
	h.Log.WithContext(ctx).Debug("Dropping collection via HTTP")

	if err := h.UC.DropCollection(ctx, req); err != nil {
		h.Log.WithContext(ctx).Error("Failed to drop collection: ", err)
		return h.respondError(c, err, "drop_collection_failed")
	}

	h.Log.WithContext(ctx).Info("Collection dropped successfully")
	return c.JSON(fiber.Map{
		"collection": req.Collection,
		"dropped":    true,
	})
}
