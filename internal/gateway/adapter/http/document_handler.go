package http

import (
	"encoding/json"

	"mongo-gateway/internal/gateway/usecase"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// Find runs a filtered, paginated query described by the request body.
func (h *HTTPHandler) Find(c *fiber.Ctx) error {
	var req usecase.FindRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	return h.runFind(c, req)
}

// FindViaQuery is the GET form of Find: collection, skip and limit come from
// query parameters and the filter is a JSON-encoded query parameter.
func (h *HTTPHandler) FindViaQuery(c *fiber.Ctx) error {
	req := usecase.FindRequest{
		Collection: c.Query("collection"),
		Skip:       int64(c.QueryInt("skip")),
		Limit:      int64(c.QueryInt("limit")),
	}

	if rawFilter := c.Query("filter"); rawFilter != "" {
		if err := json.Unmarshal([]byte(rawFilter), &req.Filter); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "invalid_filter",
				"message": "Failed to parse filter query parameter: " + err.Error(),
			})
		}
	}

	return h.runFind(c, req)
}

func (h *HTTPHandler) runFind(c *fiber.Ctx, req usecase.FindRequest) error {
	ctx := opContext(c, "find", req.Collection)
	h.Log.WithContext(ctx).Debug("Finding documents via HTTP")

	documents, err := h.UC.Find(ctx, req)
	if err != nil {
		h.Log.WithContext(ctx).Error("Failed to find documents: ", err)
		return h.respondError(c, err, "find_failed")
	}

	return c.JSON(fiber.Map{
		"documents": documents,
		"count":     len(documents),
	})
}

// Insert inserts a single document.
func (h *HTTPHandler) Insert(c *fiber.Ctx) error {
	var req usecase.InsertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	ctx := opContext(c, "insert", req.Collection)
	h.Log.WithContext(ctx).Debug("Inserting document via HTTP")

	insertedID, err := h.UC.Insert(ctx, req)
	if err != nil {
		h.Log.WithContext(ctx).Error("Failed to insert document: ", err)
		return h.respondError(c, err, "insert_failed")
	}

	h.Log.WithContext(ctx).Info("Document inserted successfully")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"insertedId": insertedID,
	})
}

// InsertMany inserts a batch of documents.
func (h *HTTPHandler) InsertMany(c *fiber.Ctx) error {
	var req usecase.InsertManyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	ctx := opContext(c, "insertMany", req.Collection)
	h.Log.WithContext(ctx).Debug("Inserting documents via HTTP")

	insertedIDs, err := h.UC.InsertMany(ctx, req)
	if err != nil {
		h.Log.WithContext(ctx).Error("Failed to insert documents: ", err)
		return h.respondError(c, err, "insert_many_failed")
	}

	h.Log.WithContext(ctx).Infof("Inserted %d documents", len(insertedIDs))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"insertedIds": insertedIDs,
		"count":       len(insertedIDs),
	})
}

// FindByIDAndUpdate atomically updates one document and returns the post-image.
func (h *HTTPHandler) FindByIDAndUpdate(c *fiber.Ctx) error {
	var req usecase.UpdateByIDRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	ctx := opContext(c, "findByIdAndUpdate", req.Collection)
	h.Log.WithContext(ctx).Debug("Updating document via HTTP")

	document, err := h.UC.FindByIDAndUpdate(ctx, req)
	if err != nil {
		h.Log.WithContext(ctx).Error("Failed to update document: ", err)
		return h.respondError(c, err, "update_failed")
	}

	h.Log.WithContext(ctx).Info("Document updated successfully")
	return c.JSON(fiber.Map{
		"document": document,
	})
}

// FindByIDAndDelete atomically removes one document and returns it.
func (h *HTTPHandler) FindByIDAndDelete(c *fiber.Ctx) error {
	var req usecase.DeleteByIDRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	ctx := opContext(c, "findByIdAndDelete", req.Collection)
	h.Log.WithContext(ctx).Debug("Deleting document via HTTP")

	document, err := h.UC.FindByIDAndDelete(ctx, req)
	if err != nil {
		h.Log.WithContext(ctx).Error("Failed to delete document: ", err)
		return h.respondError(c, err, "delete_failed")
	}

	h.Log.WithContext(ctx).Info("Document deleted successfully")
	return c.JSON(fiber.Map{
		"document": document,
	})
}

// Aggregate runs an aggregation pipeline described by the request body.
func (h *HTTPHandler) Aggregate(c *fiber.Ctx) error {
	var req usecase.AggregateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	return h.runAggregate(c, req)
}

// AggregateViaQuery is the GET form of Aggregate: the pipeline is a
// JSON-encoded query parameter.
func (h *HTTPHandler) AggregateViaQuery(c *fiber.Ctx) error {
	req := usecase.AggregateRequest{
		Collection: c.Query("collection"),
	}

	if rawPipeline := c.Query("pipeline"); rawPipeline != "" {
		var pipeline []bson.M
		if err := json.Unmarshal([]byte(rawPipeline), &pipeline); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "invalid_pipeline",
				"message": "Failed to parse pipeline query parameter: " + err.Error(),
			})
		}
		req.Pipeline = pipeline
	}

	return h.runAggregate(c, req)
}

func (h *HTTPHandler) runAggregate(c *fiber.Ctx, req usecase.AggregateRequest) error {
	ctx := opContext(c, "aggregate", req.Collection)
	h.Log.WithContext(ctx).Debug("Running aggregation via HTTP")

	documents, err := h.UC.Aggregate(ctx, req)
	if err != nil {
		h.Log.WithContext(ctx).Error("Failed to run aggregation: ", err)
		return h.respondError(c, err, "aggregate_failed")
	}

	return c.JSON(fiber.Map{
		"documents": documents,
		"count":     len(documents),
	})
}
