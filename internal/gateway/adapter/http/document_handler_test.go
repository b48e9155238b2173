package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"

	"mongo-gateway/internal/gateway/usecase"
	apperrors "mongo-gateway/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFind_Post_Success(t *testing.T) {
	var got usecase.FindRequest
	uc := &MockGatewayUC{
		FindFunc: func(ctx context.Context, req usecase.FindRequest) ([]bson.M, error) {
			got = req
			return []bson.M{{"name": "ada"}, {"name": "grace"}}, nil
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "POST", "/find", fiber.Map{
		"collection": "users",
		"filter":     fiber.Map{"active": true},
		"skip":       5,
		"limit":      10,
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["documents"], 2)
	assert.Equal(t, "users", got.Collection)
	assert.Equal(t, int64(5), got.Skip)
	assert.Equal(t, int64(10), got.Limit)
	assert.Equal(t, true, got.Filter["active"])
}

func TestFind_Get_QueryParams(t *testing.T) {
	var got usecase.FindRequest
	uc := &MockGatewayUC{
		FindFunc: func(ctx context.Context, req usecase.FindRequest) ([]bson.M, error) {
			got = req
			return []bson.M{}, nil
		},
	}
	app := newTestApp(uc)

	filter := url.QueryEscape(`{"status":"active"}`)
	_, status := doJSON(t, app, "GET", "/find?collection=users&skip=3&limit=7&filter="+filter, nil)

	assert.Equal(t, 200, status)
	assert.Equal(t, "users", got.Collection)
	assert.Equal(t, int64(3), got.Skip)
	assert.Equal(t, int64(7), got.Limit)
	assert.Equal(t, "active", got.Filter["status"])
}

func TestFind_Get_InvalidFilterJSON(t *testing.T) {
	app := newTestApp(&MockGatewayUC{})

	filter := url.QueryEscape(`{not-json`)
	body, status := doJSON(t, app, "GET", "/find?collection=users&filter="+filter, nil)

	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_filter", body["error"])
}

func TestFind_MissingCollectionIs401(t *testing.T) {
	uc := &MockGatewayUC{
		FindFunc: func(ctx context.Context, req usecase.FindRequest) ([]bson.M, error) {
			return nil, apperrors.NewAuthenticationError("collection name is required")
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "POST", "/find", fiber.Map{})
	assert.Equal(t, 401, status)
	assert.Equal(t, "unauthorized", body["error"])
}

func TestInsert_Success(t *testing.T) {
	uc := &MockGatewayUC{
		InsertFunc: func(ctx context.Context, req usecase.InsertRequest) (interface{}, error) {
			return "65f000000000000000000001", nil
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "POST", "/insert", fiber.Map{
		"collection": "users",
		"document":   fiber.Map{"name": "ada"},
	})

	assert.Equal(t, 201, status)
	assert.Equal(t, "65f000000000000000000001", body["insertedId"])
}

func TestInsert_MissingDocumentIs400(t *testing.T) {
	uc := &MockGatewayUC{
		InsertFunc: func(ctx context.Context, req usecase.InsertRequest) (interface{}, error) {
			return nil, apperrors.NewValidationError("document is required")
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "POST", "/insert", fiber.Map{"collection": "users"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_request", body["error"])
}

func TestInsert_MalformedBodyIs400(t *testing.T) {
	app := newTestApp(&MockGatewayUC{})

	req := httptest.NewRequest("POST", "/insert", bytes.NewReader([]byte(`{not-json`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid_request_body", body["error"])
}

func TestInsertMany_Success(t *testing.T) {
	uc := &MockGatewayUC{
		InsertManyFunc: func(ctx context.Context, req usecase.InsertManyRequest) ([]interface{}, error) {
			return []interface{}{"id-1", "id-2", "id-3"}, nil
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "POST", "/insertMany", fiber.Map{
		"collection": "users",
		"documents":  []fiber.Map{{"name": "a"}, {"name": "b"}, {"name": "c"}},
	})

	assert.Equal(t, 201, status)
	assert.Equal(t, float64(3), body["count"])
	assert.Len(t, body["insertedIds"], 3)
}

func TestFindByIDAndUpdate_Success(t *testing.T) {
	var got usecase.UpdateByIDRequest
	uc := &MockGatewayUC{
		FindByIDAndUpdateFunc: func(ctx context.Context, req usecase.UpdateByIDRequest) (bson.M, error) {
			got = req
			return bson.M{"_id": req.ID, "name": "updated"}, nil
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "PUT", "/findByIdAndUpdate", fiber.Map{
		"collection": "users",
		"id":         "65f000000000000000000001",
		"update":     fiber.Map{"name": "updated"},
	})

	assert.Equal(t, 200, status)
	document := body["document"].(map[string]interface{})
	assert.Equal(t, "updated", document["name"])
	assert.Equal(t, "65f000000000000000000001", got.ID)
}

func TestFindByIDAndUpdate_PostAliasRoute(t *testing.T) {
	uc := &MockGatewayUC{
		FindByIDAndUpdateFunc: func(ctx context.Context, req usecase.UpdateByIDRequest) (bson.M, error) {
			return bson.M{"_id": req.ID}, nil
		},
	}
	app := newTestApp(uc)

	_, status := doJSON(t, app, "POST", "/findByIdAndUpdate", fiber.Map{
		"collection": "users",
		"id":         "abc",
		"update":     fiber.Map{"name": "x"},
	})
	assert.Equal(t, 200, status)
}

func TestFindByIDAndUpdate_MissingIDIs400(t *testing.T) {
	uc := &MockGatewayUC{
		FindByIDAndUpdateFunc: func(ctx context.Context, req usecase.UpdateByIDRequest) (bson.M, error) {
			return nil, apperrors.NewValidationError("id is required")
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "PUT", "/findByIdAndUpdate", fiber.Map{
		"collection": "users",
		"update":     fiber.Map{"name": "x"},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_request", body["error"])
}

func TestFindByIDAndDelete_Success(t *testing.T) {
	uc := &MockGatewayUC{
		FindByIDAndDeleteFunc: func(ctx context.Context, req usecase.DeleteByIDRequest) (bson.M, error) {
			return bson.M{"_id": req.ID, "name": "gone"}, nil
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "DELETE", "/findByIdAndDelete", fiber.Map{
		"collection": "users",
		"id":         "65f000000000000000000001",
	})

	assert.Equal(t, 200, status)
	document := body["document"].(map[string]interface{})
	assert.Equal(t, "gone", document["name"])
}

func TestFindByIDAndDelete_DriverErrorIs500(t *testing.T) {
	uc := &MockGatewayUC{
		FindByIDAndDeleteFunc: func(ctx context.Context, req usecase.DeleteByIDRequest) (bson.M, error) {
			return nil, errors.New("mongo: no documents in result")
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "DELETE", "/findByIdAndDelete", fiber.Map{
		"collection": "users",
		"id":         "missing",
	})
	assert.Equal(t, 500, status)
	assert.Equal(t, "delete_failed", body["error"])
	assert.Equal(t, "mongo: no documents in result", body["message"])
}

func TestInsert_DriverMessagePassedThroughVerbatim(t *testing.T) {
	driverErr := errors.New("E11000 duplicate key error collection: gateway.users index: _id_ dup key")
	uc := &MockGatewayUC{
		InsertFunc: func(ctx context.Context, req usecase.InsertRequest) (interface{}, error) {
			return nil, apperrors.WrapError(driverErr, "insert failed")
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "POST", "/insert", fiber.Map{
		"collection": "users",
		"document":   fiber.Map{"_id": "dup"},
	})

	assert.Equal(t, 500, status)
	assert.Equal(t, "insert_failed", body["error"])
	assert.Equal(t, driverErr.Error(), body["message"])
}

func TestFind_DriverMessagePassedThroughVerbatim(t *testing.T) {
	driverErr := errors.New("(Location40324) Unrecognized expression '$matchh'")
	uc := &MockGatewayUC{
		FindFunc: func(ctx context.Context, req usecase.FindRequest) ([]bson.M, error) {
			return nil, apperrors.WrapError(driverErr, "find failed")
		},
	}
	app := newTestApp(uc)

	body, status := doJSON(t, app, "POST", "/find", fiber.Map{"collection": "users"})

	assert.Equal(t, 500, status)
	assert.Equal(t, "find_failed", body["error"])
	assert.Equal(t, driverErr.Error(), body["message"])
}
