package usecase

import (
	"context"

	"mongo-gateway/internal/gateway/domain/repository"
	apperrors "mongo-gateway/internal/shared/errors"
	"mongo-gateway/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// Pagination bounds applied to every find request.
const (
	DefaultLimit int64 = 50
	MaxLimit     int64 = 200
)

// CreateCollectionRequest asks for a new collection, optionally indexed.
type CreateCollectionRequest struct {
	Collection  string   `json:"collection"`
	IndexFields []string `json:"index,omitempty"`
	Unique      bool     `json:"unique,omitempty"`
}

// DropCollectionRequest drops an existing collection.
type DropCollectionRequest struct {
	Collection string `json:"collection"`
}

// FindRequest runs a filtered, paginated query.
type FindRequest struct {
	Collection string `json:"collection"`
	Filter     bson.M `json:"filter,omitempty"`
	Skip       int64  `json:"skip,omitempty"`
	Limit      int64  `json:"limit,omitempty"`
}

// AggregateRequest runs an aggregation pipeline.
type AggregateRequest struct {
	Collection string   `json:"collection"`
	Pipeline   []bson.M `json:"pipeline"`
}

// InsertRequest inserts a single document.
type InsertRequest struct {
	Collection string `json:"collection"`
	Document   bson.M `json:"document"`
}

// InsertManyRequest inserts a batch of documents.
type InsertManyRequest struct {
	Collection string   `json:"collection"`
	Documents  []bson.M `json:"documents"`
}

// UpdateByIDRequest atomically updates one document by identifier.
type UpdateByIDRequest struct {
	Collection string      `json:"collection"`
	ID         interface{} `json:"id"`
	Update     bson.M      `json:"update"`
}

// DeleteByIDRequest atomically removes one document by identifier.
type DeleteByIDRequest struct {
	Collection string      `json:"collection"`
	ID         interface{} `json:"id"`
}

// GatewayUsecase defines the operations the HTTP adapter dispatches to.
type GatewayUsecase interface {
	CreateCollection(ctx context.Context, req CreateCollectionRequest) error
	DropCollection(ctx context.Context, req DropCollectionRequest) error
	Find(ctx context.Context, req FindRequest) ([]bson.M, error)
	Aggregate(ctx context.Context, req AggregateRequest) ([]bson.M, error)
	Insert(ctx context.Context, req InsertRequest) (interface{}, error)
	InsertMany(ctx context.Context, req InsertManyRequest) ([]interface{}, error)
	FindByIDAndUpdate(ctx context.Context, req UpdateByIDRequest) (bson.M, error)
	FindByIDAndDelete(ctx context.Context, req DeleteByIDRequest) (bson.M, error)
	Health(ctx context.Context) error
}

// gatewayUsecase validates requests and delegates to the repository.
type gatewayUsecase struct {
	repo   repository.DataRepository
	logger logger.Logger
}

// NewGatewayUsecase creates the gateway usecase.
func NewGatewayUsecase(repo repository.DataRepository, log logger.Logger) GatewayUsecase {
	return &gatewayUsecase{
		repo:   repo,
		logger: log.WithComponent("gateway-usecase"),
	}
}

// requireCollection enforces the collection presence contract. A missing
// collection is an authentication-category failure (401), matching the
// gateway's original wire contract.
func requireCollection(collection string) error {
	if collection == "" {
		return apperrors.NewAuthenticationError("collection name is required")
	}
	return nil
}

func (u *gatewayUsecase) CreateCollection(ctx context.Context, req CreateCollectionRequest) error {
	if err := requireCollection(req.Collection); err != nil {
		return err
	}
	return u.repo.EnsureCollection(ctx, req.Collection, req.IndexFields, req.Unique)
}

func (u *gatewayUsecase) DropCollection(ctx context.Context, req DropCollectionRequest) error {
	if err := requireCollection(req.Collection); err != nil {
		return err
	}
	return u.repo.DropCollection(ctx, req.Collection)
}

// ClampPagination normalizes skip/limit into the gateway's bounds: negative
// skip becomes 0, a missing limit becomes DefaultLimit, and limit never
// exceeds MaxLimit.
func ClampPagination(skip, limit int64) (int64, int64) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}

func (u *gatewayUsecase) Find(ctx context.Context, req FindRequest) ([]bson.M, error) {
	if err := requireCollection(req.Collection); err != nil {
		return nil, err
	}
	skip, limit := ClampPagination(req.Skip, req.Limit)
	return u.repo.Find(ctx, req.Collection, req.Filter, skip, limit)
}

func (u *gatewayUsecase) Aggregate(ctx context.Context, req AggregateRequest) ([]bson.M, error) {
	if err := requireCollection(req.Collection); err != nil {
		return nil, err
	}
	if len(req.Pipeline) == 0 {
		return nil, apperrors.NewValidationError("pipeline is required")
	}
	return u.repo.Aggregate(ctx, req.Collection, req.Pipeline)
}

func (u *gatewayUsecase) Insert(ctx context.Context, req InsertRequest) (interface{}, error) {
	if err := requireCollection(req.Collection); err != nil {
		return nil, err
	}
	if len(req.Document) == 0 {
		return nil, apperrors.NewValidationError("document is required")
	}
	return u.repo.InsertOne(ctx, req.Collection, req.Document)
}

func (u *gatewayUsecase) InsertMany(ctx context.Context, req InsertManyRequest) ([]interface{}, error) {
	if err := requireCollection(req.Collection); err != nil {
		return nil, err
	}
	if len(req.Documents) == 0 {
		return nil, apperrors.NewValidationError("documents array is required")
	}
	for _, document := range req.Documents {
		if len(document) == 0 {
			return nil, apperrors.NewValidationError("documents array must not contain empty documents")
		}
	}
	return u.repo.InsertMany(ctx, req.Collection, req.Documents)
}

func (u *gatewayUsecase) FindByIDAndUpdate(ctx context.Context, req UpdateByIDRequest) (bson.M, error) {
	if err := requireCollection(req.Collection); err != nil {
		return nil, err
	}
	if req.ID == nil || req.ID == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	if len(req.Update) == 0 {
		return nil, apperrors.NewValidationError("update is required")
	}
	return u.repo.FindByIDAndUpdate(ctx, req.Collection, req.ID, req.Update)
}

func (u *gatewayUsecase) FindByIDAndDelete(ctx context.Context, req DeleteByIDRequest) (bson.M, error) {
	if err := requireCollection(req.Collection); err != nil {
		return nil, err
	}
	if req.ID == nil || req.ID == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	return u.repo.FindByIDAndDelete(ctx, req.Collection, req.ID)
}

func (u *gatewayUsecase) Health(ctx context.Context) error {
	return u.repo.Ping(ctx)
}
