package http

import (
	"context"

	"mongo-gateway/internal/gateway/usecase"
	"mongo-gateway/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// testLogger is a no-op logger for handler tests.
type testLogger struct{}

func (testLogger) Debug(args ...interface{})                         {}
func (testLogger) Info(args ...interface{})                          {}
func (testLogger) Warn(args ...interface{})                          {}
func (testLogger) Error(args ...interface{})                         {}
func (testLogger) Fatal(args ...interface{})                         {}
func (testLogger) Debugf(format string, args ...interface{})         {}
func (testLogger) Infof(format string, args ...interface{})          {}
func (testLogger) Warnf(format string, args ...interface{})          {}
func (testLogger) Errorf(format string, args ...interface{})         {}
func (testLogger) Fatalf(format string, args ...interface{})         {}
func (t testLogger) WithFields(map[string]interface{}) logger.Logger { return t }
func (t testLogger) WithContext(context.Context) logger.Logger       { return t }
func (t testLogger) WithComponent(string) logger.Logger              { return t }

// MockGatewayUC is a configurable test double for the gateway usecase.
type MockGatewayUC struct {
	CreateCollectionFunc  func(ctx context.Context, req usecase.CreateCollectionRequest) error
	DropCollectionFunc    func(ctx context.Context, req usecase.DropCollectionRequest) error
	FindFunc              func(ctx context.Context, req usecase.FindRequest) ([]bson.M, error)
	AggregateFunc         func(ctx context.Context, req usecase.AggregateRequest) ([]bson.M, error)
	InsertFunc            func(ctx context.Context, req usecase.InsertRequest) (interface{}, error)
	InsertManyFunc        func(ctx context.Context, req usecase.InsertManyRequest) ([]interface{}, error)
	FindByIDAndUpdateFunc func(ctx context.Context, req usecase.UpdateByIDRequest) (bson.M, error)
	FindByIDAndDeleteFunc func(ctx context.Context, req usecase.DeleteByIDRequest) (bson.M, error)
	HealthFunc            func(ctx context.Context) error
}

func (m *MockGatewayUC) CreateCollection(ctx context.Context, req usecase.CreateCollectionRequest) error {
	if m.CreateCollectionFunc != nil {
		return m.CreateCollectionFunc(ctx, req)
	}
	return nil
}

func (m *MockGatewayUC) DropCollection(ctx context.Context, req usecase.DropCollectionRequest) error {
	if m.DropCollectionFunc != nil {
		return m.DropCollectionFunc(ctx, req)
	}
	return nil
}

func (m *MockGatewayUC) Find(ctx context.Context, req usecase.FindRequest) ([]bson.M, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, req)
	}
	return []bson.M{}, nil
}

func (m *MockGatewayUC) Aggregate(ctx context.Context, req usecase.AggregateRequest) ([]bson.M, error) {
	if m.AggregateFunc != nil {
		return m.AggregateFunc(ctx, req)
	}
	return []bson.M{}, nil
}

func (m *MockGatewayUC) Insert(ctx context.Context, req usecase.InsertRequest) (interface{}, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, req)
	}
	return "mock-id", nil
}

func (m *MockGatewayUC) InsertMany(ctx context.Context, req usecase.InsertManyRequest) ([]interface{}, error) {
	if m.InsertManyFunc != nil {
		return m.InsertManyFunc(ctx, req)
	}
	return []interface{}{}, nil
}

func (m *MockGatewayUC) FindByIDAndUpdate(ctx context.Context, req usecase.UpdateByIDRequest) (bson.M, error) {
	if m.FindByIDAndUpdateFunc != nil {
		return m.FindByIDAndUpdateFunc(ctx, req)
	}
	return bson.M{}, nil
}

func (m *MockGatewayUC) FindByIDAndDelete(ctx context.Context, req usecase.DeleteByIDRequest) (bson.M, error) {
	if m.FindByIDAndDeleteFunc != nil {
		return m.FindByIDAndDeleteFunc(ctx, req)
	}
	return bson.M{}, nil
}

func (m *MockGatewayUC) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}
