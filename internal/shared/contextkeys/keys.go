package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "mongo-gateway context key " + string(c)
}

// RequestIDKey is the key for the request ID in context.Context
const RequestIDKey = contextKey("requestID")

// CollectionKey is the key for the target collection name in context.Context
const CollectionKey = contextKey("collection")

// OperationKey is the key for the gateway operation name in context.Context
const OperationKey = contextKey("operation")
