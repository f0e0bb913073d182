package contextkeys

// contextKey is a private type so store context values cannot collide with
// keys defined by other packages.
type contextKey string

const (
	// TransactionIDKey carries the identifier of the running transaction attempt.
	TransactionIDKey contextKey = "transaction_id"
	// OperationKey carries the name of the store operation in flight.
	OperationKey contextKey = "operation"
	// PathKey carries the document or collection path being operated on.
	PathKey contextKey = "path"
	// ComponentKey carries the originating component name.
	ComponentKey contextKey = "component"
)
