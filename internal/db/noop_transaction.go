package db

import "context"

// NoOpTransactionManager runs the callback outside any transaction. Used
// against standalone MongoDB instances that have no replica set.
type NoOpTransactionManager struct{}

// NewNoOpTransactionManager creates a new NoOpTransactionManager.
func NewNoOpTransactionManager() TransactionManager {
	return &NoOpTransactionManager{}
}

// WithTransaction executes the function with the original context.
func (n *NoOpTransactionManager) WithTransaction(ctx context.Context, fn func(sessCtx context.Context) (interface{}, error)) (interface{}, error) {
	return fn(ctx)
}
