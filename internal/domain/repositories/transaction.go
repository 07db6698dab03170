package repositories

import "context"

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager wraps multi-record sequences (cascade delete, reseed)
// in a single store transaction so a mid-sequence failure rolls back.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
