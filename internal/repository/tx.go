package repository

import "context"

// Tx is the lifecycle shared by every repository transaction
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
