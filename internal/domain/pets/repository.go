package pets

import "context"

// Repository es el record store: scan completo y put por id (upsert).
type Repository interface {
	Scan(ctx context.Context) ([]Pet, error)
	ScanIDs(ctx context.Context) ([]int, error)
	Put(ctx context.Context, p Pet) error
}
