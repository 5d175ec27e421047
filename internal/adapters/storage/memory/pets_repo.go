package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"petstore-catalog/internal/domain/pets"
)

var ErrInvalidID = errors.New("pet id must be positive")

type petRepo struct {
	mu   sync.RWMutex
	byID map[int]pets.Pet
}

// NewPetRepo arranca opcionalmente con seed (útil en dev y tests).
func NewPetRepo(seed ...pets.Pet) pets.Repository {
	r := &petRepo{
		byID: make(map[int]pets.Pet, len(seed)),
	}
	for _, p := range seed {
		r.byID[p.ID] = p
	}
	return r
}

func (r *petRepo) Scan(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// Orden estable por id (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *petRepo) ScanIDs(ctx context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

// Put es upsert: un id repetido pisa el registro anterior.
func (r *petRepo) Put(ctx context.Context, p pets.Pet) error {
	if p.ID <= 0 {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = p
	return nil
}
