package pets

import (
	"context"
	"fmt"
	"slices"

	"petstore-catalog/internal/platform/logger"
)

type Service struct {
	repo   Repository
	interp *Interpreter
	log    logger.Logger
}

func NewService(repo Repository, interp *Interpreter, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if interp == nil {
		interp = NewInterpreter(nil, log)
	}
	return &Service{
		repo:   repo,
		interp: interp,
		log:    log,
	}
}

// List devuelve el catálogo completo en el orden del store.
func (s *Service) List(ctx context.Context) ([]Pet, error) {
	items, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan pets: %w", err)
	}
	if items == nil {
		items = []Pet{}
	}
	return items, nil
}

// Create arma la mascota desde los campos del body aplicando defaults y coerción.
// El id es max(ids)+1: dos creates concurrentes pueden calcular el mismo id y el
// segundo put pisa al primero. Es una limitación conocida del store sin condiciones.
func (s *Service) Create(ctx context.Context, fields map[string]any) (Pet, error) {
	ids, err := s.repo.ScanIDs(ctx)
	if err != nil {
		return Pet{}, fmt.Errorf("scan pet ids: %w", err)
	}

	p, err := newPet(NextID(ids), fields)
	if err != nil {
		return Pet{}, err
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("put pet %d: %w", p.ID, err)
	}

	s.log.Info("pet created", map[string]any{"pet_id": p.ID, "type": p.Type})
	return p, nil
}

// Query resuelve una consulta en lenguaje natural sobre el catálogo completo.
func (s *Service) Query(ctx context.Context, text string) (QueryResult, error) {
	all, err := s.List(ctx)
	if err != nil {
		return QueryResult{}, err
	}
	return s.interp.Interpret(ctx, text, all), nil
}

// NextID devuelve max(ids)+1, o 1 si no hay ids.
func NextID(ids []int) int {
	if len(ids) == 0 {
		return 1
	}
	return slices.Max(ids) + 1
}

func newPet(id int, fields map[string]any) (Pet, error) {
	if fields == nil {
		fields = map[string]any{}
	}

	age, err := intField(fields, "age", DefaultAge)
	if err != nil {
		return Pet{}, err
	}
	price, err := intField(fields, "price", DefaultPrice)
	if err != nil {
		return Pet{}, err
	}

	return Pet{
		ID:    id,
		Name:  stringField(fields, "name", DefaultName),
		Type:  stringField(fields, "type", DefaultType),
		Breed: stringField(fields, "breed", DefaultBreed),
		Age:   age,
		Price: price,
	}, nil
}
