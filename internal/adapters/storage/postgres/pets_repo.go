package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petstore-catalog/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

var _ pets.Repository = (*PetsRepo)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS pets (
	id    INTEGER PRIMARY KEY,
	name  TEXT    NOT NULL,
	type  TEXT    NOT NULL,
	breed TEXT    NOT NULL,
	age   INTEGER NOT NULL,
	price INTEGER NOT NULL
)`

// EnsureSchema crea la tabla si no existe (idempotente).
func (r *PetsRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure pets schema: %w", err)
	}
	return nil
}

func (r *PetsRepo) Scan(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, breed, age, price
		FROM pets
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Breed, &p.Age, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ScanIDs proyecta solo id.
func (r *PetsRepo) ScanIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM pets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Put es upsert por id, sin condición: un id repetido pisa la fila.
func (r *PetsRepo) Put(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, name, type, breed, age, price)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			breed = EXCLUDED.breed,
			age = EXCLUDED.age,
			price = EXCLUDED.price
	`,
		p.ID,
		p.Name,
		p.Type,
		p.Breed,
		p.Age,
		p.Price,
	)
	return err
}
