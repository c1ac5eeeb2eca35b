package person

import (
	"context"
	"database/sql"

	"github.com/auditgrid/auditgrid/internal/storage/postgres"
)

type Repository struct {
	db *postgres.Client
}

func NewRepository(db *postgres.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *Person) error {
	query := `
		INSERT INTO people (email, name)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.DB.QueryRowContext(ctx, query, p.Email, p.Name).Scan(&p.ID, &p.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Person, error) {
	query := `
		SELECT id, email, name, created_at
		FROM people
		WHERE id = $1`

	p := &Person{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Email, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
