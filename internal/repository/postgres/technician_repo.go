package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vincehvac/servicepro-crm/internal/domain/technician"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
)

type TechnicianRepository struct {
	db *pgxpool.Pool
}

func NewTechnicianRepository(db *pgxpool.Pool) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

// List returns all technicians ordered by name ascending.
func (r *TechnicianRepository) List(ctx context.Context) ([]technician.Technician, error) {
	query := `
		SELECT id, name, status, skills, created_at
		FROM technicians
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}
	defer rows.Close()

	technicians := []technician.Technician{}
	for rows.Next() {
		var t technician.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.Skills, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan technician: %w", err)
		}
		technicians = append(technicians, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read technicians: %w", err)
	}

	return technicians, nil
}

// FindByID retrieves a technician by id.
func (r *TechnicianRepository) FindByID(ctx context.Context, id string) (*technician.Technician, error) {
	query := `
		SELECT id, name, status, skills, created_at
		FROM technicians
		WHERE id = $1
	`

	var t technician.Technician
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Status, &t.Skills, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find technician: %w", err)
	}

	return &t, nil
}

// Create inserts a technician and fills in the generated id and timestamp.
func (r *TechnicianRepository) Create(ctx context.Context, t *technician.Technician) error {
	query := `
		INSERT INTO technicians (id, name, status, skills)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	t.ID = uuid.NewString()
	if err := r.db.QueryRow(ctx, query, t.ID, t.Name, t.Status, t.Skills).Scan(&t.CreatedAt); err != nil {
		return fmt.Errorf("failed to create technician: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of upd and returns the updated row.
func (r *TechnicianRepository) Update(ctx context.Context, id string, upd *technician.UpdateRequest) (*technician.Technician, error) {
	sets := []string{}
	args := []interface{}{}
	arg := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, arg))
		args = append(args, value)
		arg++
	}

	if upd.Name != nil {
		addSet("name", *upd.Name)
	}
	if upd.Status != nil {
		addSet("status", *upd.Status)
	}
	if upd.Skills != nil {
		addSet("skills", *upd.Skills)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE technicians SET %s
		WHERE id = $%d
		RETURNING id, name, status, skills, created_at
	`, strings.Join(sets, ", "), arg)
	args = append(args, id)

	var t technician.Technician
	err := r.db.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Status, &t.Skills, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update technician: %w", err)
	}

	return &t, nil
}

// Delete removes a technician by id.
func (r *TechnicianRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM technicians WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete technician: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
