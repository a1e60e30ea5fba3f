package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vincehvac/servicepro-crm/internal/domain/customer"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns all customers ordered by name ascending.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at
		FROM customers
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	return customers, nil
}

// FindByID retrieves a customer by id.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at
		FROM customers
		WHERE id = $1
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}

// Create inserts a customer and fills in the generated id and timestamp.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	c.ID = uuid.NewString()
	if err := r.db.QueryRow(ctx, query, c.ID, c.Name, c.Phone, c.Email, c.Address).Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of upd and returns the updated row.
func (r *CustomerRepository) Update(ctx context.Context, id string, upd *customer.UpdateRequest) (*customer.Customer, error) {
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
	if upd.Phone != nil {
		addSet("phone", *upd.Phone)
	}
	if upd.Email != nil {
		addSet("email", *upd.Email)
	}
	if upd.Address != nil {
		addSet("address", *upd.Address)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE customers SET %s
		WHERE id = $%d
		RETURNING id, name, phone, email, address, created_at
	`, strings.Join(sets, ", "), arg)
	args = append(args, id)

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &c, nil
}

// Delete removes a customer by id.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
