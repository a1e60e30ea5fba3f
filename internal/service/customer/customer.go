package customer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/customer"
	"github.com/vincehvac/servicepro-crm/internal/pkg/listing"
)

// Repository is the storage surface the service needs.
type Repository interface {
	List(ctx context.Context) ([]customer.Customer, error)
	FindByID(ctx context.Context, id string) (*customer.Customer, error)
	Create(ctx context.Context, c *customer.Customer) error
	Update(ctx context.Context, id string, upd *customer.UpdateRequest) (*customer.Customer, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns customers ordered by name. A search term narrows the
// result to customers whose name, email or phone contains the term,
// case-insensitively. A term matching nothing yields an empty list,
// not an error.
func (s *Service) List(ctx context.Context, opts *listing.Options) ([]customer.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	if opts == nil || opts.Search == "" {
		return customers, nil
	}

	term := strings.ToLower(opts.Search)
	matched := []customer.Customer{}
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) ||
			strings.Contains(strings.ToLower(c.Phone), term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// Create inserts a new customer.
func (s *Service) Create(ctx context.Context, req *customer.CreateRequest) (*customer.Customer, error) {
	c := &customer.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer created", zap.String("customer_id", c.ID))
	return c, nil
}

// Update applies a partial update to a customer.
func (s *Service) Update(ctx context.Context, id string, req *customer.UpdateRequest) (*customer.Customer, error) {
	c, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer updated", zap.String("customer_id", id))
	return c, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}
