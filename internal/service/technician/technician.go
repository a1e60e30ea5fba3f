package technician

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/technician"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/listing"
)

// Repository is the storage surface the service needs.
type Repository interface {
	List(ctx context.Context) ([]technician.Technician, error)
	FindByID(ctx context.Context, id string) (*technician.Technician, error)
	Create(ctx context.Context, t *technician.Technician) error
	Update(ctx context.Context, id string, upd *technician.UpdateRequest) (*technician.Technician, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all technicians ordered by name.
func (s *Service) List(ctx context.Context, _ *listing.Options) ([]technician.Technician, error) {
	return s.repo.List(ctx)
}

// Create inserts a new technician. Status defaults to Available.
func (s *Service) Create(ctx context.Context, req *technician.CreateRequest) (*technician.Technician, error) {
	status := req.Status
	if status == "" {
		status = technician.StatusAvailable
	}
	if !technician.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown technician status %q", xerrors.ErrInvalidInput, status)
	}

	t := &technician.Technician{
		Name:   req.Name,
		Status: status,
		Skills: req.Skills,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create technician", zap.Error(err))
		return nil, err
	}

	s.logger.Info("technician created", zap.String("technician_id", t.ID))
	return t, nil
}

// Update applies a partial update to a technician.
func (s *Service) Update(ctx context.Context, id string, req *technician.UpdateRequest) (*technician.Technician, error) {
	if req.Status != nil && !technician.ValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: unknown technician status %q", xerrors.ErrInvalidInput, *req.Status)
	}

	t, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("technician updated", zap.String("technician_id", id))
	return t, nil
}

// Delete removes a technician.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("technician deleted", zap.String("technician_id", id))
	return nil
}

// ToggleStatus flips a technician between Available and Busy with one
// call. Offline technicians come back as Available; the toggle never
// produces Offline, which is only reachable through a full update.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*technician.Technician, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := technician.StatusAvailable
	if t.Status == technician.StatusAvailable {
		next = technician.StatusBusy
	}

	updated, err := s.repo.Update(ctx, id, &technician.UpdateRequest{Status: &next})
	if err != nil {
		return nil, err
	}

	s.logger.Info("technician status toggled",
		zap.String("technician_id", id),
		zap.String("status", string(next)),
	)
	return updated, nil
}
