package job

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/job"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/listing"
)

// Repository is the storage surface the service needs.
type Repository interface {
	List(ctx context.Context, status, techID string) ([]job.Job, error)
	FindByID(ctx context.Context, id string) (*job.Job, error)
	Create(ctx context.Context, j *job.Job) error
	Update(ctx context.Context, id string, upd *job.UpdateRequest) (*job.Job, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns jobs newest first with their customer and technician
// embedded. The status and tech_id filters are exact, case-sensitive
// matches applied by the repository.
func (s *Service) List(ctx context.Context, opts *listing.Options) ([]job.Job, error) {
	return s.repo.List(ctx, opts.Filter("status"), opts.Filter("tech_id"))
}

// Create inserts a new job. An empty tech_id stores the job unassigned,
// an empty scheduled_time stores it unscheduled and an empty status
// defaults to Open.
func (s *Service) Create(ctx context.Context, req *job.CreateRequest) (*job.Job, error) {
	status := req.Status
	if status == "" {
		status = job.StatusOpen
	}
	if !job.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown job status %q", xerrors.ErrInvalidInput, status)
	}

	j := &job.Job{
		Title:       req.Title,
		Description: req.Description,
		CustomerID:  req.CustomerID,
		Status:      status,
	}
	if req.TechID != "" {
		techID := req.TechID
		j.TechID = &techID
	}
	if req.ScheduledTime != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduledTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid scheduled_time %q", xerrors.ErrInvalidInput, req.ScheduledTime)
		}
		j.ScheduledTime = &t
	}

	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.Error("failed to create job", zap.Error(err))
		return nil, err
	}

	s.logger.Info("job created",
		zap.String("job_id", j.ID),
		zap.String("status", string(j.Status)),
	)
	return j, nil
}

// Update applies a partial update to a job.
func (s *Service) Update(ctx context.Context, id string, req *job.UpdateRequest) (*job.Job, error) {
	if req.Status != nil && !job.ValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: unknown job status %q", xerrors.ErrInvalidInput, *req.Status)
	}
	if _, _, err := req.ParseScheduledTime(); err != nil {
		return nil, fmt.Errorf("%w: invalid scheduled_time %q", xerrors.ErrInvalidInput, *req.ScheduledTime)
	}

	j, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job updated", zap.String("job_id", id))
	return j, nil
}

// Delete removes a job.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("job deleted", zap.String("job_id", id))
	return nil
}
