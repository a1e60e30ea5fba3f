package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vincehvac/servicepro-crm/internal/domain/dashboard"
	"github.com/vincehvac/servicepro-crm/internal/domain/job"
	"github.com/vincehvac/servicepro-crm/internal/domain/technician"
)

// JobLister loads the full job collection.
type JobLister interface {
	List(ctx context.Context, status, techID string) ([]job.Job, error)
}

// TechnicianLister loads the full technician collection.
type TechnicianLister interface {
	List(ctx context.Context) ([]technician.Technician, error)
}

type Service struct {
	jobs  JobLister
	techs TechnicianLister
}

func NewService(jobs JobLister, techs TechnicianLister) *Service {
	return &Service{jobs: jobs, techs: techs}
}

// Stats loads jobs and technicians concurrently and counts in memory.
// Nothing is cached; every call recomputes from the live collections.
func (s *Service) Stats(ctx context.Context) (*dashboard.Stats, error) {
	var (
		jobs  []job.Job
		techs []technician.Technician
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.List(gctx, "", "")
		return err
	})
	g.Go(func() error {
		var err error
		techs, err = s.techs.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &dashboard.Stats{}
	for _, j := range jobs {
		switch j.Status {
		case job.StatusInProgress:
			stats.ActiveJobs++
		case job.StatusCompleted:
			// All-time count; the field keeps the original dashboard's
			// "completed today" name.
			stats.CompletedToday++
		case job.StatusOpen:
			stats.PendingJobs++
		}
	}
	for _, t := range techs {
		if t.Status == technician.StatusAvailable {
			stats.AvailableTechnicians++
		}
	}

	return stats, nil
}
