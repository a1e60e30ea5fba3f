package job

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/job"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/listing"
)

type fakeRepo struct {
	jobs map[string]*job.Job
	next int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{jobs: map[string]*job.Job{}}
}

// List applies the same exact, case-sensitive matching the SQL layer does.
func (f *fakeRepo) List(_ context.Context, status, techID string) ([]job.Job, error) {
	out := []job.Job{}
	for _, j := range f.jobs {
		if status != "" && string(j.Status) != status {
			continue
		}
		if techID != "" && (j.TechID == nil || *j.TechID != techID) {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeRepo) Create(_ context.Context, j *job.Job) error {
	f.next++
	j.ID = fmt.Sprintf("job-%d", f.next)
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id string, upd *job.UpdateRequest) (*job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	if upd.Title != nil {
		j.Title = *upd.Title
	}
	if upd.Description != nil {
		j.Description = *upd.Description
	}
	if upd.CustomerID != nil {
		j.CustomerID = *upd.CustomerID
	}
	if upd.TechID != nil {
		if *upd.TechID == "" {
			j.TechID = nil
		} else {
			v := *upd.TechID
			j.TechID = &v
		}
	}
	if upd.Status != nil {
		j.Status = *upd.Status
	}
	if t, set, err := upd.ParseScheduledTime(); err != nil {
		return nil, err
	} else if set {
		j.ScheduledTime = t
	}
	j.UpdatedAt = time.Now()
	return j, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.jobs[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.jobs, id)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, zap.NewNop()), repo
}

func TestCreateUnassignedJob(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.Create(context.Background(), &job.CreateRequest{
		Title:       "AC Repair",
		Description: "Unit not cooling",
		CustomerID:  "cust-1",
		TechID:      "",
		Status:      job.StatusOpen,
	})
	require.NoError(t, err)
	assert.Nil(t, j.TechID, "empty tech_id is stored as null")
	assert.Equal(t, job.StatusOpen, j.Status)

	// Appears under the Open filter and not under Completed
	open, err := svc.List(context.Background(), &listing.Options{Filters: map[string]string{"status": "Open"}})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, j.ID, open[0].ID)

	completed, err := svc.List(context.Background(), &listing.Options{Filters: map[string]string{"status": "Completed"}})
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestCreateDefaultsToOpen(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.Create(context.Background(), &job.CreateRequest{
		Title: "Furnace check", Description: "Annual service", CustomerID: "cust-1",
	})
	require.NoError(t, err)
	assert.Equal(t, job.StatusOpen, j.Status)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &job.CreateRequest{
		Title: "x", Description: "y", CustomerID: "cust-1", Status: job.Status("Done"),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestStatusFilterIsExactMatch(t *testing.T) {
	svc, _ := newTestService()

	for _, status := range []job.Status{job.StatusCompleted, job.StatusInProgress, job.StatusOpen} {
		_, err := svc.Create(context.Background(), &job.CreateRequest{
			Title: "job", Description: "d", CustomerID: "cust-1", Status: status,
		})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), &listing.Options{Filters: map[string]string{"status": "Completed"}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, job.StatusCompleted, list[0].Status)

	// Exact match is case-sensitive, not substring
	list, err = svc.List(context.Background(), &listing.Options{Filters: map[string]string{"status": "completed"}})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.List(context.Background(), &listing.Options{Filters: map[string]string{"status": "Complete"}})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateClearsAssignment(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.Create(context.Background(), &job.CreateRequest{
		Title: "AC Repair", Description: "d", CustomerID: "cust-1", TechID: "tech-1",
	})
	require.NoError(t, err)
	require.NotNil(t, j.TechID)

	empty := ""
	updated, err := svc.Update(context.Background(), j.ID, &job.UpdateRequest{TechID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.TechID)

	bad := job.Status("Done")
	_, err = svc.Update(context.Background(), j.ID, &job.UpdateRequest{Status: &bad})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestUpdateClearsScheduledTime(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.Create(context.Background(), &job.CreateRequest{
		Title: "AC Repair", Description: "d", CustomerID: "cust-1",
		ScheduledTime: "2026-09-01T09:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, j.ScheduledTime)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), j.ScheduledTime.UTC())

	// An absent field leaves the schedule untouched
	title := "AC Repair and Service"
	updated, err := svc.Update(context.Background(), j.ID, &job.UpdateRequest{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.ScheduledTime)

	// A present-but-empty field clears it
	empty := ""
	updated, err = svc.Update(context.Background(), j.ID, &job.UpdateRequest{ScheduledTime: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.ScheduledTime)
}

func TestUpdateRejectsMalformedScheduledTime(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.Create(context.Background(), &job.CreateRequest{
		Title: "AC Repair", Description: "d", CustomerID: "cust-1",
	})
	require.NoError(t, err)

	bad := "next tuesday"
	_, err = svc.Update(context.Background(), j.ID, &job.UpdateRequest{ScheduledTime: &bad})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestCreateWithEmptyScheduledTime(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.Create(context.Background(), &job.CreateRequest{
		Title: "Furnace check", Description: "d", CustomerID: "cust-1",
	})
	require.NoError(t, err)
	assert.Nil(t, j.ScheduledTime, "empty scheduled_time is stored as null")

	_, err = svc.Create(context.Background(), &job.CreateRequest{
		Title: "Furnace check", Description: "d", CustomerID: "cust-1",
		ScheduledTime: "tomorrow",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestDeleteRemovesJob(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.Create(context.Background(), &job.CreateRequest{
		Title: "AC Repair", Description: "d", CustomerID: "cust-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), j.ID))

	list, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.Delete(context.Background(), j.ID), xerrors.ErrNotFound)
}
