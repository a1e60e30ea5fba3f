package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vincehvac/servicepro-crm/internal/domain/customer"
	"github.com/vincehvac/servicepro-crm/internal/domain/job"
	"github.com/vincehvac/servicepro-crm/internal/domain/technician"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
)

type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

// List returns jobs newest-created first, each with its customer and
// technician embedded. status and techID are exact-match filters; an
// empty value leaves the corresponding filter off.
func (r *JobRepository) List(ctx context.Context, status, techID string) ([]job.Job, error) {
	query := `
		SELECT j.id, j.title, j.description, j.customer_id, j.tech_id,
		       j.status, j.scheduled_time, j.created_at, j.updated_at,
		       c.id, c.name, c.phone, c.email, c.address, c.created_at,
		       t.id, t.name, t.status, t.skills, t.created_at
		FROM jobs j
		LEFT JOIN customers c ON c.id = j.customer_id
		LEFT JOIN technicians t ON t.id = j.tech_id
	`

	where := []string{}
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		where = append(where, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if techID != "" {
		args = append(args, techID)
		where = append(where, fmt.Sprintf("j.tech_id = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY j.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []job.Job{}
	for rows.Next() {
		j, err := scanJoinedJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}

	return jobs, nil
}

func scanJoinedJob(rows pgx.Rows) (*job.Job, error) {
	var j job.Job
	var (
		custID, custName, custPhone, custEmail, custAddress *string
		custCreated                                         *time.Time
		techID, techName, techSkills                        *string
		techStatus                                          *technician.Status
		techCreated                                         *time.Time
	)

	err := rows.Scan(
		&j.ID, &j.Title, &j.Description, &j.CustomerID, &j.TechID,
		&j.Status, &j.ScheduledTime, &j.CreatedAt, &j.UpdatedAt,
		&custID, &custName, &custPhone, &custEmail, &custAddress, &custCreated,
		&techID, &techName, &techStatus, &techSkills, &techCreated,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	if custID != nil {
		j.Customer = &customer.Customer{
			ID:        *custID,
			Name:      *custName,
			Phone:     *custPhone,
			Email:     *custEmail,
			Address:   *custAddress,
			CreatedAt: *custCreated,
		}
	}
	if techID != nil {
		j.Technician = &technician.Technician{
			ID:        *techID,
			Name:      *techName,
			Status:    *techStatus,
			Skills:    *techSkills,
			CreatedAt: *techCreated,
		}
	}

	return &j, nil
}

// FindByID retrieves a job by id without its joined rows.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*job.Job, error) {
	query := `
		SELECT id, title, description, customer_id, tech_id,
		       status, scheduled_time, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`

	var j job.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.Title, &j.Description, &j.CustomerID, &j.TechID,
		&j.Status, &j.ScheduledTime, &j.CreatedAt, &j.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &j, nil
}

// Create inserts a job and fills in the generated id and timestamps.
func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (id, title, description, customer_id, tech_id, status, scheduled_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	j.ID = uuid.NewString()
	err := r.db.QueryRow(
		ctx, query,
		j.ID, j.Title, j.Description, j.CustomerID, j.TechID, j.Status, j.ScheduledTime,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of upd, bumps updated_at and returns
// the updated row. A present-but-empty tech_id clears the assignment and
// a present-but-empty scheduled_time clears the schedule.
func (r *JobRepository) Update(ctx context.Context, id string, upd *job.UpdateRequest) (*job.Job, error) {
	sets := []string{}
	args := []interface{}{}
	arg := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, arg))
		args = append(args, value)
		arg++
	}

	if upd.Title != nil {
		addSet("title", *upd.Title)
	}
	if upd.Description != nil {
		addSet("description", *upd.Description)
	}
	if upd.CustomerID != nil {
		addSet("customer_id", *upd.CustomerID)
	}
	if upd.TechID != nil {
		if *upd.TechID == "" {
			addSet("tech_id", nil)
		} else {
			addSet("tech_id", *upd.TechID)
		}
	}
	if upd.Status != nil {
		addSet("status", *upd.Status)
	}
	if t, set, err := upd.ParseScheduledTime(); err != nil {
		return nil, fmt.Errorf("%w: invalid scheduled_time %q", xerrors.ErrInvalidInput, *upd.ScheduledTime)
	} else if set {
		// t is nil when clearing, which pgx writes as NULL.
		addSet("scheduled_time", t)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf(`
		UPDATE jobs SET %s
		WHERE id = $%d
		RETURNING id, title, description, customer_id, tech_id,
		          status, scheduled_time, created_at, updated_at
	`, strings.Join(sets, ", "), arg)
	args = append(args, id)

	var j job.Job
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&j.ID, &j.Title, &j.Description, &j.CustomerID, &j.TechID,
		&j.Status, &j.ScheduledTime, &j.CreatedAt, &j.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return &j, nil
}

// Delete removes a job by id.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
