package job

import (
	"time"

	"github.com/vincehvac/servicepro-crm/internal/domain/customer"
	"github.com/vincehvac/servicepro-crm/internal/domain/technician"
)

// Status is a job's lifecycle state. Exactly four values exist.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusScheduled  Status = "Scheduled"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// ValidStatus reports whether s is one of the four job statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Job is a unit of service work. TechID is nil while the job is
// unassigned. List responses embed the related customer and technician.
type Job struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CustomerID    string     `json:"customer_id"`
	TechID        *string    `json:"tech_id"`
	Status        Status     `json:"status"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Customer   *customer.Customer     `json:"customer,omitempty"`
	Technician *technician.Technician `json:"technician,omitempty"`
}
