package job

import "time"

// CreateRequest creates a job. An empty TechID means unassigned and an
// empty ScheduledTime means unscheduled; both are stored as NULL,
// matching the blank options of the job form. ScheduledTime is RFC 3339.
type CreateRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Description   string `json:"description" binding:"required"`
	CustomerID    string `json:"customer_id" binding:"required"`
	TechID        string `json:"tech_id"`
	Status        Status `json:"status"`
	ScheduledTime string `json:"scheduled_time"`
}

// UpdateRequest partially updates a job. A present-but-empty TechID
// clears the assignment and a present-but-empty ScheduledTime clears
// the schedule; a nil field is left untouched.
type UpdateRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=255"`
	Description   *string `json:"description"`
	CustomerID    *string `json:"customer_id"`
	TechID        *string `json:"tech_id"`
	Status        *Status `json:"status"`
	ScheduledTime *string `json:"scheduled_time"`
}

// ParseScheduledTime interprets the update's scheduled_time field.
// Absent leaves the stored value untouched (set is false), empty clears
// it, anything else must parse as RFC 3339.
func (u *UpdateRequest) ParseScheduledTime() (t *time.Time, set bool, err error) {
	if u.ScheduledTime == nil {
		return nil, false, nil
	}
	if *u.ScheduledTime == "" {
		return nil, true, nil
	}
	parsed, err := time.Parse(time.RFC3339, *u.ScheduledTime)
	if err != nil {
		return nil, false, err
	}
	return &parsed, true, nil
}
