package dashboard

// Stats are the four dashboard counters, recomputed on every request.
// CompletedToday counts all completed jobs, not just today's; the field
// name is kept from the original dashboard.
type Stats struct {
	ActiveJobs           int `json:"active_jobs"`
	CompletedToday       int `json:"completed_today"`
	AvailableTechnicians int `json:"available_technicians"`
	PendingJobs          int `json:"pending_jobs"`
}
