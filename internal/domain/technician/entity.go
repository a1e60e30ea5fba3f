package technician

import (
	"strings"
	"time"
)

// Status is a technician's availability. Exactly three values exist.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusBusy      Status = "Busy"
	StatusOffline   Status = "Offline"
)

// ValidStatus reports whether s is one of the three technician statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusBusy, StatusOffline:
		return true
	}
	return false
}

// Technician is a service worker with an availability status and a
// free-text skill list.
type Technician struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Skills    string    `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
}

// SkillList splits the comma-separated skills text for display. Individual
// values are not validated anywhere.
func (t *Technician) SkillList() []string {
	var skills []string
	for _, s := range strings.Split(t.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
