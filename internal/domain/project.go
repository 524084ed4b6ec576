package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/sitecrew/gantt/internal/dateonly"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Project owns a schedule of tasks.
type Project struct {
	ID        string
	ShortID   string
	Name      string
	StartDate dateonly.Date
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. HSE01, BARN0042).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. HSE01)", p.ShortID)
	}
	return nil
}

// DisplayID prefers ShortID and falls back to the first 8 characters of ID.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
