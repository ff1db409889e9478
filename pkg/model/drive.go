package model

import (
	"fmt"
	"strings"
	"time"
)

type DriveType string

const (
	DriveTypeFullTime   DriveType = "full_time"
	DriveTypeInternship DriveType = "internship"
	DriveTypeContract   DriveType = "contract"
)

type JobMode string

const (
	JobModeOnsite JobMode = "onsite"
	JobModeHybrid JobMode = "hybrid"
	JobModeRemote JobMode = "remote"
)

type DriveStatus string

const (
	DriveStatusOpen   DriveStatus = "open"
	DriveStatusClosed DriveStatus = "closed"
)

// DriveDraft is the staged, not-yet-persisted description of a company's
// drive. It is what the wizard persists to the draft store between the basics
// stage and the jobs stage, so every field must survive a JSON round trip.
type DriveDraft struct {
	PlacementDriveID              int         `json:"placement_drive_id"`
	CompanyID                     int         `json:"company_id"`
	DriveType                     DriveType   `json:"drive_type"`
	JobMode                       JobMode     `json:"job_mode"`
	ApplicationDeadline           *time.Time  `json:"application_deadline"`
	Status                        DriveStatus `json:"status"`
	AllowMultipleRoleApplications bool        `json:"allow_multiple_role_applications"`
	Rounds                        []string    `json:"rounds"`
	Locations                     []int       `json:"locations"`
}

func validDriveType(t DriveType) bool {
	switch t {
	case DriveTypeFullTime, DriveTypeInternship, DriveTypeContract:
		return true
	}
	return false
}

func validJobMode(m JobMode) bool {
	switch m {
	case JobModeOnsite, JobModeHybrid, JobModeRemote:
		return true
	}
	return false
}

// Validate checks the four required fields and enum membership. The basics
// stage surfaces a single banner message, so the first problem found wins.
func (d *DriveDraft) Validate() error {
	if d.CompanyID == 0 {
		return fmt.Errorf("company is required")
	}
	if d.PlacementDriveID == 0 {
		return fmt.Errorf("placement drive is required")
	}
	if d.DriveType == "" {
		return fmt.Errorf("drive type is required")
	}
	if !validDriveType(d.DriveType) {
		return fmt.Errorf("invalid drive type %q", d.DriveType)
	}
	if d.JobMode == "" {
		return fmt.Errorf("job mode is required")
	}
	if !validJobMode(d.JobMode) {
		return fmt.Errorf("invalid job mode %q", d.JobMode)
	}
	if d.Status == "" {
		d.Status = DriveStatusOpen
	}
	if d.Status != DriveStatusOpen && d.Status != DriveStatusClosed {
		return fmt.Errorf("invalid status %q", d.Status)
	}
	return nil
}

// SubmissionRounds returns the rounds with blank editing slots filtered out.
// The draft itself keeps the slots untouched so mid-edit state round-trips.
func (d *DriveDraft) SubmissionRounds() []string {
	out := make([]string, 0, len(d.Rounds))
	for _, r := range d.Rounds {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
