package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/richtext"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

// DrivePayload is the wire shape of a drive creation request. Rounds arrive
// already filtered of blank editing slots and descriptions already gated
// through richtext.ForSubmission; this package does not re-shape them.
type DrivePayload struct {
	PlacementDriveID              int               `json:"placement_drive_id"`
	CompanyID                     int               `json:"company_id"`
	DriveType                     model.DriveType   `json:"drive_type"`
	JobMode                       model.JobMode     `json:"job_mode"`
	ApplicationDeadline           *time.Time        `json:"application_deadline"`
	Status                        model.DriveStatus `json:"status"`
	AllowMultipleRoleApplications bool              `json:"allow_multiple_role_applications"`
	Rounds                        []string          `json:"rounds"`
	Locations                     []int             `json:"locations"`
	Jobs                          []JobPayload      `json:"jobs"`
}

// JobPayload is the wire shape of one job posting. The backend API speaks a
// flat field vocabulary, so the editor's nested UG/PG profiles are flattened
// before they reach this type.
type JobPayload struct {
	Title             string        `json:"title"`
	Description       *richtext.Doc `json:"description,omitempty"`
	MinTenthPercent   *float64      `json:"min_tenth_percent,omitempty"`
	MinTwelfthPercent *float64      `json:"min_twelfth_percent,omitempty"`
	MinUGCGPA         *float64      `json:"min_ug_cgpa,omitempty"`
	MinPGCGPA         *float64      `json:"min_pg_cgpa,omitempty"`
	MaxUGBacklogs     *int          `json:"max_ug_backlogs,omitempty"`
	MaxPGBacklogs     *int          `json:"max_pg_backlogs,omitempty"`
	UGPackageMin      *float64      `json:"ug_package_min,omitempty"`
	UGPackageMax      *float64      `json:"ug_package_max,omitempty"`
	PGPackageMin      *float64      `json:"pg_package_min,omitempty"`
	PGPackageMax      *float64      `json:"pg_package_max,omitempty"`
	UGStipend         *float64      `json:"ug_stipend,omitempty"`
	PGStipend         *float64      `json:"pg_stipend,omitempty"`
	UGDetails         string        `json:"ug_details,omitempty"`
	PGDetails         string        `json:"pg_details,omitempty"`
	EligiblePrograms  []int         `json:"eligible_programs"`
}

// CreateDriveWithJobs issues the single combined call used when no entry
// carries an attachment. The backend creates the drive and its jobs
// atomically and returns the drive id.
func (c *Client) CreateDriveWithJobs(ctx context.Context, payload DrivePayload) (int, error) {
	body, err := c.postJSON(ctx, "/company-drives", payload)
	if err != nil {
		return 0, err
	}
	return createdID(body)
}

// CreateDrive issues phase 1 of the staged path: the drive alone, jobs empty,
// to obtain a server-assigned drive id.
func (c *Client) CreateDrive(ctx context.Context, payload DrivePayload) (int, error) {
	payload.Jobs = []JobPayload{}
	body, err := c.postJSON(ctx, "/company-drives", payload)
	if err != nil {
		return 0, err
	}
	return createdID(body)
}

// CreateJob binds one job to an existing drive. With an attachment the
// request goes out as multipart (a JSON part plus the file); without one it
// is a plain JSON call. Used by phase 2 of the staged path and by
// job-addition to an existing drive.
func (c *Client) CreateJob(ctx context.Context, driveID int, job JobPayload, att *model.Attachment) (int, error) {
	path := fmt.Sprintf("/company-drives/%d/jobs", driveID)

	if att == nil {
		body, err := c.postJSON(ctx, path, job)
		if err != nil {
			return 0, err
		}
		return createdID(body)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	jobJSON, err := json.Marshal(job)
	if err != nil {
		return 0, fmt.Errorf("encode job payload: %w", err)
	}
	if err := w.WriteField("payload", string(jobJSON)); err != nil {
		return 0, fmt.Errorf("write payload part: %w", err)
	}
	part, err := w.CreateFormFile("attachment", att.Filename)
	if err != nil {
		return 0, fmt.Errorf("create attachment part: %w", err)
	}
	if _, err := part.Write(att.Data); err != nil {
		return 0, fmt.Errorf("write attachment part: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return 0, err
	}
	return createdID(body)
}
