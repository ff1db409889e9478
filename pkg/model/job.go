package model

import (
	"github.com/google/uuid"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/richtext"
)

// TrackProfile is one eligibility-and-package profile on a job entry. UG and
// PG applicant pools each carry one. Unset numeric fields mean "no bound".
type TrackProfile struct {
	MinCGPA     *float64 `json:"min_cgpa,omitempty"`
	MaxBacklogs *int     `json:"max_backlogs,omitempty"`
	PackageMin  *float64 `json:"package_min,omitempty"`
	PackageMax  *float64 `json:"package_max,omitempty"`
	Stipend     *float64 `json:"stipend,omitempty"`
	Details     string   `json:"details,omitempty"`
}

// Attachment is an uploaded job-description PDF. It lives only in the wizard
// session memory: the bytes are never written to the draft store, so an
// attachment does not survive a lost session.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// JobEntry is one job posting being assembled inside a drive-in-progress.
// The ID is a locally generated temporary identifier, not a server ID.
type JobEntry struct {
	ID                uuid.UUID     `json:"id"`
	Title             string        `json:"title"`
	Description       *richtext.Doc `json:"description,omitempty"`
	MinTenthPercent   *float64      `json:"min_tenth_percent,omitempty"`
	MinTwelfthPercent *float64      `json:"min_twelfth_percent,omitempty"`
	UG                TrackProfile  `json:"ug"`
	PG                TrackProfile  `json:"pg"`
	EligiblePrograms  []int         `json:"eligible_programs"`
	Attachment        *Attachment   `json:"attachment,omitempty"`
}

// NewJobEntry returns a blank entry with a fresh temporary identifier.
func NewJobEntry() *JobEntry {
	return &JobEntry{
		ID:               uuid.New(),
		EligiblePrograms: []int{},
	}
}

// HasAttachment reports whether this entry carries an uploaded file, which
// forces the staged submission path.
func (j *JobEntry) HasAttachment() bool {
	return j.Attachment != nil && len(j.Attachment.Data) > 0
}

// Clone returns a copy that stays stable while the original keeps being
// edited. Edits replace pointer fields wholesale, so sharing the pointed-to
// values is safe; the program slice is rewritten in place during toggles and
// gets its own backing array.
func (j *JobEntry) Clone() *JobEntry {
	c := *j
	c.EligiblePrograms = make([]int, len(j.EligiblePrograms))
	copy(c.EligiblePrograms, j.EligiblePrograms)
	return &c
}
