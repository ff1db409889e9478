package wizard

import (
	"mime"

	"github.com/google/uuid"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/richtext"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

// Flat field vocabulary shared by patches, validation diagnostics, and the
// upstream wire format.
const (
	fieldTitle             = "title"
	fieldDescription       = "description"
	fieldMinTenthPercent   = "min_tenth_percent"
	fieldMinTwelfthPercent = "min_twelfth_percent"
	fieldMinUGCGPA         = "min_ug_cgpa"
	fieldMinPGCGPA         = "min_pg_cgpa"
	fieldMaxUGBacklogs     = "max_ug_backlogs"
	fieldMaxPGBacklogs     = "max_pg_backlogs"
	fieldUGPackageMin      = "ug_package_min"
	fieldUGPackageMax      = "ug_package_max"
	fieldPGPackageMin      = "pg_package_min"
	fieldPGPackageMax      = "pg_package_max"
	fieldUGStipend         = "ug_stipend"
	fieldPGStipend         = "pg_stipend"
	fieldUGDetails         = "ug_details"
	fieldPGDetails         = "pg_details"
	fieldEligiblePrograms  = "eligible_programs"
)

func errKey(field string, id uuid.UUID) string {
	return field + "-" + id.String()
}

// AttachmentError is a selection-time rejection: wrong type or oversize. The
// previous attachment (or lack of one) stays in place.
type AttachmentError struct {
	Message string
}

func (e *AttachmentError) Error() string { return e.Message }

// EntryPatch is a partial update of one job entry. Nil pointer fields are
// untouched; names listed in Clear are unset. Every touched field has its
// pending validation error cleared.
type EntryPatch struct {
	Title             *string       `json:"title,omitempty"`
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
	UGDetails         *string       `json:"ug_details,omitempty"`
	PGDetails         *string       `json:"pg_details,omitempty"`
	Clear             []string      `json:"clear,omitempty"`
}

func (s *Session) findEntry(id uuid.UUID) *model.JobEntry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *Session) guardJobsStage() error {
	if s.busy {
		return ErrSessionBusy
	}
	if s.stage != StageJobs {
		return ErrWrongStage
	}
	return nil
}

// AddEntry appends a fresh entry with defaults and a new temporary id.
func (w *Wizard) AddEntry(s *Session) (*model.JobEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardJobsStage(); err != nil {
		return nil, err
	}
	entry := model.NewJobEntry()
	s.entries = append(s.entries, entry)
	s.touch()
	return entry, nil
}

// RemoveEntry removes the entry unless it is the last one remaining, in
// which case it is a deliberate no-op: the collection never goes below one
// entry, and the UI hides the remove action at that point.
func (w *Wizard) RemoveEntry(s *Session, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardJobsStage(); err != nil {
		return err
	}
	if len(s.entries) <= 1 {
		return nil
	}
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.clearEntryErrors(id)
			s.touch()
			return nil
		}
	}
	return ErrEntryNotFound
}

// UpdateEntry merges a patch into one entry and clears the validation errors
// keyed to exactly the fields the patch touched.
func (w *Wizard) UpdateEntry(s *Session, id uuid.UUID, patch EntryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardJobsStage(); err != nil {
		return err
	}
	entry := s.findEntry(id)
	if entry == nil {
		return ErrEntryNotFound
	}

	touched := applyPatch(entry, patch)
	for _, field := range touched {
		delete(s.fieldErrors, errKey(field, id))
	}
	s.touch()
	return nil
}

// ToggleProgram adds or removes one program reference from the entry's
// eligible-program set.
func (w *Wizard) ToggleProgram(s *Session, id uuid.UUID, programID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardJobsStage(); err != nil {
		return err
	}
	entry := s.findEntry(id)
	if entry == nil {
		return ErrEntryNotFound
	}

	for i, p := range entry.EligiblePrograms {
		if p == programID {
			entry.EligiblePrograms = append(entry.EligiblePrograms[:i], entry.EligiblePrograms[i+1:]...)
			delete(s.fieldErrors, errKey(fieldEligiblePrograms, id))
			s.touch()
			return nil
		}
	}
	entry.EligiblePrograms = append(entry.EligiblePrograms, programID)
	delete(s.fieldErrors, errKey(fieldEligiblePrograms, id))
	s.touch()
	return nil
}

// SetAttachment validates the file before accepting it; a rejection leaves
// the entry's previous attachment untouched and makes no network call.
func (w *Wizard) SetAttachment(s *Session, id uuid.UUID, filename, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardJobsStage(); err != nil {
		return err
	}
	entry := s.findEntry(id)
	if entry == nil {
		return ErrEntryNotFound
	}

	// content types arrive with parameters attached ("application/pdf;
	// name=..."), so compare the parsed media type
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/pdf" {
		return &AttachmentError{Message: "only PDF attachments are allowed"}
	}
	if len(data) > w.maxAttachmentBytes {
		return &AttachmentError{Message: "attachment exceeds the maximum allowed size"}
	}

	entry.Attachment = &model.Attachment{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}
	s.touch()
	return nil
}

func (s *Session) clearEntryErrors(id uuid.UUID) {
	suffix := "-" + id.String()
	for k := range s.fieldErrors {
		if len(k) > len(suffix) && k[len(k)-len(suffix):] == suffix {
			delete(s.fieldErrors, k)
		}
	}
}

func applyPatch(e *model.JobEntry, p EntryPatch) []string {
	var touched []string

	set := func(field string, apply func()) {
		apply()
		touched = append(touched, field)
	}

	if p.Title != nil {
		set(fieldTitle, func() { e.Title = *p.Title })
	}
	if p.Description != nil {
		set(fieldDescription, func() { e.Description = p.Description })
	}
	if p.MinTenthPercent != nil {
		set(fieldMinTenthPercent, func() { e.MinTenthPercent = p.MinTenthPercent })
	}
	if p.MinTwelfthPercent != nil {
		set(fieldMinTwelfthPercent, func() { e.MinTwelfthPercent = p.MinTwelfthPercent })
	}
	if p.MinUGCGPA != nil {
		set(fieldMinUGCGPA, func() { e.UG.MinCGPA = p.MinUGCGPA })
	}
	if p.MinPGCGPA != nil {
		set(fieldMinPGCGPA, func() { e.PG.MinCGPA = p.MinPGCGPA })
	}
	if p.MaxUGBacklogs != nil {
		set(fieldMaxUGBacklogs, func() { e.UG.MaxBacklogs = p.MaxUGBacklogs })
	}
	if p.MaxPGBacklogs != nil {
		set(fieldMaxPGBacklogs, func() { e.PG.MaxBacklogs = p.MaxPGBacklogs })
	}
	if p.UGPackageMin != nil {
		set(fieldUGPackageMin, func() { e.UG.PackageMin = p.UGPackageMin })
	}
	if p.UGPackageMax != nil {
		set(fieldUGPackageMax, func() { e.UG.PackageMax = p.UGPackageMax })
	}
	if p.PGPackageMin != nil {
		set(fieldPGPackageMin, func() { e.PG.PackageMin = p.PGPackageMin })
	}
	if p.PGPackageMax != nil {
		set(fieldPGPackageMax, func() { e.PG.PackageMax = p.PGPackageMax })
	}
	if p.UGStipend != nil {
		set(fieldUGStipend, func() { e.UG.Stipend = p.UGStipend })
	}
	if p.PGStipend != nil {
		set(fieldPGStipend, func() { e.PG.Stipend = p.PGStipend })
	}
	if p.UGDetails != nil {
		set(fieldUGDetails, func() { e.UG.Details = *p.UGDetails })
	}
	if p.PGDetails != nil {
		set(fieldPGDetails, func() { e.PG.Details = *p.PGDetails })
	}

	for _, field := range p.Clear {
		switch field {
		case fieldDescription:
			e.Description = nil
		case fieldMinTenthPercent:
			e.MinTenthPercent = nil
		case fieldMinTwelfthPercent:
			e.MinTwelfthPercent = nil
		case fieldMinUGCGPA:
			e.UG.MinCGPA = nil
		case fieldMinPGCGPA:
			e.PG.MinCGPA = nil
		case fieldMaxUGBacklogs:
			e.UG.MaxBacklogs = nil
		case fieldMaxPGBacklogs:
			e.PG.MaxBacklogs = nil
		case fieldUGPackageMin:
			e.UG.PackageMin = nil
		case fieldUGPackageMax:
			e.UG.PackageMax = nil
		case fieldPGPackageMin:
			e.PG.PackageMin = nil
		case fieldPGPackageMax:
			e.PG.PackageMax = nil
		case fieldUGStipend:
			e.UG.Stipend = nil
		case fieldPGStipend:
			e.PG.Stipend = nil
		default:
			continue
		}
		touched = append(touched, field)
	}

	return touched
}
