package wizard

import (
	"context"
	"fmt"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/richtext"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/upstream"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

// Result reports a finished submission.
type Result struct {
	DriveID     int `json:"drive_id"`
	JobsCreated int `json:"jobs_created"`
}

// SubmitError is an upstream failure during submission. For the staged and
// job-addition paths it records how far the sequential loop got: jobs before
// the failing index exist, jobs at and after it do not, and nothing is rolled
// back. The session stays in the jobs stage so the operator can correct and
// retry (or resume via job-addition) without re-entering data.
type SubmitError struct {
	Err         error
	DriveID     int
	JobsCreated int
}

func (e *SubmitError) Error() string { return e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }

// submissionStrategy is the closed set of ways a job collection reaches the
// backend. Selection is a capability check on the transport: batch submission
// cannot carry attachments, so any attachment forces the staged path.
type submissionStrategy interface {
	run(ctx context.Context, w *Wizard, draft model.DriveDraft, entries []*model.JobEntry) (*Result, error)
}

// combinedSubmission creates the drive and all jobs in one call; the backend
// is responsible for making that atomic.
type combinedSubmission struct{}

// stagedSubmission creates the drive alone to obtain its id, then binds each
// job with its attachment one call at a time.
type stagedSubmission struct{}

// jobAddition binds each job to an already-existing drive.
type jobAddition struct {
	driveID int
}

func chooseStrategy(s *Session, entries []*model.JobEntry) submissionStrategy {
	if s.Mode == ModeAddJobs {
		return &jobAddition{driveID: s.DriveID}
	}
	for _, e := range entries {
		if e.HasAttachment() {
			return &stagedSubmission{}
		}
	}
	return &combinedSubmission{}
}

// Submit runs stage-2 validation and dispatches the collection to the
// backend. The busy flag blocks duplicate submissions and editor mutations
// for the duration of the in-flight request.
func (w *Wizard) Submit(ctx context.Context, s *Session) (*Result, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrSessionBusy
	}
	if s.stage != StageJobs {
		s.mu.Unlock()
		return nil, ErrWrongStage
	}

	errs, ok := ValidateEntries(s.entries)
	if !ok {
		s.fieldErrors = errs
		s.mu.Unlock()
		return nil, &EntriesError{Fields: errs}
	}
	s.fieldErrors = map[string]string{}
	s.busy = true
	entries := make([]*model.JobEntry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	result, err := w.submit(ctx, s, entries)

	s.mu.Lock()
	s.busy = false
	if err == nil {
		s.stage = StageSucceeded
	}
	s.touch()
	s.mu.Unlock()

	return result, err
}

func (w *Wizard) submit(ctx context.Context, s *Session, entries []*model.JobEntry) (*Result, error) {
	var draft model.DriveDraft
	if s.Mode == ModeCreate {
		if err := w.store.Load(ctx, s.draftKey(), &draft); err != nil {
			return nil, fmt.Errorf("load staged draft: %w", err)
		}
		// A draft that lost its essential references, or that no longer
		// validates as a whole, is corrupted or expired: abort and force the
		// session back to stage 1, never partially submit.
		if draft.CompanyID == 0 || draft.PlacementDriveID == 0 || draft.Validate() != nil {
			s.mu.Lock()
			s.stage = StageDriveBasics
			s.mu.Unlock()
			return nil, ErrDraftCorrupted
		}
	}

	strategy := chooseStrategy(s, entries)
	result, err := strategy.run(ctx, w, draft, entries)
	if err != nil {
		w.logger.Sugar().Errorw("wizard submission failed",
			"session", s.ID, "mode", s.Mode, "error", err)
		submitErr := &SubmitError{Err: err}
		if result != nil {
			submitErr.DriveID = result.DriveID
			submitErr.JobsCreated = result.JobsCreated
		}
		return nil, submitErr
	}

	if s.Mode == ModeCreate {
		if err := w.store.Clear(ctx, s.draftKey()); err != nil {
			w.logger.Sugar().Warnw("clear staged draft after submit", "session", s.ID, "error", err)
		}
	}
	w.logger.Sugar().Infow("wizard submission succeeded",
		"session", s.ID, "mode", s.Mode, "drive", result.DriveID, "jobs", result.JobsCreated)
	return result, nil
}

func (cs *combinedSubmission) run(ctx context.Context, w *Wizard, draft model.DriveDraft, entries []*model.JobEntry) (*Result, error) {
	payload := buildDrivePayload(draft, entries)
	driveID, err := w.backend.CreateDriveWithJobs(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &Result{DriveID: driveID, JobsCreated: len(entries)}, nil
}

func (ss *stagedSubmission) run(ctx context.Context, w *Wizard, draft model.DriveDraft, entries []*model.JobEntry) (*Result, error) {
	driveID, err := w.backend.CreateDrive(ctx, buildDrivePayload(draft, nil))
	if err != nil {
		return nil, err
	}
	return createSequentially(ctx, w, driveID, entries)
}

func (ja *jobAddition) run(ctx context.Context, w *Wizard, _ model.DriveDraft, entries []*model.JobEntry) (*Result, error) {
	return createSequentially(ctx, w, ja.driveID, entries)
}

// createSequentially issues one create-job call per entry, in order, awaiting
// each before the next. Sequencing keeps partial-failure state deterministic:
// on the first failure the loop halts and the result reports exactly how many
// jobs exist.
func createSequentially(ctx context.Context, w *Wizard, driveID int, entries []*model.JobEntry) (*Result, error) {
	result := &Result{DriveID: driveID}
	for i, e := range entries {
		if _, err := w.backend.CreateJob(ctx, driveID, buildJobPayload(e), e.Attachment); err != nil {
			return result, fmt.Errorf("create job %d of %d: %w", i+1, len(entries), err)
		}
		result.JobsCreated++
	}
	return result, nil
}

func buildDrivePayload(d model.DriveDraft, entries []*model.JobEntry) upstream.DrivePayload {
	locations := d.Locations
	if locations == nil {
		locations = []int{}
	}
	jobs := make([]upstream.JobPayload, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, buildJobPayload(e))
	}
	return upstream.DrivePayload{
		PlacementDriveID:              d.PlacementDriveID,
		CompanyID:                     d.CompanyID,
		DriveType:                     d.DriveType,
		JobMode:                       d.JobMode,
		ApplicationDeadline:           d.ApplicationDeadline,
		Status:                        d.Status,
		AllowMultipleRoleApplications: d.AllowMultipleRoleApplications,
		Rounds:                        d.SubmissionRounds(),
		Locations:                     locations,
		Jobs:                          jobs,
	}
}

// buildJobPayload flattens an entry to the backend's wire vocabulary. Every
// path goes through here, so blank placeholder descriptions are always
// normalized away regardless of strategy.
func buildJobPayload(e *model.JobEntry) upstream.JobPayload {
	return upstream.JobPayload{
		Title:             e.Title,
		Description:       richtext.ForSubmission(e.Description),
		MinTenthPercent:   e.MinTenthPercent,
		MinTwelfthPercent: e.MinTwelfthPercent,
		MinUGCGPA:         e.UG.MinCGPA,
		MinPGCGPA:         e.PG.MinCGPA,
		MaxUGBacklogs:     e.UG.MaxBacklogs,
		MaxPGBacklogs:     e.PG.MaxBacklogs,
		UGPackageMin:      e.UG.PackageMin,
		UGPackageMax:      e.UG.PackageMax,
		PGPackageMin:      e.PG.PackageMin,
		PGPackageMax:      e.PG.PackageMax,
		UGStipend:         e.UG.Stipend,
		PGStipend:         e.PG.Stipend,
		UGDetails:         e.UG.Details,
		PGDetails:         e.PG.Details,
		EligiblePrograms:  e.EligiblePrograms,
	}
}
