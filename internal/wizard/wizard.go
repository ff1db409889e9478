package wizard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/draft"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/upstream"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

// Backend is the slice of the placement API the wizard submits through.
// *upstream.Client satisfies it; tests substitute fakes.
type Backend interface {
	CreateDriveWithJobs(ctx context.Context, payload upstream.DrivePayload) (int, error)
	CreateDrive(ctx context.Context, payload upstream.DrivePayload) (int, error)
	CreateJob(ctx context.Context, driveID int, job upstream.JobPayload, att *model.Attachment) (int, error)
}

type Wizard struct {
	store              draft.Store
	backend            Backend
	logger             *zap.Logger
	maxAttachmentBytes int
}

func New(store draft.Store, backend Backend, logger *zap.Logger, maxAttachmentBytes int) *Wizard {
	return &Wizard{
		store:              store,
		backend:            backend,
		logger:             logger,
		maxAttachmentBytes: maxAttachmentBytes,
	}
}

// SubmitBasics is the stage-1 "Next": validate the draft, stage it in the
// store, and advance to the jobs stage with one fresh entry. A validation
// failure surfaces a single banner message and changes nothing else —
// no transition, no store write.
func (w *Wizard) SubmitBasics(ctx context.Context, s *Session, d model.DriveDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrSessionBusy
	}
	if s.stage != StageDriveBasics {
		return ErrWrongStage
	}

	if err := d.Validate(); err != nil {
		s.basicsError = err.Error()
		return &BasicsError{Message: err.Error()}
	}

	if err := w.store.Save(ctx, s.draftKey(), d); err != nil {
		return fmt.Errorf("stage drive draft: %w", err)
	}

	s.basicsError = ""
	s.stage = StageJobs
	s.entries = []*model.JobEntry{model.NewJobEntry()}
	s.touch()

	w.logger.Sugar().Infow("drive draft staged",
		"session", s.ID, "company", d.CompanyID, "placement_drive", d.PlacementDriveID)
	return nil
}

// Cancel clears the staged draft unconditionally at either stage. There is
// no resume once cancelled; a stale draft must never leak into a later
// unrelated session.
func (w *Wizard) Cancel(ctx context.Context, s *Session) error {
	if err := w.store.Clear(ctx, s.draftKey()); err != nil {
		return fmt.Errorf("clear drive draft: %w", err)
	}
	w.logger.Sugar().Infow("wizard cancelled", "session", s.ID)
	return nil
}
