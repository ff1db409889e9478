package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/upstream"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/wizard"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/response"
)

// Catalog is the read-only slice of the placement backend the screens need
// for their pickers. *upstream.Client satisfies it.
type Catalog interface {
	ListCompanies(ctx context.Context) ([]model.Company, error)
	ListPlacementDrives(ctx context.Context) ([]model.PlacementDrive, error)
	ListCities(ctx context.Context) ([]model.City, error)
	ListPrograms(ctx context.Context) ([]model.Program, error)
}

type Handler struct {
	Logger   *zap.Logger
	Catalog  Catalog
	Wizard   *wizard.Wizard
	Sessions *wizard.Manager
}

// session resolves the :session_id route param to a live wizard session,
// writing the error response itself when it cannot.
func (h *Handler) session(c *gin.Context) (*wizard.Session, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.BadRequest(c, "invalid session ID")
		return nil, false
	}
	s, err := h.Sessions.Get(id)
	if err != nil {
		response.NotFound(c, "wizard session not found or expired")
		return nil, false
	}
	return s, true
}

// wizardError maps wizard failures onto the error taxonomy: local validation
// is 422 (single message for stage 1, field map for stage 2), a lost draft is
// 409 with a forced return to stage 1, and upstream failures are relayed as
// 502 with the backend's message and field map verbatim.
func (h *Handler) wizardError(c *gin.Context, err error) {
	var basicsErr *wizard.BasicsError
	var entriesErr *wizard.EntriesError
	var attErr *wizard.AttachmentError
	var submitErr *wizard.SubmitError

	switch {
	case errors.As(err, &basicsErr):
		response.ValidationError(c, basicsErr.Message, nil)
	case errors.As(err, &entriesErr):
		response.ValidationError(c, "some job fields are invalid", fieldMap(entriesErr.Fields))
	case errors.As(err, &attErr):
		response.ValidationError(c, attErr.Message, nil)
	case errors.Is(err, wizard.ErrDraftCorrupted):
		response.Conflict(c, err.Error())
	case errors.Is(err, wizard.ErrSessionBusy):
		response.Conflict(c, err.Error())
	case errors.Is(err, wizard.ErrWrongStage):
		response.Conflict(c, err.Error())
	case errors.Is(err, wizard.ErrSessionNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, wizard.ErrEntryNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &submitErr):
		h.upstreamError(c, submitErr)
	default:
		h.Logger.Sugar().Errorw("wizard handler error", "error", err)
		response.InternalError(c, "")
	}
}

func (h *Handler) upstreamError(c *gin.Context, submitErr *wizard.SubmitError) {
	// partial progress matters to the operator: the drive and the jobs
	// created before the failure exist and are not rolled back
	data := gin.H{
		"jobs_created": submitErr.JobsCreated,
	}
	if submitErr.DriveID != 0 {
		data["drive_id"] = submitErr.DriveID
	}
	response.UpstreamError(c, submitErr.Error(), upstreamFields(submitErr), data)
}

func upstreamFields(err error) map[string]any {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

func fieldMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
