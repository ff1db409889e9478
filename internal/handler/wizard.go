package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/wizard"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/response"
)

func (h *Handler) StartWizard(c *gin.Context) {
	s := h.Sessions.Start(wizard.ModeCreate, 0)
	response.Created(c, s.Snapshot())
}

// StartJobAddition opens a wizard session bound to an existing drive,
// reached from a drive-details "Add Jobs" action. It skips the basics stage.
func (h *Handler) StartJobAddition(c *gin.Context) {
	driveID, err := strconv.Atoi(c.Param("drive_id"))
	if err != nil || driveID < 1 {
		response.BadRequest(c, "invalid drive ID")
		return
	}
	s := h.Sessions.Start(wizard.ModeAddJobs, driveID)
	response.Created(c, s.Snapshot())
}

func (h *Handler) GetWizard(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, s.Snapshot())
}

func (h *Handler) SubmitBasics(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var draft model.DriveDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.Wizard.SubmitBasics(c.Request.Context(), s, draft); err != nil {
		h.wizardError(c, err)
		return
	}
	response.OK(c, s.Snapshot())
}

func (h *Handler) AddJob(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	entry, err := h.Wizard.AddEntry(s)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	response.Created(c, entry)
}

func (h *Handler) RemoveJob(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}
	if err := h.Wizard.RemoveEntry(s, jobID); err != nil {
		h.wizardError(c, err)
		return
	}
	response.OK(c, s.Snapshot())
}

func (h *Handler) PatchJob(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	var patch wizard.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.Wizard.UpdateEntry(s, jobID, patch); err != nil {
		h.wizardError(c, err)
		return
	}
	response.OK(c, s.Snapshot())
}

func (h *Handler) ToggleJobProgram(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}
	programID, err := strconv.Atoi(c.Param("program_id"))
	if err != nil || programID < 1 {
		response.BadRequest(c, "invalid program ID")
		return
	}
	if err := h.Wizard.ToggleProgram(s, jobID, programID); err != nil {
		h.wizardError(c, err)
		return
	}
	response.OK(c, s.Snapshot())
}

// UploadAttachment accepts a job-description PDF. The wizard rejects wrong
// types and oversize files at selection time; a rejection changes nothing
// and makes no upstream call.
func (h *Handler) UploadAttachment(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		response.BadRequest(c, "attachment file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read attachment")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "could not read attachment")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.Wizard.SetAttachment(s, jobID, fileHeader.Filename, contentType, data); err != nil {
		h.wizardError(c, err)
		return
	}
	response.OK(c, s.Snapshot())
}

func (h *Handler) SubmitWizard(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	result, err := h.Wizard.Submit(c.Request.Context(), s)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	// the flow is finished; the session has nothing left to resume
	h.Sessions.Remove(s.ID)
	response.OK(c, result)
}

func (h *Handler) CancelWizard(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.Wizard.Cancel(c.Request.Context(), s); err != nil {
		h.wizardError(c, err)
		return
	}
	h.Sessions.Remove(s.ID)
	response.Message(c, "wizard cancelled")
}

func (h *Handler) jobID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		response.BadRequest(c, "invalid job entry ID")
		return uuid.Nil, false
	}
	return id, true
}
