package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shivaram-9/HireSphereX-sub000/internal/draft"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/upstream"
	"github.com/Shivaram-9/HireSphereX-sub000/internal/wizard"
	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

// fakeUpstream satisfies both Catalog and wizard.Backend.
type fakeUpstream struct {
	companies []model.Company
	createErr error
	jobsSent  []upstream.JobPayload
}

func (f *fakeUpstream) ListCompanies(context.Context) ([]model.Company, error) {
	return f.companies, nil
}
func (f *fakeUpstream) ListPlacementDrives(context.Context) ([]model.PlacementDrive, error) {
	return []model.PlacementDrive{{PlacementDriveID: 12, Title: "Campus 2026"}}, nil
}
func (f *fakeUpstream) ListCities(context.Context) ([]model.City, error) {
	return []model.City{{CityID: 3, Name: "Pune"}}, nil
}
func (f *fakeUpstream) ListPrograms(context.Context) ([]model.Program, error) {
	return []model.Program{{ProgramID: 1, Name: "Computer Engineering", Abbreviation: "CE", Degree: "BTech"}}, nil
}

func (f *fakeUpstream) CreateDriveWithJobs(_ context.Context, payload upstream.DrivePayload) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.jobsSent = payload.Jobs
	return 77, nil
}
func (f *fakeUpstream) CreateDrive(context.Context, upstream.DrivePayload) (int, error) {
	return 77, nil
}
func (f *fakeUpstream) CreateJob(_ context.Context, _ int, job upstream.JobPayload, _ *model.Attachment) (int, error) {
	f.jobsSent = append(f.jobsSent, job)
	return 900 + len(f.jobsSent), nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeUpstream, *draft.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := draft.NewMemory()
	fake := &fakeUpstream{companies: []model.Company{{CompanyID: 4, Name: "Acme"}}}
	h := &Handler{
		Logger:   zap.NewNop(),
		Catalog:  fake,
		Wizard:   wizard.New(store, fake, zap.NewNop(), 5<<20),
		Sessions: wizard.NewManager(0),
	}

	r := gin.New()
	r.GET("/companies", h.ListCompanies)
	r.POST("/wizard", h.StartWizard)
	r.GET("/wizard/:session_id", h.GetWizard)
	r.POST("/wizard/:session_id/basics", h.SubmitBasics)
	r.POST("/wizard/:session_id/jobs", h.AddJob)
	r.PATCH("/wizard/:session_id/jobs/:job_id", h.PatchJob)
	r.DELETE("/wizard/:session_id/jobs/:job_id", h.RemoveJob)
	r.POST("/wizard/:session_id/jobs/:job_id/programs/:program_id", h.ToggleJobProgram)
	r.POST("/wizard/:session_id/jobs/:job_id/attachment", h.UploadAttachment)
	r.POST("/wizard/:session_id/submit", h.SubmitWizard)
	r.POST("/wizard/:session_id/cancel", h.CancelWizard)
	r.POST("/drives/:drive_id/wizard", h.StartJobAddition)
	return r, fake, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, _ := envelope["data"].(map[string]any)
	return data
}

func startSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/wizard", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeData(t, w)["id"].(string)
}

func validBasics() map[string]any {
	return map[string]any{
		"placement_drive_id": 12,
		"company_id":         4,
		"drive_type":         "full_time",
		"job_mode":           "onsite",
		"rounds":             []string{"Online Test", "HR"},
		"locations":          []int{3},
	}
}

func firstEntryID(t *testing.T, r *gin.Engine, sessionID string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/wizard/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeData(t, w)["entries"].([]any)
	entry := entries[0].(map[string]any)["entry"].(map[string]any)
	return entry["id"].(string)
}

func TestListCompanies(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/companies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme")
}

func TestWizard_FullCreateFlow(t *testing.T) {
	t.Parallel()

	r, fake, store := newTestRouter(t)
	sessionID := startSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/basics", validBasics())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jobs", decodeData(t, w)["stage"])

	jobID := firstEntryID(t, r, sessionID)
	w = doJSON(t, r, http.MethodPatch, "/wizard/"+sessionID+"/jobs/"+jobID, map[string]any{"title": "SDE I"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/jobs/"+jobID+"/programs/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(77), data["drive_id"])
	assert.Equal(t, float64(1), data["jobs_created"])
	require.Len(t, fake.jobsSent, 1)
	assert.Equal(t, "SDE I", fake.jobsSent[0].Title)

	// session is gone once the flow finishes
	w = doJSON(t, r, http.MethodGet, "/wizard/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// and the draft slot is cleared
	var staged model.DriveDraft
	require.NoError(t, store.Load(context.Background(), "drive-basic-details:"+sessionID, &staged))
	assert.Zero(t, staged.CompanyID)
}

func TestWizard_BasicsValidationIs422(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRouter(t)
	sessionID := startSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/basics", map[string]any{"company_id": 4})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "placement drive is required")
}

func TestWizard_EntriesValidationReturnsFieldMap(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRouter(t)
	sessionID := startSession(t, r)
	doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/basics", validBasics())
	jobID := firstEntryID(t, r, sessionID)

	w := doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "title-"+jobID)
}

func TestWizard_UpstreamFailureIs502WithVerbatimFields(t *testing.T) {
	t.Parallel()

	r, fake, _ := newTestRouter(t)
	fake.createErr = &upstream.APIError{
		Status:  http.StatusUnprocessableEntity,
		Message: "validation failed",
		Fields:  map[string]any{"application_deadline": "must be in the future"},
	}

	sessionID := startSession(t, r)
	doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/basics", validBasics())
	jobID := firstEntryID(t, r, sessionID)
	doJSON(t, r, http.MethodPatch, "/wizard/"+sessionID+"/jobs/"+jobID, map[string]any{"title": "SDE I"})
	doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/jobs/"+jobID+"/programs/1", nil)

	w := doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/submit", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "must be in the future")

	// retryable: the session is still on the jobs stage
	w = doJSON(t, r, http.MethodGet, "/wizard/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jobs", decodeData(t, w)["stage"])
}

func TestWizard_AttachmentUploadGuards(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRouter(t)
	sessionID := startSession(t, r)
	doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/basics", validBasics())
	jobID := firstEntryID(t, r, sessionID)

	upload := func(filename, contentType string, data []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="attachment"; filename="%s"`, filename))
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/wizard/"+sessionID+"/jobs/"+jobID+"/attachment", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := upload("jd.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("doc"))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "only PDF")

	w = upload("jd.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"filename":"jd.pdf"`)
}

func TestWizard_RemoveLastJobKeepsOne(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRouter(t)
	sessionID := startSession(t, r)
	doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/basics", validBasics())
	jobID := firstEntryID(t, r, sessionID)

	w := doJSON(t, r, http.MethodDelete, "/wizard/"+sessionID+"/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData(t, w)["entries"].([]any), 1)
}

func TestWizard_JobAdditionMode(t *testing.T) {
	t.Parallel()

	r, fake, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/drives/42/wizard", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "jobs", data["stage"])
	sessionID := data["id"].(string)

	jobID := firstEntryID(t, r, sessionID)
	doJSON(t, r, http.MethodPatch, "/wizard/"+sessionID+"/jobs/"+jobID, map[string]any{"title": "Analyst"})
	doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/jobs/"+jobID+"/programs/1", nil)

	w = doJSON(t, r, http.MethodPost, "/wizard/"+sessionID+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(42), decodeData(t, w)["drive_id"])
	require.Len(t, fake.jobsSent, 1)
	assert.Equal(t, "Analyst", fake.jobsSent[0].Title)
}

func TestWizard_UnknownSession(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/wizard/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/wizard/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
