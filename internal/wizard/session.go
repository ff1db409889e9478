// Package wizard hosts the two-stage drive-creation flow: stage 1 collects
// the drive basics and persists them to the draft store, stage 2 assembles
// the job entries in session memory, and submission dispatches over a closed
// set of strategies depending on mode and attachments.
package wizard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

type Stage string

const (
	StageDriveBasics Stage = "drive_basics"
	StageJobs        Stage = "jobs"
	StageSucceeded   Stage = "succeeded"
)

type Mode string

const (
	// ModeCreate is the fresh-creation flow: stage 1 then stage 2, draft
	// staged in the store between them.
	ModeCreate Mode = "create"
	// ModeAddJobs attaches jobs to an already-existing drive; the flow opens
	// directly at the jobs stage and never touches the draft store.
	ModeAddJobs Mode = "add_jobs"
)

var (
	ErrSessionNotFound = errors.New("wizard session not found or expired")
	ErrSessionBusy     = errors.New("a submission is already in progress")
	ErrWrongStage      = errors.New("operation not valid in the current stage")
	ErrEntryNotFound   = errors.New("job entry not found")
	// ErrDraftCorrupted means the staged draft lost its essential references;
	// the session is forced back to the basics stage, never partially
	// submitted.
	ErrDraftCorrupted = errors.New("staged drive details are missing or expired, start over from drive details")
)

// BasicsError is the single banner-style message shown on the basics stage.
type BasicsError struct {
	Message string
}

func (e *BasicsError) Error() string { return e.Message }

// EntriesError carries the flat field-level diagnostics map, keyed
// "<field>-<entryID>", produced when stage-2 validation blocks a submission.
type EntriesError struct {
	Fields map[string]string
}

func (e *EntriesError) Error() string {
	return fmt.Sprintf("%d job field(s) need attention", len(e.Fields))
}

// Session is the server-side analog of one open wizard tab. Attachments live
// only here, in memory; losing the session loses them.
type Session struct {
	ID      uuid.UUID
	Mode    Mode
	DriveID int // set in ModeAddJobs

	mu          sync.Mutex
	stage       Stage
	entries     []*model.JobEntry
	fieldErrors map[string]string
	basicsError string
	busy        bool
	lastActive  time.Time
}

func newSession(mode Mode, driveID int) *Session {
	s := &Session{
		ID:          uuid.New(),
		Mode:        mode,
		DriveID:     driveID,
		stage:       StageDriveBasics,
		fieldErrors: map[string]string{},
		lastActive:  time.Now(),
	}
	if mode == ModeAddJobs {
		s.stage = StageJobs
		s.entries = []*model.JobEntry{model.NewJobEntry()}
	}
	return s
}

func (s *Session) draftKey() string {
	return "drive-basic-details:" + s.ID.String()
}

func (s *Session) touch() { s.lastActive = time.Now() }

// Snapshot is the session state handed to the HTTP layer. Entries and the
// error map are copied under the session lock so callers can marshal them
// while the session keeps changing. Attachment bytes are replaced by
// metadata.
type Snapshot struct {
	ID          uuid.UUID         `json:"id"`
	Mode        Mode              `json:"mode"`
	DriveID     int               `json:"drive_id,omitempty"`
	Stage       Stage             `json:"stage"`
	Entries     []EntrySnapshot   `json:"entries"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	BasicsError string            `json:"basics_error,omitempty"`
	Busy        bool              `json:"busy"`
}

type EntrySnapshot struct {
	Entry      *model.JobEntry `json:"entry"`
	Attachment *AttachmentInfo `json:"attachment,omitempty"`
}

type AttachmentInfo struct {
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	fieldErrors := make(map[string]string, len(s.fieldErrors))
	for k, v := range s.fieldErrors {
		fieldErrors[k] = v
	}

	snap := Snapshot{
		ID:          s.ID,
		Mode:        s.Mode,
		DriveID:     s.DriveID,
		Stage:       s.stage,
		Entries:     make([]EntrySnapshot, 0, len(s.entries)),
		FieldErrors: fieldErrors,
		BasicsError: s.basicsError,
		Busy:        s.busy,
	}
	for _, e := range s.entries {
		es := EntrySnapshot{Entry: e.Clone()}
		if e.HasAttachment() {
			es.Attachment = &AttachmentInfo{Filename: e.Attachment.Filename, Size: e.Attachment.Size()}
		}
		snap.Entries = append(snap.Entries, es)
	}
	return snap
}

// Manager tracks live sessions. Sessions idle past the TTL are pruned lazily;
// an expired session means re-entering the wizard, same as a closed tab.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
}

func (m *Manager) Start(mode Mode, driveID int) *Session {
	s := newSession(mode, driveID)
	m.mu.Lock()
	m.prune()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return s, nil
}

func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// prune drops idle sessions; callers hold m.mu.
func (m *Manager) prune() {
	if m.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.ttl)
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff) && !s.busy
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
		}
	}
}
