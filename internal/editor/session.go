package editor

import (
	"context"
	"net/url"
	"sync"
	"time"

	"resume-builder/internal/editor/autosave"
	"resume-builder/internal/resumes"
)

// Session holds the single source of truth for one editing flow: the draft,
// the current step, and the autosave controller. All mutation goes through
// validated patches; the controller only ever reads.
type Session struct {
	ID     string
	UserID string

	mu       sync.Mutex
	draft    resumes.Draft
	step     Step
	ctrl     *autosave.Controller
	lastUsed time.Time
}

// Snapshot is a point-in-time read of the session for responses.
type Snapshot struct {
	ID                string
	Step              Step
	Draft             resumes.Draft
	ResumeID          string
	SaveState         autosave.State
	SaveErr           error
	HasUnsavedChanges bool
	Query             string
}

func (s *Session) touchLocked() {
	s.lastUsed = time.Now()
}

// ApplyPatch validates and applies one section update, then feeds the new
// draft to the autosave debouncer. A validation failure leaves the draft as
// it was.
func (s *Session) ApplyPatch(p Patch) *resumes.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if verr := p.Apply(&s.draft); verr != nil {
		return verr
	}
	s.ctrl.Observe(s.draft)
	return nil
}

// AttachPhoto replaces the draft photo with a newly uploaded file.
func (s *Session) AttachPhoto(file *resumes.PhotoFile) *resumes.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if errs := resumes.ValidatePhotoFile(file); len(errs) > 0 {
		return &resumes.ValidationError{Fields: errs}
	}
	s.draft.Photo = resumes.Photo{File: file}
	s.ctrl.Observe(s.draft)
	return nil
}

// RemovePhoto clears the draft photo. When a stored photo exists the removal
// is explicit so the next save drops the blob as well.
func (s *Session) RemovePhoto() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if s.draft.Photo.URL != "" || s.draft.Photo.File != nil {
		s.draft.Photo = resumes.Photo{Removed: true}
	} else {
		s.draft.Photo = resumes.Photo{}
	}
	s.ctrl.Observe(s.draft)
}

// SetStep moves the flow to the given step.
func (s *Session) SetStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	s.step = step
}

// Retry re-sends the last failed save payload.
func (s *Session) Retry() {
	s.mu.Lock()
	s.touchLocked()
	s.mu.Unlock()
	s.ctrl.Retry()
}

// Snapshot reads the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, saveErr := s.ctrl.State()
	snap := Snapshot{
		ID:                s.ID,
		Step:              s.step,
		Draft:             s.draft.Clone(),
		ResumeID:          s.ctrl.ResumeID(),
		SaveState:         state,
		SaveErr:           saveErr,
		HasUnsavedChanges: s.ctrl.HasUnsavedChanges(s.draft),
	}
	snap.Query = encodeQuery(snap.Step, snap.ResumeID)
	return snap
}

// Draft returns a copy of the current draft, with the adopted resume id
// backfilled once a save has assigned one.
func (s *Session) Draft() resumes.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft.Clone()
	if d.ID == "" {
		d.ID = s.ctrl.ResumeID()
	}
	return d
}

func (s *Session) lastUsedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Close stops the autosave timer.
func (s *Session) Close() {
	s.ctrl.Close()
}

// encodeQuery round-trips the addressable state: reloading the editor with
// these parameters resumes the same record at the same step.
func encodeQuery(step Step, resumeID string) string {
	q := url.Values{}
	q.Set("step", string(step))
	if resumeID != "" {
		q.Set("resumeId", resumeID)
	}
	return q.Encode()
}

// adoptSavedID pins the saved resume id onto the draft so later diffs compare
// against an id-bearing snapshot.
func (s *Session) adoptSavedID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.ID == "" {
		s.draft.ID = id
	}
}

type serviceSaver struct {
	svc    *resumes.Service
	userID string
}

func (s serviceSaver) SaveDraft(ctx context.Context, req resumes.SaveRequest) (resumes.Resume, error) {
	return s.svc.Save(ctx, s.userID, req)
}
