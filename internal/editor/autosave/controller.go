package autosave

import (
	"context"
	"sync"
	"time"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/telemetry"
)

// State is the save lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSaving
	StateError
)

func (s State) String() string {
	switch s {
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Saver is the persistence collaborator the controller saves through.
type Saver interface {
	SaveDraft(ctx context.Context, req resumes.SaveRequest) (resumes.Resume, error)
}

// Controller keeps the remote copy of a draft eventually consistent with the
// in-memory one. At most one save is in flight; failures park the controller
// in the error state until the user retries or the draft changes again. The
// controller reads drafts but never mutates them; its only private state is
// the last-saved snapshot.
type Controller struct {
	mu sync.Mutex

	saver   Saver
	deb     *Debouncer[resumes.Draft]
	onSaved func(resumes.Resume)

	state        State
	lastErr      error
	resumeID     string
	debounced    resumes.Draft
	hasDebounced bool
	lastSaved    resumes.Draft

	// retained for user-initiated retry: the exact payload that failed.
	lastPayload      resumes.SaveRequest
	lastPayloadDraft resumes.Draft
}

// NewController builds a controller seeded with the session's initial draft.
// A hydrated draft carries its id; a fresh draft adopts one on first save.
// onSaved, if set, fires after every successful save with the saved resume.
func NewController(saver Saver, delay time.Duration, initial resumes.Draft, onSaved func(resumes.Resume)) *Controller {
	c := &Controller{
		saver:     saver,
		onSaved:   onSaved,
		resumeID:  initial.ID,
		lastSaved: initial.Clone(),
	}
	c.deb = NewDebouncer(delay, c.observeDebounced)
	return c
}

// Observe feeds the current draft into the debounce window.
func (c *Controller) Observe(d resumes.Draft) {
	c.deb.Set(d.Clone())
}

func (c *Controller) observeDebounced(d resumes.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drafts observed before id adoption settled still belong to this resume.
	if d.ID == "" && c.resumeID != "" {
		d.ID = c.resumeID
	}

	if !c.hasDebounced || !d.Equal(c.debounced) {
		// A changed debounced draft clears the error flag so the next
		// mutation gets a fresh attempt. No automatic retry happens here
		// for an unchanged draft.
		if c.state == StateError {
			c.state = StateIdle
			c.lastErr = nil
		}
	}
	c.debounced = d
	c.hasDebounced = true
	c.evaluateLocked()
}

// evaluateLocked starts a save if the debounced draft differs from the
// snapshot and nothing is in flight. Callers hold c.mu.
func (c *Controller) evaluateLocked() {
	if c.state != StateIdle || !c.hasDebounced {
		return
	}
	d := c.debounced
	if d.ID == "" && c.resumeID != "" {
		d.ID = c.resumeID
		c.debounced = d
	}
	if d.Equal(c.lastSaved) {
		return
	}

	req := d.SaveRequest()
	req.ID = c.resumeID
	// Omit the photo entirely when its descriptor matches the snapshot so
	// unchanged binary data is never re-uploaded.
	if d.Photo.Descriptor() == c.lastSaved.Photo.Descriptor() {
		req.Photo = resumes.PhotoChange{}
	}

	c.state = StateSaving
	c.lastPayload = req
	c.lastPayloadDraft = d
	go c.save(req, d)
}

func (c *Controller) save(req resumes.SaveRequest, d resumes.Draft) {
	res, err := c.saver.SaveDraft(context.Background(), req)

	c.mu.Lock()
	if err != nil {
		c.state = StateError
		c.lastErr = err
		c.mu.Unlock()
		telemetry.Error("autosave.failed", map[string]any{"resume_id": req.ID, "error": err.Error()})
		return
	}

	c.resumeID = res.ID
	// The snapshot keeps the photo exactly as submitted so a live draft that
	// still holds the attached file compares equal and is not re-saved.
	d.ID = res.ID
	c.lastSaved = d
	c.state = StateIdle
	c.lastErr = nil
	// A draft that changed while the save was in flight is evaluated now,
	// against the then-current debounced value.
	c.evaluateLocked()
	onSaved := c.onSaved
	c.mu.Unlock()

	if onSaved != nil {
		onSaved(res)
	}
}

// Retry re-sends the exact payload of the failed attempt through the same
// codepath. It does nothing unless the controller is in the error state.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateError {
		return
	}
	c.state = StateSaving
	c.lastErr = nil
	go c.save(c.lastPayload, c.lastPayloadDraft)
}

// State returns the current lifecycle state and the last save error, if any.
func (c *Controller) State() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.lastErr
}

// ResumeID returns the adopted resume id, empty before the first save.
func (c *Controller) ResumeID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumeID
}

// HasUnsavedChanges compares the live draft against the snapshot.
func (c *Controller) HasUnsavedChanges(current resumes.Draft) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current.ID == "" && c.resumeID != "" {
		current = current.Clone()
		current.ID = c.resumeID
	}
	return !current.Equal(c.lastSaved)
}

// Close stops the debounce timer. In-flight saves are never cancelled; they
// settle on their own.
func (c *Controller) Close() {
	c.deb.Stop()
}
