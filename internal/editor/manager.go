package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/editor/autosave"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/telemetry"
)

// Manager owns the live editing sessions. Sessions are in-memory, user-scoped,
// and swept after sitting idle past the TTL.
type Manager struct {
	svc      *resumes.Service
	debounce time.Duration
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	done     chan struct{}
	once     sync.Once
}

// NewManager builds a manager and starts the expiry sweep.
func NewManager(svc *resumes.Service, debounce, ttl time.Duration) *Manager {
	m := &Manager{
		svc:      svc,
		debounce: debounce,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Open creates a session. With a resumeId the draft is hydrated from the
// saved resume; a foreign or absent id fails with the repository's not-found.
func (m *Manager) Open(ctx context.Context, userID, resumeID string) (*Session, error) {
	var draft resumes.Draft
	if resumeID != "" {
		res, err := m.svc.Get(ctx, userID, resumeID)
		if err != nil {
			return nil, err
		}
		draft = resumes.DraftFromResume(res)
	}

	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		draft:    draft,
		step:     StepGeneralInfo,
		lastUsed: time.Now(),
	}
	sess.ctrl = autosave.NewController(
		serviceSaver{svc: m.svc, userID: userID},
		m.debounce,
		draft,
		func(res resumes.Resume) { sess.adoptSavedID(res.ID) },
	)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	telemetry.Info("editor.session_opened", map[string]any{"session_id": sess.ID, "resume_id": resumeID})
	return sess, nil
}

// Get returns the caller's session or ErrSessionNotFound.
func (m *Manager) Get(userID, id string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok || sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close tears down the caller's session.
func (m *Manager) Close(userID, id string) error {
	sess, err := m.Get(userID, id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	sess.Close()
	telemetry.Info("editor.session_closed", map[string]any{"session_id": id})
	return nil
}

// Shutdown stops the sweep and closes every session.
func (m *Manager) Shutdown() {
	m.once.Do(func() { close(m.done) })
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, sess := range sessions {
		sess.Close()
	}
}

func (m *Manager) sweep() {
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.expire(time.Now().Add(-m.ttl))
		}
	}
}

func (m *Manager) expire(cutoff time.Time) {
	m.mu.Lock()
	var stale []*Session
	for id, sess := range m.sessions {
		if sess.lastUsedAt().Before(cutoff) {
			stale = append(stale, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, sess := range stale {
		sess.Close()
		telemetry.Info("editor.session_expired", map[string]any{"session_id": sess.ID})
	}
}
