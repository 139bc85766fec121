package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/resumes"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	svc := &resumes.Service{Repo: resumes.NewMemoryRepo()}
	mgr := NewManager(svc, 5*time.Millisecond, time.Minute)
	t.Cleanup(mgr.Shutdown)
	return mgr
}

func TestManagerGetIsUserScoped(t *testing.T) {
	mgr := newTestManager(t)

	sess, err := mgr.Open(context.Background(), "guest-1", "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := mgr.Get("guest-1", sess.ID); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if _, err := mgr.Get("guest-2", sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign user, got %v", err)
	}
}

func TestManagerOpenRejectsUnknownResume(t *testing.T) {
	mgr := newTestManager(t)

	_, err := mgr.Open(context.Background(), "guest-1", "missing")
	if !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestManagerExpireDropsIdleSessions(t *testing.T) {
	mgr := newTestManager(t)

	sess, err := mgr.Open(context.Background(), "guest-1", "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// A cutoff in the future marks every session as idle past the TTL.
	mgr.expire(time.Now().Add(time.Hour))

	if _, err := mgr.Get("guest-1", sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionRemovePhotoMarksExplicitRemoval(t *testing.T) {
	mgr := newTestManager(t)

	sess, err := mgr.Open(context.Background(), "guest-1", "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// No photo at all: removal stays a no-op for the payload.
	sess.RemovePhoto()
	if d := sess.Draft(); d.Photo.Removed {
		t.Fatalf("expected no explicit removal without a stored photo")
	}

	sess.mu.Lock()
	sess.draft.Photo = resumes.Photo{URL: "https://store.example/me.png"}
	sess.mu.Unlock()

	sess.RemovePhoto()
	if d := sess.Draft(); !d.Photo.Removed || d.Photo.URL != "" {
		t.Fatalf("expected explicit removal of the stored photo, got %+v", d.Photo)
	}
}
