package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"resume-builder/internal/resumes"
)

const testDelay = 5 * time.Millisecond

type fakeSaver struct {
	mu    sync.Mutex
	calls []resumes.SaveRequest
	fail  bool
	block chan struct{}
}

func (f *fakeSaver) SaveDraft(ctx context.Context, req resumes.SaveRequest) (resumes.Resume, error) {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.fail {
		return resumes.Resume{}, errors.New("save failed")
	}
	id := req.ID
	if id == "" {
		id = "resume-1"
	}
	res := resumes.Resume{ID: id, Title: req.Title, Summary: req.Summary}
	if req.Photo.File != nil {
		res.PhotoURL = "https://store.example/" + req.Photo.File.Name
	}
	return res, nil
}

func (f *fakeSaver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSaver) call(i int) resumes.SaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func waitForState(t *testing.T, c *Controller, want State) {
	t.Helper()
	waitFor(t, time.Second, func() bool {
		got, _ := c.State()
		return got == want
	})
}

func TestControllerAdoptsIDOnFirstSave(t *testing.T) {
	saver := &fakeSaver{}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	draft := resumes.Draft{Title: "My resume"}
	ctrl.Observe(draft)

	waitFor(t, time.Second, func() bool { return saver.callCount() == 1 })
	waitForState(t, ctrl, StateIdle)

	if got := ctrl.ResumeID(); got != "resume-1" {
		t.Fatalf("expected adopted id resume-1, got %q", got)
	}
	if saver.call(0).ID != "" {
		t.Fatalf("expected first save without id, got %q", saver.call(0).ID)
	}
}

func TestControllerSkipsUnchangedDraft(t *testing.T) {
	saver := &fakeSaver{}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	draft := resumes.Draft{Title: "My resume"}
	ctrl.Observe(draft)
	waitFor(t, time.Second, func() bool { return saver.callCount() == 1 })
	waitForState(t, ctrl, StateIdle)

	// Same content again; the only difference is the id the save assigned,
	// which the controller backfills before comparing.
	ctrl.Observe(draft)
	time.Sleep(10 * testDelay)

	if got := saver.callCount(); got != 1 {
		t.Fatalf("expected 1 save for unchanged draft, got %d", got)
	}
}

func TestControllerIncludesIDOnSubsequentSaves(t *testing.T) {
	saver := &fakeSaver{}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	ctrl.Observe(resumes.Draft{Title: "v1"})
	waitFor(t, time.Second, func() bool { return saver.callCount() == 1 })
	waitForState(t, ctrl, StateIdle)

	ctrl.Observe(resumes.Draft{Title: "v2"})
	waitFor(t, time.Second, func() bool { return saver.callCount() == 2 })

	if got := saver.call(1).ID; got != "resume-1" {
		t.Fatalf("expected second save with adopted id, got %q", got)
	}
}

func TestControllerOmitsUnchangedPhoto(t *testing.T) {
	saver := &fakeSaver{}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	photo := resumes.Photo{File: &resumes.PhotoFile{
		Name: "me.png", Size: 10, Type: "image/png", LastModified: 42, Data: []byte("png-bytes"),
	}}
	ctrl.Observe(resumes.Draft{Title: "v1", Photo: photo})
	waitFor(t, time.Second, func() bool { return saver.callCount() == 1 })
	waitForState(t, ctrl, StateIdle)

	if saver.call(0).Photo.File == nil {
		t.Fatalf("expected first save to carry the photo file")
	}

	// Text change with an identical photo descriptor: the payload omits it.
	ctrl.Observe(resumes.Draft{Title: "v2", Photo: photo})
	waitFor(t, time.Second, func() bool { return saver.callCount() == 2 })

	if !saver.call(1).Photo.Unchanged() {
		t.Fatalf("expected unchanged photo to be omitted from second save")
	}
}

func TestControllerSendsNewPhotoDescriptor(t *testing.T) {
	saver := &fakeSaver{}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	first := resumes.Photo{File: &resumes.PhotoFile{Name: "a.png", Size: 1, Type: "image/png", Data: []byte("a")}}
	ctrl.Observe(resumes.Draft{Title: "v1", Photo: first})
	waitFor(t, time.Second, func() bool { return saver.callCount() == 1 })
	waitForState(t, ctrl, StateIdle)

	second := resumes.Photo{File: &resumes.PhotoFile{Name: "b.png", Size: 2, Type: "image/png", Data: []byte("bb")}}
	ctrl.Observe(resumes.Draft{Title: "v1", Photo: second})
	waitFor(t, time.Second, func() bool { return saver.callCount() == 2 })

	req := saver.call(1)
	if req.Photo.File == nil || req.Photo.File.Name != "b.png" {
		t.Fatalf("expected second save to carry the replaced photo, got %+v", req.Photo)
	}
}

func TestControllerRetryResendsIdenticalPayload(t *testing.T) {
	saver := &fakeSaver{fail: true}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	ctrl.Observe(resumes.Draft{Title: "v1", Summary: "s"})
	waitForState(t, ctrl, StateError)

	if _, err := ctrl.State(); err == nil {
		t.Fatalf("expected save error to be exposed")
	}

	saver.mu.Lock()
	saver.fail = false
	saver.mu.Unlock()

	ctrl.Retry()
	waitForState(t, ctrl, StateIdle)

	if got := saver.callCount(); got != 2 {
		t.Fatalf("expected 2 save attempts, got %d", got)
	}
	first, second := saver.call(0), saver.call(1)
	if first.Title != second.Title || first.Summary != second.Summary || first.ID != second.ID {
		t.Fatalf("expected retry to resend the identical payload: %+v vs %+v", first, second)
	}
	if got := ctrl.ResumeID(); got != "resume-1" {
		t.Fatalf("expected id adoption after retry, got %q", got)
	}
}

func TestControllerRetryOutsideErrorIsNoop(t *testing.T) {
	saver := &fakeSaver{}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	ctrl.Retry()
	time.Sleep(10 * testDelay)

	if got := saver.callCount(); got != 0 {
		t.Fatalf("expected no saves, got %d", got)
	}
}

func TestControllerErrorClearsWhenDraftChanges(t *testing.T) {
	saver := &fakeSaver{fail: true}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	ctrl.Observe(resumes.Draft{Title: "v1"})
	waitForState(t, ctrl, StateError)

	saver.mu.Lock()
	saver.fail = false
	saver.mu.Unlock()

	ctrl.Observe(resumes.Draft{Title: "v2"})
	waitForState(t, ctrl, StateIdle)

	waitFor(t, time.Second, func() bool { return saver.callCount() == 2 })
	if got := saver.call(1).Title; got != "v2" {
		t.Fatalf("expected fresh attempt with the new draft, got %q", got)
	}
}

func TestControllerReevaluatesAfterInflightSave(t *testing.T) {
	block := make(chan struct{})
	saver := &fakeSaver{block: block}
	ctrl := NewController(saver, testDelay, resumes.Draft{}, nil)
	defer ctrl.Close()

	ctrl.Observe(resumes.Draft{Title: "v1"})
	waitForState(t, ctrl, StateSaving)

	// Mutate while the first save is in flight.
	ctrl.Observe(resumes.Draft{Title: "v2"})
	time.Sleep(5 * testDelay)

	saver.mu.Lock()
	saver.block = nil
	saver.mu.Unlock()
	close(block)

	waitFor(t, time.Second, func() bool { return saver.callCount() == 2 })
	waitForState(t, ctrl, StateIdle)

	if got := saver.call(1).Title; got != "v2" {
		t.Fatalf("expected second save with latest value, got %q", got)
	}
	if got := saver.call(1).ID; got != "resume-1" {
		t.Fatalf("expected second save to carry the adopted id, got %q", got)
	}
}

func TestControllerOnSavedCallback(t *testing.T) {
	saver := &fakeSaver{}
	var mu sync.Mutex
	var saved []string
	ctrl := NewController(saver, testDelay, resumes.Draft{}, func(res resumes.Resume) {
		mu.Lock()
		saved = append(saved, res.ID)
		mu.Unlock()
	})
	defer ctrl.Close()

	ctrl.Observe(resumes.Draft{Title: "v1"})
	waitFor(t, time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(saved) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if saved[0] != "resume-1" {
		t.Fatalf("expected onSaved with adopted id, got %q", saved[0])
	}
}
