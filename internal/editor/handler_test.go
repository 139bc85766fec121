package editor_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:             "0",
		CORSAllowOrigin:  []string{"http://localhost:5173"},
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		Env:              "dev",
		AutosaveDebounce: 5 * time.Millisecond,
		SessionTTL:       time.Minute,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app.Router
}

type sessionResponse struct {
	ID         string `json:"id"`
	Step       string `json:"step"`
	ResumeID   string `json:"resumeId"`
	Query      string `json:"query"`
	SaveStatus struct {
		State string `json:"state"`
		Error string `json:"error"`
	} `json:"saveStatus"`
	HasUnsavedChanges bool `json:"hasUnsavedChanges"`
	Draft             struct {
		Title     string   `json:"title"`
		FirstName string   `json:"firstName"`
		Skills    []string `json:"skills"`
		Summary   string   `json:"summary"`
	} `json:"draft"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, guest string) (*httptest.ResponseRecorder, sessionResponse) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Guest-Id", guest)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var sess sessionResponse
	if resp.Code < 300 && resp.Body.Len() > 0 {
		_ = json.Unmarshal(resp.Body.Bytes(), &sess)
	}
	return resp, sess
}

func openSession(t *testing.T, router *gin.Engine, guest string) sessionResponse {
	t.Helper()
	resp, sess := doJSON(t, router, http.MethodPost, "/api/v1/editor/sessions", "", guest)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if sess.ID == "" {
		t.Fatalf("expected session id")
	}
	return sess
}

func TestEditorSessionStartsAtFirstStep(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	if sess.Step != "general-info" {
		t.Fatalf("expected general-info step, got %s", sess.Step)
	}
	if sess.SaveStatus.State != "idle" {
		t.Fatalf("expected idle save state, got %s", sess.SaveStatus.State)
	}
	if sess.ResumeID != "" {
		t.Fatalf("expected no resume id before first save, got %s", sess.ResumeID)
	}
}

func TestEditorPatchValidationGating(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	// Invalid date suppresses the write-back.
	resp, _ := doJSON(t, router, http.MethodPost,
		"/api/v1/editor/sessions/"+sess.ID+"/patches/work-experience",
		`{"workExperiences":[{"position":"Engineer","startDate":"01/2020"}]}`, "guest-1")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	getResp, got := doJSON(t, router, http.MethodGet, "/api/v1/editor/sessions/"+sess.ID, "", "guest-1")
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", getResp.Code)
	}
	if got.HasUnsavedChanges {
		t.Fatalf("expected rejected patch to leave the draft untouched")
	}

	// Valid patch applies.
	resp2, patched := doJSON(t, router, http.MethodPost,
		"/api/v1/editor/sessions/"+sess.ID+"/patches/general-info",
		`{"title":"My resume"}`, "guest-1")
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp2.Code, resp2.Body.String())
	}
	if patched.Draft.Title != "My resume" {
		t.Fatalf("expected patched title, got %q", patched.Draft.Title)
	}
}

func TestEditorUnknownSectionAndStep(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	resp, _ := doJSON(t, router, http.MethodPost,
		"/api/v1/editor/sessions/"+sess.ID+"/patches/hobbies", `{}`, "guest-1")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown section, got %d", resp.Code)
	}

	resp2, _ := doJSON(t, router, http.MethodPut,
		"/api/v1/editor/sessions/"+sess.ID+"/step", `{"step":"hobbies"}`, "guest-1")
	if resp2.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown step, got %d", resp2.Code)
	}
}

func TestEditorStepAndQueryRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	resp, moved := doJSON(t, router, http.MethodPut,
		"/api/v1/editor/sessions/"+sess.ID+"/step", `{"step":"skills"}`, "guest-1")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if moved.Step != "skills" {
		t.Fatalf("expected skills step, got %s", moved.Step)
	}

	q, err := url.ParseQuery(moved.Query)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if q.Get("step") != "skills" {
		t.Fatalf("expected step round-tripped in query, got %q", moved.Query)
	}
}

func TestEditorAutosaveAdoptsResumeID(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	resp, _ := doJSON(t, router, http.MethodPost,
		"/api/v1/editor/sessions/"+sess.ID+"/patches/general-info",
		`{"title":"My resume"}`, "guest-1")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var last sessionResponse
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, last = doJSON(t, router, http.MethodGet, "/api/v1/editor/sessions/"+sess.ID, "", "guest-1")
		if last.ResumeID != "" && last.SaveStatus.State == "idle" && !last.HasUnsavedChanges {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if last.ResumeID == "" {
		t.Fatalf("expected autosave to adopt a resume id")
	}

	q, err := url.ParseQuery(last.Query)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if q.Get("resumeId") != last.ResumeID {
		t.Fatalf("expected resumeId in query, got %q", last.Query)
	}

	// The saved record is visible through the resumes API.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+last.ResumeID, nil)
	req.Header.Set("X-Guest-Id", "guest-1")
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, req)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected saved resume retrievable, got %d", getResp.Code)
	}
}

func TestEditorHydratesFromSavedResume(t *testing.T) {
	router := newTestRouter(t)

	// Save a resume directly first.
	saveReq := httptest.NewRequest(http.MethodPut, "/api/v1/resumes",
		bytes.NewBufferString(`{"title":"Saved","firstName":"Ada"}`))
	saveReq.Header.Set("Content-Type", "application/json")
	saveReq.Header.Set("X-Guest-Id", "guest-1")
	saveResp := httptest.NewRecorder()
	router.ServeHTTP(saveResp, saveReq)
	if saveResp.Code != http.StatusOK {
		t.Fatalf("save resume: %d", saveResp.Code)
	}
	var saved struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(saveResp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode saved resume: %v", err)
	}

	resp, sess := doJSON(t, router, http.MethodPost, "/api/v1/editor/sessions",
		`{"resumeId":"`+saved.ID+`"}`, "guest-1")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if sess.Draft.Title != "Saved" || sess.Draft.FirstName != "Ada" {
		t.Fatalf("expected hydrated draft, got %+v", sess.Draft)
	}
	if sess.ResumeID != saved.ID {
		t.Fatalf("expected hydrated session to carry the resume id")
	}
	if sess.HasUnsavedChanges {
		t.Fatalf("expected hydrated session to start clean")
	}
}

func TestEditorRejectsForeignResumeID(t *testing.T) {
	router := newTestRouter(t)

	saveReq := httptest.NewRequest(http.MethodPut, "/api/v1/resumes",
		bytes.NewBufferString(`{"title":"Private"}`))
	saveReq.Header.Set("Content-Type", "application/json")
	saveReq.Header.Set("X-Guest-Id", "guest-1")
	saveResp := httptest.NewRecorder()
	router.ServeHTTP(saveResp, saveReq)
	var saved struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(saveResp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode saved resume: %v", err)
	}

	resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/editor/sessions",
		`{"resumeId":"`+saved.ID+`"}`, "guest-2")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign resume id, got %d", resp.Code)
	}
}

func TestEditorSessionsAreOwned(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	resp, _ := doJSON(t, router, http.MethodGet, "/api/v1/editor/sessions/"+sess.ID, "", "guest-2")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign session, got %d", resp.Code)
	}
}

func TestEditorCloseDestroysSession(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	resp, _ := doJSON(t, router, http.MethodDelete, "/api/v1/editor/sessions/"+sess.ID, "", "guest-1")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	resp2, _ := doJSON(t, router, http.MethodGet, "/api/v1/editor/sessions/"+sess.ID, "", "guest-1")
	if resp2.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after close, got %d", resp2.Code)
	}
}

func TestEditorPreviewReflectsPatches(t *testing.T) {
	router := newTestRouter(t)
	sess := openSession(t, router, "guest-1")

	if resp, _ := doJSON(t, router, http.MethodPost,
		"/api/v1/editor/sessions/"+sess.ID+"/patches/skills",
		`{"skills":["Python"]}`, "guest-1"); resp.Code != http.StatusOK {
		t.Fatalf("skills patch: %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/editor/sessions/"+sess.ID+"/preview?width=397", nil)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var doc struct {
		Visible bool     `json:"visible"`
		Scale   float64  `json:"scale"`
		Skills  []string `json:"skills"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if !doc.Visible || doc.Scale != 0.5 {
		t.Fatalf("expected visible preview at half scale, got %+v", doc)
	}
	if len(doc.Skills) != 1 || doc.Skills[0] != "Python" {
		t.Fatalf("expected one Python badge, got %v", doc.Skills)
	}
}
