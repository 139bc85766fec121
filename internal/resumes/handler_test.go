package resumes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
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

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

type resumeResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	FirstName       string   `json:"firstName"`
	PhotoURL        string   `json:"photoUrl"`
	Skills          []string `json:"skills"`
	BorderStyle     string   `json:"borderStyle"`
	WorkExperiences []struct {
		Position string `json:"position"`
	} `json:"workExperiences"`
}

func saveResume(t *testing.T, router *gin.Engine, payload string) resumeResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/resumes", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out resumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestResumesSaveAndGet(t *testing.T) {
	router := newTestRouter(t)

	created := saveResume(t, router, `{"title":"My resume","firstName":"Ada","skills":["Go"," ","SQL"]}`)
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.BorderStyle != "squircle" {
		t.Fatalf("expected default border style, got %s", created.BorderStyle)
	}
	if len(created.Skills) != 2 {
		t.Fatalf("expected blank skills dropped, got %v", created.Skills)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID, nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var fetched resumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Title != "My resume" || fetched.FirstName != "Ada" {
		t.Fatalf("unexpected resume: %+v", fetched)
	}
}

func TestResumesValidationError(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/resumes",
		bytes.NewBufferString(`{"workExperiences":[{"startDate":"01/2020"}]}`))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %s", body.Error.Code)
	}
	if len(body.Error.Details) == 0 || body.Error.Details[0].Field != "workExperiences[0].startDate" {
		t.Fatalf("expected field error for start date, got %+v", body.Error.Details)
	}
}

func TestResumesMultipartPhotoUpload(t *testing.T) {
	router := newTestRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("data", `{"title":"With photo"}`); err != nil {
		t.Fatalf("write data field: %v", err)
	}
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="photo"; filename="me.png"`},
		"Content-Type":        {"image/png"},
	})
	if err != nil {
		t.Fatalf("create photo part: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var created resumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.PhotoURL == "" {
		t.Fatalf("expected photo url after multipart upload")
	}
}

func TestResumesListAndDelete(t *testing.T) {
	router := newTestRouter(t)

	created := saveResume(t, router, `{"title":"To delete"}`)

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/"+created.ID, nil)
	addGuestHeader(reqDel)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", respDel.Code)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	addGuestHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)
	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var items []resumeResponse
	if err := json.NewDecoder(respList.Body).Decode(&items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	for _, item := range items {
		if item.ID == created.ID {
			t.Fatalf("expected deleted resume excluded from list")
		}
	}
}

func TestResumesForeignUserGets404(t *testing.T) {
	router := newTestRouter(t)

	created := saveResume(t, router, `{"title":"Private"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID, nil)
	req.Header.Set("X-Guest-Id", "someone-else")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestResumesRequireIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
