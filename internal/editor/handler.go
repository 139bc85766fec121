package editor

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/preview"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const maxPhotoUpload = 5 << 20

// Handler exposes the editing sessions over HTTP.
type Handler struct {
	Mgr *Manager
}

// NewHandler constructs a Handler.
func NewHandler(mgr *Manager) *Handler {
	return &Handler{Mgr: mgr}
}

// RegisterRoutes attaches editor routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/editor/sessions", h.open)
	rg.GET("/editor/sessions/:id", h.get)
	rg.POST("/editor/sessions/:id/patches/:section", h.patch)
	rg.PUT("/editor/sessions/:id/step", h.setStep)
	rg.POST("/editor/sessions/:id/photo", h.attachPhoto)
	rg.DELETE("/editor/sessions/:id/photo", h.removePhoto)
	rg.POST("/editor/sessions/:id/retry", h.retry)
	rg.GET("/editor/sessions/:id/preview", h.preview)
	rg.DELETE("/editor/sessions/:id", h.close)
}

type openSessionRequest struct {
	ResumeID string `json:"resumeId"`
}

func (h *Handler) open(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var body openSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	sess, err := h.Mgr.Open(c.Request.Context(), userID, body.ResumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open session", nil)
		return
	}

	c.Set("sessionId", sess.ID)
	respond.JSON(c, http.StatusCreated, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) get(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	respond.OK(c, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) patch(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPhotoUpload))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read request body", nil)
		return
	}

	p, err := DecodePatch(c.Param("section"), body)
	if err != nil {
		if errors.Is(err, ErrUnknownSection) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown section", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid patch body", nil)
		return
	}

	if verr := sess.ApplyPatch(p); verr != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid section data", verr.Fields)
		return
	}
	respond.OK(c, toSessionResponse(sess.Snapshot()))
}

type setStepRequest struct {
	Step string `json:"step"`
}

func (h *Handler) setStep(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var body setStepRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	step, valid := ParseStep(body.Step)
	if !valid {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown step", nil)
		return
	}

	sess.SetStep(step)
	respond.OK(c, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) attachPhoto(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoUpload)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "photo file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read photo", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read photo", nil)
		return
	}

	lastModified, _ := strconv.ParseInt(c.PostForm("lastModified"), 10, 64)
	verr := sess.AttachPhoto(&resumes.PhotoFile{
		Name:         fileHeader.Filename,
		Size:         fileHeader.Size,
		Type:         fileHeader.Header.Get("Content-Type"),
		LastModified: lastModified,
		Data:         data,
	})
	if verr != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid photo", verr.Fields)
		return
	}
	respond.OK(c, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) removePhoto(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.RemovePhoto()
	respond.OK(c, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) retry(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Retry()
	respond.OK(c, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) preview(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	width := 0.0
	if raw := c.Query("width"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "width must be a non-negative number", nil)
			return
		}
		width = parsed
	}

	doc := preview.Render(sess.Draft(), width)
	if c.Query("format") == "html" {
		html, err := preview.RenderHTML(doc)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render preview", nil)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) close(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Mgr.Close(userID, c.Param("id")); err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) session(c *gin.Context) (*Session, bool) {
	userID := middleware.UserIDFromContext(c)
	sess, err := h.Mgr.Get(userID, c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		return nil, false
	}
	c.Set("sessionId", sess.ID)
	return sess, true
}
