package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const maxUploadSize = 5 << 20 // payload plus a 4MB photo

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/resumes", h.save)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.DELETE("/resumes/:id", h.remove)
}

type photoChangeRequest struct {
	Remove bool `json:"remove"`
}

type saveResumeRequest struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	FirstName       string              `json:"firstName"`
	LastName        string              `json:"lastName"`
	JobTitle        string              `json:"jobTitle"`
	City            string              `json:"city"`
	Country         string              `json:"country"`
	Phone           string              `json:"phone"`
	Email           string              `json:"email"`
	Photo           *photoChangeRequest `json:"photo"`
	WorkExperiences []WorkExperience    `json:"workExperiences"`
	Educations      []Education         `json:"educations"`
	Skills          []string            `json:"skills"`
	ColorHex        string              `json:"colorHex"`
	BorderStyle     string              `json:"borderStyle"`
	Summary         string              `json:"summary"`
}

func (r saveResumeRequest) toSaveRequest() SaveRequest {
	req := SaveRequest{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		JobTitle:        r.JobTitle,
		City:            r.City,
		Country:         r.Country,
		Phone:           r.Phone,
		Email:           r.Email,
		WorkExperiences: r.WorkExperiences,
		Educations:      r.Educations,
		Skills:          r.Skills,
		ColorHex:        r.ColorHex,
		BorderStyle:     BorderStyle(r.BorderStyle),
		Summary:         r.Summary,
	}
	if r.Photo != nil && r.Photo.Remove {
		req.Photo = PhotoChange{Remove: true}
	}
	return req
}

// save accepts either a JSON body or a multipart form with a "data" JSON part
// and an optional "photo" file part for new photo uploads.
func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	req, ok := h.decodeSave(c)
	if !ok {
		return
	}

	res, err := h.Svc.Save(c.Request.Context(), userID, req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	c.Set("resumeId", res.ID)
	respond.JSON(c, http.StatusOK, ToResponse(res))
}

func (h *Handler) decodeSave(c *gin.Context) (SaveRequest, bool) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var body saveResumeRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return SaveRequest{}, false
		}
		return body.toSaveRequest(), true
	}

	raw := c.PostForm("data")
	if raw == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "data field is required", nil)
		return SaveRequest{}, false
	}
	var body saveResumeRequest
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid data field", nil)
		return SaveRequest{}, false
	}
	req := body.toSaveRequest()

	fileHeader, err := c.FormFile("photo")
	if err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read photo", nil)
			return SaveRequest{}, false
		}
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read photo", nil)
			return SaveRequest{}, false
		}
		req.Photo = PhotoChange{File: &PhotoFile{
			Name: fileHeader.Filename,
			Size: fileHeader.Size,
			Type: fileHeader.Header.Get("Content-Type"),
			Data: data,
		}}
	}
	return req, true
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, ToResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}

	resp := make([]ResumeResponse, 0, len(items))
	for _, res := range items {
		resp = append(resp, ToResponse(res))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}

	c.Set("resumeId", c.Param("id"))
	c.Status(http.StatusNoContent)
}

func respondSaveError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume data", verr.Fields)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrUnauthenticated):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not authenticated", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save resume", nil)
	}
}
