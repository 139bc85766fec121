package generate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires generation routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate/summary", h.summary)
	rg.POST("/generate/work-experience", h.workExperience)
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

func (h *Handler) summary(c *gin.Context) {
	var in SummaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	out, err := h.Svc.GenerateSummary(c.Request.Context(), in)
	if err != nil {
		respondGenerateError(c, err)
		return
	}
	respond.OK(c, summaryResponse{Summary: out})
}

type workExperienceRequest struct {
	Description string `json:"description"`
}

func (h *Handler) workExperience(c *gin.Context) {
	var body workExperienceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	entry, err := h.Svc.GenerateWorkExperience(c.Request.Context(), body.Description)
	if err != nil {
		respondGenerateError(c, err)
		return
	}
	respond.OK(c, entry)
}

func respondGenerateError(c *gin.Context, err error) {
	var verr *resumes.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid input", verr.Fields)
	case errors.Is(err, ErrEmptyResponse):
		respond.Error(c, http.StatusBadGateway, "upstream_empty", "the model returned no usable output, try again", nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "generation is not configured", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "upstream_error", "generation failed", nil)
	}
}
