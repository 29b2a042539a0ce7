package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
	"triage-backend/internal/triage"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RecordFailure(triage.ErrInvalidInput)
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Invalid request body", []map[string]string{
			{"field": "body", "issue": err.Error()},
		})
		return
	}

	// Client errors in the complaint win over malformed vitals.
	if err := triage.Validate(triage.Input{Complaint: req.Complaint, Age: req.Age}); err != nil {
		RecordFailure(err)
		respondAssessError(c, err)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		RecordFailure(err)
		respondAssessError(c, err)
		return
	}

	res, err := h.Svc.Assess(c.Request.Context(), in)
	if err != nil {
		respondAssessError(c, err)
		return
	}

	c.Set(middleware.PriorityKey, string(res.Priority))
	c.Set(middleware.ScoreKey, res.Score)
	respond.OK(c, toAnalyzeResponse(res))
}

func respondAssessError(c *gin.Context, err error) {
	var verr *triage.ValidationError
	if errors.As(err, &verr) {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, verr.Reason, nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, err.Error(), nil)
}
