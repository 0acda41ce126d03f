package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/training-scheduler-api/internal/dto"
	"github.com/noah-isme/training-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/training-scheduler-api/pkg/errors"
	"github.com/noah-isme/training-scheduler-api/pkg/export"
	"github.com/noah-isme/training-scheduler-api/pkg/response"
)

type curriculumScheduler interface {
	Generate(ctx context.Context, req dto.GenerateCurriculumRequest) (*dto.GenerateCurriculumResponse, error)
	Persist(ctx context.Context, req dto.PersistCurriculumRequest) (*dto.PersistCurriculumResponse, error)
	CheckSession(ctx context.Context, req dto.CheckSessionRequest) (*dto.CheckSessionResponse, error)
	Candidates(ctx context.Context, req dto.CandidatesRequest) (*dto.CandidatesResponse, error)
	RoundSessions(ctx context.Context, roundID string) ([]models.CurriculumSession, error)
}

// CurriculumHandler exposes curriculum generation endpoints.
type CurriculumHandler struct {
	service curriculumScheduler
}

// NewCurriculumHandler constructs the handler.
func NewCurriculumHandler(svc curriculumScheduler) *CurriculumHandler {
	return &CurriculumHandler{service: svc}
}

// Register mounts the curriculum routes on the group.
func (h *CurriculumHandler) Register(group *gin.RouterGroup) {
	curricula := group.Group("/curricula")
	curricula.POST("/generate", h.Generate)
	curricula.POST("/persist", h.Persist)
	curricula.POST("/sessions/check", h.Check)
	curricula.POST("/candidates", h.Candidates)
	curricula.GET("/rounds/:roundId/sessions", h.RoundSessions)
	curricula.GET("/rounds/:roundId/sessions/export", h.ExportRoundSessions)
}

// Generate godoc
// @Summary Generate a curriculum preview for a course round
// @Description Expands a template into dated sessions with assigned instructors and classrooms. Nothing is stored except a short-lived proposal.
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body dto.GenerateCurriculumRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /curricula/generate [post]
func (h *CurriculumHandler) Generate(c *gin.Context) {
	var req dto.GenerateCurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if resp.Result.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, resp, map[string]interface{}{"mode": resp.Mode})
}

// Persist godoc
// @Summary Persist a curriculum proposal or an edited session list
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body dto.PersistCurriculumRequest true "Persist payload"
// @Success 201 {object} response.Envelope
// @Success 207 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /curricula/persist [post]
func (h *CurriculumHandler) Persist(c *gin.Context) {
	var req dto.PersistCurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid persist payload"))
		return
	}
	resp, err := h.service.Persist(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(resp.Errors) > 0 {
		response.JSON(c, http.StatusMultiStatus, resp)
		return
	}
	response.Created(c, resp)
}

// Check godoc
// @Summary Revalidate one session against current bookings
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body dto.CheckSessionRequest true "Session to check"
// @Success 200 {object} response.Envelope
// @Router /curricula/sessions/check [post]
func (h *CurriculumHandler) Check(c *gin.Context) {
	var req dto.CheckSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid check payload"))
		return
	}
	resp, err := h.service.CheckSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Candidates godoc
// @Summary Rank instructors and classrooms for a slot
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body dto.CandidatesRequest true "Slot description"
// @Success 200 {object} response.Envelope
// @Router /curricula/candidates [post]
func (h *CurriculumHandler) Candidates(c *gin.Context) {
	var req dto.CandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid candidates payload"))
		return
	}
	resp, err := h.service.Candidates(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// RoundSessions godoc
// @Summary List persisted sessions of a course round
// @Tags Curriculum
// @Produce json
// @Param roundId path string true "Course round ID"
// @Success 200 {object} response.Envelope
// @Router /curricula/rounds/{roundId}/sessions [get]
func (h *CurriculumHandler) RoundSessions(c *gin.Context) {
	sessions, err := h.service.RoundSessions(c.Request.Context(), c.Param("roundId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, map[string]interface{}{"total": len(sessions)})
}

// ExportRoundSessions godoc
// @Summary Download the persisted timetable of a course round as CSV
// @Tags Curriculum
// @Produce text/csv
// @Param roundId path string true "Course round ID"
// @Success 200 {file} file
// @Router /curricula/rounds/{roundId}/sessions/export [get]
func (h *CurriculumHandler) ExportRoundSessions(c *gin.Context) {
	roundID := c.Param("roundId")
	sessions, err := h.service.RoundSessions(c.Request.Context(), roundID)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows := make([]export.TimetableRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, export.TimetableRow{
			Date:         s.SessionDate.Format("2006-01-02"),
			Start:        s.StartTime,
			End:          s.EndTime,
			DayNumber:    s.DayNumber,
			Session:      s.SessionNumber,
			SubjectID:    s.SubjectID,
			Instructor:   stringValue(s.InstructorID),
			Classroom:    stringValue(s.ClassroomID),
			QualityScore: s.QualityScore,
		})
	}
	var buf bytes.Buffer
	if err := export.WriteTimetableCSV(&buf, rows); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "round-"+roundID+"-timetable.csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
