package controller

import (
	"errors"
	"io"
	"strconv"

	"surveysvc/internal/survey/repository"
	"surveysvc/internal/survey/service"
	"surveysvc/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// SurveyController handles survey HTTP endpoints.
type SurveyController struct {
	surveyService *service.SurveyService
}

// NewSurveyController creates a new SurveyController.
func NewSurveyController(surveyService *service.SurveyService) *SurveyController {
	return &SurveyController{surveyService: surveyService}
}

// Create handles survey creation.
func (h *SurveyController) Create(c *gin.Context) {
	var req SurveyNameRequest
	if err := bindJSON(c, &req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	if _, err := h.surveyService.CreateSurvey(c.Request.Context(), req.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// List handles survey listing, filtered by deletion state.
func (h *SurveyController) List(c *gin.Context) {
	deleted, ok := parseDeletedQuery(c)
	if !ok {
		return
	}

	surveys, err := h.surveyService.ListSurveys(c.Request.Context(), deleted)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]SurveyResponse, 0, len(surveys))
	for _, s := range surveys {
		resp = append(resp, toSurveyResponse(s))
	}
	response.Success(c, resp)
}

// Get handles single survey lookup by id.
func (h *SurveyController) Get(c *gin.Context) {
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	survey, err := h.surveyService.GetSurvey(c.Request.Context(), surveyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toSurveyResponse(survey))
}

// Rename handles survey renaming.
func (h *SurveyController) Rename(c *gin.Context) {
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	var req SurveyNameRequest
	if err := bindJSON(c, &req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	if err := h.surveyService.RenameSurvey(c.Request.Context(), surveyID, req.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// Delete handles survey soft deletion.
func (h *SurveyController) Delete(c *gin.Context) {
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	if err := h.surveyService.DeleteSurvey(c.Request.Context(), surveyID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// Recover handles survey recovery from soft deletion.
func (h *SurveyController) Recover(c *gin.Context) {
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	if err := h.surveyService.RecoverSurvey(c.Request.Context(), surveyID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// bindJSON decodes the request body into out. An empty body is not an
// error here; missing fields surface as field-specific validation codes
// downstream.
func bindJSON(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// parseSurveyID reads the surveyId path parameter. On failure it writes
// a 400 response and returns ok=false.
func parseSurveyID(c *gin.Context) (int64, bool) {
	idStr := c.Param("surveyId")
	surveyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || surveyID <= 0 {
		response.BadRequest(c, "Invalid survey id")
		return 0, false
	}
	return surveyID, true
}

// parseDeletedQuery reads the isDeleted query parameter, defaulting to
// false when absent. On failure it writes a 400 response and returns
// ok=false.
func parseDeletedQuery(c *gin.Context) (bool, bool) {
	raw := c.Query("isDeleted")
	if raw == "" {
		return false, true
	}
	deleted, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(c, "Invalid isDeleted filter")
		return false, false
	}
	return deleted, true
}

// SurveyNameRequest carries the survey name for create and rename.
type SurveyNameRequest struct {
	Name string `json:"name"`
}

// SurveyResponse defines the survey payload returned by read endpoints.
type SurveyResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"isDeleted"`
}

func toSurveyResponse(s repository.Survey) SurveyResponse {
	return SurveyResponse{
		ID:        s.ID,
		Name:      s.Name,
		IsDeleted: s.IsDeleted,
	}
}
