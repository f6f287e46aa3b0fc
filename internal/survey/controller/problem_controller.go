package controller

import (
	"surveysvc/internal/survey/repository"
	"surveysvc/internal/survey/service"
	"surveysvc/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// ProblemController handles problem HTTP endpoints nested under a survey.
type ProblemController struct {
	problemService *service.ProblemService
}

// NewProblemController creates a new ProblemController.
func NewProblemController(problemService *service.ProblemService) *ProblemController {
	return &ProblemController{problemService: problemService}
}

// Create handles problem creation under a survey.
func (h *ProblemController) Create(c *gin.Context) {
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	var req CreateProblemRequest
	if err := bindJSON(c, &req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	if err := h.problemService.CreateProblem(c.Request.Context(), surveyID, req.ProblemID, req.Content); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// List handles problem listing for a survey, filtered by deletion state.
func (h *ProblemController) List(c *gin.Context) {
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}
	deleted, ok := parseDeletedQuery(c)
	if !ok {
		return
	}

	problems, err := h.problemService.ListProblems(c.Request.Context(), surveyID, deleted)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ProblemResponse, 0, len(problems))
	for _, p := range problems {
		resp = append(resp, toProblemResponse(p))
	}
	response.Success(c, resp)
}

// CreateProblemRequest defines the problem creation payload.
type CreateProblemRequest struct {
	ProblemID string `json:"problemId"`
	Content   string `json:"content"`
}

// ProblemResponse defines the problem payload returned by read endpoints.
type ProblemResponse struct {
	ProblemID string `json:"problemId"`
	SurveyID  int64  `json:"surveyId"`
	Content   string `json:"content"`
	IsDeleted bool   `json:"isDeleted"`
}

func toProblemResponse(p repository.Problem) ProblemResponse {
	return ProblemResponse{
		ProblemID: p.ProblemID,
		SurveyID:  p.SurveyID,
		Content:   p.Content,
		IsDeleted: p.IsDeleted,
	}
}
