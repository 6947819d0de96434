package v1

import (
	"io"
	"net/http"

	"go-careercompass-backend/internal/delivery/http/response"
	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxResumeSize bounds the resume upload at 10 MB.
const maxResumeSize = 10 << 20

type QuestionnaireHandler struct {
	questionnaireUC domain.QuestionnaireUsecase
}

func NewQuestionnaireHandler(protected *gin.RouterGroup, questionnaireUC domain.QuestionnaireUsecase) {
	handler := &QuestionnaireHandler{questionnaireUC: questionnaireUC}

	questionnaire := protected.Group("/questionnaire")
	{
		questionnaire.POST("/start", handler.Start)
		questionnaire.GET("/current", handler.Current)
		questionnaire.POST("/back", handler.Back)
		questionnaire.POST("/:step", handler.SubmitStep)
	}
}

type TextSubmissionRequest struct {
	Text string `json:"text" binding:"required"`
}

type StepResponse struct {
	Step domain.Step `json:"step"`
}

// Start godoc
// @Summary      Start the questionnaire
// @Description  Move a fresh draft to the first question, or return the step an existing draft is on
// @Tags         questionnaire
// @Produce      json
// @Success      200  {object}  response.Response{data=StepResponse}
// @Failure      401  {object}  response.Response
// @Router       /questionnaire/start [post]
// @Security     BearerAuth
func (h *QuestionnaireHandler) Start(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	step, err := h.questionnaireUC.Start(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Questionnaire started", StepResponse{Step: step})
}

// Current godoc
// @Summary      Get the current draft
// @Description  Return the step the draft is on together with previously entered answers for re-hydration
// @Tags         questionnaire
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.QuestionnaireState}
// @Failure      401  {object}  response.Response
// @Router       /questionnaire/current [get]
// @Security     BearerAuth
func (h *QuestionnaireHandler) Current(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	state, err := h.questionnaireUC.Current(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Draft retrieved", state)
}

// SubmitStep godoc
// @Summary      Submit a questionnaire step
// @Description  Validate one step's answers and advance. Step q1 accepts multipart form data with an optional resume file; q2-q4 accept a JSON text answer. Submitting q4 finalizes the whole questionnaire atomically.
// @Tags         questionnaire
// @Accept       multipart/form-data
// @Produce      json
// @Param        step  path      string  true  "Step identifier (q1, q2, q3, q4)"
// @Success      200   {object}  response.Response{data=StepResponse}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /questionnaire/{step} [post]
// @Security     BearerAuth
func (h *QuestionnaireHandler) SubmitStep(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	step := domain.Step(c.Param("step"))
	if !step.IsQuestion() {
		c.Error(apperror.BadRequest("Unknown questionnaire step"))
		return
	}

	var sub domain.StepSubmission
	if step == domain.StepQ1 {
		var profile domain.ProfileAnswers
		if err := c.ShouldBind(&profile); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		sub.Profile = &profile

		resume, err := h.readResume(c)
		if err != nil {
			c.Error(err)
			return
		}
		sub.Resume = resume
	} else {
		var req TextSubmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		sub.Text = req.Text
	}

	next, err := h.questionnaireUC.SubmitStep(c.Request.Context(), userID, step, sub)
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Step saved"
	if next == domain.StepFinished {
		msg = "Questionnaire submitted"
	}
	response.Success(c, http.StatusOK, msg, StepResponse{Step: next})
}

// Back godoc
// @Summary      Go back one step
// @Description  Move the draft one step backwards without revalidation; entered answers are retained
// @Tags         questionnaire
// @Produce      json
// @Success      200  {object}  response.Response{data=StepResponse}
// @Failure      401  {object}  response.Response
// @Router       /questionnaire/back [post]
// @Security     BearerAuth
func (h *QuestionnaireHandler) Back(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	step, err := h.questionnaireUC.Back(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Moved back", StepResponse{Step: step})
}

// readResume pulls the optional "resume" file out of the multipart form.
// Absence is not an error; the resume is optional at q1.
func (h *QuestionnaireHandler) readResume(c *gin.Context) (*domain.ResumeFile, error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, apperror.BadRequest("Invalid resume upload")
	}

	if fileHeader.Size > maxResumeSize {
		return nil, apperror.BadRequest("Resume file too large (max 10MB)")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.BadRequest("Could not read resume file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperror.BadRequest("Could not read resume file")
	}

	return &domain.ResumeFile{Name: fileHeader.Filename, Data: data}, nil
}
