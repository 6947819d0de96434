package v1

import (
	"net/http"

	"go-careercompass-backend/internal/delivery/http/response"
	"go-careercompass-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type WorkflowHandler struct {
	workflowUC domain.WorkflowUsecase
}

func NewWorkflowHandler(protected *gin.RouterGroup, workflowUC domain.WorkflowUsecase) {
	handler := &WorkflowHandler{workflowUC: workflowUC}

	workflow := protected.Group("/workflow")
	{
		workflow.GET("/state", handler.GetState)
	}

	session := protected.Group("/session")
	{
		session.POST("/signout", handler.SignOut)
	}
}

// GetState godoc
// @Summary      Resolve workflow state
// @Description  Classify the current user's journey phase and return the view the client should render
// @Tags         workflow
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ViewState}
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Failure      504  {object}  response.Response
// @Router       /workflow/state [get]
// @Security     BearerAuth
func (h *WorkflowHandler) GetState(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	state, err := h.workflowUC.ResolveState(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Workflow state resolved", state)
}

// SignOut godoc
// @Summary      Sign out
// @Description  Clear all server-held workflow state for the current user: draft answers, plan polling and chat history
// @Tags         workflow
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /session/signout [post]
// @Security     BearerAuth
func (h *WorkflowHandler) SignOut(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	h.workflowUC.SignOut(userID)

	// Clear the cookie variant of the token if the client used one.
	c.SetCookie("auth_token", "", -1, "/", "", true, true)

	response.Success(c, http.StatusOK, "Signed out", nil)
}
