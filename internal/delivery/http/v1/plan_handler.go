package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-careercompass-backend/internal/delivery/http/response"
	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planUC domain.PlanUsecase
}

func NewPlanHandler(protected *gin.RouterGroup, planUC domain.PlanUsecase, requestLimit gin.HandlerFunc) {
	handler := &PlanHandler{planUC: planUC}

	plan := protected.Group("/plan")
	{
		plan.POST("/request", requestLimit, handler.Request)
		plan.GET("/status", handler.Status)
		plan.GET("", handler.Get)
		plan.PATCH("/tasks/:id", handler.UpdateTask)
		plan.GET("/export", handler.Export)
	}
}

type TaskUpdateRequest struct {
	Status domain.TaskStatus `json:"status" binding:"required"`
}

// Request godoc
// @Summary      Request plan generation
// @Description  Trigger asynchronous generation of the career plan and start polling for the result. Returns 409 if a generation is already in flight or a plan already exists.
// @Tags         plan
// @Produce      json
// @Success      202  {object}  response.Response{data=domain.PlanStatus}
// @Failure      401  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /plan/request [post]
// @Security     BearerAuth
func (h *PlanHandler) Request(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	status, err := h.planUC.RequestPlan(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusAccepted, "Plan generation requested", status)
}

// Status godoc
// @Summary      Get plan generation status
// @Description  Return the current generation state and synthetic progress. Resumes polling for a pending request after a reload.
// @Tags         plan
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.PlanStatus}
// @Failure      401  {object}  response.Response
// @Router       /plan/status [get]
// @Security     BearerAuth
func (h *PlanHandler) Status(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	status, err := h.planUC.Status(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Plan status retrieved", status)
}

// Get godoc
// @Summary      Get the generated plan
// @Description  Return monthly themes with their task outlines and the overall completion percentage
// @Tags         plan
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.PlanView}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /plan [get]
// @Security     BearerAuth
func (h *PlanHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.planUC.GetPlan(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Plan retrieved", view)
}

// UpdateTask godoc
// @Summary      Update a task's status
// @Description  Set a task outline to NOT_STARTED, IN_PROGRESS or COMPLETED. The store is written first; the visible plan only changes on success.
// @Tags         plan
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Task ID"
// @Param        task  body      TaskUpdateRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.PlanView}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /plan/tasks/{id} [patch]
// @Security     BearerAuth
func (h *PlanHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid task id"))
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if !req.Status.IsValid() {
		c.Error(apperror.BadRequest("Invalid task status"))
		return
	}

	view, err := h.planUC.SetTaskStatus(c.Request.Context(), userID, taskID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Task updated", view)
}

// Export godoc
// @Summary      Export the plan as a spreadsheet
// @Description  Download the full plan as an xlsx workbook
// @Tags         plan
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /plan/export [get]
// @Security     BearerAuth
func (h *PlanHandler) Export(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	data, err := h.planUC.ExportPlan(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("career-plan-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
