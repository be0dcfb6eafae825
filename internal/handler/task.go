package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive-backend/internal/service"
	"github.com/taskhive/taskhive-backend/pkg/response"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(svc service.TaskService) *TaskHandler { return &TaskHandler{svc: svc} }

func (h *TaskHandler) Register(r *gin.RouterGroup) {
	r.POST("/projects/:project_id/tasks", h.create)
	r.GET("/projects/:project_id/tasks", h.listByProject)

	g := r.Group("/tasks")
	{
		g.GET("/:task_id", h.getByID)
		g.PATCH("/:task_id/status", h.updateStatus)
		g.DELETE("/:task_id", h.delete)
	}
}

type createTaskRequest struct {
	Title    string     `json:"title"`
	Priority int        `json:"priority"`
	DueDate  *time.Time `json:"due_date"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status"`
}

func (h *TaskHandler) create(c *gin.Context) {
	projectID, _ := strconv.ParseInt(c.Param("project_id"), 10, 64)
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	task, err := h.svc.CreateTask(c.Request.Context(), projectID, req.Title, req.Priority, req.DueDate)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, task)
}

func (h *TaskHandler) listByProject(c *gin.Context) {
	projectID, _ := strconv.ParseInt(c.Param("project_id"), 10, 64)
	res, err := h.svc.ListTasks(c.Request.Context(), projectID, rawQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, res)
}

func (h *TaskHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("task_id"), 10, 64)
	task, err := h.svc.GetTask(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, task)
}

func (h *TaskHandler) updateStatus(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("task_id"), 10, 64)
	var req updateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	task, err := h.svc.UpdateTaskStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, task)
}

func (h *TaskHandler) delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err := h.svc.DeleteTask(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
