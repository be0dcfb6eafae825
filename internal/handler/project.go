package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive-backend/internal/service"
	"github.com/taskhive/taskhive-backend/pkg/response"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/projects")
	{
		g.POST("", h.create)
		// Use a stable wildcard name (project_id) so nested routes (tasks) can reuse it without Gin conflicts.
		g.GET("/:project_id", h.getByID)
		g.GET("", h.list)
		g.POST("/:project_id/archive", h.archive)
	}
}

type createProjectRequest struct {
	Name string `json:"name"`
}

func (h *ProjectHandler) create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // don't leak parser internals
		return
	}
	project, err := h.svc.CreateProject(c.Request.Context(), req.Name)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, project)
}

func (h *ProjectHandler) getByID(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.ParseInt(idStr, 10, 64)
	project, err := h.svc.GetProject(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, project)
}

func (h *ProjectHandler) list(c *gin.Context) {
	res, err := h.svc.ListProjects(c.Request.Context(), rawQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, res)
}

func (h *ProjectHandler) archive(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.ParseInt(idStr, 10, 64)
	project, err := h.svc.ArchiveProject(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, project)
}
