// Package handler owns the HTTP surface: route registration, request
// decoding and the health/docs endpoints. Handlers stay thin; behavior lives
// in the service layer.
package handler

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive-backend/internal/service"
)

// apiBase is the root of the versioned API. Resource handlers mount below it.
const apiBase = "/api/v1"

// openapiPath is read per request so contract edits show up without a
// rebuild; only the Swagger page itself is compiled in.
const openapiPath = "api/openapi.yaml"

//go:embed swagger.html
var swaggerPage []byte

// Register mounts every public route: health probes at the root and under
// the API prefix, the documentation endpoints, and the project/task API.
func Register(r *gin.Engine, repo Pinger, projectSvc service.ProjectService, taskSvc service.TaskService) {
	h := NewHealthHandler(repo)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerPage)
	})
	r.GET("/openapi.yaml", serveOpenAPI)

	api := r.Group(apiBase)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewProjectHandler(projectSvc).Register(api)
		NewTaskHandler(taskSvc).Register(api)
	}
}

func serveOpenAPI(c *gin.Context) {
	data, err := os.ReadFile(openapiPath)
	if err != nil {
		c.String(http.StatusInternalServerError, "openapi document unavailable: %v", err)
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
}

// rawQuery flattens the request's query string into the mapping the
// pagination normalizer consumes. Repeated parameters keep the first value.
func rawQuery(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	raw := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return raw
}
