package server

import (
	"github.com/helica-bio/expertgraph/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Graph routes
	apiRoutes.POST("/graphs", routes.BuildGraphHandler)
	apiRoutes.GET("/graphs", routes.ListGraphsHandler)
	apiRoutes.GET("/graphs/:id", routes.GetGraphHandler)
}
