package routes

import (
	"errors"
	"net/http"

	"github.com/helica-bio/expertgraph/backend/internal/server/middleware"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
	"github.com/helica-bio/expertgraph/backend/pkg/store"

	"github.com/labstack/echo/v4"
)

// GetGraphHandler returns one stored graph snapshot by id.
func GetGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		GraphID string `param:"id" validate:"required"`
	}

	type getGraphResponse struct {
		Message string        `json:"message"`
		Graph   *common.Graph `json:"graph,omitempty"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getGraphResponse{
			Message: "Invalid request",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getGraphResponse{
			Message: "Invalid request",
		})
	}

	app := c.(*middleware.AppContext).App
	graph, err := app.GraphStore.Load(c.Request().Context(), params.GraphID)
	if err != nil {
		if errors.Is(err, store.ErrGraphNotFound) {
			return c.JSON(http.StatusNotFound, getGraphResponse{
				Message: "Graph not found",
			})
		}
		logger.Error("Failed to load graph", "graph_id", params.GraphID, "err", err)
		return c.JSON(http.StatusInternalServerError, getGraphResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getGraphResponse{
		Message: "OK",
		Graph:   graph,
	})
}

// ListGraphsHandler returns the most recent graph index records.
func ListGraphsHandler(c echo.Context) error {
	type listGraphsParams struct {
		Limit int `query:"limit"`
	}

	type listGraphsResponse struct {
		Message string               `json:"message"`
		Graphs  []common.GraphRecord `json:"graphs"`
	}

	params := new(listGraphsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, listGraphsResponse{
			Message: "Invalid request",
		})
	}

	app := c.(*middleware.AppContext).App
	records, err := app.GraphStore.List(c.Request().Context(), params.Limit)
	if err != nil {
		logger.Error("Failed to list graphs", "err", err)
		return c.JSON(http.StatusInternalServerError, listGraphsResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, listGraphsResponse{
		Message: "OK",
		Graphs:  records,
	})
}
