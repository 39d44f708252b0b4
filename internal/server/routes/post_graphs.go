package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/helica-bio/expertgraph/backend/internal/queue"
	"github.com/helica-bio/expertgraph/backend/internal/server/middleware"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
	"github.com/helica-bio/expertgraph/backend/pkg/graph"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BuildGraphHandler builds an expert relationship graph from the submitted
// query and signal payloads. With async=true the request is queued for the
// worker and the handler returns 202 immediately; otherwise the build runs
// inline and the response carries the full graph.
func BuildGraphHandler(c echo.Context) error {
	type buildGraphRequest struct {
		Query   string         `json:"query" validate:"required"`
		Signals map[string]any `json:"signals"`
		Async   bool           `json:"async"`
	}

	type buildGraphResponse struct {
		Message string                  `json:"message"`
		GraphID string                  `json:"graph_id,omitempty"`
		Graph   *common.Graph           `json:"graph,omitempty"`
		Preview []common.Recommendation `json:"preview,omitempty"`
	}

	data := new(buildGraphRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, buildGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, buildGraphResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App

	if data.Async {
		payload, err := json.Marshal(queue.QueueBuildMsg{
			Query:   data.Query,
			Signals: data.Signals,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, buildGraphResponse{
				Message: "Internal server error",
			})
		}
		if err := queue.PublishFIFO(app.Queue, queue.BuildQueue, payload); err != nil {
			logger.Error("Failed to publish to graph_build_queue", "err", err)
			return c.JSON(http.StatusInternalServerError, buildGraphResponse{
				Message: "Internal server error",
			})
		}
		return c.JSON(http.StatusAccepted, buildGraphResponse{
			Message: "Graph build queued",
		})
	}

	ctx := c.Request().Context()
	graphClient := graph.NewGraphClient(graph.NewGraphClientParams{})

	built, err := graphClient.BuildGraph(ctx, data.Query, data.Signals, app.AiClient)
	if err != nil {
		if errors.Is(err, graph.ErrEmptyQuery) {
			return c.JSON(http.StatusBadRequest, buildGraphResponse{
				Message: "Query must not be empty",
			})
		}
		logger.Error("Failed to build graph", "err", err)
		return c.JSON(http.StatusInternalServerError, buildGraphResponse{
			Message: "Internal server error",
		})
	}

	if err := app.GraphStore.Save(ctx, built); err != nil {
		logger.Error("Failed to persist graph", "graph_id", built.GraphID, "err", err)
		return c.JSON(http.StatusInternalServerError, buildGraphResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, buildGraphResponse{
		Message: "Graph built successfully",
		GraphID: built.GraphID,
		Graph:   built,
		Preview: built.Meta.Recommendations,
	})
}
