package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/helica-bio/expertgraph/backend/pkg/ai"
	"github.com/helica-bio/expertgraph/backend/pkg/graph"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
	"github.com/helica-bio/expertgraph/backend/pkg/store"
)

// QueueBuildMsg is the payload of one asynchronous build request.
type QueueBuildMsg struct {
	Query   string         `json:"query"`
	Signals map[string]any `json:"signals"`
}

// ProcessBuildMessage runs one queued graph build end to end: build the
// graph from the message's query and signals, then persist it. The returned
// error decides whether the worker retries the message.
func ProcessBuildMessage(
	ctx context.Context,
	aiClient ai.GraphAIClient,
	graphStore *store.GraphStore,
	msg string,
) error {
	data := new(QueueBuildMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	graphClient := graph.NewGraphClient(graph.NewGraphClientParams{})

	start := time.Now()
	built, err := graphClient.BuildGraph(ctx, data.Query, data.Signals, aiClient)
	if err != nil {
		return err
	}

	if err := graphStore.Save(ctx, built); err != nil {
		return err
	}

	logger.Info("[Queue] Graph build completed",
		"graph_id", built.GraphID,
		"query", data.Query,
		"nodes", built.Meta.NodeCount,
		"edges", built.Meta.EdgeCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
