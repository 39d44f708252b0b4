package graph

import (
	"context"
	"errors"
	"strings"
	"time"

	gUtil "github.com/helica-bio/expertgraph/backend/internal/util"
	"github.com/helica-bio/expertgraph/backend/pkg/ai"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
)

// ErrEmptyQuery is returned when a build is requested without a query.
var ErrEmptyQuery = errors.New("query must not be empty")

// BuildGraph runs the full pipeline over one query and its signal payloads:
// collect mentions, resolve them through the enrichment model, deduplicate by
// fingerprint, score nodes, infer edges and rank recommendations. Empty
// signals are valid and produce an empty snapshot; the only hard failure
// before persistence is a blank query.
func (g *GraphClient) BuildGraph(
	ctx context.Context,
	query string,
	signals map[string]any,
	aiClient ai.GraphAIClient,
) (*common.Graph, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()

	mentions, sctx := collectSignals(signals)
	logger.Info("collected signals",
		"query", query,
		"channels", len(sctx.Channels),
		"mentions", len(mentions),
		"trials", len(sctx.Trials),
		"patents", len(sctx.Patents),
	)

	normalized := g.normalizeMentions(ctx, query, mentions, aiClient)
	entities := g.dedupeMentions(normalized)
	logger.Info("resolved entities",
		"mentions", len(mentions),
		"normalized", len(normalized),
		"entities", len(entities),
	)

	nodes, scored := buildNodes(query, entities, sctx)
	edges := buildEdges(scored, sctx)
	recommendations := buildRecommendations(scored, g.maxRecommendations)

	graphID, err := gUtil.NewGraphID()
	if err != nil {
		return nil, err
	}

	graph := &common.Graph{
		GraphID: graphID,
		Nodes:   nodes,
		Edges:   edges,
		Meta: common.GraphMeta{
			Query:           query,
			CreatedAt:       time.Now().UTC(),
			NodeCount:       len(nodes),
			EdgeCount:       len(edges),
			Channels:        sctx.Channels,
			Recommendations: recommendations,
		},
	}

	logger.Info("graph built",
		"graph_id", graphID,
		"nodes", len(nodes),
		"edges", len(edges),
		"recommendations", len(recommendations),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return graph, nil
}
