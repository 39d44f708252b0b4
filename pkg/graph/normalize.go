package graph

import (
	"context"

	"github.com/helica-bio/expertgraph/backend/pkg/ai"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
)

// normalizedMention pairs a raw mention with whatever the enrichment model
// resolved for it. A zero-value enrichment means the batch failed or the model
// could not resolve the mention, and the raw fields stand alone.
type normalizedMention struct {
	mention    common.RawMention
	enrichment ai.EnrichedEntity
}

// label returns the display name that will identify the entity: the resolved
// canonical name when present, the raw mention name otherwise.
func (n normalizedMention) label() string {
	if !n.enrichment.Empty() {
		return n.enrichment.CanonicalName
	}
	return n.mention.RawName
}

// affiliations returns the affiliation list that participates in the
// fingerprint: enrichment output when present, raw fields otherwise.
func (n normalizedMention) affiliations() []string {
	if len(n.enrichment.Affiliations) > 0 {
		return n.enrichment.Affiliations
	}
	return n.mention.Affiliations
}

// normalizeMentions resolves raw mentions in fixed-size batches, sequentially
// and in input order. A failed batch is never fatal: after retries are
// exhausted the batch falls back to raw mention fields, so a build always
// yields a graph even with the enrichment backend down. Mentions that end up
// with no name from either side are dropped.
func (g *GraphClient) normalizeMentions(
	ctx context.Context,
	query string,
	mentions []common.RawMention,
	aiClient ai.GraphAIClient,
) []normalizedMention {
	normalized := make([]normalizedMention, 0, len(mentions))

	for start := 0; start < len(mentions); start += ai.EnrichBatchSize {
		end := min(start+ai.EnrichBatchSize, len(mentions))
		batch := mentions[start:end]

		enriched, err := ai.CallEnrichAI(ctx, query, batch, aiClient, g.maxRetries)
		if err != nil {
			logger.Warn(
				"entity enrichment failed, falling back to raw mention fields",
				"batch_start", start,
				"batch_size", len(batch),
				"error", err,
			)
			enriched = make([]ai.EnrichedEntity, len(batch))
		}

		for i, mention := range batch {
			pair := normalizedMention{mention: mention, enrichment: enriched[i]}
			if normalizeKey(pair.label()) == "" {
				logger.Debug("dropping mention with no resolvable name", "channels", mention.Channels)
				continue
			}
			normalized = append(normalized, pair)
		}
	}

	return normalized
}
