package ai

import (
	"context"
	"fmt"
	"strings"

	gUtil "github.com/helica-bio/expertgraph/backend/internal/util"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

// EnrichBatchSize bounds how many mentions are resolved per enrichment call.
const EnrichBatchSize = 5

// EnrichedEntity is one resolved identity returned by the enrichment model,
// aligned by index with the submitted mention batch. All fields are optional;
// an empty value means the mention's own raw fields should be used instead.
type EnrichedEntity struct {
	CanonicalName string          `json:"canonical_name" jsonschema_description:"Resolved canonical name of the person or institution, empty if unresolvable."`
	Affiliations  []string        `json:"affiliations" jsonschema_description:"Normalized full institutional names the entity is affiliated with."`
	Type          string          `json:"type" jsonschema_description:"Either expert or institution."`
	Expertise     []string        `json:"expertise" jsonschema_description:"Expertise tags supported by the mention's own fields."`
	ID            string          `json:"id" jsonschema_description:"External identifier for the entity if one is known."`
	Contact       *common.Contact `json:"contact,omitempty" jsonschema_description:"Contact details with a confidence score, if resolvable."`
	Channels      []string        `json:"channels" jsonschema_description:"Source channels the resolution is based on."`
}

// Empty reports whether the enrichment carries no resolved name.
func (e EnrichedEntity) Empty() bool {
	return strings.TrimSpace(e.CanonicalName) == ""
}

type enrichResponse struct {
	Entities []EnrichedEntity `json:"entities" jsonschema_description:"One entry per input mention, aligned by index."`
}

// CallEnrichAI resolves a batch of raw mentions against the enrichment model.
// The response must be an array of exactly len(mentions) items; anything else
// is an error, which callers treat as a total batch failure.
func CallEnrichAI(
	ctx context.Context,
	query string,
	mentions []common.RawMention,
	aiClient GraphAIClient,
	maxRetries int,
) ([]EnrichedEntity, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("ai client is nil")
	}
	if len(mentions) == 0 {
		return []EnrichedEntity{}, nil
	}
	if len(mentions) > EnrichBatchSize {
		return nil, fmt.Errorf("enrich batch size exceeded: %d > %d", len(mentions), EnrichBatchSize)
	}

	var mentionData strings.Builder
	for i, m := range mentions {
		fmt.Fprintf(&mentionData, "%d. Name: %s", i+1, m.RawName)
		if m.Type != "" {
			fmt.Fprintf(&mentionData, ", Type: %s", m.Type)
		}
		if len(m.Affiliations) > 0 {
			fmt.Fprintf(&mentionData, ", Affiliations: %s", strings.Join(m.Affiliations, "; "))
		}
		if len(m.Expertise) > 0 {
			fmt.Fprintf(&mentionData, ", Expertise: %s", strings.Join(m.Expertise, "; "))
		}
		if len(m.Roles) > 0 {
			fmt.Fprintf(&mentionData, ", Roles: %s", strings.Join(m.Roles, "; "))
		}
		if len(m.Channels) > 0 {
			fmt.Fprintf(&mentionData, ", Channels: %s", strings.Join(m.Channels, "; "))
		}
		mentionData.WriteString("\n")
	}
	prompt := fmt.Sprintf(EnrichPrompt, query, mentionData.String())

	var res enrichResponse
	err := gUtil.RetryErrWithContext(ctx, maxRetries, func(ctx context.Context) error {
		res = enrichResponse{}
		return aiClient.GenerateCompletionWithFormat(
			ctx, "enrich_entities", "Resolve raw entity mentions to canonical identities.", prompt, &res,
		)
	})
	if err != nil {
		return nil, err
	}
	if len(res.Entities) != len(mentions) {
		return nil, fmt.Errorf("enrichment returned %d entities for %d mentions", len(res.Entities), len(mentions))
	}
	return res.Entities, nil
}
