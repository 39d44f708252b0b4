package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

// buildRecommendations ranks entities by repurposing relevance, with
// influence as the tie-breaker, and returns the top entries. Sorting is
// stable, so entities tied on both scores keep their discovery order.
func buildRecommendations(entities []common.CanonicalEntity, limit int) []common.Recommendation {
	ranked := make([]common.CanonicalEntity, len(entities))
	copy(ranked, entities)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RepurposingRelevanceScore != ranked[j].RepurposingRelevanceScore {
			return ranked[i].RepurposingRelevanceScore > ranked[j].RepurposingRelevanceScore
		}
		return ranked[i].InfluenceScore > ranked[j].InfluenceScore
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	recommendations := make([]common.Recommendation, 0, len(ranked))
	for _, e := range ranked {
		recommendations = append(recommendations, common.Recommendation{
			ID:                        e.ID,
			Name:                      e.Label,
			Affiliations:              e.Affiliations,
			Expertise:                 e.Expertise,
			InfluenceScore:            e.InfluenceScore,
			RepurposingRelevanceScore: e.RepurposingRelevanceScore,
			Reason:                    recommendationReason(e),
		})
	}
	return recommendations
}

// recommendationReason summarizes the evidence behind a ranking entry in one
// human-readable sentence fragment.
func recommendationReason(e common.CanonicalEntity) string {
	counts := []string{}
	if n := len(e.DocumentIDs); n > 0 {
		counts = append(counts, fmt.Sprintf("%d %s", n, plural(n, "publication", "publications")))
	}
	if n := len(e.TrialIDs); n > 0 {
		counts = append(counts, fmt.Sprintf("%d %s", n, plural(n, "trial", "trials")))
	}
	if n := len(e.PatentIDs); n > 0 {
		counts = append(counts, fmt.Sprintf("%d %s", n, plural(n, "patent", "patents")))
	}
	if n := len(e.WebIDs); n > 0 {
		counts = append(counts, fmt.Sprintf("%d web %s", n, plural(n, "mention", "mentions")))
	}

	parts := []string{}
	if len(counts) > 0 {
		parts = append(parts, strings.Join(counts, ", "))
	}
	if len(e.Expertise) > 0 {
		tags := e.Expertise
		if len(tags) > 2 {
			tags = tags[:2]
		}
		parts = append(parts, "expertise in "+strings.Join(tags, ", "))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("appears in %d source %s",
			len(e.SourceChannels), plural(len(e.SourceChannels), "channel", "channels"))
	}
	return strings.Join(parts, "; ")
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
