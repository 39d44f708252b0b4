package graph

import (
	"math"

	gUtil "github.com/helica-bio/expertgraph/backend/internal/util"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

// Influence weights per evidence kind. Trials dominate because trial
// involvement is the strongest repurposing signal in the source channels.
const (
	documentWeight = 2.5
	trialWeight    = 4.0
	patentWeight   = 3.2
	recentWeight   = 1.5
	webWeight      = 1.0
)

// Relevance scoring: a flat base for surviving the pipeline at all, a large
// step per query-token match in the expertise tags, a small step per trial.
const (
	relevanceBase        = 40
	relevanceTokenWeight = 12
	relevanceTrialWeight = 3
)

const maxScore = 100

var nodeColors = map[string]string{
	string(common.EntityTypeExpert):      "#5B8FF9",
	string(common.EntityTypeInstitution): "#5AD8A6",
	"trial":                              "#F6BD16",
	"patent":                             "#E8684A",
}

// influenceScore is a weighted count of the entity's evidence, bounded to
// [0, 100].
func influenceScore(e common.CanonicalEntity) int {
	raw := documentWeight*float64(len(e.DocumentIDs)) +
		trialWeight*float64(len(e.TrialIDs)) +
		patentWeight*float64(len(e.PatentIDs)) +
		recentWeight*float64(e.RecentActivity) +
		webWeight*float64(len(e.WebIDs))
	// Negative recent_activity from a malformed signal must not push the
	// score below zero; a negative score would also make nodeSize NaN.
	return int(math.Min(maxScore, math.Max(0, math.Round(raw))))
}

// relevanceScore measures how well an entity's expertise overlaps the query.
// Overlap counts distinct query tokens that appear as a token of any
// expertise tag; matching is exact on normalized tokens.
func relevanceScore(query string, e common.CanonicalEntity) int {
	expertiseTokens := map[string]bool{}
	for _, tag := range e.Expertise {
		for _, token := range gUtil.Tokenize(tag) {
			expertiseTokens[token] = true
		}
	}

	overlap := 0
	seen := map[string]bool{}
	for _, token := range gUtil.Tokenize(query) {
		if seen[token] {
			continue
		}
		seen[token] = true
		if expertiseTokens[token] {
			overlap++
		}
	}

	raw := relevanceBase +
		relevanceTokenWeight*overlap +
		relevanceTrialWeight*len(e.TrialIDs)
	return int(math.Min(maxScore, float64(raw)))
}

// nodeSize maps a 0..100 score onto a rendering size that grows
// logarithmically, so high scorers stand out without dwarfing the canvas.
func nodeSize(score int) float64 {
	return 12 + 6*math.Log2(float64(score)+1)
}

func institutionNodeID(name string) string {
	return gUtil.DeterministicID("context", "institution:"+normalizeKey(name))
}

func trialNodeID(trialID string) string {
	return gUtil.DeterministicID("context", "trial:"+normalizeKey(trialID))
}

func patentNodeID(patentNumber string) string {
	return gUtil.DeterministicID("context", "patent:"+normalizeKey(patentNumber))
}

// buildNodes scores every canonical entity against the query and emits one
// node per entity plus one per distinct context object (institution, trial,
// patent) referenced anywhere in the signals or the entities' affiliations.
// It returns the scored entity copies alongside the nodes; the input slice is
// left untouched.
func buildNodes(
	query string,
	entities []common.CanonicalEntity,
	sctx *SignalContext,
) ([]common.Node, []common.CanonicalEntity) {
	scored := make([]common.CanonicalEntity, len(entities))
	copy(scored, entities)

	nodes := []common.Node{}
	nodeIDs := map[string]bool{}

	for i := range scored {
		scored[i].InfluenceScore = influenceScore(scored[i])
		scored[i].RepurposingRelevanceScore = relevanceScore(query, scored[i])

		e := scored[i]
		score := e.InfluenceScore
		nodes = append(nodes, common.Node{
			ID:                        e.ID,
			Label:                     e.Label,
			Type:                      string(e.Type),
			Affiliations:              e.Affiliations,
			Expertise:                 e.Expertise,
			Contact:                   e.Contact,
			Score:                     score,
			InfluenceScore:            e.InfluenceScore,
			RepurposingRelevanceScore: e.RepurposingRelevanceScore,
			Size:                      nodeSize(score),
			Color:                     nodeColors[string(e.Type)],
			Metadata: map[string]any{
				"source_channels": e.SourceChannels,
			},
		})
		nodeIDs[e.ID] = true
	}

	appendContext := func(node common.Node) {
		if node.Label == "" || nodeIDs[node.ID] {
			return
		}
		nodeIDs[node.ID] = true
		nodes = append(nodes, node)
	}

	for _, inst := range sctx.Institutions {
		appendContext(institutionNode(inst.Name, inst.Channel))
	}
	for _, e := range scored {
		for _, aff := range e.Affiliations {
			appendContext(institutionNode(aff, ""))
		}
	}

	for _, trial := range sctx.Trials {
		appendContext(common.Node{
			ID:    trialNodeID(trial.TrialID),
			Label: trial.TrialID,
			Type:  "trial",
			Size:  14,
			Color: nodeColors["trial"],
			Metadata: map[string]any{
				"title":   trial.Title,
				"phase":   trial.Phase,
				"channel": trial.Channel,
			},
		})
	}
	for _, e := range scored {
		for _, trialID := range e.TrialIDs {
			appendContext(common.Node{
				ID:    trialNodeID(trialID),
				Label: trialID,
				Type:  "trial",
				Size:  14,
				Color: nodeColors["trial"],
			})
		}
	}

	for _, patent := range sctx.Patents {
		appendContext(common.Node{
			ID:    patentNodeID(patent.PatentNumber),
			Label: patent.PatentNumber,
			Type:  "patent",
			Size:  14,
			Color: nodeColors["patent"],
			Metadata: map[string]any{
				"title":     patent.Title,
				"authority": patent.Authority,
				"channel":   patent.Channel,
			},
		})
	}
	for _, e := range scored {
		for _, patentID := range e.PatentIDs {
			appendContext(common.Node{
				ID:    patentNodeID(patentID),
				Label: patentID,
				Type:  "patent",
				Size:  14,
				Color: nodeColors["patent"],
			})
		}
	}

	return nodes, scored
}

func institutionNode(name string, channel string) common.Node {
	node := common.Node{
		ID:    institutionNodeID(name),
		Label: name,
		Type:  string(common.EntityTypeInstitution),
		Size:  18,
		Color: nodeColors[string(common.EntityTypeInstitution)],
	}
	if channel != "" {
		node.Metadata = map[string]any{"channel": channel}
	}
	return node
}
