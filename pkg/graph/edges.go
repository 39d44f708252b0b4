package graph

import (
	"fmt"
	"sort"
	"strings"

	gUtil "github.com/helica-bio/expertgraph/backend/internal/util"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

// Edge weights per relation family. Collaboration overlap and co-authorship
// scale with evidence; everything is clamped into [0.05, 1.0] at emission.
const (
	affiliatedWeight       = 0.55
	coAuthorBaseWeight     = 0.4
	coAuthorStepWeight     = 0.1
	investigatorWeight     = 0.65
	inventorWeight         = 0.6
	coInventorWeight       = 0.5
	collaborationBase      = 0.3
	collaborationStep      = 0.1
	collaborationMax       = 0.9
	coAuthorParticipantCap = 3
)

const (
	minEdgeWeight = 0.05
	maxEdgeWeight = 1.0
)

func clampWeight(w float64) float64 {
	if w < minEdgeWeight {
		return minEdgeWeight
	}
	if w > maxEdgeWeight {
		return maxEdgeWeight
	}
	return w
}

func newEdge(source, target string, relation common.Relation, weight float64, evidence []string) common.Edge {
	return common.Edge{
		Source:   source,
		Target:   target,
		Type:     relation,
		Label:    strings.ReplaceAll(string(relation), "_", " "),
		Weight:   clampWeight(weight),
		Evidence: evidence,
	}
}

// buildAliasIndex maps every normalized alias, and the canonical label
// itself, to an entity id. Collisions are resolved by the last writer in
// entity order; a shared alias therefore attributes trial and patent name
// matches to the most recently registered entity.
func buildAliasIndex(entities []common.CanonicalEntity) map[string]string {
	index := map[string]string{}
	for _, e := range entities {
		if key := gUtil.NormalizeName(e.Label); key != "" {
			index[key] = e.ID
		}
		for _, alias := range e.Aliases {
			if key := gUtil.NormalizeName(alias); key != "" {
				index[key] = e.ID
			}
		}
	}
	return index
}

type pairKey struct {
	a string
	b string
}

func orderedPair(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// buildEdges derives every edge family from the scored entities and the
// signal context. Duplicate edges between the same pair are legitimate: the
// result is a multigraph, and each edge carries its own evidence.
func buildEdges(entities []common.CanonicalEntity, sctx *SignalContext) []common.Edge {
	edges := []common.Edge{}
	aliasIndex := buildAliasIndex(entities)

	// Evidence ids already expressed as a co_author or co_inventor edge are
	// excluded from the generic collaboration overlap for that pair.
	captured := map[pairKey]map[string]bool{}
	capture := func(a, b string, id string) {
		key := orderedPair(a, b)
		if captured[key] == nil {
			captured[key] = map[string]bool{}
		}
		captured[key][id] = true
	}

	// Family 1: entity -> institution affiliation.
	for _, e := range entities {
		for _, aff := range e.Affiliations {
			edges = append(edges, newEdge(
				e.ID, institutionNodeID(aff),
				common.RelationAffiliatedWith, affiliatedWeight,
				nil,
			))
		}
	}

	// Family 2: co-authorship over shared document ids.
	docIndex := map[string][]string{}
	docOrder := []string{}
	for _, e := range entities {
		for _, docID := range e.DocumentIDs {
			if len(docIndex[docID]) == 0 {
				docOrder = append(docOrder, docID)
			}
			docIndex[docID] = append(docIndex[docID], e.ID)
		}
	}
	sort.Strings(docOrder)
	for _, docID := range docOrder {
		participants := docIndex[docID]
		if len(participants) < 2 {
			continue
		}
		weight := coAuthorBaseWeight +
			coAuthorStepWeight*float64(min(coAuthorParticipantCap, len(participants)))
		for i := 0; i < len(participants); i++ {
			for j := i + 1; j < len(participants); j++ {
				edges = append(edges, newEdge(
					participants[i], participants[j],
					common.RelationCoAuthor, weight,
					[]string{docID},
				))
				capture(participants[i], participants[j], docID)
			}
		}
	}

	// Family 3: trial investigators, matched by normalized name.
	for _, trial := range sctx.Trials {
		evidence := trial.Title
		if evidence == "" {
			evidence = trial.TrialID
		}
		for _, name := range trial.Investigators {
			entityID, ok := aliasIndex[gUtil.NormalizeName(name)]
			if !ok {
				continue
			}
			edges = append(edges, newEdge(
				entityID, trialNodeID(trial.TrialID),
				common.RelationInvestigatorIn, investigatorWeight,
				[]string{evidence},
			))
		}
	}

	// Family 4: patent inventors and pairwise co-inventors.
	for _, patent := range sctx.Patents {
		resolved := []string{}
		seen := map[string]bool{}
		for _, name := range patent.Inventors {
			entityID, ok := aliasIndex[gUtil.NormalizeName(name)]
			if !ok || seen[entityID] {
				continue
			}
			seen[entityID] = true
			resolved = append(resolved, entityID)
		}
		for _, entityID := range resolved {
			edges = append(edges, newEdge(
				entityID, patentNodeID(patent.PatentNumber),
				common.RelationInventorOf, inventorWeight,
				[]string{patent.PatentNumber},
			))
		}
		for i := 0; i < len(resolved); i++ {
			for j := i + 1; j < len(resolved); j++ {
				edges = append(edges, newEdge(
					resolved[i], resolved[j],
					common.RelationCoInventor, coInventorWeight,
					[]string{patent.PatentNumber},
				))
				capture(resolved[i], resolved[j], patent.PatentNumber)
			}
		}
	}

	// Family 5: residual collaboration over shared ids not already covered by
	// a more specific edge between the pair.
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			a, b := entities[i], entities[j]
			key := orderedPair(a.ID, b.ID)

			shared := []string{}
			shared = append(shared, sharedIDs(a.DocumentIDs, b.DocumentIDs, captured[key])...)
			shared = append(shared, sharedIDs(a.TrialIDs, b.TrialIDs, captured[key])...)
			shared = append(shared, sharedIDs(a.PatentIDs, b.PatentIDs, captured[key])...)
			if len(shared) == 0 {
				continue
			}

			weight := collaborationBase + collaborationStep*float64(len(shared))
			if weight > collaborationMax {
				weight = collaborationMax
			}
			edges = append(edges, newEdge(
				a.ID, b.ID,
				common.RelationCollaboratedWith, weight,
				collaborationEvidence(shared),
			))
		}
	}

	return edges
}

// sharedIDs intersects two sorted sets, skipping ids already captured by a
// more specific edge family.
func sharedIDs(a, b []string, exclude map[string]bool) []string {
	inB := map[string]bool{}
	for _, id := range b {
		inB[id] = true
	}
	shared := []string{}
	for _, id := range a {
		if inB[id] && !exclude[id] {
			shared = append(shared, id)
		}
	}
	return shared
}

func collaborationEvidence(shared []string) []string {
	const maxEvidence = 5
	if len(shared) <= maxEvidence {
		return shared
	}
	evidence := append([]string{}, shared[:maxEvidence]...)
	return append(evidence, fmt.Sprintf("+%d more", len(shared)-maxEvidence))
}
