package graph

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

func TestInfluenceScore(t *testing.T) {
	tests := []struct {
		name   string
		entity common.CanonicalEntity
		want   int
	}{
		{
			name:   "empty entity",
			entity: common.CanonicalEntity{},
			want:   0,
		},
		{
			name: "weighted sum",
			entity: common.CanonicalEntity{
				DocumentIDs:    []string{"d1", "d2"},       // 5.0
				TrialIDs:       []string{"t1"},             // 4.0
				PatentIDs:      []string{"p1"},             // 3.2
				WebIDs:         []string{"w1", "w2", "w3"}, // 3.0
				RecentActivity: 2,                          // 3.0
			},
			want: 18,
		},
		{
			name: "capped at 100",
			entity: common.CanonicalEntity{
				TrialIDs: make([]string, 50),
			},
			want: 100,
		},
		{
			name: "negative recent activity floors at zero",
			entity: common.CanonicalEntity{
				RecentActivity: -10,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := influenceScore(tt.entity)
			if got != tt.want {
				t.Errorf("influenceScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRelevanceScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		entity common.CanonicalEntity
		want   int
	}{
		{
			name:   "base only",
			query:  "metformin repurposing",
			entity: common.CanonicalEntity{},
			want:   40,
		},
		{
			name:  "token overlap",
			query: "metformin repurposing",
			entity: common.CanonicalEntity{
				Expertise: []string{"Metformin pharmacology", "drug repurposing"},
			},
			want: 64, // 40 + 2*12
		},
		{
			name:  "trials add on top",
			query: "metformin",
			entity: common.CanonicalEntity{
				Expertise: []string{"metformin"},
				TrialIDs:  []string{"t1", "t2"},
			},
			want: 58, // 40 + 12 + 2*3
		},
		{
			name:  "capped at 100",
			query: "a b c d e f",
			entity: common.CanonicalEntity{
				Expertise: []string{"a b c d e f"},
				TrialIDs:  make([]string, 20),
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relevanceScore(tt.query, tt.entity)
			if got != tt.want {
				t.Errorf("relevanceScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNodeSizeGrowsWithScore(t *testing.T) {
	if nodeSize(0) != 12 {
		t.Errorf("nodeSize(0) = %f, want 12", nodeSize(0))
	}
	prev := nodeSize(0)
	for _, score := range []int{1, 10, 50, 100} {
		size := nodeSize(score)
		if size <= prev {
			t.Errorf("nodeSize(%d) = %f, not greater than %f", score, size, prev)
		}
		prev = size
	}
}

func TestBuildNodesNegativeRecentActivityStaysSerializable(t *testing.T) {
	entities := []common.CanonicalEntity{
		{
			ID:             "e1",
			Label:          "Maria Chen",
			Type:           common.EntityTypeExpert,
			RecentActivity: -10,
		},
	}

	nodes, scored := buildNodes("metformin", entities, &SignalContext{})

	if scored[0].InfluenceScore < 0 || scored[0].InfluenceScore > 100 {
		t.Errorf("influence score = %d, want within [0, 100]", scored[0].InfluenceScore)
	}
	if math.IsNaN(nodes[0].Size) || nodes[0].Size < 12 {
		t.Errorf("node size = %f, want finite and at least 12", nodes[0].Size)
	}
	if _, err := json.Marshal(nodes); err != nil {
		t.Errorf("nodes did not serialize: %v", err)
	}
}

func TestBuildNodesEmitsContextNodesOnce(t *testing.T) {
	entities := []common.CanonicalEntity{
		{
			ID:           "e1",
			Label:        "Maria Chen",
			Type:         common.EntityTypeExpert,
			Affiliations: []string{"Stanford University"},
			TrialIDs:     []string{"NCT001"},
		},
	}
	sctx := &SignalContext{
		Institutions: []institutionRef{{Name: "Stanford  University", Channel: "web"}},
		Trials:       []common.TrialEvent{{TrialID: "NCT001", Title: "Phase II study"}},
		Patents:      []common.PatentRecord{{PatentNumber: "US123", Title: "Formulation"}},
	}

	nodes, scored := buildNodes("metformin", entities, sctx)

	if scored[0].InfluenceScore == 0 && scored[0].RepurposingRelevanceScore == 0 {
		t.Error("expected scored copies to carry scores")
	}
	if entities[0].InfluenceScore != 0 {
		t.Error("input entities were mutated in place")
	}

	// 1 expert + 1 institution + 1 trial + 1 patent, no duplicates even though
	// the institution and the trial are referenced twice.
	if len(nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(nodes))
	}

	seen := map[string]bool{}
	for _, node := range nodes {
		if seen[node.ID] {
			t.Errorf("duplicate node id %s", node.ID)
		}
		seen[node.ID] = true
		if node.Color == "" {
			t.Errorf("node %s (%s) has no color", node.ID, node.Type)
		}
	}

	if !seen[institutionNodeID("Stanford University")] {
		t.Error("missing institution context node")
	}
	if !seen[trialNodeID("NCT001")] {
		t.Error("missing trial context node")
	}
	if !seen[patentNodeID("US123")] {
		t.Error("missing patent context node")
	}
}
