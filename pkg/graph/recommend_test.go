package graph

import (
	"fmt"
	"testing"

	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

func TestBuildRecommendationsOrdering(t *testing.T) {
	entities := []common.CanonicalEntity{
		{ID: "low", Label: "Low", Type: common.EntityTypeExpert,
			RepurposingRelevanceScore: 40, InfluenceScore: 10},
		{ID: "tie-influential", Label: "Tie Influential", Type: common.EntityTypeExpert,
			RepurposingRelevanceScore: 70, InfluenceScore: 50},
		{ID: "top", Label: "Top", Type: common.EntityTypeExpert,
			RepurposingRelevanceScore: 90, InfluenceScore: 5},
		{ID: "tie-weak", Label: "Tie Weak", Type: common.EntityTypeExpert,
			RepurposingRelevanceScore: 70, InfluenceScore: 20},
		{ID: "inst", Label: "Stanford University", Type: common.EntityTypeInstitution,
			RepurposingRelevanceScore: 99, InfluenceScore: 99},
	}

	recs := buildRecommendations(entities, 12)

	want := []string{"inst", "top", "tie-influential", "tie-weak", "low"}
	if len(recs) != len(want) {
		t.Fatalf("recommendations = %d, want %d", len(recs), len(want))
	}
	for i, id := range want {
		if recs[i].ID != id {
			t.Errorf("rank %d = %s, want %s", i, recs[i].ID, id)
		}
	}
}

func TestBuildRecommendationsStableOnFullTie(t *testing.T) {
	entities := []common.CanonicalEntity{}
	for i := 0; i < 4; i++ {
		entities = append(entities, common.CanonicalEntity{
			ID:                        fmt.Sprintf("e%d", i),
			Label:                     fmt.Sprintf("Entity %d", i),
			Type:                      common.EntityTypeExpert,
			RepurposingRelevanceScore: 50,
			InfluenceScore:            50,
		})
	}

	recs := buildRecommendations(entities, 12)
	for i := range recs {
		if recs[i].ID != fmt.Sprintf("e%d", i) {
			t.Errorf("rank %d = %s, want discovery order preserved", i, recs[i].ID)
		}
	}
}

func TestBuildRecommendationsLimit(t *testing.T) {
	entities := []common.CanonicalEntity{}
	for i := 0; i < 20; i++ {
		entities = append(entities, common.CanonicalEntity{
			ID:   fmt.Sprintf("e%d", i),
			Type: common.EntityTypeExpert,
		})
	}

	recs := buildRecommendations(entities, 12)
	if len(recs) != 12 {
		t.Errorf("recommendations = %d, want capped at 12", len(recs))
	}
}

func TestRecommendationReason(t *testing.T) {
	tests := []struct {
		name   string
		entity common.CanonicalEntity
		want   string
	}{
		{
			name: "counts and expertise",
			entity: common.CanonicalEntity{
				DocumentIDs: []string{"d1", "d2"},
				TrialIDs:    []string{"t1"},
				Expertise:   []string{"oncology", "immunology"},
			},
			want: "2 publications, 1 trial; expertise in oncology, immunology",
		},
		{
			name: "expertise truncated to two tags",
			entity: common.CanonicalEntity{
				Expertise: []string{"a", "b", "c", "d"},
			},
			want: "expertise in a, b",
		},
		{
			name: "channels fallback",
			entity: common.CanonicalEntity{
				SourceChannels: []string{"web"},
			},
			want: "appears in 1 source channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recommendationReason(tt.entity)
			if got != tt.want {
				t.Errorf("reason = %q, want %q", got, tt.want)
			}
		})
	}
}

