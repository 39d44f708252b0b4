package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/helica-bio/expertgraph/backend/pkg/ai"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

// fakeAIClient scripts the enrichment backend for pipeline tests. Each call
// consumes the next scripted batch; a nil batch means the call fails.
type fakeAIClient struct {
	batches [][]ai.EnrichedEntity
	calls   int
}

func (f *fakeAIClient) GenerateCompletionWithFormat(
	ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption,
) error {
	if f.calls >= len(f.batches) {
		return fmt.Errorf("unexpected call %d", f.calls)
	}
	batch := f.batches[f.calls]
	f.calls++
	if batch == nil {
		return errors.New("model unavailable")
	}
	payload, err := json.Marshal(map[string]any{"entities": batch})
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

func (f *fakeAIClient) ResetMetrics()               {}
func (f *fakeAIClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func mentionsNamed(names ...string) []common.RawMention {
	mentions := make([]common.RawMention, 0, len(names))
	for _, name := range names {
		mentions = append(mentions, common.RawMention{RawName: name, Channels: []string{"test"}})
	}
	return mentions
}

func TestNormalizeMentionsBatchesOfFive(t *testing.T) {
	client := NewGraphClient(NewGraphClientParams{MaxRetries: 1})

	first := make([]ai.EnrichedEntity, 5)
	second := make([]ai.EnrichedEntity, 2)
	fake := &fakeAIClient{batches: [][]ai.EnrichedEntity{first, second}}

	mentions := mentionsNamed("a", "b", "c", "d", "e", "f", "g")
	normalized := client.normalizeMentions(context.Background(), "query", mentions, fake)

	if fake.calls != 2 {
		t.Errorf("enrichment calls = %d, want 2 batches for 7 mentions", fake.calls)
	}
	if len(normalized) != 7 {
		t.Errorf("normalized = %d, want all 7 mentions kept", len(normalized))
	}
}

func TestNormalizeMentionsFailedBatchFallsBackToRaw(t *testing.T) {
	client := NewGraphClient(NewGraphClientParams{MaxRetries: 1})
	fake := &fakeAIClient{batches: [][]ai.EnrichedEntity{nil}}

	mentions := mentionsNamed("Maria Chen")
	normalized := client.normalizeMentions(context.Background(), "query", mentions, fake)

	if len(normalized) != 1 {
		t.Fatalf("normalized = %d, want 1 (fallback, not drop)", len(normalized))
	}
	if normalized[0].label() != "Maria Chen" {
		t.Errorf("label = %q, want raw name", normalized[0].label())
	}
	if !normalized[0].enrichment.Empty() {
		t.Errorf("enrichment = %+v, want empty after batch failure", normalized[0].enrichment)
	}
}

func TestNormalizeMentionsLengthMismatchIsBatchFailure(t *testing.T) {
	client := NewGraphClient(NewGraphClientParams{MaxRetries: 1})
	// Model returns 1 entity for 2 mentions; the whole batch degrades to raw.
	fake := &fakeAIClient{batches: [][]ai.EnrichedEntity{
		{{CanonicalName: "Maria Chen"}},
	}}

	mentions := mentionsNamed("Maria Chen", "John Park")
	normalized := client.normalizeMentions(context.Background(), "query", mentions, fake)

	if len(normalized) != 2 {
		t.Fatalf("normalized = %d, want 2", len(normalized))
	}
	for _, pair := range normalized {
		if !pair.enrichment.Empty() {
			t.Errorf("enrichment = %+v, want none applied on mismatch", pair.enrichment)
		}
	}
}

func TestNormalizeMentionsDropsNameless(t *testing.T) {
	client := NewGraphClient(NewGraphClientParams{MaxRetries: 1})
	fake := &fakeAIClient{batches: [][]ai.EnrichedEntity{
		{
			{CanonicalName: "Resolved Name"},
			{}, // stays nameless
		},
	}}

	mentions := []common.RawMention{
		{Affiliations: []string{"Stanford University"}}, // no raw name, resolved by model
		{Expertise: []string{"oncology"}},               // no name from either side
	}
	normalized := client.normalizeMentions(context.Background(), "query", mentions, fake)

	if len(normalized) != 1 {
		t.Fatalf("normalized = %d, want 1", len(normalized))
	}
	if normalized[0].label() != "Resolved Name" {
		t.Errorf("label = %q, want model-resolved name", normalized[0].label())
	}
}
