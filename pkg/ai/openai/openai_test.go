package openai

import (
	"context"
	"testing"
)

func TestGenerateCompletionWithFormatWithoutAPIKey(t *testing.T) {
	// No ChatKey means no underlying client; the call must fail with an
	// error so enrichment batches can degrade to raw mention fields.
	client := NewGraphOpenAIClient(NewGraphOpenAIClientParams{
		EnrichmentModel: "gpt-4o-mini",
	})

	var out struct {
		Value string `json:"value"`
	}
	err := client.GenerateCompletionWithFormat(context.Background(), "enrich_entities", "test", "prompt", &out)
	if err == nil {
		t.Error("GenerateCompletionWithFormat() error = nil, want unconfigured-client error")
	}
}
