package graph

// GraphClient builds expert relationship graphs from collected signals.
// It manages enrichment retry policy and recommendation sizing.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	maxRetries         int
	maxRecommendations int
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// MaxRetries controls how often a failed enrichment call is retried before
// the batch degrades to raw mention fields.
// MaxRecommendations caps the ranked recommendation list.
type NewGraphClientParams struct {
	MaxRetries         int
	MaxRecommendations int
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	client := graph.NewGraphClient(graph.NewGraphClientParams{
//		MaxRetries:         3,
//		MaxRecommendations: 12,
//	})
func NewGraphClient(params NewGraphClientParams) *GraphClient {
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	maxRecommendations := params.MaxRecommendations
	if maxRecommendations <= 0 {
		maxRecommendations = 12
	}

	return &GraphClient{
		maxRetries:         maxRetries,
		maxRecommendations: maxRecommendations,
	}
}
