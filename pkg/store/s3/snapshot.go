package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/helica-bio/expertgraph/backend/pkg/common"
	"github.com/helica-bio/expertgraph/backend/pkg/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// SnapshotStore persists graph snapshots as JSON objects under graphs/ in a
// single bucket.
//
// A SnapshotStore should be created using NewSnapshotStore.
type SnapshotStore struct {
	client *awss3.Client
	bucket string
}

// NewSnapshotStoreParams defines the configuration parameters for creating
// a new SnapshotStore.
type NewSnapshotStoreParams struct {
	Client *awss3.Client
	Bucket string
}

// NewSnapshotStore creates and returns a new SnapshotStore over the given
// S3 client and bucket.
func NewSnapshotStore(params NewSnapshotStoreParams) *SnapshotStore {
	return &SnapshotStore{
		client: params.Client,
		bucket: params.Bucket,
	}
}

// SnapshotPath returns the object key a graph id maps to.
func (s *SnapshotStore) SnapshotPath(graphID string) string {
	return fmt.Sprintf("graphs/%s.json", graphID)
}

// PutSnapshot serializes the graph and writes it to the bucket. Graph ids are
// random per build, so the key is never overwritten in practice.
func (s *SnapshotStore) PutSnapshot(ctx context.Context, graph *common.Graph) error {
	payload, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("failed to serialize graph %s: %w", graph.GraphID, err)
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.SnapshotPath(graph.GraphID)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload graph %s: %w", graph.GraphID, err)
	}
	return nil
}

// GetSnapshot fetches and decodes a snapshot. A missing key maps to
// store.ErrGraphNotFound.
func (s *SnapshotStore) GetSnapshot(ctx context.Context, graphID string) (*common.Graph, error) {
	result, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.SnapshotPath(graphID)),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, store.ErrGraphNotFound
		}
		return nil, fmt.Errorf("failed to fetch graph %s: %w", graphID, err)
	}
	defer result.Body.Close()

	payload, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph %s: %w", graphID, err)
	}

	graph := &common.Graph{}
	if err := json.Unmarshal(payload, graph); err != nil {
		return nil, fmt.Errorf("failed to decode graph %s: %w", graphID, err)
	}
	return graph, nil
}
