package store

import (
	"context"
	"errors"

	"github.com/helica-bio/expertgraph/backend/pkg/common"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
)

// ErrGraphNotFound is returned when a graph id resolves to neither a snapshot
// nor an index record.
var ErrGraphNotFound = errors.New("graph not found")

// SnapshotStore persists full graph snapshots, keyed by graph id. Snapshots
// are immutable; a key is written exactly once.
type SnapshotStore interface {
	SnapshotPath(graphID string) string
	PutSnapshot(ctx context.Context, graph *common.Graph) error
	GetSnapshot(ctx context.Context, graphID string) (*common.Graph, error)
}

// IndexStore persists lightweight listing records for graphs. Index writes
// are best effort; the snapshot is the source of truth and the only by-id
// read path.
type IndexStore interface {
	PutRecord(ctx context.Context, record common.GraphRecord) error
	ListRecords(ctx context.Context, limit int) ([]common.GraphRecord, error)
}

// GraphStore combines a snapshot store and an index store into the two-phase
// persistence used after every build.
//
// A GraphStore should be created using NewGraphStore.
type GraphStore struct {
	snapshots SnapshotStore
	index     IndexStore
}

// NewGraphStore creates and returns a new GraphStore over the given backends.
func NewGraphStore(snapshots SnapshotStore, index IndexStore) *GraphStore {
	return &GraphStore{
		snapshots: snapshots,
		index:     index,
	}
}

// Save persists a built graph. The snapshot write must succeed; a failure is
// returned to the caller and nothing else happens. The index write that
// follows is best effort: on failure the graph stays retrievable by id, it
// just won't appear in listings, and the error is logged and swallowed.
func (s *GraphStore) Save(ctx context.Context, graph *common.Graph) error {
	graph.Meta.Path = s.snapshots.SnapshotPath(graph.GraphID)

	if err := s.snapshots.PutSnapshot(ctx, graph); err != nil {
		return err
	}

	record := common.GraphRecord{
		GraphID:   graph.GraphID,
		CreatedAt: graph.Meta.CreatedAt,
		Query:     graph.Meta.Query,
		NodeCount: graph.Meta.NodeCount,
		EdgeCount: graph.Meta.EdgeCount,
		Location:  graph.Meta.Path,
	}
	if err := s.index.PutRecord(ctx, record); err != nil {
		logger.Error("graph index write failed, snapshot remains retrievable",
			"graph_id", graph.GraphID,
			"error", err,
		)
	}
	return nil
}

// Load retrieves a snapshot by id. Unknown ids yield ErrGraphNotFound.
func (s *GraphStore) Load(ctx context.Context, graphID string) (*common.Graph, error) {
	return s.snapshots.GetSnapshot(ctx, graphID)
}

// List returns the most recent index records, newest first.
func (s *GraphStore) List(ctx context.Context, limit int) ([]common.GraphRecord, error) {
	return s.index.ListRecords(ctx, limit)
}
