package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

type memorySnapshotStore struct {
	snapshots map[string]*common.Graph
	failPut   bool
}

func newMemorySnapshotStore() *memorySnapshotStore {
	return &memorySnapshotStore{snapshots: map[string]*common.Graph{}}
}

func (m *memorySnapshotStore) SnapshotPath(graphID string) string {
	return fmt.Sprintf("graphs/%s.json", graphID)
}

func (m *memorySnapshotStore) PutSnapshot(ctx context.Context, graph *common.Graph) error {
	if m.failPut {
		return errors.New("snapshot backend down")
	}
	copied := *graph
	m.snapshots[graph.GraphID] = &copied
	return nil
}

func (m *memorySnapshotStore) GetSnapshot(ctx context.Context, graphID string) (*common.Graph, error) {
	graph, ok := m.snapshots[graphID]
	if !ok {
		return nil, ErrGraphNotFound
	}
	return graph, nil
}

type memoryIndexStore struct {
	records []common.GraphRecord
	failPut bool
}

func (m *memoryIndexStore) PutRecord(ctx context.Context, record common.GraphRecord) error {
	if m.failPut {
		return errors.New("index backend down")
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memoryIndexStore) ListRecords(ctx context.Context, limit int) ([]common.GraphRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func testGraph(id string) *common.Graph {
	return &common.Graph{
		GraphID: id,
		Nodes:   []common.Node{{ID: "n1", Label: "Maria Chen"}},
		Edges:   []common.Edge{},
		Meta: common.GraphMeta{
			Query:     "metformin",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			NodeCount: 1,
		},
	}
}

func TestGraphStoreSaveAndLoad(t *testing.T) {
	snapshots := newMemorySnapshotStore()
	index := &memoryIndexStore{}
	graphStore := NewGraphStore(snapshots, index)

	graph := testGraph("g-1")
	if err := graphStore.Save(context.Background(), graph); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if graph.Meta.Path != "graphs/g-1.json" {
		t.Errorf("meta path = %q, want snapshot key", graph.Meta.Path)
	}

	loaded, err := graphStore.Load(context.Background(), "g-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.GraphID != "g-1" || loaded.Meta.Query != "metformin" {
		t.Errorf("loaded = %+v, want round-tripped graph", loaded)
	}

	if len(index.records) != 1 {
		t.Fatalf("index records = %d, want 1", len(index.records))
	}
	record := index.records[0]
	if record.GraphID != "g-1" || record.Location != "graphs/g-1.json" || record.NodeCount != 1 {
		t.Errorf("record = %+v, want fields derived from snapshot meta", record)
	}
}

func TestGraphStoreSnapshotFailureIsFatal(t *testing.T) {
	snapshots := newMemorySnapshotStore()
	snapshots.failPut = true
	index := &memoryIndexStore{}
	graphStore := NewGraphStore(snapshots, index)

	err := graphStore.Save(context.Background(), testGraph("g-1"))
	if err == nil {
		t.Fatal("Save() succeeded despite snapshot failure")
	}
	if len(index.records) != 0 {
		t.Errorf("index records = %d, want none after snapshot failure", len(index.records))
	}
}

func TestGraphStoreIndexFailureIsSwallowed(t *testing.T) {
	snapshots := newMemorySnapshotStore()
	index := &memoryIndexStore{failPut: true}
	graphStore := NewGraphStore(snapshots, index)

	graph := testGraph("g-1")
	if err := graphStore.Save(context.Background(), graph); err != nil {
		t.Fatalf("Save() error = %v, want index failure swallowed", err)
	}

	// Snapshot remains retrievable by id even though the listing misses it.
	if _, err := graphStore.Load(context.Background(), "g-1"); err != nil {
		t.Errorf("Load() error = %v, want snapshot retrievable", err)
	}
	records, err := graphStore.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestGraphStoreLoadUnknownID(t *testing.T) {
	graphStore := NewGraphStore(newMemorySnapshotStore(), &memoryIndexStore{})

	_, err := graphStore.Load(context.Background(), "missing")
	if !errors.Is(err, ErrGraphNotFound) {
		t.Errorf("Load() error = %v, want ErrGraphNotFound", err)
	}
}
