package pgx

import (
	"context"
	"fmt"

	"github.com/helica-bio/expertgraph/backend/pkg/common"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 50

// IndexStore keeps the graph listing records in Postgres.
//
// An IndexStore should be created using NewIndexStore.
type IndexStore struct {
	pool *pgxpool.Pool
}

// NewIndexStore creates and returns a new IndexStore over the given pool.
func NewIndexStore(pool *pgxpool.Pool) *IndexStore {
	return &IndexStore{pool: pool}
}

// PutRecord inserts one index record. Records are written once per build;
// conflicting ids keep the existing row untouched.
func (s *IndexStore) PutRecord(ctx context.Context, record common.GraphRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO graph_index (graph_id, created_at, query, node_count, edge_count, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (graph_id) DO NOTHING
	`, record.GraphID, record.CreatedAt, record.Query, record.NodeCount, record.EdgeCount, record.Location)
	if err != nil {
		return fmt.Errorf("failed to insert graph index record %s: %w", record.GraphID, err)
	}
	return nil
}

// ListRecords returns the newest records first.
func (s *IndexStore) ListRecords(ctx context.Context, limit int) ([]common.GraphRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT graph_id, created_at, query, node_count, edge_count, location
		FROM graph_index
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list graph index records: %w", err)
	}
	defer rows.Close()

	records := []common.GraphRecord{}
	for rows.Next() {
		record := common.GraphRecord{}
		if err := rows.Scan(
			&record.GraphID,
			&record.CreatedAt,
			&record.Query,
			&record.NodeCount,
			&record.EdgeCount,
			&record.Location,
		); err != nil {
			return nil, fmt.Errorf("failed to scan graph index record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graph index records: %w", err)
	}
	return records, nil
}
