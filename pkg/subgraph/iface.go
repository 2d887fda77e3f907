package subgraph

import "context"

// SnapshotFetcher define required functionalities for a snapshot source.
type SnapshotFetcher interface {
	Fetch(ctx context.Context, blockNumber *uint64) (*Result, error)
}
