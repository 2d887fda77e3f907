package subgraph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/metrics"
	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/types"
)

// DefaultPageSize is the number of snapshots requested per page.
const DefaultPageSize = 1000

// Result is the outcome of one fetch session.
// Err is set when a page failed and Snapshots holds only what was fetched before it.
type Result struct {
	Snapshots []types.Snapshot
	Requests  int
	Watermark uint64
	Err       error
}

// Complete reports whether the session ran until an empty page.
func (r *Result) Complete() bool {
	return r.Err == nil
}

type snapshotsPage struct {
	Snapshots *[]types.Snapshot `json:"snapshots"`
}

// Fetcher pages through the snapshots of a subgraph using the last seen timestamp as cursor.
type Fetcher struct {
	client         *Client
	pageSize       int
	startTimestamp uint64
	logger         *zap.SugaredLogger
	metrics        *metrics.Metrics
}

type Option func(*Fetcher)

func WithPageSize(pageSize int) Option {
	return func(f *Fetcher) {
		if pageSize > 0 {
			f.pageSize = pageSize
		}
	}
}

// WithStartTimestamp sets the initial timestamp_gte lower bound.
func WithStartTimestamp(timestamp uint64) Option {
	return func(f *Fetcher) {
		f.startTimestamp = timestamp
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

func NewFetcher(client *Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   client,
		pageSize: DefaultPageSize,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch requests pages of snapshots ordered by timestamp until an empty page is returned.
// A nil blockNumber fetches the whole history.
//
// A page rejected with a non success status or an errors list ends the session: the
// returned Result carries the snapshots fetched so far and the failure in Err, and the
// returned error is nil. Transport failures and malformed pages are returned as errors.
func (f *Fetcher) Fetch(ctx context.Context, blockNumber *uint64) (*Result, error) {
	var (
		query     = snapshotsAllQuery
		variables = map[string]interface{}{"first": f.pageSize}
		logger    = f.logger
		res       = &Result{Watermark: f.startTimestamp}
	)
	if blockNumber != nil {
		query = snapshotsBlockQuery
		variables["blockNumber"] = *blockNumber
		logger = logger.With("blockNumber", *blockNumber)
	}

	for {
		variables["timestamp"] = res.Watermark
		logger.Infow("fetching snapshots", "timestamp", res.Watermark)

		page, err := f.fetchPage(ctx, &Request{Query: query, Variables: variables})
		res.Requests++
		if err != nil {
			if !isTruncation(err) {
				f.metrics.SetTruncated(true)
				return res, err
			}
			statusCode, body := responseDetails(err)
			logger.Errorw("query failed, returning partial snapshots",
				"statusCode", statusCode,
				"body", compactBody(body),
				"fetched", len(res.Snapshots),
			)
			f.metrics.SetTruncated(true)
			res.Err = err
			return res, nil
		}

		if len(page) == 0 {
			logger.Infow("no more snapshots to fetch", "fetched", len(res.Snapshots), "requests", res.Requests)
			f.metrics.SetTruncated(false)
			return res, nil
		}

		last := page[len(page)-1]
		if uint64(last.Timestamp) < res.Watermark {
			f.metrics.SetTruncated(true)
			return res, fmt.Errorf("%w: page ends at timestamp %d below watermark %d",
				ErrMalformedResponse, last.Timestamp, res.Watermark)
		}
		if len(page) >= f.pageSize && len(page) > 1 && page[len(page)-2].Timestamp == last.Timestamp {
			// timestamps have second granularity, so the rest of this second may be skipped
			logger.Warnw("full page ends inside a run of equal timestamps, records may be skipped",
				"timestamp", last.Timestamp)
		}

		res.Snapshots = append(res.Snapshots, page...)
		res.Watermark = uint64(last.Timestamp) + 1
		f.metrics.ObservePage(len(page), res.Watermark)
	}
}

func (f *Fetcher) fetchPage(ctx context.Context, req *Request) ([]types.Snapshot, error) {
	var (
		page  snapshotsPage
		start = time.Now()
	)
	err := f.client.Query(ctx, req, &page)
	f.metrics.ObserveRequest(requestStatus(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	if page.Snapshots == nil {
		return nil, fmt.Errorf("%w: missing data.snapshots", ErrMalformedResponse)
	}
	for i := range *page.Snapshots {
		if verr := (*page.Snapshots)[i].Validate(); verr != nil {
			return nil, fmt.Errorf("%w: snapshot %d: %v", ErrMalformedResponse, i, verr)
		}
	}
	return *page.Snapshots, nil
}

func requestStatus(err error) string {
	var (
		statusErr *StatusError
		queryErr  *QueryError
	)
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.As(err, &statusErr):
		return metrics.StatusHTTPError
	case errors.As(err, &queryErr):
		return metrics.StatusQueryError
	}
	return metrics.StatusError
}
