// Package bulk decodes charted point rows in parallel. Each decode is a
// pure function of its row, so rows map across a bounded worker pool with no
// coordination. Per-row failures are isolated: a malformed row is dropped
// and counted for data-quality auditing, never fatal to the batch.
package bulk

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/LavinLeo/tennis-data/internal/charting"
)

// DefaultWorkers bounds the pool when no worker count is configured.
const DefaultWorkers = 8

// PointRow is one charted point as supplied by the tabular layer.
type PointRow struct {
	MatchID    string `json:"match_id"`
	Number     int    `json:"number"`
	Server     string `json:"server"`
	Returner   string `json:"returner"`
	ServerWon  bool   `json:"server_won"`
	FirstCode  string `json:"first_code"`
	SecondCode string `json:"second_code,omitempty"`
}

// RowFailure records one dropped row.
type RowFailure struct {
	Number    int    `json:"number"`
	FirstCode string `json:"first_code"`
	Reason    string `json:"reason"`
}

// Result is the outcome of decoding a batch of rows.
type Result struct {
	// Sequences holds the decoded points in row order
	Sequences []*charting.ShotSequence `json:"sequences"`

	// Decoded and Dropped count the rows that parsed and the rows that
	// were skipped
	Decoded int `json:"decoded"`
	Dropped int `json:"dropped"`

	// Failures describes each dropped row
	Failures []RowFailure `json:"failures,omitempty"`
}

// Decoder maps point rows through the notation decoder on a worker pool.
type Decoder struct {
	logger  *slog.Logger
	workers int
}

// New creates a Decoder. workers <= 0 selects DefaultWorkers.
func New(logger *slog.Logger, workers int) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Decoder{logger: logger, workers: workers}
}

// DecodeRows decodes rows in parallel, preserving row order in the result.
// Rows that fail to decode are dropped, logged, and counted; only context
// cancellation aborts the batch.
func (d *Decoder) DecodeRows(ctx context.Context, rows []PointRow) (*Result, error) {
	decoded := make([]*charting.ShotSequence, len(rows))
	failures := make([]*RowFailure, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			seq, err := charting.FromCode(row.Server, row.Returner, row.ServerWon, row.FirstCode, row.SecondCode)
			if err != nil {
				failures[i] = &RowFailure{
					Number:    row.Number,
					FirstCode: row.FirstCode,
					Reason:    err.Error(),
				}
				d.logger.Warn("dropping point row",
					slog.String("match_id", row.MatchID),
					slog.Int("point", row.Number),
					slog.String("error", err.Error()),
				)
				return nil
			}

			decoded[i] = seq
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{}
	for i := range rows {
		if failures[i] != nil {
			result.Dropped++
			result.Failures = append(result.Failures, *failures[i])
			continue
		}
		result.Decoded++
		result.Sequences = append(result.Sequences, decoded[i])
	}

	if result.Dropped > 0 {
		d.logger.Info("batch decoded with dropped rows",
			slog.Int("decoded", result.Decoded),
			slog.Int("dropped", result.Dropped),
		)
	}

	return result, nil
}
