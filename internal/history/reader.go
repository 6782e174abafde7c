// Package history answers range queries over persisted snapshots,
// producing baseline-aligned series for charting. Reads only; no cursor
// state survives between calls.
package history

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/networth-server/internal/networth"
	"github.com/carson-networks/networth-server/internal/storage"
)

// Point is one (date, value) pair of a series.
type Point struct {
	Date  time.Time
	Value decimal.Decimal
}

// Series is an ascending sequence of points plus the baseline point used
// for percentage-change displays. Baseline is nil for an empty series.
type Series struct {
	Points   []Point
	Baseline *Point
}

// PercentChange computes the change of the last point versus the
// baseline. ok is false when there is no baseline or the baseline value
// is zero.
func (s *Series) PercentChange() (decimal.Decimal, bool) {
	if s.Baseline == nil || len(s.Points) == 0 || s.Baseline.Value.IsZero() {
		return decimal.Zero, false
	}
	last := s.Points[len(s.Points)-1].Value
	hundred := decimal.NewFromInt(100)
	return last.Sub(s.Baseline.Value).Div(s.Baseline.Value).Mul(hundred), true
}

type Reader struct {
	store *storage.Storage
}

func NewReader(store *storage.Storage) *Reader {
	return &Reader{store: store}
}

// Query selects a snapshot series.
//
// Net selects net worth (loan liabilities included); with Net false the
// total category reports gross values, loan contributions removed.
// BaselineDate aligns percentage-change displays on the date the
// currently-held account set was first fully present: the baseline is
// the earliest point on or after it, falling back to the series' first
// point.
type Query struct {
	UserID       uuid.UUID
	Category     string
	From         time.Time
	To           time.Time
	Net          bool
	BaselineDate time.Time
}

func (r *Reader) Series(ctx context.Context, q Query) (*Series, error) {
	rows, err := r.store.Snapshots.ListRange(ctx, q.UserID, q.Category, q.From, q.To)
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(rows))
	for i, row := range rows {
		points[i] = Point{Date: row.Date, Value: row.Value}
	}

	if q.Category == networth.CategoryTotal && !q.Net {
		if err := r.removeLoans(ctx, q, points); err != nil {
			return nil, err
		}
	}

	series := &Series{Points: points}
	series.Baseline = baseline(points, q.BaselineDate)
	return series, nil
}

// removeLoans converts a total series to gross by backing the loan
// bucket out of each point. Total rows already include loan balances
// (stored signed), so subtracting the loan value adds the liability
// back.
func (r *Reader) removeLoans(ctx context.Context, q Query, points []Point) error {
	loanRows, err := r.store.Snapshots.ListRange(ctx, q.UserID, networth.CategoryLoan, q.From, q.To)
	if err != nil {
		return err
	}
	loanByDate := make(map[string]decimal.Decimal, len(loanRows))
	for _, row := range loanRows {
		loanByDate[row.Date.Format("2006-01-02")] = row.Value
	}
	for i := range points {
		if loanValue, ok := loanByDate[points[i].Date.Format("2006-01-02")]; ok {
			points[i].Value = points[i].Value.Sub(loanValue)
		}
	}
	return nil
}

// baseline picks the earliest point on or after baselineDate, falling
// back to the first point of the series.
func baseline(points []Point, baselineDate time.Time) *Point {
	if len(points) == 0 {
		return nil
	}
	for i := range points {
		if !points[i].Date.Before(baselineDate) {
			return &points[i]
		}
	}
	return &points[0]
}
