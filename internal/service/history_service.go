package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/networth-server/internal/history"
	"github.com/carson-networks/networth-server/internal/networth"
)

const defaultHistoryRange = 365 * 24 * time.Hour

// HistoryPoint is one dated value of a series.
type HistoryPoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// History is a series with its baseline-relative change.
type History struct {
	Category      string
	Points        []HistoryPoint
	Baseline      *HistoryPoint
	PercentChange *decimal.Decimal
}

// HistoryService handles snapshot series business logic.
type HistoryService struct {
	reader *history.Reader
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(reader *history.Reader) *HistoryService {
	return &HistoryService{reader: reader}
}

// HistoryFilter carries the optional query parameters. Zero values get
// defaults: category total, range last 365 days, net mode on.
type HistoryFilter struct {
	Category     string
	From         time.Time
	To           time.Time
	Gross        bool
	BaselineDate time.Time
}

// GetHistory returns the snapshot series for one user.
func (s *HistoryService) GetHistory(ctx context.Context, userID uuid.UUID, filter HistoryFilter) (*History, error) {
	category := filter.Category
	if category == "" {
		category = networth.CategoryTotal
	}
	if !networth.ValidCategory(category) {
		return nil, fmt.Errorf("history: unknown category %q", category)
	}

	to := filter.To
	if to.IsZero() {
		to = time.Now()
	}
	from := filter.From
	if from.IsZero() {
		from = to.Add(-defaultHistoryRange)
	}
	baselineDate := filter.BaselineDate
	if baselineDate.IsZero() {
		baselineDate = from
	}

	series, err := s.reader.Series(ctx, history.Query{
		UserID:       userID,
		Category:     category,
		From:         from,
		To:           to,
		Net:          !filter.Gross,
		BaselineDate: baselineDate,
	})
	if err != nil {
		return nil, err
	}

	out := &History{Category: category}
	for _, p := range series.Points {
		out.Points = append(out.Points, HistoryPoint{Date: p.Date, Value: p.Value})
	}
	if series.Baseline != nil {
		out.Baseline = &HistoryPoint{Date: series.Baseline.Date, Value: series.Baseline.Value}
	}
	if change, ok := series.PercentChange(); ok {
		out.PercentChange = &change
	}
	return out, nil
}
