package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/repository"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// Bucket selects the granularity of time-bucketed counts.
type Bucket string

const (
	BucketNone    Bucket = ""
	BucketDaily   Bucket = "daily"
	BucketWeekly  Bucket = "weekly"
	BucketMonthly Bucket = "monthly"
)

// ParseBucket validates a bucket string; empty means no bucketing.
func ParseBucket(s string) (Bucket, bool) {
	switch Bucket(s) {
	case BucketNone, BucketDaily, BucketWeekly, BucketMonthly:
		return Bucket(s), true
	}
	return "", false
}

// DateRange bounds the bucketed counts; nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// BucketCount is one time bucket with its shipment count.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Aggregates is the dashboard payload: counts by status, revenue, and
// optional time-bucketed creation counts.
type Aggregates struct {
	TotalShipments int                           `json:"total_shipments"`
	StatusCounts   map[domain.ShipmentStatus]int `json:"status_counts"`
	TotalRevenue   float64                       `json:"total_revenue"`
	Buckets        []BucketCount                 `json:"buckets,omitempty"`
}

// ReportService derives dashboard aggregates. Nothing is persisted; the view
// is recomputed from the full shipment and order collections on every
// request.
type ReportService struct {
	shipments repository.ShipmentRepository
	orders    repository.OrderRepository
}

// NewReportService constructs the service.
func NewReportService(shipments repository.ShipmentRepository, orders repository.OrderRepository) *ReportService {
	return &ReportService{shipments: shipments, orders: orders}
}

// Dashboard loads the collections and aggregates them. An empty store yields
// zero counts, not an error.
func (s *ReportService) Dashboard(ctx context.Context, rng DateRange, bucket Bucket) (*Aggregates, error) {
	shipments, err := s.shipments.List(ctx, repository.ShipmentFilter{})
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(shipments, orders, rng, bucket), nil
}

// Aggregate is the pure derivation over the collections. Status counts and
// revenue cover the whole store; bucketed counts honor the date range.
func Aggregate(shipments []domain.Shipment, orders []domain.Order, rng DateRange, bucket Bucket) *Aggregates {
	agg := &Aggregates{
		TotalShipments: len(shipments),
		StatusCounts: map[domain.ShipmentStatus]int{
			domain.StatusPending:   0,
			domain.StatusInTransit: 0,
			domain.StatusDelivered: 0,
		},
	}

	for _, shipment := range shipments {
		agg.StatusCounts[shipment.Status]++
	}
	for _, order := range orders {
		agg.TotalRevenue += order.TotalCost
	}

	if bucket != BucketNone {
		counts := make(map[string]int)
		for _, shipment := range shipments {
			if !rng.contains(shipment.CreatedAt) {
				continue
			}
			counts[bucketLabel(shipment.CreatedAt, bucket)]++
		}

		labels := make([]string, 0, len(counts))
		for label := range counts {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		agg.Buckets = make([]BucketCount, 0, len(labels))
		for _, label := range labels {
			agg.Buckets = append(agg.Buckets, BucketCount{Label: label, Count: counts[label]})
		}
	}

	return agg
}

func bucketLabel(t time.Time, bucket Bucket) string {
	switch bucket {
	case BucketDaily:
		return t.Format("2006-01-02")
	case BucketWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case BucketMonthly:
		return t.Format("2006-01")
	}
	return ""
}

// ParseDateRange builds a range from optional RFC3339 or date-only strings.
func ParseDateRange(from, to string) (DateRange, error) {
	rng := DateRange{}
	if from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return rng, util.NewValidationError("invalid from date", map[string]any{"from": from})
		}
		rng.From = &parsed
	}
	if to != "" {
		parsed, err := parseDate(to)
		if err != nil {
			return rng, util.NewValidationError("invalid to date", map[string]any{"to": to})
		}
		// A date-only upper bound includes the whole day.
		if len(to) == len("2006-01-02") {
			parsed = parsed.Add(24*time.Hour - time.Nanosecond)
		}
		rng.To = &parsed
	}
	return rng, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
