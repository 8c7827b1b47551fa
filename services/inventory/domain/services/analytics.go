package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

// Bucket is the time granularity that analytics collapses history into.
type Bucket int

const (
	BucketDay Bucket = iota
	BucketHour
)

// ParseBucket accepts "day" or "hour".
func ParseBucket(s string) (Bucket, error) {
	switch s {
	case "day":
		return BucketDay, nil
	case "hour":
		return BucketHour, nil
	default:
		return BucketDay, fmt.Errorf("unknown analytics bucket %q", s)
	}
}

func (b Bucket) String() string {
	if b == BucketHour {
		return "hour"
	}
	return "day"
}

// Key labels t with its UTC bucket: "2006-01-02" or "2006-01-02T15".
func (b Bucket) Key(t time.Time) string {
	if b == BucketHour {
		return t.UTC().Format("2006-01-02T15")
	}
	return t.UTC().Format(time.DateOnly)
}

// Window is the trailing span a forecast looks at, measured back from the
// newest point: 24 hours for hourly buckets, 7 days otherwise.
func (b Bucket) Window() time.Duration {
	if b == BucketHour {
		return 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

// TrendPoint is the latest recorded quantity within one bucket.
type TrendPoint struct {
	Bucket    string
	Quantity  int
	Timestamp time.Time
}

// Trend is the chronological series of points for one item name.
type Trend struct {
	ItemName string
	Points   []TrendPoint
}

// BuildTrends groups history by item name, keeps only the latest entry per
// bucket, and orders each series chronologically. Trends are sorted by name.
func BuildTrends(history []*models.StockHistoryEntry, b Bucket) []Trend {
	byName := make(map[string]map[string]*models.StockHistoryEntry)
	for _, h := range history {
		buckets, ok := byName[h.ItemName]
		if !ok {
			buckets = make(map[string]*models.StockHistoryEntry)
			byName[h.ItemName] = buckets
		}
		key := b.Key(h.Timestamp)
		if cur, ok := buckets[key]; !ok || h.Timestamp.After(cur.Timestamp) {
			buckets[key] = h
		}
	}

	trends := make([]Trend, 0, len(byName))
	for name, buckets := range byName {
		points := make([]TrendPoint, 0, len(buckets))
		for key, h := range buckets {
			points = append(points, TrendPoint{Bucket: key, Quantity: h.Quantity, Timestamp: h.Timestamp})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })
		trends = append(trends, Trend{ItemName: name, Points: points})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].ItemName < trends[j].ItemName })
	return trends
}

// Forecast is the naive restock projection for one item.
// UntilRestock is nil when no projection is available.
type Forecast struct {
	ItemName     string
	CurrentStock int
	AvgUsageRate float64
	UntilRestock *int
}

// Available reports whether a restock projection could be made.
func (f Forecast) Available() bool {
	return f.UntilRestock != nil
}

// ForecastRestock averages the decreases between consecutive points recorded
// within window of the newest point (restocks are ignored) and projects how
// many buckets the current stock lasts. Sparse history is not padded: buckets
// without entries simply contribute no point. Fewer than two points or no
// usage yields no projection.
func ForecastRestock(trend Trend, currentStock int, window time.Duration) Forecast {
	f := Forecast{ItemName: trend.ItemName, CurrentStock: currentStock}

	points := trend.Points
	if window > 0 && len(points) > 0 {
		cutoff := points[len(points)-1].Timestamp.Add(-window)
		first := len(points)
		for first > 0 && points[first-1].Timestamp.After(cutoff) {
			first--
		}
		points = points[first:]
	}
	if len(points) < 2 {
		return f
	}

	total, counted := 0, 0
	for i := 0; i < len(points)-1; i++ {
		if usage := points[i].Quantity - points[i+1].Quantity; usage > 0 {
			total += usage
			counted++
		}
	}
	if counted == 0 {
		return f
	}

	f.AvgUsageRate = float64(total) / float64(counted)
	if f.AvgUsageRate <= 0 {
		return f
	}
	n := int(math.Floor(float64(currentStock) / f.AvgUsageRate))
	f.UntilRestock = &n
	return f
}

// Report bundles trends and forecasts for the analytics view.
type Report struct {
	Bucket    Bucket
	Trends    []Trend
	Forecasts []Forecast
}

// Analyze builds trends from history and forecasts each against the current
// stock of the item with the same name (0 when the item no longer exists).
func Analyze(history []*models.StockHistoryEntry, items []*models.Item, b Bucket) Report {
	stock := make(map[string]int, len(items))
	for _, it := range items {
		stock[it.Name.String()] = it.Quantity
	}

	trends := BuildTrends(history, b)
	forecasts := make([]Forecast, 0, len(trends))
	for _, tr := range trends {
		forecasts = append(forecasts, ForecastRestock(tr, stock[tr.ItemName], b.Window()))
	}
	return Report{Bucket: b, Trends: trends, Forecasts: forecasts}
}
