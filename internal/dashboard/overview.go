package dashboard

import (
	"math/rand"
	"time"
)

const (
	timeSeriesDays  = 31
	timeSeriesStart = "2024-01-01"
)

// Metric is one headline figure with its period-over-period delta.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
}

// Point is one time-series sample.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Slice is one segment of the sample distribution chart.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Overview is the landing page payload: metrics, a random-walk series and a
// category distribution.
type Overview struct {
	Metrics      []Metric `json:"metrics"`
	TimeSeries   []Point  `json:"time_series"`
	Distribution []Slice  `json:"distribution"`
}

// BuildOverview generates the demo data. The same seed always yields the
// same overview.
func BuildOverview(seed int64) *Overview {
	rng := rand.New(rand.NewSource(seed))

	start, _ := time.Parse("2006-01-02", timeSeriesStart)
	series := make([]Point, timeSeriesDays)
	value := 100.0
	for i := range series {
		value += rng.NormFloat64()
		series[i] = Point{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Value: value,
		}
	}

	categories := []string{"Category A", "Category B", "Category C", "Category D"}
	distribution := make([]Slice, len(categories))
	for i, name := range categories {
		distribution[i] = Slice{Name: name, Value: 10 + rng.Intn(90)}
	}

	return &Overview{
		Metrics: []Metric{
			{Label: "Total Users", Value: "1,234", Delta: "12%"},
			{Label: "Active Sessions", Value: "567", Delta: "8%"},
			{Label: "Page Views", Value: "9,876", Delta: "-3%"},
			{Label: "Conversion Rate", Value: "3.2%", Delta: "1.5%"},
		},
		TimeSeries:   series,
		Distribution: distribution,
	}
}
