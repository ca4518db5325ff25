package planner

import "github.com/NormalEdition/Planify/internal/models"

// Bucket is one day of the rolling completion histogram.
type Bucket struct {
	Date  models.Date
	Label string
	Count int
}

// CompletionPercentage computes today's completion gauge: the share of
// today's live tasks that are completed, rounded UP to the nearest multiple
// of ten. 1% reads as 10, 100% stays 100, and an empty day is 0. The coarse
// ceiling banding is deliberate; do not replace it with round-to-nearest.
func CompletionPercentage(tasks []models.Task, today models.Date) int {
	total := 0
	completed := 0
	for _, t := range tasks {
		if !t.Live() || !t.Date.Equal(today) {
			continue
		}
		total++
		if t.Completed() {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	// ceil((100*completed/total)/10)*10 without floats.
	return (10*completed + total - 1) / total * 10
}

// RollingHistogram counts completed live tasks for each of the five calendar
// days from today-2 through today+2. Always exactly five buckets, in
// chronological order, zero-filled.
func RollingHistogram(tasks []models.Task, today models.Date) []Bucket {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t.Live() && t.Completed() {
			counts[t.Date.String()]++
		}
	}

	buckets := make([]Bucket, 0, 5)
	for i := -2; i <= 2; i++ {
		day := today.AddDays(i)
		buckets = append(buckets, Bucket{
			Date:  day,
			Label: day.Label(),
			Count: counts[day.String()],
		})
	}
	return buckets
}

// StatsEngine derives the two summaries from a store snapshot. Stateless;
// every call recomputes.
type StatsEngine struct {
	src Snapshotter
}

func NewStatsEngine(src Snapshotter) *StatsEngine {
	return &StatsEngine{src: src}
}

func (e *StatsEngine) CompletionPercentage(today models.Date) int {
	return CompletionPercentage(e.src.Snapshot(), today)
}

func (e *StatsEngine) RollingHistogram(today models.Date) []Bucket {
	return RollingHistogram(e.src.Snapshot(), today)
}
