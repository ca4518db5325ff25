package planner

import "github.com/NormalEdition/Planify/internal/models"

// maxListEntries caps the urgency lists. A presentation safety bound, not a
// business rule.
const maxListEntries = 50

// Snapshotter is anything that can produce the current live-task collection.
type Snapshotter interface {
	Snapshot() []models.Task
}

// Agenda returns the live tasks scheduled for the given day, in snapshot order.
func Agenda(tasks []models.Task, today models.Date) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Live() && t.Date.Equal(today) {
			out = append(out, t)
		}
	}
	return out
}

// CriticalActive returns the first 50 live critical tasks regardless of date.
// The missing date filter mirrors the critical panel's behavior exactly, even
// though the agenda and the stats are date-scoped.
func CriticalActive(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Live() && t.Level == models.LevelCritical {
			out = append(out, t)
			if len(out) == maxListEntries {
				break
			}
		}
	}
	return out
}

// NonCriticalActive returns the first 50 live non-critical tasks.
func NonCriticalActive(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Live() && t.Level != models.LevelCritical {
			out = append(out, t)
			if len(out) == maxListEntries {
				break
			}
		}
	}
	return out
}

// Partitioner derives the three task groupings from a store snapshot. It
// holds no state; every call recomputes from the current snapshot.
type Partitioner struct {
	src Snapshotter
}

func NewPartitioner(src Snapshotter) *Partitioner {
	return &Partitioner{src: src}
}

func (p *Partitioner) Agenda(today models.Date) []models.Task {
	return Agenda(p.src.Snapshot(), today)
}

func (p *Partitioner) CriticalActive() []models.Task {
	return CriticalActive(p.src.Snapshot())
}

func (p *Partitioner) NonCriticalActive() []models.Task {
	return NonCriticalActive(p.src.Snapshot())
}
