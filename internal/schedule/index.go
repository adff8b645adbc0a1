// Package schedule buckets jobs by the calendar day of their scheduled date
// and derives the upcoming-jobs list.
package schedule

import (
	"slices"
	"time"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// DefaultUpcomingLimit caps Upcoming when no limit is configured.
const DefaultUpcomingLimit = 20

// Day is one calendar day with the jobs scheduled on it.
type Day struct {
	Date string
	Jobs []domain.Job
}

// Index maps "YYYY-MM-DD" day keys to the jobs scheduled on that day.
// An Index is immutable once built and safe for concurrent reads.
type Index struct {
	loc  *time.Location
	days map[string][]domain.Job
	keys []string
}

// Build buckets jobs by the day of ScheduledDate in loc. Jobs without a
// scheduled date are left out. Within a bucket jobs keep their input order.
func Build(jobs []domain.Job, loc *time.Location) *Index {
	if loc == nil {
		loc = time.UTC
	}
	ix := &Index{loc: loc, days: make(map[string][]domain.Job)}
	for _, j := range jobs {
		if !j.IsScheduled() {
			continue
		}
		key := DayKey(*j.ScheduledDate, loc)
		if _, ok := ix.days[key]; !ok {
			ix.keys = append(ix.keys, key)
		}
		ix.days[key] = append(ix.days[key], j)
	}
	slices.Sort(ix.keys)
	return ix
}

// Len returns the number of days with at least one job.
func (ix *Index) Len() int { return len(ix.keys) }

// Days returns the non-empty day keys in ascending order.
func (ix *Index) Days() []string {
	return slices.Clone(ix.keys)
}

// On returns the jobs scheduled on day, or nil.
func (ix *Index) On(day string) []domain.Job {
	return slices.Clone(ix.days[day])
}

// Buckets returns every non-empty day in ascending order.
func (ix *Index) Buckets() []Day {
	out := make([]Day, len(ix.keys))
	for i, k := range ix.keys {
		out[i] = Day{Date: k, Jobs: ix.On(k)}
	}
	return out
}

// Range returns one Day per calendar day from from to to inclusive, empty
// days included, as needed by a month grid. An inverted range is empty.
func (ix *Index) Range(from, to time.Time) []Day {
	start := from.In(ix.loc)
	end := to.In(ix.loc)
	cur := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, ix.loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, ix.loc)

	out := make([]Day, 0)
	for !cur.After(last) {
		key := cur.Format(dayLayout)
		jobs := ix.On(key)
		if jobs == nil {
			jobs = []domain.Job{}
		}
		out = append(out, Day{Date: key, Jobs: jobs})
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}

// Month returns the grid for a "YYYY-MM" label.
func (ix *Index) Month(month string) ([]Day, error) {
	first, last, err := ParseMonth(month, ix.loc)
	if err != nil {
		return nil, err
	}
	return ix.Range(first, last), nil
}

// Upcoming returns jobs scheduled at or after the start of today in loc,
// ordered by ScheduledDate ascending with ties in input order, capped at
// limit. A non-positive limit uses DefaultUpcomingLimit.
func Upcoming(jobs []domain.Job, now time.Time, loc *time.Location, limit int) []domain.Job {
	if loc == nil {
		loc = time.UTC
	}
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	today := DayStart(now, loc)

	out := make([]domain.Job, 0)
	for _, j := range jobs {
		if j.IsScheduled() && !j.ScheduledDate.Before(today) {
			out = append(out, j)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Job) int {
		return a.ScheduledDate.Compare(*b.ScheduledDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ByPriority returns a copy of jobs stably ordered from urgent to low.
func ByPriority(jobs []domain.Job) []domain.Job {
	out := slices.Clone(jobs)
	slices.SortStableFunc(out, func(a, b domain.Job) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return out
}
