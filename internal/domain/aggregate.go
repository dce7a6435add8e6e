package domain

import (
	"fmt"
	"time"
)

// Granularity selects the calendar alignment of aggregation buckets.
type Granularity string

const (
	Weekly  Granularity = "week"  // ISO week, starting Monday
	Monthly Granularity = "month" // calendar month
)

// PeriodSummary holds per-bucket statistics for one calendar-aligned
// interval. Buckets without observations are still reported (HasData false)
// so downstream charting gets a complete time axis. NetChange is nil when no
// observation exists before the bucket to serve as a baseline.
type PeriodSummary struct {
	Key       string      `json:"key"` // "2024-W05" or "2024-02"
	Start     time.Time   `json:"start"`
	End       time.Time   `json:"end"` // last day of the bucket, inclusive
	Count     int         `json:"count"`
	HasData   bool        `json:"hasData"`
	Mean      float64     `json:"mean,omitempty"`
	Min       float64     `json:"min,omitempty"`
	Max       float64     `json:"max,omitempty"`
	NetChange *float64    `json:"netChange,omitempty"`
	Period    Granularity `json:"period"`
}

// BucketStart returns the start of the bucket containing date: the Monday of
// its ISO week, or the first day of its month.
func BucketStart(date time.Time, g Granularity) time.Time {
	date = NormalizeDate(date)
	if g == Monthly {
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	back := (int(date.Weekday()) + 6) % 7 // Monday = 0
	return date.AddDate(0, 0, -back)
}

func nextBucket(start time.Time, g Granularity) time.Time {
	if g == Monthly {
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 7)
}

func bucketKey(start time.Time, g Granularity) string {
	if g == Monthly {
		return start.Format("2006-01")
	}
	year, week := start.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Summarize partitions observations into contiguous calendar-aligned buckets
// covering every bucket that touches [from, to], and computes per-bucket
// statistics. Observations must be ordered by date ascending. A bucket's net
// change is measured as its last observation minus the most recent
// observation before the bucket; for the earliest bucket that baseline comes
// from before the range when available (pass it as baseline, nil otherwise).
func Summarize(obs []Observation, baseline *Observation, g Granularity, from, to time.Time) []PeriodSummary {
	from, to = NormalizeDate(from), NormalizeDate(to)
	if to.Before(from) {
		return nil
	}

	var out []PeriodSummary
	prev := baseline
	i := 0
	for start := BucketStart(from, g); !start.After(to); start = nextBucket(start, g) {
		next := nextBucket(start, g)
		s := PeriodSummary{
			Key:    bucketKey(start, g),
			Start:  start,
			End:    next.AddDate(0, 0, -1),
			Period: g,
		}

		var last *Observation
		for i < len(obs) && obs[i].Date.Before(next) {
			o := obs[i]
			i++
			if o.Date.Before(start) {
				continue
			}
			if s.Count == 0 {
				s.Min, s.Max = o.Weight, o.Weight
			}
			if o.Weight < s.Min {
				s.Min = o.Weight
			}
			if o.Weight > s.Max {
				s.Max = o.Weight
			}
			s.Mean += o.Weight
			s.Count++
			last = &o
		}

		if s.Count > 0 {
			s.HasData = true
			s.Mean /= float64(s.Count)
			if prev != nil {
				net := last.Weight - prev.Weight
				s.NetChange = &net
			}
			prev = last
		}
		out = append(out, s)
	}
	return out
}
