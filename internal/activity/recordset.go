package activity

import (
	"sort"
	"time"
)

// RecordSet maps day keys to that day's commits, newest first.
type RecordSet map[string][]Commit

// Group buckets commits by calendar day in loc, orders each day newest first,
// and keeps at most limit commits per day when limit is positive.
func Group(commits []Commit, loc *time.Location, limit int) RecordSet {
	set := make(RecordSet)
	for _, c := range commits {
		key := Key(Day(c.Time, loc))
		set[key] = append(set[key], c)
	}
	for key, day := range set {
		sort.SliceStable(day, func(i, j int) bool {
			if day[i].Time.Equal(day[j].Time) {
				if day[i].Repo != day[j].Repo {
					return day[i].Repo < day[j].Repo
				}
				return day[i].SHA < day[j].SHA
			}
			return day[i].Time.After(day[j].Time)
		})
		if limit > 0 && len(day) > limit {
			day = day[:limit]
		}
		set[key] = day
	}
	return set
}

// For returns the commits recorded for date. Missing dates yield nil.
func (s RecordSet) For(date time.Time) []Commit {
	if s == nil {
		return nil
	}
	return s[Key(date)]
}

// Total returns the number of commits across all days.
func (s RecordSet) Total() int {
	n := 0
	for _, day := range s {
		n += len(day)
	}
	return n
}
