// Package analytics derives the registration dashboard from a user
// collection: four overlapping trailing-window counts and a histogram of
// registrations per calendar month.
package analytics

import (
	"time"

	"github.com/dmitrijs2005/userdesk/internal/models"
)

// Trailing windows measured back from the snapshot time.
const (
	Window24h = 24 * time.Hour
	Window7d  = 7 * 24 * time.Hour
	Window15d = 15 * 24 * time.Hour
	Window30d = 30 * 24 * time.Hour
)

// Series is a chart-ready histogram: Labels[i] has Counts[i] records.
type Series struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Total returns the sum of all bucket counts.
func (s Series) Total() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	return total
}

// Snapshot is computed once per fetch and never stored.
type Snapshot struct {
	Now     time.Time `json:"now"`
	Last24h int       `json:"last24h"`
	Last7d  int       `json:"last7d"`
	Last15d int       `json:"last15d"`
	Last30d int       `json:"last30d"`
	Months  Series    `json:"months"`
}

// Compute builds a Snapshot relative to now. A record counts toward every
// window whose length is at least now - RegisteredAt, so the windows
// overlap; records dated in the future count toward all of them.
//
// Months are keyed by the English short month name ("Jan") of RegisteredAt
// in loc, whatever the collation locale, and appear in the order they are
// first seen in users. A nil loc means UTC.
func Compute(users []models.User, now time.Time, loc *time.Location) Snapshot {
	if loc == nil {
		loc = time.UTC
	}

	s := Snapshot{
		Now:    now,
		Months: Series{Labels: []string{}, Counts: []int{}},
	}
	index := make(map[string]int)

	for _, u := range users {
		elapsed := now.Sub(u.RegisteredAt)
		if elapsed <= Window24h {
			s.Last24h++
		}
		if elapsed <= Window7d {
			s.Last7d++
		}
		if elapsed <= Window15d {
			s.Last15d++
		}
		if elapsed <= Window30d {
			s.Last30d++
		}

		label := u.RegisteredAt.In(loc).Format("Jan")
		i, ok := index[label]
		if !ok {
			i = len(s.Months.Labels)
			index[label] = i
			s.Months.Labels = append(s.Months.Labels, label)
			s.Months.Counts = append(s.Months.Counts, 0)
		}
		s.Months.Counts[i]++
	}

	return s
}
