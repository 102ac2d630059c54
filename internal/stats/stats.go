// Package stats computes chart-ready aggregates from reading sessions.
//
// Both views are pure folds over an in-memory session slice: rerunning
// on the same input yields the same output, and input order never
// changes the totals.
package stats

import (
	"sort"

	"github.com/bookend/bookend/internal/entities"
)

// DailyPages is the total number of pages read on one calendar day.
type DailyPages struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Pages int    `json:"pages"`
}

// WeeklyMinutes is the total reading time for one ISO-8601 week.
type WeeklyMinutes struct {
	Year    int `json:"year"`
	Week    int `json:"week"`
	Minutes int `json:"minutes"`
}

// PagesByDay groups sessions by calendar date, ignoring time of day,
// and sums pages read. The result is sorted by date ascending.
func PagesByDay(sessions []entities.ReadingSession) []DailyPages {
	totals := make(map[string]int)
	for _, s := range sessions {
		totals[s.Date.Format("2006-01-02")] += s.PagesRead
	}

	out := make([]DailyPages, 0, len(totals))
	for date, pages := range totals {
		out = append(out, DailyPages{Date: date, Pages: pages})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MinutesByWeek groups sessions by ISO-8601 week and sums durations.
// Week numbering follows time.Time.ISOWeek: the week containing the
// year's first Thursday is week 1, and days around New Year may belong
// to the other year's week. The result is sorted by year, then week,
// ascending.
func MinutesByWeek(sessions []entities.ReadingSession) []WeeklyMinutes {
	type yearWeek struct {
		year, week int
	}

	totals := make(map[yearWeek]int)
	for _, s := range sessions {
		y, w := s.Date.ISOWeek()
		totals[yearWeek{y, w}] += s.Duration
	}

	out := make([]WeeklyMinutes, 0, len(totals))
	for k, minutes := range totals {
		out = append(out, WeeklyMinutes{Year: k.year, Week: k.week, Minutes: minutes})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}
