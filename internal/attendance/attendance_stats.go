package attendance

import (
	"time"

	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/i18n"

	"golang.org/x/text/message"
)

const (
	statsCacheKey = "attendance:stats"
	dailyWindow   = 7
	weekDays      = 7
)

type dayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// statsSnapshot is the language-neutral form that gets cached.
type statsSnapshot struct {
	Total    int64            `json:"total"`
	Today    int64            `json:"today"`
	ThisWeek int64            `json:"thisWeek"`
	ByBranch map[string]int64 `json:"byBranch"`
	Daily    []dayCount       `json:"daily"`
}

// statsSince is the oldest instant any statistic looks at.
func statsSince(cal clock.Calendar, now time.Time) time.Time {
	return cal.StartOfDay(now).AddDate(0, 0, -weekDays)
}

func buildStats(s Summary, cal clock.Calendar, now time.Time) statsSnapshot {
	todayStart := cal.StartOfDay(now)
	weekStart := statsSince(cal, now)

	snap := statsSnapshot{
		Total:    s.Total,
		ByBranch: make(map[string]int64, len(s.ByBranch)),
		Daily:    make([]dayCount, dailyWindow),
	}
	for branch, n := range s.ByBranch {
		snap.ByBranch[branch] = n
	}

	// hari ke-0 = enam hari lalu, hari ke-6 = hari ini
	for i := range snap.Daily {
		snap.Daily[i].Day = todayStart.AddDate(0, 0, i-(dailyWindow-1))
	}

	for _, at := range s.Recent {
		if !at.Before(todayStart) {
			snap.Today++
		}
		if !at.Before(weekStart) {
			snap.ThisWeek++
		}
		for i := range snap.Daily {
			start := snap.Daily[i].Day
			if !at.Before(start) && at.Before(start.AddDate(0, 0, 1)) {
				snap.Daily[i].Count++
				break
			}
		}
	}
	return snap
}

func (s statsSnapshot) localize(p *message.Printer, loc *time.Location) StatsResponse {
	resp := StatsResponse{
		Total:          s.Total,
		Today:          s.Today,
		ThisWeek:       s.ThisWeek,
		ActiveBranches: len(s.ByBranch),
		ByBranch:       s.ByBranch,
		DailyStats:     make([]DailyStatResponse, 0, len(s.Daily)),
	}
	if resp.ByBranch == nil {
		resp.ByBranch = map[string]int64{}
	}
	for _, d := range s.Daily {
		day := d.Day.In(loc)
		resp.DailyStats = append(resp.DailyStats, DailyStatResponse{
			Date:    i18n.WeekdayShort(p, day.Weekday()),
			IsoDate: day.Format("2006-01-02"),
			Count:   d.Count,
		})
	}
	return resp
}
