package report

import (
	"time"

	"github.com/Tiliavir/hubstaff-activity-report/internal/model"
	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

type pairKey struct {
	user    int64
	project int64
}

// Aggregate groups the tracked time of day by user and then by project.
// Records of other dates and records without tracked time are dropped.
// Users and projects keep the order in which they first appear in records.
func Aggregate(day time.Time, records []model.DailyActivity) model.DailyActivityReport {
	date := timecalc.FormatDate(day)
	out := model.DailyActivityReport{Date: date, ByUser: []model.UserReport{}}

	users := make(map[int64]int)
	pairs := make(map[pairKey]int)
	for _, r := range records {
		if r.Date != date || r.Tracked <= 0 {
			continue
		}

		ui, ok := users[r.UserID]
		if !ok {
			ui = len(out.ByUser)
			users[r.UserID] = ui
			out.ByUser = append(out.ByUser, model.UserReport{UserID: r.UserID})
		}

		key := pairKey{user: r.UserID, project: r.ProjectID}
		pi, ok := pairs[key]
		if !ok {
			pi = len(out.ByUser[ui].ByProject)
			pairs[key] = pi
			out.ByUser[ui].ByProject = append(out.ByUser[ui].ByProject, model.ProjectReport{ProjectID: r.ProjectID})
		}
		out.ByUser[ui].ByProject[pi].Tracked += r.Tracked
	}
	return out
}
