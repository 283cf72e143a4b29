package model

// DailyActivityReport is the tracked time of one day grouped by user and
// then by project.
type DailyActivityReport struct {
	Date   string       `json:"date"`
	ByUser []UserReport `json:"by_user"`
}

// UserReport holds one user's per-project totals.
type UserReport struct {
	UserID    int64           `json:"user_id"`
	ByProject []ProjectReport `json:"by_project"`
}

// ProjectReport is the tracked seconds of one user on one project.
type ProjectReport struct {
	ProjectID int64 `json:"project_id"`
	Tracked   int64 `json:"tracked"`
}

// Tracked returns the user's total tracked seconds across projects.
func (u UserReport) Tracked() int64 {
	var total int64
	for _, p := range u.ByProject {
		total += p.Tracked
	}
	return total
}

// TotalTracked returns the tracked seconds summed over all users.
func (r DailyActivityReport) TotalTracked() int64 {
	var total int64
	for _, u := range r.ByUser {
		total += u.Tracked()
	}
	return total
}

// Empty reports whether no time was tracked on the report date.
func (r DailyActivityReport) Empty() bool {
	return len(r.ByUser) == 0
}
