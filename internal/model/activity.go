package model

import "time"

// DailyActivity is one day's tracked-time tally for a single
// user/project/task combination, as returned by the work/by_day endpoint.
type DailyActivity struct {
	ID           int64     `json:"id"`
	Date         string    `json:"date"`
	UserID       int64     `json:"user_id"`
	ProjectID    int64     `json:"project_id"`
	TaskID       *int64    `json:"task_id"`
	Keyboard     int64     `json:"keyboard"`
	Mouse        int64     `json:"mouse"`
	Overall      int64     `json:"overall"`
	Tracked      int64     `json:"tracked"`
	InputTracked int64     `json:"input_tracked"`
	Manual       int64     `json:"manual"`
	Idle         int64     `json:"idle"`
	Resumed      int64     `json:"resumed"`
	Billable     int64     `json:"billable"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Organization is a Hubstaff organization (company).
type Organization struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	InviteURL string `json:"invite_url"`
}

// Pagination selects one page of a list endpoint.
type Pagination struct {
	PageStartID int64 `json:"page_start_id"`
	PageLimit   int   `json:"page_limit"`
}

// DefaultPageLimit is the page size used when none is given.
const DefaultPageLimit = 100

// DefaultPagination returns the first page with the default page size.
func DefaultPagination() Pagination {
	return Pagination{PageStartID: 0, PageLimit: DefaultPageLimit}
}

// Credentials are the login pair posted to people/auth.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
