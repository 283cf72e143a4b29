package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/hubstaff-activity-report/internal/model"
	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

const (
	// JobID is the scheduler key of the daily report job.
	JobID = "daily_activity_report"
	// JobName is its display name.
	JobName = "Generate daily activity report by user and project."
)

// Source fetches raw daily activities.
type Source interface {
	WorkByDay(ctx context.Context, orgID int64, start, stop time.Time, page model.Pagination) ([]model.DailyActivity, error)
}

// FileWriter stores a rendered report for a date and returns its path.
type FileWriter interface {
	Write(day time.Time, content string) (string, error)
}

// Mailer delivers a rendered report.
type Mailer interface {
	Send(subject, html string, recipients []string) error
}

// Job produces the daily activity report. NewSource is called once per run
// so no session is shared between runs.
type Job struct {
	NewSource  func() Source
	Writer     FileWriter
	Mailer     Mailer // nil disables email
	OrgID      int64
	Recipients []string
	Logger     *log.Logger
	Now        func() time.Time
}

func (j *Job) logger() *log.Logger {
	if j.Logger == nil {
		return log.Default()
	}
	return j.Logger
}

func (j *Job) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}

// Run builds and delivers the report for yesterday.
func (j *Job) Run(ctx context.Context) error {
	_, err := j.RunFor(ctx, timecalc.Yesterday(j.now()))
	return err
}

// RunFor builds the report for day, writes it and, when recipients are
// configured, emails it. It returns the written path. Nothing is written
// when fetching or rendering fails. A delivery failure is returned together
// with the path of the file that was kept.
func (j *Job) RunFor(ctx context.Context, day time.Time) (string, error) {
	logger := j.logger()
	runID := uuid.NewString()
	date := timecalc.FormatDate(day)
	logger.Printf("[%s] Generating daily activity report for %s", runID, date)

	rep, err := j.Build(ctx, day)
	if err != nil {
		logger.Printf("ERROR: [%s] Failed to fetch activity for %s: %v", runID, date, err)
		return "", fmt.Errorf("fetching activity for %s: %w", date, err)
	}

	html, err := RenderHTML(rep)
	if err != nil {
		logger.Printf("ERROR: [%s] %v", runID, err)
		return "", err
	}

	path, err := j.Writer.Write(day, html)
	if err != nil {
		logger.Printf("ERROR: [%s] Failed to write report for %s: %v", runID, date, err)
		return "", fmt.Errorf("writing report for %s: %w", date, err)
	}
	logger.Printf("[%s] Report for %s written to %s (%d users, %s tracked)",
		runID, date, path, len(rep.ByUser), timecalc.FormatDurationHHMMSS(rep.TotalTracked()))

	if len(j.Recipients) == 0 {
		return path, nil
	}
	if j.Mailer == nil {
		logger.Printf("WARNING: [%s] Recipients configured but email is disabled, not sending", runID)
		return path, nil
	}
	if err := j.Mailer.Send(Subject(date), html, j.Recipients); err != nil {
		logger.Printf("ERROR: [%s] Failed to email report for %s: %v", runID, date, err)
		return path, fmt.Errorf("emailing report for %s: %w", date, err)
	}
	logger.Printf("[%s] Report for %s emailed to %d recipient(s)", runID, date, len(j.Recipients))
	return path, nil
}

// Build fetches the activities of day and aggregates them. It neither
// writes nor sends anything.
func (j *Job) Build(ctx context.Context, day time.Time) (model.DailyActivityReport, error) {
	records, err := j.NewSource().WorkByDay(ctx, j.OrgID, day, day, model.DefaultPagination())
	if err != nil {
		return model.DailyActivityReport{}, err
	}
	return Aggregate(day, records), nil
}
