package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tiliavir/hubstaff-activity-report/internal/hubstaff"
	"github.com/Tiliavir/hubstaff-activity-report/internal/model"
	"github.com/Tiliavir/hubstaff-activity-report/internal/report"
	"github.com/Tiliavir/hubstaff-activity-report/internal/scheduler"
	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

// ReportBuilder fetches and aggregates the report of one day.
type ReportBuilder interface {
	Build(ctx context.Context, day time.Time) (model.DailyActivityReport, error)
}

// JobLister reports the scheduled jobs.
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

// Handlers contains all HTTP handlers
type Handlers struct {
	reports ReportBuilder
	jobs    JobLister
	logger  *log.Logger
	now     func() time.Time
}

// NewHandlers creates a new handlers instance. jobs may be nil when no
// scheduler runs in the process.
func NewHandlers(reports ReportBuilder, jobs JobLister, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{reports: reports, jobs: jobs, logger: logger, now: time.Now}
}

// HealthHandler handles GET /health
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DailyActivityHandler handles GET /reports/activity
// Query: report_date=YYYY-MM-DD (default today), format=json|html (default json).
func (h *Handlers) DailyActivityHandler(c *gin.Context) {
	day := timecalc.StartOfDay(h.now())
	if raw := c.Query("report_date"); raw != "" {
		parsed, err := timecalc.ParseDate(raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "report_date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "html" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or html"})
		return
	}

	rep, err := h.reports.Build(c.Request.Context(), day)
	if err != nil {
		h.logger.Printf("ERROR: on-demand report for %s failed: %v", timecalc.FormatDate(day), err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if format == "html" {
		html, err := report.RenderHTML(rep)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ListJobsHandler handles GET /jobs
func (h *Handlers) ListJobsHandler(c *gin.Context) {
	jobs := []scheduler.JobInfo{}
	if h.jobs != nil {
		jobs = append(jobs, h.jobs.Jobs()...)
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// statusFor maps Hubstaff failures to 502 and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, hubstaff.ErrAuthentication),
		errors.Is(err, hubstaff.ErrUpstream),
		errors.Is(err, hubstaff.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
