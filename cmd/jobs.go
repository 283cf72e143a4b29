package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
	"github.com/Tiliavir/hubstaff-activity-report/internal/report"
	"github.com/Tiliavir/hubstaff-activity-report/internal/scheduler"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Show the jobs serve would schedule and when they next run",
	Args:  cobra.NoArgs,
	RunE:  runJobs,
}

func runJobs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sched := scheduler.New(scheduler.WithLogger(newLogger()))
	noop := func() error { return nil }
	if err := sched.Register(report.JobID, report.JobName, cfg.Reports.ReportTime, noop); err != nil {
		return err
	}
	printJobs(cmd.OutOrStdout(), sched.Jobs(), time.Now())
	return nil
}

func printJobs(w io.Writer, jobs []scheduler.JobInfo, now time.Time) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs scheduled.")
		return
	}
	for _, j := range jobs {
		next := "-"
		if j.Next != nil {
			next = fmt.Sprintf("%s (in %s)", j.Next.Format("2006-01-02 15:04 MST"), formatElapsed(int64(j.Next.Sub(now).Seconds())))
		}
		fmt.Fprintf(w, "%s\n  %s\n  daily at %s, next run %s\n", j.ID, j.Name, j.Trigger, next)
	}
}

// formatElapsed formats seconds as a human-readable string like "1h 2m 3s".
func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
