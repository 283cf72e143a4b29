package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

var (
	reportDate    string
	reportNoEmail bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the daily report once, outside the schedule",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Report date (YYYY-MM-DD); defaults to yesterday")
	reportCmd.Flags().BoolVar(&reportNoEmail, "no-email", false, "Only write the file, do not email it")
}

func runReport(cmd *cobra.Command, args []string) error {
	day, err := parseReportDate(reportDate, time.Now())
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	job := newReportJob(cfg, newLogger(), !reportNoEmail)
	path, err := job.RunFor(cmd.Context(), day)
	if path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report for %s written to %s\n", timecalc.FormatDate(day), path)
	}
	return err
}

// parseReportDate returns the day named by value, or the day before now
// when value is empty.
func parseReportDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return timecalc.Yesterday(now), nil
	}
	d, err := timecalc.ParseDate(value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date value %q: %w", value, err)
	}
	return d, nil
}
