package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
	"github.com/Tiliavir/hubstaff-activity-report/internal/hubstaff"
	"github.com/Tiliavir/hubstaff-activity-report/internal/notify"
	"github.com/Tiliavir/hubstaff-activity-report/internal/report"
	"github.com/Tiliavir/hubstaff-activity-report/internal/storage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hsr",
	Short: "Hubstaff daily activity reports",
	Long: `hsr fetches yesterday's tracked time from Hubstaff every day, groups it
by user and project, writes it as an HTML report and emails it.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(orgsCmd)
	rootCmd.AddCommand(jobsCmd)
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

// newReportJob wires the report pipeline from cfg. Email is only set up
// when withEmail is true and recipients are configured.
func newReportJob(cfg config.Config, logger *log.Logger, withEmail bool) *report.Job {
	job := &report.Job{
		NewSource: func() report.Source {
			return hubstaff.NewClient(cfg.Hubstaff, hubstaff.WithLogger(logger))
		},
		Writer: storage.NewWriter(cfg.Reports.OutputDir),
		OrgID:  cfg.Hubstaff.OrganizationID,
		Logger: logger,
	}
	if withEmail && len(cfg.Reports.Recipients) > 0 {
		job.Recipients = cfg.Reports.Recipients
		job.Mailer = notify.NewMailer(cfg.Email, logger)
	}
	return job
}
