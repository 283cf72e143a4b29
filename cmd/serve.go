package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/hubstaff-activity-report/internal/api"
	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
	"github.com/Tiliavir/hubstaff-activity-report/internal/report"
	"github.com/Tiliavir/hubstaff-activity-report/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daily report schedule and the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger()
	gin.SetMode(gin.ReleaseMode)

	job := newReportJob(cfg, logger, true)
	if len(cfg.Reports.Recipients) == 0 {
		logger.Printf("No recipients configured, reports will only be written to %s", cfg.Reports.OutputDir)
	}

	sched := scheduler.New(scheduler.WithLogger(logger))
	run := report.Guard(report.JobID, logger, func() error {
		return job.Run(context.Background())
	})
	if err := sched.Register(report.JobID, report.JobName, cfg.Reports.ReportTime, run); err != nil {
		return err
	}
	sched.Start()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.SetupRoutes(api.NewHandlers(job, sched, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Printf("Shutting down")
	case err = <-serveErr:
		err = fmt.Errorf("server failed: %w", err)
	}

	ctxTimeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(ctxTimeout); shutdownErr != nil {
		logger.Printf("WARNING: graceful shutdown failed: %v", shutdownErr)
	}
	select {
	case <-sched.Shutdown().Done():
	case <-ctxTimeout.Done():
		logger.Printf("WARNING: report job still running at exit")
	}
	return err
}
