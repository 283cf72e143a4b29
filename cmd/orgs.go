package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
	"github.com/Tiliavir/hubstaff-activity-report/internal/hubstaff"
	"github.com/Tiliavir/hubstaff-activity-report/internal/model"
)

var (
	orgsPageStart int64
	orgsPageLimit int
	orgsFormat    string
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List the Hubstaff organizations visible to the configured account",
	Args:  cobra.NoArgs,
	RunE:  runOrgs,
}

func init() {
	orgsCmd.Flags().Int64Var(&orgsPageStart, "page-start", 0, "First organization id of the page")
	orgsCmd.Flags().IntVar(&orgsPageLimit, "page-limit", model.DefaultPageLimit, "Page size")
	orgsCmd.Flags().StringVar(&orgsFormat, "format", "table", "Output format: table, csv, json")
}

func runOrgs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Hubstaff.ValidateLogin(); err != nil {
		return fmt.Errorf("invalid configuration (%s): %w", configPath, err)
	}

	client := hubstaff.NewClient(cfg.Hubstaff, hubstaff.WithLogger(newLogger()))
	orgs, err := client.Organizations(cmd.Context(), model.Pagination{
		PageStartID: orgsPageStart,
		PageLimit:   orgsPageLimit,
	})
	if err != nil {
		return err
	}
	return printOrganizations(cmd.OutOrStdout(), orgs, orgsFormat)
}

func printOrganizations(w io.Writer, orgs []model.Organization, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(orgs, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "csv":
		fmt.Fprintln(w, "id,name,status")
		for _, o := range orgs {
			fmt.Fprintf(w, "%d,%s,%s\n", o.ID, csvEscape(o.Name), csvEscape(o.Status))
		}
	case "table":
		if len(orgs) == 0 {
			fmt.Fprintln(w, "No organizations.")
			return nil
		}
		fmt.Fprintf(w, "%-10s  %-8s  %s\n", "ID", "STATUS", "NAME")
		for _, o := range orgs {
			fmt.Fprintf(w, "%-10d  %-8s  %s\n", o.ID, o.Status, o.Name)
		}
	default:
		return fmt.Errorf("unknown format %q (want table, csv or json)", format)
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
