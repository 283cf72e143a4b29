package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
)

var envKeys = []string{
	"HUBSTAFF_API_URL", "HUBSTAFF_APP_TOKEN", "HUBSTAFF_ORGANIZATION_ID",
	"HUBSTAFF_USERNAME", "HUBSTAFF_PASSWORD", "REPORTS_OUTPUT_DIR",
	"REPORTS_REPORT_TIME", "REPORTS_RECIPIENTS", "SENDGRID_API_KEY",
	"SENDGRID_FROM_EMAIL", "SERVER_HOST", "SERVER_PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

const validYAML = `hubstaff:
  app_token: app-123
  organization_id: 42
  username: reporter@example.com
  password: secret
reports:
  output_dir: /tmp/out
  report_time: "07:15"
  recipients:
    - boss@example.com
email:
  api_key: SG.key
  from_address: noreply@example.com
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(writeFile(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hubstaff.APIURL != config.DefaultAPIURL {
		t.Errorf("APIURL = %q, want default %q", cfg.Hubstaff.APIURL, config.DefaultAPIURL)
	}
	if cfg.Hubstaff.OrganizationID != 42 {
		t.Errorf("OrganizationID = %d, want 42", cfg.Hubstaff.OrganizationID)
	}
	if cfg.Reports.ReportTime != "07:15" {
		t.Errorf("ReportTime = %q, want %q", cfg.Reports.ReportTime, "07:15")
	}
	if len(cfg.Reports.Recipients) != 1 || cfg.Reports.Recipients[0] != "boss@example.com" {
		t.Errorf("Recipients = %v, want [boss@example.com]", cfg.Reports.Recipients)
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr(), "0.0.0.0:8000")
	}
	if cfg.Email.FromName != config.DefaultFromName {
		t.Errorf("FromName = %q, want %q", cfg.Email.FromName, config.DefaultFromName)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HUBSTAFF_PASSWORD", "from-env")
	t.Setenv("HUBSTAFF_ORGANIZATION_ID", "7")
	t.Setenv("REPORTS_RECIPIENTS", "a@example.com, b@example.com,")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := config.Load(writeFile(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hubstaff.Password != "from-env" {
		t.Errorf("Password = %q, want %q", cfg.Hubstaff.Password, "from-env")
	}
	if cfg.Hubstaff.OrganizationID != 7 {
		t.Errorf("OrganizationID = %d, want 7", cfg.Hubstaff.OrganizationID)
	}
	want := []string{"a@example.com", "b@example.com"}
	if len(cfg.Reports.Recipients) != len(want) {
		t.Fatalf("Recipients = %v, want %v", cfg.Reports.Recipients, want)
	}
	for i := range want {
		if cfg.Reports.Recipients[i] != want[i] {
			t.Errorf("Recipients[%d] = %q, want %q", i, cfg.Reports.Recipients[i], want[i])
		}
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "9090")
	}
}

func TestLoad_BadOrganizationIDEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HUBSTAFF_ORGANIZATION_ID", "acme")
	if _, err := config.Load(writeFile(t, validYAML)); err == nil {
		t.Fatal("expected error for non numeric organization id")
	}
}

func TestLoad_FirstRunWritesTemplate(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error for empty credentials")
	}
	if !strings.Contains(err.Error(), "hubstaff.app_token") {
		t.Errorf("error %q does not mention hubstaff.app_token", err)
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("template not written: %v", readErr)
	}
	if !strings.Contains(string(data), "report_time") {
		t.Error("template does not document report_time")
	}
}

func TestValidate(t *testing.T) {
	base := config.Config{
		Hubstaff: config.HubstaffConfig{
			AppToken:       "app",
			OrganizationID: 1,
			Username:       "u",
			Password:       "p",
		},
		Reports: config.ReportConfig{ReportTime: "06:00"},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad time", func(c *config.Config) { c.Reports.ReportTime = "25:99" }, "report_time"},
		{"no org", func(c *config.Config) { c.Hubstaff.OrganizationID = 0 }, "organization_id"},
		{"no password", func(c *config.Config) { c.Hubstaff.Password = "" }, "password"},
		{"recipients without key", func(c *config.Config) {
			c.Reports.Recipients = []string{"x@example.com"}
			c.Email.FromAddress = "noreply@example.com"
		}, "email.api_key"},
		{"recipients without sender", func(c *config.Config) {
			c.Reports.Recipients = []string{"x@example.com"}
			c.Email.APIKey = "SG.key"
		}, "email.from_address"},
	}
	for _, tt := range tests {
		cfg := base
		tt.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: Validate = nil, want error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: Validate = %q, want mention of %q", tt.name, err, tt.want)
		}
	}
}

func TestRead_SkipsValidation(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "hubstaff:\n  app_token: app\n  username: u\n  password: p\n")

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load: expected error for missing organization_id")
	}
	cfg, err := config.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := cfg.Hubstaff.ValidateLogin(); err != nil {
		t.Errorf("ValidateLogin = %v, want nil", err)
	}
	if cfg.Reports.OutputDir != config.DefaultOutputDir {
		t.Errorf("OutputDir = %q, want default", cfg.Reports.OutputDir)
	}

	cfg.Hubstaff.Password = ""
	if err := cfg.Hubstaff.ValidateLogin(); err == nil {
		t.Error("ValidateLogin accepted a missing password")
	}
}
