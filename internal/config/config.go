package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

// Config is the root configuration, read once at start-up from a YAML file
// and overlaid with environment variables.
type Config struct {
	Hubstaff HubstaffConfig `yaml:"hubstaff"`
	Reports  ReportConfig   `yaml:"reports"`
	Email    EmailConfig    `yaml:"email"`
	Server   ServerConfig   `yaml:"server"`
}

// HubstaffConfig holds the API endpoint and login of the reporting account.
type HubstaffConfig struct {
	APIURL         string `yaml:"api_url"`
	AppToken       string `yaml:"app_token"`
	OrganizationID int64  `yaml:"organization_id"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
}

// ReportConfig controls where and when the daily report is produced.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
	// ReportTime is the daily trigger in HH:MM, local time.
	ReportTime string   `yaml:"report_time"`
	Recipients []string `yaml:"recipients"`
}

// EmailConfig holds SendGrid settings. Only needed when recipients are set.
type EmailConfig struct {
	APIKey      string `yaml:"api_key"`
	FromAddress string `yaml:"from_address"`
	FromName    string `yaml:"from_name"`
}

// ServerConfig is the listen address of the on-demand HTTP surface.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

const (
	// DefaultPath is the config file looked up when --config is not given.
	DefaultPath = "config.yaml"

	DefaultAPIURL     = "https://api.hubstaff.com/v1"
	DefaultOutputDir  = "reports"
	DefaultReportTime = "06:00"
	DefaultHost       = "0.0.0.0"
	DefaultPort       = "8000"
	DefaultFromName   = "Hubstaff Reports"
)

// defaultConfig returns a Config pre-filled with the built-in defaults.
func defaultConfig() Config {
	return Config{
		Hubstaff: HubstaffConfig{APIURL: DefaultAPIURL},
		Reports: ReportConfig{
			OutputDir:  DefaultOutputDir,
			ReportTime: DefaultReportTime,
		},
		Email:  EmailConfig{FromName: DefaultFromName},
		Server: ServerConfig{Host: DefaultHost, Port: DefaultPort},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# hsr configuration
#
# Every value can also be set from the environment (or a .env file next to
# the binary), e.g. HUBSTAFF_PASSWORD or REPORTS_RECIPIENTS=a@x.io,b@x.io.
hubstaff:
  api_url: https://api.hubstaff.com/v1
  # Application token issued by Hubstaff, sent as the AppToken header.
  app_token: ""
  organization_id: 0
  username: ""
  password: ""

reports:
  # Daily HTML files are written here as daily_activity_YYYY-MM-DD.html.
  output_dir: reports
  # Local time of day (HH:MM, 24h) at which yesterday's report is built.
  report_time: "06:00"
  # Leave empty to skip email delivery.
  recipients: []

email:
  api_key: ""
  from_address: ""
  from_name: Hubstaff Reports

server:
  host: 0.0.0.0
  port: "8000"
`

// Load reads the YAML file at path, creating it with annotated defaults on
// first run, then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration (%s): %w", path, err)
	}
	return cfg, nil
}

// Read is Load without validation.
func Read(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}

	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	fillDefaults(&cfg)
	return cfg, nil
}

// applyEnv overrides file values with non-empty environment variables.
func applyEnv(cfg *Config) error {
	cfg.Hubstaff.APIURL = getEnv("HUBSTAFF_API_URL", cfg.Hubstaff.APIURL)
	cfg.Hubstaff.AppToken = getEnv("HUBSTAFF_APP_TOKEN", cfg.Hubstaff.AppToken)
	cfg.Hubstaff.Username = getEnv("HUBSTAFF_USERNAME", cfg.Hubstaff.Username)
	cfg.Hubstaff.Password = getEnv("HUBSTAFF_PASSWORD", cfg.Hubstaff.Password)
	if value := os.Getenv("HUBSTAFF_ORGANIZATION_ID"); value != "" {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("HUBSTAFF_ORGANIZATION_ID: %w", err)
		}
		cfg.Hubstaff.OrganizationID = id
	}

	cfg.Reports.OutputDir = getEnv("REPORTS_OUTPUT_DIR", cfg.Reports.OutputDir)
	cfg.Reports.ReportTime = getEnv("REPORTS_REPORT_TIME", cfg.Reports.ReportTime)
	if value := os.Getenv("REPORTS_RECIPIENTS"); value != "" {
		cfg.Reports.Recipients = parseCSV(value)
	}

	cfg.Email.APIKey = getEnv("SENDGRID_API_KEY", cfg.Email.APIKey)
	cfg.Email.FromAddress = getEnv("SENDGRID_FROM_EMAIL", cfg.Email.FromAddress)

	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	return nil
}

// fillDefaults replaces zero values a partial file may leave behind.
func fillDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Hubstaff.APIURL == "" {
		cfg.Hubstaff.APIURL = def.Hubstaff.APIURL
	}
	if cfg.Reports.OutputDir == "" {
		cfg.Reports.OutputDir = def.Reports.OutputDir
	}
	if cfg.Reports.ReportTime == "" {
		cfg.Reports.ReportTime = def.Reports.ReportTime
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = def.Email.FromName
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = def.Server.Port
	}
}

// Validate checks that the values required to fetch and deliver a report
// are present.
func (c Config) Validate() error {
	errs := c.Hubstaff.loginErrors()
	if c.Hubstaff.OrganizationID <= 0 {
		errs = append(errs, errors.New("hubstaff.organization_id is required"))
	}
	if _, _, err := timecalc.ParseClock(c.Reports.ReportTime); err != nil {
		errs = append(errs, fmt.Errorf("reports.report_time %q is not HH:MM", c.Reports.ReportTime))
	}
	if len(c.Reports.Recipients) > 0 {
		if c.Email.APIKey == "" {
			errs = append(errs, errors.New("email.api_key is required when reports.recipients is set"))
		}
		if c.Email.FromAddress == "" {
			errs = append(errs, errors.New("email.from_address is required when reports.recipients is set"))
		}
	}
	return errors.Join(errs...)
}

// ValidateLogin checks only what is needed to sign in, which is enough to
// list organizations before an organization id is known.
func (h HubstaffConfig) ValidateLogin() error {
	return errors.Join(h.loginErrors()...)
}

func (h HubstaffConfig) loginErrors() []error {
	var errs []error
	if h.AppToken == "" {
		errs = append(errs, errors.New("hubstaff.app_token is required"))
	}
	if h.Username == "" || h.Password == "" {
		errs = append(errs, errors.New("hubstaff.username and hubstaff.password are required"))
	}
	return errs
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
