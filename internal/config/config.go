// Package config loads the resolver service configuration from an optional
// YAML file with environment variable overrides and defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultServiceName     = "resolver"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultFetchLimit      = 10
	defaultListLimit       = 50
	defaultMaxListLimit    = 200
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "civicsetu"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultRedditBaseURL   = "https://oauth.reddit.com"
	defaultRedditAuthURL   = "https://www.reddit.com/api/v1/access_token"
	defaultRedditUserAgent = "civicsetu-resolver/1.0"
	defaultRedditTimeout   = 15 * time.Second
	defaultGeocodeBaseURL  = "https://nominatim.openstreetmap.org"
	defaultGeocodeTimeout  = 10 * time.Second
	defaultGeocodeSpacing  = time.Second
	defaultSMTPPort        = 587
	defaultLogLevel        = "info"
)

// Config holds all configuration for the resolver service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Reddit   RedditConfig   `yaml:"reddit"`
	Geocode  GeocodeConfig  `yaml:"geocode"`
	Notify   NotifyConfig   `yaml:"notify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Port         int    `yaml:"port"`
	Debug        bool   `yaml:"debug"`
	FetchLimit   int    `yaml:"fetch_limit"`
	ListLimit    int    `yaml:"list_limit"`
	MaxListLimit int    `yaml:"max_list_limit"`
}

// DatabaseConfig holds Postgres configuration.
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// RedditConfig holds the fetch collaborator configuration.
type RedditConfig struct {
	BaseURL      string        `yaml:"base_url"`
	AuthURL      string        `yaml:"auth_url"`
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
}

// GeocodeConfig holds the geocoding collaborator configuration.
type GeocodeConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// MinSpacing is the minimum delay between consecutive geocode calls,
	// honoring the upstream usage policy (~1 request/second).
	MinSpacing time.Duration `yaml:"min_spacing"`
}

// NotifyConfig holds notification channel configuration.
type NotifyConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromAddress  string `yaml:"from_address"`

	TwilioAccountSID string `yaml:"twilio_account_sid"`
	TwilioAuthToken  string `yaml:"twilio_auth_token"`
	TwilioFromNumber string `yaml:"twilio_from_number"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from the given YAML path (optional: a missing
// file leaves everything to env and defaults), applies environment
// overrides, then fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variables over file values.
func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Service.Name, "SERVICE_NAME")
	overrideInt(&cfg.Service.Port, "RESOLVER_PORT")
	overrideBool(&cfg.Service.Debug, "APP_DEBUG")

	overrideString(&cfg.Database.Host, "POSTGRES_HOST")
	overrideInt(&cfg.Database.Port, "POSTGRES_PORT")
	overrideString(&cfg.Database.User, "POSTGRES_USER")
	overrideString(&cfg.Database.Password, "POSTGRES_PASSWORD")
	overrideString(&cfg.Database.Database, "POSTGRES_DB")
	overrideString(&cfg.Database.SSLMode, "POSTGRES_SSLMODE")

	overrideString(&cfg.Reddit.ClientID, "REDDIT_CLIENT_ID")
	overrideString(&cfg.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET")
	overrideString(&cfg.Reddit.UserAgent, "REDDIT_USER_AGENT")

	overrideString(&cfg.Geocode.BaseURL, "GEOCODE_BASE_URL")

	overrideString(&cfg.Notify.SMTPHost, "SMTP_HOST")
	overrideInt(&cfg.Notify.SMTPPort, "SMTP_PORT")
	overrideString(&cfg.Notify.SMTPUser, "SMTP_USER")
	overrideString(&cfg.Notify.SMTPPassword, "SMTP_PASSWORD")
	overrideString(&cfg.Notify.FromAddress, "SMTP_FROM")
	overrideString(&cfg.Notify.TwilioAccountSID, "TWILIO_ACCOUNT_SID")
	overrideString(&cfg.Notify.TwilioAuthToken, "TWILIO_AUTH_TOKEN")
	overrideString(&cfg.Notify.TwilioFromNumber, "TWILIO_FROM_NUMBER")

	overrideString(&cfg.Logging.Level, "LOG_LEVEL")
}

func overrideString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func overrideInt(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*dst = parsed
		}
	}
}

func overrideBool(dst *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*dst = parsed
		}
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedditDefaults(&cfg.Reddit)
	setGeocodeDefaults(&cfg.Geocode)
	setNotifyDefaults(&cfg.Notify)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.FetchLimit == 0 {
		s.FetchLimit = defaultFetchLimit
	}
	if s.ListLimit == 0 {
		s.ListLimit = defaultListLimit
	}
	if s.MaxListLimit == 0 {
		s.MaxListLimit = defaultMaxListLimit
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setRedditDefaults(r *RedditConfig) {
	if r.BaseURL == "" {
		r.BaseURL = defaultRedditBaseURL
	}
	if r.AuthURL == "" {
		r.AuthURL = defaultRedditAuthURL
	}
	if r.UserAgent == "" {
		r.UserAgent = defaultRedditUserAgent
	}
	if r.Timeout == 0 {
		r.Timeout = defaultRedditTimeout
	}
}

func setGeocodeDefaults(g *GeocodeConfig) {
	if g.BaseURL == "" {
		g.BaseURL = defaultGeocodeBaseURL
	}
	if g.Timeout == 0 {
		g.Timeout = defaultGeocodeTimeout
	}
	if g.MinSpacing == 0 {
		g.MinSpacing = defaultGeocodeSpacing
	}
}

func setNotifyDefaults(n *NotifyConfig) {
	if n.SMTPPort == 0 {
		n.SMTPPort = defaultSMTPPort
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = "json"
	}
}
