package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

const (
	defaultPort            = "8080"
	defaultScheduleBaseURL = "https://api-web.nhle.com/v1"
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type Config struct {
	env environment

	cloudSQLUnixSocketPath string
	dbUsername             string
	dbPassword             string
	sqlitePath             string

	sentryDSN          string
	googleCloudProject string

	port            string
	scheduleBaseURL string
}

func (c *Config) CloudSQLUnixSocketPath() string {
	return c.cloudSQLUnixSocketPath
}

func (c *Config) DBUsername() string {
	return c.dbUsername
}

func (c *Config) DBPassword() string {
	return c.dbPassword
}

// SQLitePath is the path of the local game log database, empty when postgres is used
func (c *Config) SQLitePath() string {
	return c.sqlitePath
}

func (c *Config) UseSQLite() bool {
	return c.sqlitePath != ""
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

// GoogleCloudProject enables trace correlated logging when set
func (c *Config) GoogleCloudProject() string {
	return c.googleCloudProject
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) ScheduleBaseURL() string {
	return c.scheduleBaseURL
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	source := "postgres"
	if c.UseSQLite() {
		source = "sqlite"
	}
	return fmt.Sprintf("Config{env: %s, source: %s, port: %s, ...}", string(c.env), source, c.port)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	rawEnv, ok := os.LookupEnv("STREAKS_ENVIRONMENT")
	if !ok {
		return missingKey("STREAKS_ENVIRONMENT")
	}
	var env environment
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: STREAKS_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}

	conf := Config{
		env:                    env,
		cloudSQLUnixSocketPath: os.Getenv("CLOUDSQL_UNIX_SOCKET"),
		dbUsername:             os.Getenv("DB_USERNAME"),
		dbPassword:             os.Getenv("DB_PASSWORD"),
		sqlitePath:             os.Getenv("SQLITE_PATH"),
		sentryDSN:              os.Getenv("SENTRY_DSN"),
		googleCloudProject:     os.Getenv("GOOGLE_CLOUD_PROJECT"),
		port:                   os.Getenv("PORT"),
		scheduleBaseURL:        os.Getenv("SCHEDULE_BASE_URL"),
	}

	if conf.port == "" {
		conf.port = defaultPort
	}
	if port, err := strconv.Atoi(conf.port); err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("%w: PORT (%s)", ErrInvalidValue, conf.port)
	}

	if conf.scheduleBaseURL == "" {
		conf.scheduleBaseURL = defaultScheduleBaseURL
	}

	if env == production || env == staging {
		if !conf.UseSQLite() {
			if conf.cloudSQLUnixSocketPath == "" {
				return missingKey("CLOUDSQL_UNIX_SOCKET")
			}
			if conf.dbUsername == "" {
				return missingKey("DB_USERNAME")
			}
			if conf.dbPassword == "" {
				return missingKey("DB_PASSWORD")
			}
		}
		if conf.sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return conf, nil
}
