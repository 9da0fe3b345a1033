package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	BlobDir     string
	BlobBaseURL string

	NotifyEndpoint   string
	NotifyServiceID  string
	NotifyTemplateID string
	NotifyUserID     string

	IdempTTLSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "supplytrack"),
		MySQLUser: getenv("MYSQL_USER", "supplytrack"),
		MySQLPass: getenv("MYSQL_PASS", "supplytrack"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),

		BlobDir:     getenv("BLOB_DIR", "data/uploads"),
		BlobBaseURL: getenv("BLOB_BASE_URL", "/uploads"),

		NotifyEndpoint:   getenv("NOTIFY_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		NotifyServiceID:  os.Getenv("NOTIFY_SERVICE_ID"),
		NotifyTemplateID: os.Getenv("NOTIFY_TEMPLATE_ID"),
		NotifyUserID:     os.Getenv("NOTIFY_USER_ID"),

		IdempTTLSecs: 300,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	return nil
}

// NotifyConfigured reports whether approval emails can be sent at all.
func (c *Config) NotifyConfigured() bool {
	return c.NotifyServiceID != "" && c.NotifyTemplateID != "" && c.NotifyUserID != ""
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
