package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q", c.AppPort)
	}
	if c.BlobBaseURL != "/uploads" {
		t.Fatalf("BlobBaseURL = %q", c.BlobBaseURL)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs = %d", c.IdempTTLSecs)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")

	c := Load()
	if c.MySQLHost != "db.internal" || c.RedisDB != 3 || c.IdempTTLSecs != 60 {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing db name", func(c *Config) { c.MySQLDB = "" }},
		{"bad port", func(c *Config) { c.MySQLPort = "not-a-port" }},
		{"missing app port", func(c *Config) { c.AppPort = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Load()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{
		MySQLHost: "db", MySQLPort: "3306", MySQLDB: "supplytrack",
		MySQLUser: "app", MySQLPass: "secret",
	}
	dsn := c.MySQLDSN()
	if !strings.HasPrefix(dsn, "app:secret@tcp(db:3306)/supplytrack?") {
		t.Fatalf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn must enable parseTime: %q", dsn)
	}
}

func TestNotifyConfigured(t *testing.T) {
	c := &Config{NotifyServiceID: "svc", NotifyTemplateID: "tpl", NotifyUserID: "usr"}
	if !c.NotifyConfigured() {
		t.Fatal("all three ids set, want configured")
	}
	c.NotifyUserID = ""
	if c.NotifyConfigured() {
		t.Fatal("partial credentials must read as unconfigured")
	}
}
