package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "LOG_LEVEL", "DB_DRIVER", "DB_DSN", "DB_AUTO_MIGRATE", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS"} {
		t.Setenv(k, "")
	}
	c := Load()

	if c.AppPort != "8080" || c.LogLevel != "info" || c.DBDriver != "mysql" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.IdempTTLSecs != 300 || c.DBAutoMigrate || c.RedisDB != 0 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/engine.db")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")

	c := Load()
	if c.DBDriver != "sqlite" || !c.DBAutoMigrate || c.RedisDB != 3 || c.IdempTTLSecs != 60 {
		t.Fatalf("env not applied: %+v", c)
	}
	if got := c.DSN(); got != "/tmp/engine.db" {
		t.Fatalf("DSN() = %q", got)
	}
}

func TestDSN(t *testing.T) {
	c := &Config{DBDriver: "mysql", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "loans", MySQLUser: "u", MySQLPass: "p"}
	dsn := c.DSN()
	if !strings.HasPrefix(dsn, "u:p@tcp(db:3306)/loans?") || !strings.Contains(dsn, "parseTime=true") || !strings.Contains(dsn, "loc=UTC") {
		t.Fatalf("unexpected mysql dsn %q", dsn)
	}

	c.DBDSN = "postgres://u:p@db/loans"
	if c.DSN() != c.DBDSN {
		t.Fatalf("explicit DB_DSN must win, got %q", c.DSN())
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{AppPort: "8080", IdempTTLSecs: 300, DBDriver: "mysql", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "loans", MySQLUser: "u"}
	}

	cases := []struct {
		name    string
		mod     func(c *Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"no port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"bad ttl", func(c *Config) { c.IdempTTLSecs = 0 }, "IDEMPOTENCY_TTL_SECONDS"},
		{"bad mysql port", func(c *Config) { c.MySQLPort = "not-a-port" }, "MYSQL_PORT"},
		{"missing mysql host", func(c *Config) { c.MySQLHost = "" }, "MySQL config"},
		{"postgres without dsn", func(c *Config) { c.DBDriver = "postgres" }, "DB_DSN"},
		{"postgres with dsn", func(c *Config) { c.DBDriver = "postgres"; c.DBDSN = "host=db" }, ""},
		{"sqlite without path", func(c *Config) { c.DBDriver = "sqlite" }, "SQLITE_PATH"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "unsupported DB_DRIVER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mod(c)
			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want err containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
