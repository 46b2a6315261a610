package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// PostgresURL returns the connection URL built from the postgres_*
// settings. Both pgxpool and golang-migrate accept this form, so it is
// the single connection string used everywhere. Credentials are
// percent-encoded, so passwords may contain any characters.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresHost, strconv.Itoa(c.PostgresPort)),
		Path:     "/" + c.PostgresDBName,
		RawQuery: url.Values{"sslmode": {c.PostgresSSLMode}}.Encode(),
	}
	return u.String()
}

// parseDatabaseURL applies a DATABASE_URL environment override on top of
// the postgres_* settings. Cloud platforms hand out a single URL, so it
// wins over the individual keys. Components absent from the URL leave
// the corresponding setting untouched.
func (c *Config) parseDatabaseURL() error {
	raw := os.Getenv("DATABASE_URL")
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres or postgresql, got %q", u.Scheme)
	}

	setIfPresent := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setIfPresent(&c.PostgresHost, u.Hostname())
	setIfPresent(&c.PostgresDBName, strings.TrimPrefix(u.Path, "/"))
	setIfPresent(&c.PostgresSSLMode, u.Query().Get("sslmode"))
	if u.User != nil {
		setIfPresent(&c.PostgresUser, u.User.Username())
		if password, ok := u.User.Password(); ok {
			c.PostgresPassword = password
		}
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid port in DATABASE_URL: %w", err)
		}
		c.PostgresPort = port
	}

	return nil
}
