// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

// DSN builds the postgres connection string. Timestamps are stored in
// UTC regardless of the server's locale.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// RedactedDSN is safe for startup logs.
func (d *DatabaseConfig) RedactedDSN() string {
	return strings.Replace(d.DSN(), "password="+d.Password, "password=***", 1)
}
