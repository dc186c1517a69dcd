package storage

import (
	"net/url"
	"strings"
)

// IsPostgresConnString reports whether the config value selects the
// postgres backend.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a postgres connection string
// carries a password inline. Credentials belong in the OS keyring, the
// environment, or .pgpass, never on the command line where they leak into
// shell history and process listings.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
