// internal/config/database.go
package config

import (
	"net"
	"net/url"
)

// DSN renders the connection string in URL form so credentials with
// reserved characters survive untouched.
func (d *DatabaseConfig) DSN() string {
	return d.dsnURL(d.Password)
}

// Redacted is the DSN with the password masked, safe for log output.
func (d *DatabaseConfig) Redacted() string {
	if d.Password == "" {
		return d.dsnURL("")
	}
	return d.dsnURL("xxxxx")
}

func (d *DatabaseConfig) dsnURL(password string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Database,
	}

	if password != "" {
		u.User = url.UserPassword(d.User, password)
	} else {
		u.User = url.User(d.User)
	}

	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}
