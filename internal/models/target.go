// internal/models/target.go

package models

import (
	"fmt"
	"strings"
)

// Target opisuje cel połączenia wyprowadzony z zapisanego connection stringa.
type Target struct {
	User string
	Host string
	Port uint16
}

// ParseConnectionString rozbija connection string w formacie "user@host".
// Wymagany jest dokładnie jeden znak '@' i niepuste obie strony.
func ParseConnectionString(s string, port uint16) (Target, error) {
	parts := strings.Split(s, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Target{}, fmt.Errorf("invalid connection string %q: expected user@host", s)
	}

	return Target{
		User: parts[0],
		Host: parts[1],
		Port: port,
	}, nil
}

// Addr zwraca adres w formacie host:port dla warstwy transportowej.
func (t Target) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

func (t Target) String() string {
	return fmt.Sprintf("%s@%s:%d", t.User, t.Host, t.Port)
}
