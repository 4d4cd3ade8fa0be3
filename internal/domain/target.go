package domain

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Target is the database instance under test. It is set once through the
// configure step and read-only to every test function afterwards.
type Target struct {
	Host     string `yaml:"host" json:"host"`
	Port     uint16 `yaml:"port" json:"port"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

// String returns the host:port representation.
func (t Target) String() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(int(t.Port)))
}

// Validate checks that the target is well formed enough to probe.
func (t Target) Validate() error {
	if strings.TrimSpace(t.Host) == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidTarget)
	}
	if t.Port == 0 {
		return fmt.Errorf("%w: port must be a positive integer", ErrInvalidTarget)
	}
	return nil
}
