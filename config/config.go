package config

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vortex-fintech/go-redisreg/validator"
)

// Serializer selects the value-serialization mode of a connection. The
// underlying Go driver carries no client-side codec, so the resolved mode is
// surfaced as handle metadata for callers that encode values themselves.
type Serializer = string

const (
	SerializerNone     Serializer = "none"
	SerializerNative   Serializer = "native"
	SerializerIgbinary Serializer = "igbinary"
)

const DefaultPort = 6379

var (
	errNoConnections      = errors.New("config: at least one connection is required")
	errConnectionName     = errors.New("config: connection name must not be empty")
	errClusterNeedsNodes  = errors.New("config: cluster mode requires at least one connection")
	errNegativeTimeout    = errors.New("config: timeout must be >= 0")
	errNegativeOptTimeout = errors.New("config: options timeout must be >= 0")
)

// Connection describes one named logical connection. Immutable once loaded.
type Connection struct {
	Host       string        `env:"HOST" validate:"required"`
	Port       int           `env:"PORT" validate:"gte=0,lte=65535"`
	Username   string        `env:"USERNAME"`
	Password   string        `env:"PASSWORD"`
	Prefix     string        `env:"PREFIX"`
	Database   int           `env:"DATABASE" validate:"gte=0"`
	Timeout    time.Duration `env:"TIMEOUT"`
	Persistent bool          `env:"PERSISTENT"`
	TLSEnabled bool          `env:"TLS"`
	Serializer Serializer    `env:"SERIALIZER" validate:"omitempty,oneof=none native igbinary"`
}

// Options apply to the cluster aggregate handle.
type Options struct {
	Timeout    time.Duration
	Persistent bool
}

// Registry is the full configuration surface: optional cluster flag, cluster
// options and one entry per named connection.
type Registry struct {
	Cluster     bool
	Options     Options
	Connections map[string]Connection
}

// Normalized returns a copy with defaults applied.
func (c Connection) Normalized() Connection {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if strings.TrimSpace(c.Serializer) == "" {
		c.Serializer = SerializerNone
	}
	c.Host = strings.TrimSpace(c.Host)
	return c
}

// Addr returns the host:port dial address.
func (c Connection) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Map renders the connection for diagnostics. Pass the result through
// logutil.RedactConfig before logging.
func (c Connection) Map() map[string]any {
	return map[string]any{
		"host":       c.Host,
		"port":       c.Port,
		"username":   c.Username,
		"password":   c.Password,
		"prefix":     c.Prefix,
		"database":   c.Database,
		"timeout":    c.Timeout.String(),
		"persistent": c.Persistent,
		"tls":        c.TLSEnabled,
		"serializer": c.Serializer,
	}
}

func (c Connection) validate() error {
	if c.Timeout < 0 {
		return errNegativeTimeout
	}
	if fields := validator.Validate(c.Normalized()); fields != nil {
		parts := make([]string, 0, len(fields))
		for _, f := range sortedKeys(fields) {
			parts = append(parts, f+"="+fields[f])
		}
		return fmt.Errorf("config: invalid connection: %s", strings.Join(parts, ", "))
	}
	return nil
}

// Validate checks the whole registry configuration. Cross-entry rules are
// hand-rolled; per-field rules run through the validator tags.
func (r Registry) Validate() error {
	if len(r.Connections) == 0 {
		if r.Cluster {
			return errClusterNeedsNodes
		}
		return errNoConnections
	}
	if r.Options.Timeout < 0 {
		return errNegativeOptTimeout
	}
	for name, c := range r.Connections {
		if strings.TrimSpace(name) == "" {
			return errConnectionName
		}
		if err := c.validate(); err != nil {
			return fmt.Errorf("%w (connection %q)", err, name)
		}
	}
	return nil
}

// Names returns the configured connection names in deterministic order.
// Go maps are unordered; the sorted order stands in for "configured order"
// everywhere reproducibility matters (cluster seed lists in particular).
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.Connections))
	for name := range r.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
