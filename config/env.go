package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

type envSpec struct {
	Cluster           bool          `env:"CLUSTER"`
	ClusterAddrs      []string      `env:"CLUSTER_ADDRS" envSeparator:","`
	OptionsTimeout    time.Duration `env:"OPTIONS_TIMEOUT"`
	OptionsPersistent bool          `env:"OPTIONS_PERSISTENT"`
	Default           Connection    `envPrefix:""`
}

// FromEnv loads the registry configuration from REDIS_* environment
// variables. Without REDIS_CLUSTER the result holds a single "default"
// connection; with it, REDIS_CLUSTER_ADDRS (comma-separated host:port)
// become the seed connections, zero-padded node names keeping the declared
// order under the sorted-name rule. Credentials and tuning knobs from the
// flat REDIS_* variables apply to every seed.
func FromEnv() (Registry, error) {
	var s envSpec
	if err := env.ParseWithOptions(&s, env.Options{Prefix: "REDIS_"}); err != nil {
		return Registry{}, fmt.Errorf("config: parse env: %w", err)
	}

	out := Registry{
		Cluster: s.Cluster,
		Options: Options{
			Timeout:    s.OptionsTimeout,
			Persistent: s.OptionsPersistent,
		},
		Connections: map[string]Connection{},
	}

	if !s.Cluster || len(s.ClusterAddrs) == 0 {
		def := s.Default
		if def.Host == "" {
			def.Host = "127.0.0.1"
		}
		out.Connections["default"] = def.Normalized()
		if err := out.Validate(); err != nil {
			return Registry{}, err
		}
		return out, nil
	}

	for i, addr := range s.ClusterAddrs {
		host, portStr, err := net.SplitHostPort(addr)
		if err != nil {
			return Registry{}, fmt.Errorf("config: cluster addr %q: %w", addr, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Registry{}, fmt.Errorf("config: cluster addr %q: %w", addr, err)
		}
		node := s.Default
		node.Host = host
		node.Port = port
		out.Connections[fmt.Sprintf("node%02d", i)] = node.Normalized()
	}

	if err := out.Validate(); err != nil {
		return Registry{}, err
	}
	return out, nil
}
