//go:build unit
// +build unit

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vortex-fintech/go-redisreg/config"
)

func TestConnection_NormalizedDefaults(t *testing.T) {
	c := config.Connection{Host: " 10.0.0.1 "}.Normalized()
	assert.Equal(t, "10.0.0.1", c.Host)
	assert.Equal(t, config.DefaultPort, c.Port)
	assert.Equal(t, config.SerializerNone, c.Serializer)
	assert.Equal(t, 0, c.Database)
	assert.Equal(t, time.Duration(0), c.Timeout)
}

func TestConnection_Addr(t *testing.T) {
	c := config.Connection{Host: "10.0.0.1", Port: 6380}
	assert.Equal(t, "10.0.0.1:6380", c.Addr())
}

func TestRegistry_Validate(t *testing.T) {
	valid := config.Registry{
		Connections: map[string]config.Connection{
			"default": {Host: "127.0.0.1", Port: 6379},
		},
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name string
		cfg  config.Registry
	}{
		{"no connections", config.Registry{}},
		{"cluster without nodes", config.Registry{Cluster: true}},
		{"empty name", config.Registry{Connections: map[string]config.Connection{
			" ": {Host: "127.0.0.1"},
		}}},
		{"missing host", config.Registry{Connections: map[string]config.Connection{
			"default": {},
		}}},
		{"negative database", config.Registry{Connections: map[string]config.Connection{
			"default": {Host: "127.0.0.1", Database: -1},
		}}},
		{"negative timeout", config.Registry{Connections: map[string]config.Connection{
			"default": {Host: "127.0.0.1", Timeout: -time.Second},
		}}},
		{"bad serializer", config.Registry{Connections: map[string]config.Connection{
			"default": {Host: "127.0.0.1", Serializer: "json"},
		}}},
		{"port out of range", config.Registry{Connections: map[string]config.Connection{
			"default": {Host: "127.0.0.1", Port: 70000},
		}}},
		{"negative options timeout", config.Registry{
			Options: config.Options{Timeout: -time.Second},
			Connections: map[string]config.Connection{
				"default": {Host: "127.0.0.1"},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := config.Registry{Connections: map[string]config.Connection{
		"sessions": {Host: "a"},
		"cache":    {Host: "b"},
		"default":  {Host: "c"},
	}}
	assert.Equal(t, []string{"cache", "default", "sessions"}, r.Names())
}

func TestConnection_MapCarriesEverything(t *testing.T) {
	c := config.Connection{
		Host: "10.0.0.1", Port: 6379, Password: "x", Prefix: "app:",
		Database: 2, Timeout: 1500 * time.Millisecond, Persistent: true,
		Serializer: config.SerializerNative,
	}
	m := c.Map()
	assert.Equal(t, "10.0.0.1", m["host"])
	assert.Equal(t, "x", m["password"])
	assert.Equal(t, "1.5s", m["timeout"])
	assert.Equal(t, true, m["persistent"])
	assert.Equal(t, "native", m["serializer"])
}
