package registry_test

import (
	"testing"
	"time"

	"github.com/vortex-fintech/go-redisreg/config"
	"github.com/vortex-fintech/go-redisreg/registry"
)

func TestClusterSeed(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Connection
		want string
	}{
		{
			"database and auth",
			config.Connection{Host: "10.0.0.1", Port: 6379, Database: 2, Password: "x"},
			"10.0.0.1:6379?database=2&auth=x",
		},
		{
			"bare address",
			config.Connection{Host: "10.0.0.1", Port: 6379},
			"10.0.0.1:6379",
		},
		{
			"default port applied",
			config.Connection{Host: "10.0.0.1"},
			"10.0.0.1:6379",
		},
		{
			"all parameters in fixed order",
			config.Connection{
				Host: "10.0.0.1", Port: 7000, Database: 1,
				Timeout: 2500 * time.Millisecond, Prefix: "app:", Password: "x",
			},
			"10.0.0.1:7000?database=1&timeout=2.5&prefix=app:&auth=x",
		},
		{
			"whole-second timeout has no trailing zeros",
			config.Connection{Host: "10.0.0.1", Port: 7000, Timeout: 2 * time.Second},
			"10.0.0.1:7000?timeout=2",
		},
		{
			"zero fields omitted not emitted empty",
			config.Connection{Host: "10.0.0.1", Port: 7000, Database: 0, Prefix: ""},
			"10.0.0.1:7000",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := registry.ClusterSeed(tc.cfg); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestRedactSeed(t *testing.T) {
	in := "10.0.0.1:6379?database=2&auth=s3cret&prefix=app:"
	want := "10.0.0.1:6379?database=2&auth=[REDACTED]&prefix=app:"
	if got := registry.RedactSeed(in); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := registry.RedactSeed("10.0.0.1:6379"); got != "10.0.0.1:6379" {
		t.Fatalf("seed without auth must pass through, got %q", got)
	}
}
