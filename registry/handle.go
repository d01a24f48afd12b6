package registry

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/vortex-fintech/go-redisreg/config"
)

// Handle is one live client connection owned by the Registry: either a
// single-node client or the cluster aggregate. Callers hold it only as long
// as the Registry hands it out; a forced reconnect replaces and closes it.
type Handle struct {
	name       string
	client     redis.UniversalClient
	prefix     string
	serializer config.Serializer
	seeds      []string
	meta       map[string]any
}

func (h *Handle) Name() string { return h.name }

// Client exposes the underlying driver client for callers that need the
// typed command API (pub/sub, pipelines).
func (h *Handle) Client() redis.UniversalClient { return h.client }

// Key applies the configured key prefix. The Go driver has no client-side
// prefix option, so namespacing is explicit at the call site.
func (h *Handle) Key(k string) string { return h.prefix + k }

func (h *Handle) Prefix() string { return h.prefix }

// Serializer reports the resolved serialization mode (igbinary already
// degraded to native when the runtime probe said it is unavailable).
func (h *Handle) Serializer() config.Serializer { return h.serializer }

// Seeds returns the cluster seed strings this handle was built from, in
// their configured order. Empty for single-node handles.
func (h *Handle) Seeds() []string {
	out := make([]string, len(h.seeds))
	copy(out, h.seeds)
	return out
}

// Meta renders the handle's connection configuration for diagnostics.
// Redact before logging.
func (h *Handle) Meta() map[string]any {
	out := make(map[string]any, len(h.meta))
	for k, v := range h.meta {
		out[k] = v
	}
	return out
}

// Do runs one command by name with positional arguments and returns the raw
// reply. No interpretation of command semantics happens here; a nil reply
// surfaces as redis.Nil exactly as the driver reports it.
func (h *Handle) Do(ctx context.Context, cmd string, args ...any) (any, error) {
	dargs := make([]any, 0, len(args)+1)
	dargs = append(dargs, cmd)
	dargs = append(dargs, args...)
	return h.client.Do(ctx, dargs...).Result()
}

func (h *Handle) Close() error { return h.client.Close() }
