package registry

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/vortex-fintech/go-redisreg/config"
	"github.com/vortex-fintech/go-redisreg/logger"
	"github.com/vortex-fintech/go-redisreg/retry"
)

// DefaultName is the logical connection used when the caller passes none.
// With clustering enabled every logical name collapses onto it.
const DefaultName = "default"

// ErrNotConfigured is returned when a requested connection name has no
// configuration entry. Fatal to that call; the handle cache is untouched.
var ErrNotConfigured = errors.New("registry: connection is not configured")

// Test hooks (replaceable in unit tests).
var (
	NewUniversal = func(opt *redis.UniversalOptions) redis.UniversalClient {
		return redis.NewUniversalClient(opt)
	}
	NewCluster = func(opt *redis.ClusterOptions) redis.UniversalClient {
		return redis.NewClusterClient(opt)
	}
)

// Registry maps logical connection names to live client handles. Handles are
// built lazily on first use, cached, and rebuilt only on an explicit
// Reconnect. Cache and lookups are mutex-guarded: the registry is safe for
// concurrent dispatch, including handle replacement mid-flight.
type Registry struct {
	cfg config.Registry
	log logger.Interface

	mu      sync.RWMutex
	handles map[string]*Handle
}

type Option func(*Registry)

func WithLogger(log logger.Interface) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

func New(cfg config.Registry, opts ...Option) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		cfg:     cfg,
		log:     logger.Nop(),
		handles: make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Connection returns the live handle for a logical name, building it on
// first use. With clustering enabled any name resolves to the single
// "default" aggregate handle.
func (r *Registry) Connection(ctx context.Context, name string) (*Handle, error) {
	name = r.resolveName(name)

	r.mu.RLock()
	h := r.handles[name]
	r.mu.RUnlock()
	if h != nil {
		return h, nil
	}
	return r.build(ctx, name, false)
}

// Reconnect drops the cached handle for a logical name and builds a fresh
// one. The replaced handle is closed; in-flight commands on it fail and are
// the dispatcher's problem.
func (r *Registry) Reconnect(ctx context.Context, name string) (*Handle, error) {
	return r.build(ctx, r.resolveName(name), true)
}

// ConfigFor returns the configuration entry behind a logical name, when one
// exists. For cluster registries the per-name entries are the seeds.
func (r *Registry) ConfigFor(name string) (config.Connection, bool) {
	c, ok := r.cfg.Connections[name]
	return c, ok
}

// Names lists the logical names this registry can serve.
func (r *Registry) Names() []string {
	if r.cfg.Cluster {
		return []string{DefaultName}
	}
	return r.cfg.Names()
}

// Wait blocks until the named connection can be established, retrying with
// exponential backoff. Useful at process start when redis may come up later.
func (r *Registry) Wait(ctx context.Context, name string) error {
	return retry.Bootstrap(ctx, func() error {
		_, err := r.Connection(ctx, name)
		if errors.Is(err, ErrNotConfigured) {
			return retry.Permanent(err)
		}
		return err
	})
}

// PingAll pings every configured connection concurrently. Connections are
// built on demand, so this doubles as a warm-up. Suitable as a /health probe.
func (r *Registry) PingAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range r.Names() {
		g.Go(func() error {
			h, err := r.Connection(ctx, name)
			if err != nil {
				return err
			}
			if err := h.Client().Ping(ctx).Err(); err != nil {
				return fmt.Errorf("registry: ping %q: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Close releases every cached handle. The registry stays usable; the next
// Connection call rebuilds.
func (r *Registry) Close() error {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[string]*Handle)
	r.mu.Unlock()

	var errs []error
	for name, h := range handles {
		if err := h.Close(); err != nil {
			errs = append(errs, fmt.Errorf("registry: close %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) resolveName(name string) string {
	if r.cfg.Cluster || name == "" {
		return DefaultName
	}
	return name
}

func (r *Registry) build(ctx context.Context, name string, force bool) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h := r.handles[name]; h != nil && !force {
		return h, nil
	}

	var (
		h   *Handle
		err error
	)
	if r.cfg.Cluster {
		h, err = r.buildCluster(ctx)
	} else {
		cfg, ok := r.cfg.Connections[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotConfigured, name)
		}
		h, err = r.buildSingle(ctx, name, cfg)
	}
	if err != nil {
		return nil, err
	}

	if old := r.handles[name]; old != nil {
		if cerr := old.Close(); cerr != nil {
			r.log.Warnw("closing replaced handle", "conn", name, "error", cerr.Error())
		}
	}
	r.handles[name] = h

	r.log.Debugw("connection established",
		"conn", name,
		"cluster", r.cfg.Cluster,
		"serializer", h.Serializer(),
	)
	return h, nil
}

func (r *Registry) buildSingle(ctx context.Context, name string, cfg config.Connection) (*Handle, error) {
	cfg = cfg.Normalized()

	opt := &redis.UniversalOptions{
		Addrs:        []string{cfg.Addr()},
		DB:           cfg.Database,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}
	if cfg.Persistent {
		// keep one warm connection in the pool across idle periods
		opt.MinIdleConns = 1
	}
	if cfg.TLSEnabled {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := NewUniversal(opt)
	if err := pingOnConstruct(ctx, client, cfg.Timeout); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("registry: connect %q: %w", name, err)
	}

	return &Handle{
		name:       name,
		client:     client,
		prefix:     cfg.Prefix,
		serializer: resolveSerializer(cfg.Serializer),
		meta:       cfg.Map(),
	}, nil
}

func (r *Registry) buildCluster(ctx context.Context) (*Handle, error) {
	names := r.cfg.Names()

	addrs := make([]string, 0, len(names))
	seeds := make([]string, 0, len(names))
	var username, password string
	var tlsEnabled bool
	for i, name := range names {
		cfg := r.cfg.Connections[name].Normalized()
		addrs = append(addrs, cfg.Addr())
		seeds = append(seeds, ClusterSeed(cfg))
		if i == 0 {
			username, password = cfg.Username, cfg.Password
			tlsEnabled = cfg.TLSEnabled
		}
	}

	opt := &redis.ClusterOptions{
		Addrs:        addrs,
		Username:     username,
		Password:     password,
		DialTimeout:  r.cfg.Options.Timeout,
		ReadTimeout:  r.cfg.Options.Timeout,
		WriteTimeout: r.cfg.Options.Timeout,
	}
	if r.cfg.Options.Persistent {
		opt.MinIdleConns = 1
	}
	if tlsEnabled {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := NewCluster(opt)
	if err := pingOnConstruct(ctx, client, r.cfg.Options.Timeout); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("registry: connect cluster: %w", err)
	}

	loggable := make([]string, len(seeds))
	for i, s := range seeds {
		loggable[i] = RedactSeed(s)
	}

	return &Handle{
		name:   DefaultName,
		client: client,
		seeds:  seeds,
		meta: map[string]any{
			"cluster":    true,
			"seeds":      loggable,
			"timeout":    r.cfg.Options.Timeout.String(),
			"persistent": r.cfg.Options.Persistent,
		},
	}, nil
}

func pingOnConstruct(ctx context.Context, client redis.UniversalClient, timeout time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Ping(c).Err()
}
