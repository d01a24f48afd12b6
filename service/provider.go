// Package service is the registration surface for hosts that wire
// dependencies by name: one lazily built Registry instance behind a fixed
// service name.
package service

import (
	"sync"

	"github.com/vortex-fintech/go-redisreg/config"
	"github.com/vortex-fintech/go-redisreg/logger"
	"github.com/vortex-fintech/go-redisreg/registry"
)

// Name is the fixed service name hosts register the provider under.
const Name = "redis"

// Loader produces the registry configuration. The default reads REDIS_*
// environment variables.
type Loader func() (config.Registry, error)

// Provider builds one Registry on first Get and hands the same instance to
// every caller afterwards. Construction errors are sticky: a provider that
// failed to build keeps returning the same error.
type Provider struct {
	once sync.Once
	reg  *registry.Registry
	err  error

	load Loader
	log  logger.Interface
}

type Option func(*Provider)

func WithLoader(load Loader) Option {
	return func(p *Provider) {
		if load != nil {
			p.load = load
		}
	}
}

func WithConfig(cfg config.Registry) Option {
	return WithLoader(func() (config.Registry, error) { return cfg, nil })
}

func WithLogger(log logger.Interface) Option {
	return func(p *Provider) {
		if log != nil {
			p.log = log
		}
	}
}

func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		load: config.FromEnv,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns the shared Registry, building it on first call.
func (p *Provider) Get() (*registry.Registry, error) {
	p.once.Do(func() {
		cfg, err := p.load()
		if err != nil {
			p.err = err
			return
		}
		p.reg, p.err = registry.New(cfg, registry.WithLogger(p.log))
	})
	return p.reg, p.err
}

// Close releases the built Registry, if any. Safe before first Get.
func (p *Provider) Close() error {
	if p.reg == nil {
		return nil
	}
	return p.reg.Close()
}
