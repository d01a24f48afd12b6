//go:build unit
// +build unit

package service_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortex-fintech/go-redisreg/config"
	"github.com/vortex-fintech/go-redisreg/service"
)

func testConfig() config.Registry {
	return config.Registry{
		Connections: map[string]config.Connection{
			"default": {Host: "127.0.0.1", Port: 6379},
		},
	}
}

func TestProvider_LazySingleInstance(t *testing.T) {
	loads := 0
	p := service.NewProvider(service.WithLoader(func() (config.Registry, error) {
		loads++
		return testConfig(), nil
	}))

	assert.Equal(t, 0, loads, "construction must be lazy")

	r1, err := p.Get()
	require.NoError(t, err)
	r2, err := p.Get()
	require.NoError(t, err)
	assert.Same(t, r1, r2)
	assert.Equal(t, 1, loads, "config must be loaded once")
}

func TestProvider_ConcurrentGet(t *testing.T) {
	p := service.NewProvider(service.WithConfig(testConfig()))

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := p.Get()
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestProvider_StickyError(t *testing.T) {
	fail := errors.New("config unavailable")
	loads := 0
	p := service.NewProvider(service.WithLoader(func() (config.Registry, error) {
		loads++
		return config.Registry{}, fail
	}))

	_, err := p.Get()
	assert.ErrorIs(t, err, fail)
	_, err = p.Get()
	assert.ErrorIs(t, err, fail)
	assert.Equal(t, 1, loads)
}

func TestProvider_InvalidConfig(t *testing.T) {
	p := service.NewProvider(service.WithConfig(config.Registry{}))
	_, err := p.Get()
	assert.Error(t, err)
}

func TestProvider_CloseBeforeGet(t *testing.T) {
	p := service.NewProvider(service.WithConfig(testConfig()))
	assert.NoError(t, p.Close())
}

func TestName(t *testing.T) {
	assert.Equal(t, "redis", service.Name)
}
