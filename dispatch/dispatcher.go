package dispatch

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/vortex-fintech/go-redisreg/logger"
	"github.com/vortex-fintech/go-redisreg/logutil"
	"github.com/vortex-fintech/go-redisreg/metrics"
	"github.com/vortex-fintech/go-redisreg/registry"
)

// Dispatcher executes named commands against registry handles and recovers
// from exactly one class of failure: a transient server-side disconnect, by
// forcing a reconnect and retrying once. The connection name travels with
// every call; there is no shared "current connection" state.
type Dispatcher struct {
	reg *registry.Registry
	log logger.Interface
	met *metrics.Dispatch
}

type Option func(*Dispatcher)

func WithLogger(log logger.Interface) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

func WithMetrics(met *metrics.Dispatch) Option {
	return func(d *Dispatcher) { d.met = met }
}

func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg: reg,
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Do runs one command with positional arguments on the named connection and
// returns the raw reply untouched. A nil reply passes through as redis.Nil
// for the caller to inspect. At most two underlying attempts happen: the
// second only after a transient disconnect and a successful forced
// reconnect. Configuration errors surface as-is and are never retried.
func (d *Dispatcher) Do(ctx context.Context, conn, cmd string, args ...any) (any, error) {
	if conn == "" {
		conn = registry.DefaultName
	}

	h, err := d.reg.Connection(ctx, conn)
	if err != nil {
		d.met.ObserveCommand(conn, "config_error")
		return nil, err
	}

	res, err := h.Do(ctx, cmd, args...)
	if err == nil || errors.Is(err, redis.Nil) {
		d.met.ObserveCommand(conn, "ok")
		return res, err
	}
	if !IsTransient(err) {
		d.met.ObserveCommand(conn, "error")
		return nil, &CommandError{Conn: conn, Command: cmd, Err: err}
	}

	d.log.Warnw("transient disconnect, rebuilding connection",
		"conn", conn,
		"command", cmd,
		"error", err.Error(),
		"config", logutil.RedactConfig(h.Meta()),
	)
	d.met.ObserveRetry(conn)

	h, rerr := d.reg.Reconnect(ctx, conn)
	if rerr != nil {
		d.met.ObserveCommand(conn, "error")
		return nil, &CommandError{Conn: conn, Command: cmd, Err: errors.Join(err, rerr)}
	}
	d.met.ObserveReconnect(conn)

	res, err = h.Do(ctx, cmd, args...)
	if err == nil || errors.Is(err, redis.Nil) {
		d.met.ObserveCommand(conn, "ok")
		return res, err
	}
	d.met.ObserveCommand(conn, "error")
	return nil, &CommandError{Conn: conn, Command: cmd, Err: err}
}
