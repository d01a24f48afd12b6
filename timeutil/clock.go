package timeutil

import (
	"context"
	"sync"
	"time"
)

// Clock — абстракция источника времени.
type Clock interface {
	// Now возвращает текущее время (ожидаем UTC).
	Now() time.Time
	// Sleep — "спать" d, с поддержкой отмены через ctx.
	Sleep(ctx context.Context, d time.Duration) error
}

// UTCClock — системные часы в UTC.
type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }
func (UTCClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		// немедленный возврат (идемпотентно и удобно для тестов)
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FrozenClock — фиксированное время с ручным сдвигом, для unit-тестов.
// Sleep возвращается сразу, фиксируя запрошенные интервалы.
type FrozenClock struct {
	mu    sync.RWMutex
	t     time.Time
	slept []time.Duration
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{t: t}
}

func (c *FrozenClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

func (c *FrozenClock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	c.mu.Lock()
	c.slept = append(c.slept, d)
	if d > 0 {
		c.t = c.t.Add(d)
	}
	c.mu.Unlock()
	return nil
}

func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Slept возвращает интервалы, запрошенные через Sleep.
func (c *FrozenClock) Slept() []time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}

// Default — глобальные часы по умолчанию (UTC).
var Default Clock = UTCClock{}

// Now — алиас для Default.Now() (UTC).
func Now() time.Time { return Default.Now() }
