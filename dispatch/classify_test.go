//go:build unit
// +build unit

package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/vortex-fintech/go-redisreg/dispatch"
)

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"eof", io.EOF, true},
		{"unexpected eof", io.ErrUnexpectedEOF, true},
		{"client closed", goredis.ErrClosed, true},
		{"net closed", net.ErrClosed, true},
		{"econnreset", syscall.ECONNRESET, true},
		{"epipe", syscall.EPIPE, true},
		{"wrapped econnreset", fmt.Errorf("write failed: %w", syscall.ECONNRESET), true},
		{"server went away", errors.New("Redis server went away"), true},
		{"connection lost", errors.New("Connection lost (Redis)"), true},
		{"case-insensitive marker", errors.New("CONNECTION LOST"), true},
		{"nil reply", goredis.Nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"wrongtype", errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"), false},
		{"plain error", errors.New("oom command not allowed"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dispatch.IsTransient(tc.err))
		})
	}
}

// Ответы уровня протокола не ретраятся, даже если текст совпал с маркером.
type protoErr string

func (e protoErr) Error() string { return string(e) }
func (e protoErr) RedisError()   {}

func TestIsTransient_ProtocolReplyNeverRetried(t *testing.T) {
	assert.False(t, dispatch.IsTransient(protoErr("ERR connection lost marker inside a reply")))
}
