package dispatch

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
)

// The two message markers the original disconnect classifier recognized.
// Kept as a fallback behind the typed checks for error values that only
// surface text.
var transientMarkers = []string{
	"server went away",
	"connection lost",
}

// IsTransient reports whether err is a server-side disconnect that a fresh
// connection can recover from. Only this class triggers the dispatcher's
// single retry; everything else is fatal to the call. Typed error kinds are
// checked first, the message substrings are the documented fallback.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, redis.Nil) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, redis.ErrClosed) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	// Protocol-level replies (WRONGTYPE, NOAUTH, ...) are never transient.
	var rerr redis.Error
	if errors.As(err, &rerr) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
