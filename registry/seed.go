package registry

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vortex-fintech/go-redisreg/config"
)

// ClusterSeed serializes one seed config into the host:port?param=value&...
// form. Parameter order is fixed (database, timeout, prefix, then auth) and
// zero/empty fields are omitted rather than emitted empty, so the seed list
// is reproducible for a given configuration.
func ClusterSeed(cfg config.Connection) string {
	cfg = cfg.Normalized()

	var b strings.Builder
	b.WriteString(cfg.Addr())

	params := make([]string, 0, 4)
	if cfg.Database != 0 {
		params = append(params, "database="+strconv.Itoa(cfg.Database))
	}
	if cfg.Timeout > 0 {
		params = append(params, "timeout="+strconv.FormatFloat(cfg.Timeout.Seconds(), 'f', -1, 64))
	}
	if cfg.Prefix != "" {
		params = append(params, "prefix="+cfg.Prefix)
	}
	if cfg.Password != "" {
		params = append(params, "auth="+cfg.Password)
	}

	if len(params) > 0 {
		b.WriteString("?")
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

var seedAuthRe = regexp.MustCompile(`(auth=)[^&]*`)

// RedactSeed masks the auth parameter of a seed string for logging.
func RedactSeed(seed string) string {
	return seedAuthRe.ReplaceAllString(seed, "${1}[REDACTED]")
}
