package logutil

import (
	"regexp"
	"strings"
)

var defaultSensitiveRe = regexp.MustCompile(`(?i)(password|pass|secret|token|auth)`)

// RedactConfig returns a copy of a connection-config map safe for logging:
// values under sensitive keys are replaced, everything else passes through.
// Extra keys can be marked sensitive per call.
func RedactConfig(fields map[string]any, sensitiveKeys ...string) map[string]any {
	if fields == nil {
		return nil
	}

	sens := map[string]struct{}{}
	for _, k := range sensitiveKeys {
		sens[strings.ToLower(k)] = struct{}{}
	}

	redacted := make(map[string]any, len(fields))
	for field, v := range fields {
		lk := strings.ToLower(field)
		if _, ok := sens[lk]; ok || defaultSensitiveRe.MatchString(lk) {
			if s, isStr := v.(string); isStr && s == "" {
				// пустые значения не маскируем, чтобы не путать диагностику
				redacted[field] = ""
				continue
			}
			redacted[field] = "[REDACTED]"
		} else {
			redacted[field] = v
		}
	}

	return redacted
}
