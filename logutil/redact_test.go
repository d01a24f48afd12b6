//go:build unit
// +build unit

package logutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vortex-fintech/go-redisreg/logutil"
)

func TestRedactConfig_Nil(t *testing.T) {
	assert.Nil(t, logutil.RedactConfig(nil))
}

func TestRedactConfig_MasksSensitive(t *testing.T) {
	in := map[string]any{
		"host":     "10.0.0.1",
		"port":     6379,
		"password": "s3cret",
		"prefix":   "app:",
	}
	out := logutil.RedactConfig(in)
	assert.Equal(t, "10.0.0.1", out["host"])
	assert.Equal(t, 6379, out["port"])
	assert.Equal(t, "[REDACTED]", out["password"])
	assert.Equal(t, "app:", out["prefix"])
}

func TestRedactConfig_EmptySensitiveKeptEmpty(t *testing.T) {
	out := logutil.RedactConfig(map[string]any{"password": ""})
	assert.Equal(t, "", out["password"])
}

func TestRedactConfig_ExtraKeys(t *testing.T) {
	out := logutil.RedactConfig(map[string]any{"seed": "10.0.0.1:6379?auth=x"}, "seed")
	assert.Equal(t, "[REDACTED]", out["seed"])
}

func TestRedactConfig_DoesNotMutateInput(t *testing.T) {
	in := map[string]any{"password": "x"}
	_ = logutil.RedactConfig(in)
	assert.Equal(t, "x", in["password"])
}
