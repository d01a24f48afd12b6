package registry

import "github.com/vortex-fintech/go-redisreg/config"

// IgbinaryProbe reports whether igbinary serialization is available in this
// runtime. Replaceable in tests and by builds that ship a codec; the Go
// driver carries none, so the default probe reports unavailable and the
// igbinary mode silently degrades to native. A capability, not a
// configuration error.
var IgbinaryProbe = func() bool { return false }

func resolveSerializer(s config.Serializer) config.Serializer {
	switch s {
	case config.SerializerIgbinary:
		if IgbinaryProbe() {
			return config.SerializerIgbinary
		}
		return config.SerializerNative
	case config.SerializerNative:
		return config.SerializerNative
	default:
		return config.SerializerNone
	}
}
