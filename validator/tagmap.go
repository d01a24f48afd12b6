package validator

var tagMap = map[string]string{
	"required":         "required",
	"omitempty":        "optional",
	"hostname_rfc1123": "invalid_host",
	"ip":               "invalid_ip",
	"max":              "too_long",
	"min":              "too_short",
	"gt":               "too_small",
	"lt":               "too_large",
	"gte":              "too_small_or_equal",
	"lte":              "too_large_or_equal",
	"oneof":            "invalid_choice",
}

func mapTagToCode(tag string) string {
	if code, ok := tagMap[tag]; ok {
		return code
	}
	return "invalid"
}
