package telemetry

import (
	"regexp"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// otherValue replaces string values that do not look like an identifier.
const otherValue = "other"

// denyKeys never become attributes: they would carry credentials or a
// user's own answers.
var denyKeys = []string{
	"authorization",
	"api_key",
	"token",
	"email",
	"phone",
	"message",
	"answer",
	"signal",
	"assessment",
	"content",
}

// labelRe bounds string values to identifier-like ids such as rule ids,
// pathways and project ids. Free text and oversized values become "other"
// so they never turn into labels.
var labelRe = regexp.MustCompile(`^[A-Za-z0-9_.:\-]{1,64}$`)

// SafeAttributes turns label values into OTEL attributes. Keys on the deny
// list and values of unsupported types are dropped. Output is sorted by key.
func SafeAttributes(values map[string]interface{}) []attribute.KeyValue {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		if !denied(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		switch v := values[k].(type) {
		case string:
			if !labelRe.MatchString(v) {
				v = otherValue
			}
			attrs = append(attrs, attribute.String(k, v))
		case bool:
			attrs = append(attrs, attribute.Bool(k, v))
		case int:
			attrs = append(attrs, attribute.Int(k, v))
		}
	}
	return attrs
}

func denied(key string) bool {
	lk := strings.ToLower(key)
	for _, bad := range denyKeys {
		if strings.Contains(lk, bad) {
			return true
		}
	}
	return false
}
