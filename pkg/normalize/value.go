package normalize

import (
	"time"
)

// Timestamp coerces any source timestamp representation (ISO string, epoch
// seconds or milliseconds) into one ISO-8601 string form. Strings that do
// not parse are passed through verbatim rather than dropped.
func Timestamp(v interface{}) string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return ""
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
		if parsed, err := time.Parse("2006-01-02T15:04:05", t); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
		return t
	case float64:
		if t == 0 {
			return ""
		}
		secs := int64(t)
		// Heuristic: epoch milliseconds once past ~Nov 2286 in seconds.
		if secs > 9_999_999_999 {
			secs = secs / 1000
		}
		return time.Unix(secs, 0).UTC().Format(time.RFC3339)
	case int64:
		return Timestamp(float64(t))
	default:
		return ""
	}
}

func firstValue(raw map[string]interface{}, keys []string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s := asString(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

func firstInt(raw map[string]interface{}, keys []string) int64 {
	for _, key := range keys {
		if f, ok := raw[key].(float64); ok {
			return int64(f)
		}
	}
	return 0
}

func firstSlice(raw map[string]interface{}, keys []string) []interface{} {
	for _, key := range keys {
		if s := asSlice(raw[key]); s != nil {
			return s
		}
	}
	return nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func asStringSlice(v interface{}) []string {
	raw := asSlice(v)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
