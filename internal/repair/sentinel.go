package repair

import "strings"

var sentinelKeys = map[string]struct{}{
	"temp": {}, "tmp": {}, "new": {},
	"undefined": {}, "null": {}, "nan": {},
	"-1": {}, "0": {}, "999": {}, "9999": {},
}

var sentinelPrefixes = []string{"temp-", "temp_", "tmp-", "tmp_", "new-"}

var placeholderNames = map[string]struct{}{
	"":              {},
	"new task":      {},
	"task":          {},
	"untitled":      {},
	"untitled task": {},
}

// IsSentinelKey reports whether a hierarchy number is one of the placeholder
// values left behind by interrupted inserts rather than a real dotted key.
// An empty key means "not yet numbered" and is not a sentinel.
func IsSentinelKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return false
	}
	if _, ok := sentinelKeys[k]; ok {
		return true
	}
	for _, p := range sentinelPrefixes {
		if strings.HasPrefix(k, p) {
			return true
		}
	}
	return false
}

// IsPlaceholderName reports whether a task name is a default label that
// carries no information about the task.
func IsPlaceholderName(name string) bool {
	_, ok := placeholderNames[normalizeName(name)]
	return ok
}
