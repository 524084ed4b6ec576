package domain

import (
	"strconv"
	"strings"
)

// ParseHierarchy splits a dotted hierarchy number like "7.3" into its
// segments. It reports false for empty keys and any non-numeric or
// non-positive segment.
func ParseHierarchy(key string) ([]int, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	parts := strings.Split(key, ".")
	segs := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || strings.HasPrefix(p, "+") {
			return nil, false
		}
		segs = append(segs, n)
	}
	return segs, true
}

// FormatHierarchy joins segments back into dotted form.
func FormatHierarchy(segs ...int) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ".")
}

// NormalizeHierarchy returns key in canonical dotted form, or key trimmed
// when it is not a dotted number.
func NormalizeHierarchy(key string) string {
	segs, ok := ParseHierarchy(key)
	if !ok {
		return strings.TrimSpace(key)
	}
	return FormatHierarchy(segs...)
}

// HierarchyDepth returns 1 for "7", 2 for "7.3", and 0 for invalid keys.
func HierarchyDepth(key string) int {
	segs, ok := ParseHierarchy(key)
	if !ok {
		return 0
	}
	return len(segs)
}

// CompareHierarchy orders keys segment by segment numerically, so "2" < "10"
// and "7" < "7.1" < "7.2" < "8". Invalid keys sort after valid ones.
func CompareHierarchy(a, b string) int {
	sa, okA := ParseHierarchy(a)
	sb, okB := ParseHierarchy(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	for i := 0; i < len(sa) && i < len(sb); i++ {
		if sa[i] != sb[i] {
			if sa[i] < sb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(sa) < len(sb):
		return -1
	case len(sa) > len(sb):
		return 1
	default:
		return 0
	}
}
