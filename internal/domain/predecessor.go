package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Relationship is the dependency type encoded after a predecessor key.
type Relationship string

const (
	FinishToStart  Relationship = "FS"
	StartToStart   Relationship = "SS"
	FinishToFinish Relationship = "FF"
	StartToFinish  Relationship = "SF"
)

var ErrInvalidPredecessor = errors.New("invalid predecessor reference")

// predecessorPattern splits a leading dotted numeric key, an optional
// two-letter relationship code, and any trailing lag text such as "+2d",
// which is ignored.
var predecessorPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\s*([A-Z]*)(.*)$`)

// Predecessor is a parsed predecessor reference.
type Predecessor struct {
	Key          string
	Relationship Relationship
}

func (p Predecessor) String() string {
	if p.Relationship == "" || p.Relationship == FinishToStart {
		return p.Key
	}
	return p.Key + string(p.Relationship)
}

// ParsePredecessor extracts the referenced hierarchy key and relationship
// from a predecessor string such as "1.2", "4FS" or "3.1 SS". The key comes
// back in canonical form ("01.2" becomes "1.2"). Letters after the key
// that are not a known relationship code are an error.
func ParsePredecessor(s string) (Predecessor, error) {
	m := predecessorPattern.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return Predecessor{}, fmt.Errorf("%w: %q", ErrInvalidPredecessor, s)
	}
	segs, ok := ParseHierarchy(m[1])
	if !ok {
		return Predecessor{}, fmt.Errorf("%w: %q has a zero key segment", ErrInvalidPredecessor, s)
	}

	rel := FinishToStart
	switch code := Relationship(m[2]); code {
	case "":
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		rel = code
	default:
		return Predecessor{}, fmt.Errorf("%w: unknown relationship %q in %q", ErrInvalidPredecessor, m[2], s)
	}
	return Predecessor{Key: FormatHierarchy(segs...), Relationship: rel}, nil
}
