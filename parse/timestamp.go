package parse

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrMalformedTimestamp = errors.New("timestamp missing UTC marker")

// ParseUTC parses a provider UTC timestamp such as
// "2024-05-17T01:00:27Z" or "2024-05-17T01:02:36.240509912Z".
//
// Fractional seconds are optional and of any length; anything beyond
// six digits is truncated, not rounded, so the result has microsecond
// resolution. A string without the trailing 'Z' fails with
// ErrMalformedTimestamp.
func ParseUTC(s string) (time.Time, error) {
	if !strings.HasSuffix(s, "Z") {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	trimmed := strings.TrimSuffix(s, "Z")
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 && len(trimmed) > dot+7 {
		trimmed = trimmed[:dot+7]
	}

	t, err := time.Parse("2006-01-02T15:04:05Z", trimmed+"Z")
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}

	return t, nil
}
