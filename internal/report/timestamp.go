package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// TimestampSource tags how a report's start time was derived.
type TimestampSource int

// Timestamp derivation outcomes.
const (
	// FromFilename means the timestamp was parsed out of the report filename.
	FromFilename TimestampSource = iota
	// FromModTime means the filename did not match and the file's
	// last-modified time was used instead.
	FromModTime
)

// StartedAt is the derived build start timestamp together with its
// provenance. Only the value is persisted; the source tag keeps the
// fallback branch explicit and testable.
type StartedAt struct {
	Value  string
	Source TimestampSource
}

// filenameStamp matches timestamps embedded in cargo-timing filenames,
// e.g. "cargo-timing-20260219T161555.879263Z.html".
var filenameStamp = regexp.MustCompile(`-(\d{8})T(\d{6})\.(\d+)Z`)

// stampMillis is the output layout for derived timestamps, always UTC
// with millisecond precision.
const stampMillis = "2006-01-02T15:04:05.000Z"

// DeriveStartedAt determines the ISO-8601 UTC start timestamp for a
// report. It is a best-effort heuristic: a filename that does not carry
// a timestamp is an expected, non-exceptional case that falls back to
// the file's last-modified time.
func DeriveStartedAt(path string, info os.FileInfo) StartedAt {
	if value, ok := parseFilenameStamp(filepath.Base(path)); ok {
		return StartedAt{Value: value, Source: FromFilename}
	}
	return StartedAt{
		Value:  info.ModTime().UTC().Format(stampMillis),
		Source: FromModTime,
	}
}

// parseFilenameStamp extracts and reformats the timestamp embedded in a
// report filename. The fractional-seconds component is truncated, not
// rounded, to milliseconds via integer division.
func parseFilenameStamp(name string) (string, bool) {
	m := filenameStamp.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}

	t, err := time.Parse("20060102T150405", m[1]+"T"+m[2])
	if err != nil {
		return "", false
	}

	frac, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", false
	}
	millis := frac / 1000

	return fmt.Sprintf("%s.%03dZ", t.Format("2006-01-02T15:04:05"), millis), true
}
