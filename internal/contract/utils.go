package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/buildpulse/internal/platform"
)

// Color variables for console output.
var (
	DominantColor = color.New(color.FgRed, color.Bold)     // dominates the build wall clock
	MajorColor    = color.New(color.FgMagenta, color.Bold) // large share of the build
	NotableColor  = color.New(color.FgYellow)              // worth a look, not bold
	MinorColor    = color.New(color.FgCyan)                // background noise
)

// GetColorLabel applies the share label's color for table output.
func GetColorLabel(label string) string {
	switch label {
	case "Dominant":
		return DominantColor.Sprint(label)
	case "Major":
		return MajorColor.Sprint(label)
	case "Notable":
		return NotableColor.Sprint(label)
	default: // "Minor"
		return MinorColor.Sprint(label)
	}
}

// SelectOutputFile returns the appropriate file handle for output based
// on the provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file used for
// run history when no connection string is configured.
func GetHistoryDBFilePath() string {
	return filepath.Join(platform.DataDir(platform.Host()), "buildpulse_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
