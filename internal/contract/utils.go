package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/viratco/klord/schema"
)

// Color variables for console output, keyed by completion label.
var (
	CompletedColor  = color.New(color.FgGreen, color.Bold) // CompletedColor marks finished installations.
	AdvancedColor   = color.New(color.FgCyan)              // AdvancedColor marks installations past 60%.
	InProgressColor = color.New(color.FgYellow)            // InProgressColor marks started installations.
	NotStartedColor = color.New(color.FgRed)               // NotStartedColor marks untouched bookings.
)

// GetColorLabel returns a colored completion label for console output (table).
func GetColorLabel(completion int) string {
	text := schema.GetPlainLabel(completion)

	switch {
	case completion >= 100:
		return CompletedColor.Sprint(text)
	case completion >= 60:
		return AdvancedColor.Sprint(text)
	case completion > 0:
		return InProgressColor.Sprint(text)
	default:
		return NotStartedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
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

// GetCacheDBFilePath returns the path to the SQLite DB file for series cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".klord_cache.db"
	}
	return filepath.Join(homeDir, ".klord_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run history storage.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".klord_runs.db"
	}
	return filepath.Join(homeDir, ".klord_runs.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
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

// RedactToken shortens a secret for display, keeping only its last four characters.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	runes := []rune(token)
	if len(runes) <= 4 {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}
