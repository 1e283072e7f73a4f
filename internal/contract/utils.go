package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gitbloat/schema"
)

// Color variables for console output, one per size band.
var (
	GigabyteColor = color.New(color.FgRed, color.Bold)     // GigabyteColor represents standard danger.
	MegabyteColor = color.New(color.FgMagenta, color.Bold) // MegabyteColor represents strong, distinct warning.
	KilobyteColor = color.New(color.FgYellow)              // KilobyteColor represents standard caution, not bold.
	ByteColor     = color.New(color.FgCyan)                // ByteColor represents informational / low-priority signal.
)

// GetColorBand returns a colored band label for console output (table).
func GetColorBand(band schema.SizeBand) string {
	text := string(band)

	switch band {
	case schema.GigabyteBand:
		return GigabyteColor.Sprint(text)
	case schema.MegabyteBand:
		return MegabyteColor.Sprint(text)
	case schema.KilobyteBand:
		return KilobyteColor.Sprint(text)
	default: // "B"
		return ByteColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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

// GetHistoryDBFilePath returns the path to the SQLite DB file for scan history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitbloat_history.db"
	}
	return filepath.Join(homeDir, ".gitbloat_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
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
