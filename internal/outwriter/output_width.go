package outwriter

import (
	"os"

	"github.com/huangsam/gitbloat/internal/contract"
	"golang.org/x/term"
)

// Bounds for the Path column of the table.
const (
	minPathWidth = 15
	maxPathWidth = 70
)

// getMaxTablePathWidth calculates the maximum width for object paths in table output
// based on terminal width and table configuration.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = contract.DefaultWidth // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Size + Bytes + Band + abbreviated Hash, with borders and padding
	baseWidth := 60

	available := termWidth - baseWidth
	if available < minPathWidth {
		return minPathWidth
	}
	if available > maxPathWidth {
		return maxPathWidth
	}
	return available
}
