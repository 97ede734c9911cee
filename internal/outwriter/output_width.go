package outwriter

import (
	"os"

	"github.com/viratco/klord/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableIDWidth calculates the maximum width for record IDs in table output
// based on terminal width and table configuration.
func GetMaxTableIDWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.TableWidth > 0 {
		termWidth = cfg.TableWidth
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Updated + Steps + Completion + Label with borders/padding
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 8 {
		return 8
	}
	if available > 40 {
		return 40
	}
	return available
}

// truncateID shortens an identifier to maxWidth runes, keeping the tail.
func truncateID(id string, maxWidth int) string {
	runes := []rune(id)
	if len(runes) <= maxWidth || maxWidth < 4 {
		return id
	}
	return "..." + string(runes[len(runes)-(maxWidth-3):])
}
