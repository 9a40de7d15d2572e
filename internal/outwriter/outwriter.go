// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

// getMaxTableTextWidth calculates the maximum width for free-text columns
// in table output based on terminal width.
func getMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed numeric columns plus borders and padding
	available := termWidth - 45
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}

// writeFetchWarning prints the degraded-data banner when a result did not
// come from the normal path.
func writeFetchWarning(w io.Writer, meta schema.FetchMeta, cfg *contract.Config) {
	if meta.Warning == "" {
		return
	}
	text := "⚠️  " + meta.Warning
	if cfg.UseColors {
		text = color.YellowString(text)
	}
	fmt.Fprintln(w, text)
}

// writeFetchFooter prints the trailing source line for table output.
func writeFetchFooter(w io.Writer, meta schema.FetchMeta, cfg *contract.Config, duration time.Duration) error {
	_, err := fmt.Fprintf(w, "Data source: %s (fetched in %v). Cache backend: %s\n", meta.Source, duration, cfg.CacheBackend)
	return err
}
