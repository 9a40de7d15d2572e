package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/core"
	"github.com/nutriscope/nutriscope/internal/contract"
)

// careCmd fetches and renders the healthcare integration screen.
var careCmd = &cobra.Command{
	Use:   "care",
	Short: "Show connected providers, health records and appointments.",
	Long: `Fetch the healthcare integration bundle for the configured user.

Shows connected healthcare providers, clinical measurements synced from
them, and upcoming appointments.

Healthcare data uses the shortest cache TTL of the three screens so
clinical values are never served long past their fetch time.

Examples:
  # Show the healthcare screen
  nutriscope care

  # Force a fresh fetch before an appointment
  nutriscope care --refresh`,
	PreRunE: sharedSetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCare(rootCtx, cfg, apiClient, storeManager, sink); err != nil {
			contract.LogFatal("Cannot show healthcare data", err)
		}
	},
}
