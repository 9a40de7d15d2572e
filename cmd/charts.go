package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/core"
	"github.com/nutriscope/nutriscope/internal/contract"
)

// chartsCmd fetches and renders the data visualization screen.
var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Show tracked metric charts, summaries and correlations.",
	Long: `Fetch the data visualization bundle for the configured user.

Shows the tracked metric series (calories, weight, sleep and friends),
their aggregate summaries, and pairwise correlations between metrics.

All three sub-resources are fetched together; a partially loaded screen
is never rendered. The same cache-then-network-then-fallback chain as
the dashboard applies.

Examples:
  # Show the charts screen
  nutriscope charts

  # Export every series point as CSV
  nutriscope charts --output csv --output-file metrics.csv`,
	PreRunE: sharedSetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCharts(rootCtx, cfg, apiClient, storeManager, sink); err != nil {
			contract.LogFatal("Cannot show charts", err)
		}
	},
}
