package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/core"
	"github.com/nutriscope/nutriscope/internal/contract"
)

// dashboardCmd fetches and renders the premium dashboard.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the premium dashboard: health score, calories and macros.",
	Long: `Fetch the premium dashboard for the configured user.

The dashboard shows the daily health score, calorie balance, hydration,
sleep and macro breakdown, plus a trend of recent days.

Results come from the local cache when fresh. When the cache misses,
nutriscope fetches from the network and saves the result for next time.
If the network is unreachable, previously saved data is shown with a
warning; if nothing was ever saved, placeholder defaults are shown.

Examples:
  # Show the dashboard, using fresh cache when available
  nutriscope dashboard

  # Bypass the cache and force a network fetch
  nutriscope dashboard --refresh

  # Export the dashboard as JSON
  nutriscope dashboard --output json --output-file dashboard.json`,
	PreRunE: sharedSetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, apiClient, storeManager, sink); err != nil {
			contract.LogFatal("Cannot show dashboard", err)
		}
	},
}
