package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

// PrintDashboard outputs the premium dashboard, dispatching based on the output format configured.
func PrintDashboard(bundle *schema.DashboardBundle, meta schema.FetchMeta, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, jsonEnvelope{
				Source:  string(meta.Source),
				Stale:   meta.Stale,
				Warning: meta.Warning,
				Data:    bundle,
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardCSV(w, bundle, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardTable(w, bundle, meta, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

// writeDashboardTable generates and writes the human-readable dashboard view.
func writeDashboardTable(w io.Writer, bundle *schema.DashboardBundle, meta schema.FetchMeta, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	writeFetchWarning(w, meta, cfg)

	label := contract.GetPlainLabel(bundle.Summary.HealthScore)
	if cfg.UseColors {
		label = contract.GetColorLabel(bundle.Summary.HealthScore)
	}

	summary := tablewriter.NewWriter(w)
	summary.Header([]string{"Metric", "Value"})
	summary.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	s := bundle.Summary
	rows := [][]string{
		{"Health Score", fmt.Sprintf("%s (%s)", fmtFloat(s.HealthScore), label)},
		{"Calories Consumed", fmt.Sprintf(intFmt, s.CaloriesConsumed)},
		{"Calories Burned", fmt.Sprintf(intFmt, s.CaloriesBurned)},
		{"Hydration", fmtFloat(s.HydrationPct) + "%"},
		{"Sleep", fmtFloat(s.SleepHours) + "h"},
		{"Protein", fmtFloat(s.Macros.ProteinG) + "g"},
		{"Carbs", fmtFloat(s.Macros.CarbsG) + "g"},
		{"Fat", fmtFloat(s.Macros.FatG) + "g"},
		{"Fiber", fmtFloat(s.Macros.FiberG) + "g"},
	}
	if err := summary.Bulk(rows); err != nil {
		return err
	}
	if err := summary.Render(); err != nil {
		return err
	}

	if len(bundle.Trend) > 0 {
		if _, err := fmt.Fprintf(w, "Trend (last %d days):\n", len(bundle.Trend)); err != nil {
			return err
		}
		trend := tablewriter.NewWriter(w)
		trend.Header([]string{"Date", "Health Score", "Calories"})
		trend.Configure(func(tblCfg *tablewriter.Config) {
			tblCfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, p := range bundle.Trend {
			data = append(data, []string{
				p.Date,
				fmtFloat(p.HealthScore),
				fmt.Sprintf(intFmt, p.Calories),
			})
		}
		if err := trend.Bulk(data); err != nil {
			return err
		}
		if err := trend.Render(); err != nil {
			return err
		}
	}

	return writeFetchFooter(w, meta, cfg, duration)
}

// writeDashboardCSV writes the dashboard trend in CSV format, one row per day,
// with the summary repeated for context.
func writeDashboardCSV(w io.Writer, bundle *schema.DashboardBundle, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"date",
		"health_score",
		"calories",
		"summary_health_score",
		"summary_label",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		label := contract.GetPlainLabel(bundle.Summary.HealthScore)
		for _, p := range bundle.Trend {
			rec := []string{
				p.Date,
				fmtFloat(p.HealthScore),
				strconv.Itoa(p.Calories),
				fmtFloat(bundle.Summary.HealthScore),
				label,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
