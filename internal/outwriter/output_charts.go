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

// PrintCharts outputs the data visualization screen, dispatching based on the output format configured.
func PrintCharts(bundle *schema.ChartBundle, meta schema.FetchMeta, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

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
			return writeChartsCSV(w, bundle, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChartsTable(w, bundle, meta, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeChartsTable generates and writes the human-readable charts view.
func writeChartsTable(w io.Writer, bundle *schema.ChartBundle, meta schema.FetchMeta, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	writeFetchWarning(w, meta, cfg)

	summaries := tablewriter.NewWriter(w)
	summaries.Header([]string{"Metric", "Unit", "Average", "Min", "Max", "Samples"})
	summaries.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	samplesByMetric := make(map[string]int, len(bundle.Series))
	for _, s := range bundle.Series {
		samplesByMetric[s.Metric] = len(s.Points)
	}

	var rows [][]string
	for _, s := range bundle.Summaries {
		rows = append(rows, []string{
			contract.TruncateString(s.Metric, getMaxTableTextWidth(cfg)),
			s.Unit,
			fmtFloat(s.Average),
			fmtFloat(s.Min),
			fmtFloat(s.Max),
			strconv.Itoa(samplesByMetric[s.Metric]),
		})
	}
	if err := summaries.Bulk(rows); err != nil {
		return err
	}
	if err := summaries.Render(); err != nil {
		return err
	}

	if len(bundle.Correlations) > 0 {
		if _, err := fmt.Fprintln(w, "Correlations:"); err != nil {
			return err
		}
		correlations := tablewriter.NewWriter(w)
		correlations.Header([]string{"Metric A", "Metric B", "Coefficient", "Strength"})
		correlations.Configure(func(tblCfg *tablewriter.Config) {
			tblCfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, c := range bundle.Correlations {
			data = append(data, []string{
				c.MetricA,
				c.MetricB,
				fmtFloat(c.Coefficient),
				c.Strength(),
			})
		}
		if err := correlations.Bulk(data); err != nil {
			return err
		}
		if err := correlations.Render(); err != nil {
			return err
		}
	}

	return writeFetchFooter(w, meta, cfg, duration)
}

// writeChartsCSV writes every series point in CSV format.
func writeChartsCSV(w io.Writer, bundle *schema.ChartBundle, fmtFloat func(float64) string) error {
	header := []string{
		"metric",
		"unit",
		"date",
		"value",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, s := range bundle.Series {
			for _, p := range s.Points {
				rec := []string{
					s.Metric,
					s.Unit,
					p.Date,
					fmtFloat(p.Value),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
