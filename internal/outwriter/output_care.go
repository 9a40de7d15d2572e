package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

// PrintCare outputs the healthcare integration screen, dispatching based on the output format configured.
func PrintCare(bundle *schema.CareBundle, meta schema.FetchMeta, cfg *contract.Config, duration time.Duration) error {
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
			return writeCareCSV(w, bundle, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCareTable(w, bundle, meta, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeCareTable generates and writes the human-readable healthcare view.
func writeCareTable(w io.Writer, bundle *schema.CareBundle, meta schema.FetchMeta, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	writeFetchWarning(w, meta, cfg)

	maxWidth := getMaxTableTextWidth(cfg)

	if len(bundle.Providers) > 0 {
		if _, err := fmt.Fprintln(w, "Providers:"); err != nil {
			return err
		}
		providers := tablewriter.NewWriter(w)
		providers.Header([]string{"Name", "Specialty", "Connected", "Last Sync"})
		var rows [][]string
		for _, p := range bundle.Providers {
			lastSync := ""
			if !p.LastSync.IsZero() {
				lastSync = p.LastSync.Format(contract.DateTimeFormat)
			}
			rows = append(rows, []string{
				contract.TruncateString(p.Name, maxWidth),
				p.Specialty,
				fmt.Sprintf("%t", p.Connected),
				lastSync,
			})
		}
		if err := providers.Bulk(rows); err != nil {
			return err
		}
		if err := providers.Render(); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "No connected providers."); err != nil {
			return err
		}
	}

	if len(bundle.Records) > 0 {
		if _, err := fmt.Fprintln(w, "Health Records:"); err != nil {
			return err
		}
		records := tablewriter.NewWriter(w)
		records.Header([]string{"Type", "Value", "Unit", "Recorded At", "Source"})
		records.Configure(func(tblCfg *tablewriter.Config) {
			tblCfg.Row.Alignment.Global = tw.AlignRight
		})
		var rows [][]string
		for _, r := range bundle.Records {
			rows = append(rows, []string{
				r.Type,
				fmtFloat(r.Value),
				r.Unit,
				r.RecordedAt.Format(contract.DateTimeFormat),
				contract.TruncateString(r.Source, maxWidth),
			})
		}
		if err := records.Bulk(rows); err != nil {
			return err
		}
		if err := records.Render(); err != nil {
			return err
		}
	}

	if len(bundle.Appointments) > 0 {
		if _, err := fmt.Fprintln(w, "Appointments:"); err != nil {
			return err
		}
		appointments := tablewriter.NewWriter(w)
		appointments.Header([]string{"Scheduled", "Provider", "Reason", "Status"})
		var rows [][]string
		for _, a := range bundle.Appointments {
			rows = append(rows, []string{
				a.Scheduled.Format(contract.DateTimeFormat),
				a.ProviderID,
				contract.TruncateString(a.Reason, maxWidth),
				a.Status,
			})
		}
		if err := appointments.Bulk(rows); err != nil {
			return err
		}
		if err := appointments.Render(); err != nil {
			return err
		}
	}

	return writeFetchFooter(w, meta, cfg, duration)
}

// writeCareCSV writes every health record in CSV format.
func writeCareCSV(w io.Writer, bundle *schema.CareBundle, fmtFloat func(float64) string) error {
	header := []string{
		"record_id",
		"type",
		"value",
		"unit",
		"recorded_at",
		"source",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range bundle.Records {
			rec := []string{
				r.ID,
				r.Type,
				fmtFloat(r.Value),
				r.Unit,
				r.RecordedAt.Format(contract.DateTimeFormat),
				r.Source,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
