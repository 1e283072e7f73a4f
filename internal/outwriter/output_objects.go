package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/gitbloat/core/algo"
	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// reportHeader precedes the ranked lines in text output.
const reportHeader = "\n--- Top Large Git Objects ---"

// shortHashLen is how much of each hash the table shows.
const shortHashLen = 12

// writeObjectText prints the classic report: a header followed by one line per object.
// Nothing is printed when the repository had no objects at all.
func writeObjectText(w io.Writer, result *schema.ScanResult) error {
	if result.TotalObjects == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, reportHeader); err != nil {
		return err
	}
	lines := result.Lines
	if len(lines) != len(result.Objects) {
		lines = algo.FormatLines(result.Objects)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeObjectTable generates and writes the human-readable table.
func writeObjectTable(w io.Writer, result *schema.ScanResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Size", "Bytes", "Band", "Hash", "Path"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for _, o := range algo.EnrichObjects(result.Objects) {
		data = append(data, []string{
			strconv.Itoa(o.Rank),
			o.HumanSize,
			humanize.Comma(o.Size),
			contract.GetColorBand(o.Band),
			shortHash(o.Hash),
			contract.TruncatePath(o.Path, pathWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	var totalBytes int64
	for _, o := range result.Objects {
		totalBytes += o.Size
	}
	if _, err := fmt.Fprintf(w, "Showing top %d of %s objects (%s listed, %s skipped)\n",
		len(result.Objects), humanize.Comma(int64(result.TotalObjects)),
		algo.HumanSize(totalBytes), humanize.Comma(int64(result.SkippedObjects))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scan completed in %v. History backend: %s\n", duration.Round(time.Millisecond), historyBackendLabel(cfg)); err != nil {
		return err
	}
	return nil
}

// writeObjectCSV writes one row per ranked object.
func writeObjectCSV(w io.Writer, result *schema.ScanResult) error {
	header := []string{"rank", "size_bytes", "size_human", "band", "hash", "path"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, o := range algo.EnrichObjects(result.Objects) {
			row := []string{
				strconv.Itoa(o.Rank),
				strconv.FormatInt(o.Size, 10),
				o.HumanSize,
				string(o.Band),
				o.Hash,
				o.Path,
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeObjectJSON writes the scan summary with enriched objects.
func writeObjectJSON(w io.Writer, result *schema.ScanResult, duration time.Duration) error {
	return writeJSON(w, BuildScanSummary(result, duration))
}

// BuildScanSummary assembles the JSON document for a scan.
func BuildScanSummary(result *schema.ScanResult, duration time.Duration) schema.ScanSummary {
	return schema.ScanSummary{
		RepoPath:        result.RepoPath,
		TotalObjects:    result.TotalObjects,
		ResolvedObjects: result.ResolvedObjects,
		SkippedObjects:  result.SkippedObjects,
		ManifestDigest:  result.ManifestDigest,
		DurationMs:      duration.Milliseconds(),
		Objects:         algo.EnrichObjects(result.Objects),
	}
}

func shortHash(hash string) string {
	if len(hash) <= shortHashLen {
		return hash
	}
	return hash[:shortHashLen]
}

func historyBackendLabel(cfg *contract.Config) schema.DatabaseBackend {
	if cfg.HistoryBackend == "" {
		return schema.NoneBackend
	}
	return cfg.HistoryBackend
}
