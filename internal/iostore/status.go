package iostore

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/gitbloat/schema"
)

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Scans: %d\n", status.TotalScans)
	if status.TotalScans > 0 {
		_, _ = fmt.Fprintf(w, "Last Scan ID: %d\n", status.LastScanID)
		_, _ = fmt.Fprintf(w, "Last Scan: %s (%s)\n",
			status.LastScanTime.Local().Format("2006-01-02 15:04:05"), humanize.Time(status.LastScanTime))
		_, _ = fmt.Fprintf(w, "Oldest Scan: %s (%s)\n",
			status.OldestScanTime.Local().Format("2006-01-02 15:04:05"), humanize.Time(status.OldestScanTime))
		_, _ = fmt.Fprintf(w, "Total Objects Listed: %s\n", humanize.Comma(status.TotalObjects))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
