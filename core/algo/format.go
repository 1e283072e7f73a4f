package algo

import (
	"fmt"

	"github.com/huangsam/gitbloat/schema"
)

// HumanSize renders a byte count in base-1024 units. Sizes under 1 KB are
// shown as a plain integer; larger sizes use two decimals.
func HumanSize(size int64) string {
	band := schema.SizeBandOf(size)
	if band == schema.ByteBand {
		return fmt.Sprintf("%d %s", size, band)
	}
	return fmt.Sprintf("%.2f %s", float64(size)/float64(band.Divisor()), band)
}

// FormatLine renders one report line: "<human> (<raw> B) <hash> <path>".
// The separator before the path is kept even when the path is empty.
func FormatLine(object schema.ObjectRecord) string {
	return fmt.Sprintf("%s (%d B) %s %s", HumanSize(object.Size), object.Size, object.Hash, object.Path)
}

// FormatLines renders every ranked object in order.
func FormatLines(objects []schema.ObjectRecord) []string {
	lines := make([]string, len(objects))
	for i, o := range objects {
		lines[i] = FormatLine(o)
	}
	return lines
}

// EnrichObjects adds rank, human size and band to a list of ranked objects.
func EnrichObjects(objects []schema.ObjectRecord) []schema.EnrichedObjectResult {
	output := make([]schema.EnrichedObjectResult, len(objects))
	for i, o := range objects {
		output[i] = schema.EnrichedObjectResult{
			Rank:         i + 1,
			HumanSize:    HumanSize(o.Size),
			Band:         schema.SizeBandOf(o.Size),
			ObjectRecord: o,
		}
	}
	return output
}
