// Package algo has the pure ranking and formatting steps of the object lister.
package algo

import (
	"sort"

	"github.com/huangsam/gitbloat/schema"
)

// RankObjects sorts objects by size in descending order and returns the top
// 'limit' objects. Equal sizes keep their input order. The input slice is not
// modified. A non-positive limit yields an empty result.
func RankObjects(objects []schema.ObjectRecord, limit int) []schema.ObjectRecord {
	if limit <= 0 {
		return []schema.ObjectRecord{}
	}
	ranked := make([]schema.ObjectRecord, len(objects))
	copy(ranked, objects)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Size > ranked[j].Size
	})
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
