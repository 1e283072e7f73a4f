package algo

import (
	"testing"

	"github.com/huangsam/gitbloat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankObjects(t *testing.T) {
	objects := []schema.ObjectRecord{
		{Size: 500, Hash: "h1", Path: "a.txt"},
		{Size: 2048, Hash: "h2"},
		{Size: 3 * 1024 * 1024, Hash: "h3", Path: "b/c.txt"},
		{Size: 10, Hash: "h4", Path: "tiny"},
	}

	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{"top two", 2, []string{"h3", "h2"}},
		{"limit equals length", 4, []string{"h3", "h2", "h1", "h4"}},
		{"limit exceeds length", 100, []string{"h3", "h2", "h1", "h4"}},
		{"limit one", 1, []string{"h3"}},
		{"zero limit", 0, []string{}},
		{"negative limit", -3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := RankObjects(objects, tt.limit)
			hashes := make([]string, len(ranked))
			for i, r := range ranked {
				hashes[i] = r.Hash
			}
			assert.Equal(t, tt.expected, hashes)
		})
	}
}

func TestRankObjects_DoesNotMutateInput(t *testing.T) {
	objects := []schema.ObjectRecord{
		{Size: 1, Hash: "small"},
		{Size: 9, Hash: "big"},
	}
	_ = RankObjects(objects, 2)
	assert.Equal(t, "small", objects[0].Hash)
	assert.Equal(t, "big", objects[1].Hash)
}

func TestRankObjects_StableTies(t *testing.T) {
	objects := []schema.ObjectRecord{
		{Size: 100, Hash: "first"},
		{Size: 5, Hash: "other"},
		{Size: 100, Hash: "second"},
		{Size: 100, Hash: "third"},
	}
	ranked := RankObjects(objects, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Hash)
	assert.Equal(t, "second", ranked[1].Hash)
	assert.Equal(t, "third", ranked[2].Hash)
}

func TestRankObjects_Properties(t *testing.T) {
	var objects []schema.ObjectRecord
	for i := range 250 {
		objects = append(objects, schema.ObjectRecord{Size: int64((i * 7919) % 1013), Hash: string(rune('a' + i%26))})
	}

	for _, limit := range []int{1, 20, 249, 250, 500} {
		ranked := RankObjects(objects, limit)
		assert.Len(t, ranked, min(len(objects), limit))
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Size, ranked[i].Size, "ranked output must be non-increasing")
		}
		for _, r := range ranked {
			assert.Contains(t, objects, r)
		}
	}
}

func TestRankObjects_Empty(t *testing.T) {
	assert.Empty(t, RankObjects(nil, 20))
}
