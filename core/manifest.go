package core

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/schema"
	"github.com/zeebo/blake3"
)

// listManifest enumerates every object reachable from any ref and returns
// the parsed entries along with a digest of the manifest.
func listManifest(ctx context.Context, client contract.ObjectSource, repoPath string) ([]schema.ManifestEntry, string, error) {
	raw, err := client.ListObjects(ctx, repoPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrManifest, err)
	}
	entries := parseManifest(raw)
	return entries, manifestDigest(entries), nil
}

// parseManifest splits rev-list output into entries. Each line is split on the
// first space; a line without a space has an empty path. Blank lines are dropped.
func parseManifest(raw []byte) []schema.ManifestEntry {
	var entries []schema.ManifestEntry
	for line := range strings.SplitSeq(string(raw), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		hash, path, _ := strings.Cut(line, " ")
		entries = append(entries, schema.ManifestEntry{Hash: hash, Path: path})
	}
	return entries
}

// manifestDigest returns the hex BLAKE3-256 of the normalized manifest.
func manifestDigest(entries []schema.ManifestEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.Hash)
		sb.WriteByte(' ')
		sb.WriteString(e.Path)
		sb.WriteByte('\n')
	}
	sum := blake3.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
