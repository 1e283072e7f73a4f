package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/schema"
	"go.uber.org/zap"
)

// progressInterval is how often the progress line is refreshed.
const progressInterval = 1000

var errNegativeSize = errors.New("negative object size")

// resolveSizes looks up the size of every manifest entry in manifest order.
// Entries whose lookup fails are skipped and counted. Only cancellation of
// the context stops the loop early.
func resolveSizes(
	ctx context.Context,
	client contract.ObjectSource,
	repoPath string,
	entries []schema.ManifestEntry,
	progress io.Writer,
) ([]schema.ObjectRecord, int, error) {
	logger := zap.L()
	objects := make([]schema.ObjectRecord, 0, len(entries))
	skipped := 0
	total := len(entries)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}

		processed := i + 1
		if processed%progressInterval == 0 || processed == total {
			_, _ = fmt.Fprintf(progress, "Processing object %d/%d...\r", processed, total)
		}

		size, err := lookupSize(ctx, client, repoPath, entry.Hash)
		if err != nil {
			skipped++
			logger.Debug("skipping object",
				zap.String("hash", entry.Hash),
				zap.String("path", entry.Path),
				zap.Error(err))
			continue
		}
		objects = append(objects, schema.ObjectRecord{Size: size, Hash: entry.Hash, Path: entry.Path})
	}

	return objects, skipped, nil
}

// lookupSize asks git for the size of one object.
func lookupSize(ctx context.Context, client contract.ObjectSource, repoPath, hash string) (int64, error) {
	out, err := client.ObjectSize(ctx, repoPath, hash)
	if err != nil {
		return 0, err
	}
	return parseSize(out)
}

// parseSize parses the trimmed cat-file output as a non-negative base-10 integer.
func parseSize(out []byte) (int64, error) {
	size, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, errNegativeSize
	}
	return size, nil
}
