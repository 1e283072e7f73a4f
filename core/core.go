// Package core has core logic for enumerating, sizing and ranking git objects.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/gitbloat/core/algo"
	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/internal/outwriter"
	"github.com/huangsam/gitbloat/schema"
)

// ErrManifest is returned when the object manifest cannot be enumerated.
var ErrManifest = errors.New("failed to list git objects")

// ScanObjects enumerates every object in the repository, resolves each size,
// and returns the largest cfg.ResultLimit objects with their report lines.
// Status messages and progress are written to progress, which may be nil.
func ScanObjects(ctx context.Context, cfg *contract.Config, client contract.ObjectSource, progress io.Writer) (*schema.ScanResult, error) {
	if progress == nil {
		progress = io.Discard
	}
	result := &schema.ScanResult{
		RepoPath:  cfg.RepoPath,
		Objects:   []schema.ObjectRecord{},
		Lines:     []string{},
		StartTime: time.Now(),
	}

	_, _ = fmt.Fprintln(progress, "Starting to list Git objects... This may take a while for large repositories.")
	entries, digest, err := listManifest(ctx, client, cfg.RepoPath)
	if err != nil {
		return nil, err
	}
	result.ManifestDigest = digest
	result.TotalObjects = len(entries)

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(progress, "No Git objects found.")
		result.EndTime = time.Now()
		return result, nil
	}

	_, _ = fmt.Fprintf(progress, "Found %d objects. Getting sizes (this might take a while)...\n", len(entries))
	objects, skipped, err := resolveSizes(ctx, client, cfg.RepoPath, entries, progress)
	if err != nil {
		return nil, err
	}
	result.ResolvedObjects = len(objects)
	result.SkippedObjects = skipped

	_, _ = fmt.Fprintln(progress, "\nSorting results...")
	result.Objects = algo.RankObjects(objects, cfg.ResultLimit)
	result.Lines = algo.FormatLines(result.Objects)
	result.EndTime = time.Now()
	return result, nil
}

// FindLargeObjects lists the topN largest objects of the repository at repoPath.
// Everything is printed to out in the classic layout and the formatted lines
// are returned. A manifest failure is printed and yields an empty slice.
func FindLargeObjects(ctx context.Context, client contract.ObjectSource, repoPath string, topN int, out io.Writer) []string {
	if out == nil {
		out = io.Discard
	}
	cfg := &contract.Config{RepoPath: repoPath, ResultLimit: topN}
	result, err := ScanObjects(ctx, cfg, client, out)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Error running git rev-list: %v\n", err)
		return []string{}
	}
	if result.TotalObjects == 0 {
		return []string{}
	}
	_, _ = fmt.Fprintln(out, "\n--- Top Large Git Objects ---")
	for _, line := range result.Lines {
		_, _ = fmt.Fprintln(out, line)
	}
	return result.Lines
}

// GetLargestObjectsResults runs a scan and records it in the history store when one is configured.
func GetLargestObjectsResults(ctx context.Context, cfg *contract.Config, client contract.ObjectSource, mgr contract.HistoryManager) (*schema.ScanResult, error) {
	var scanID int64
	historyStore := mgr.GetHistoryStore()
	if historyStore != nil {
		var err error
		scanID, err = historyStore.BeginScan(time.Now(), cfg.RepoPath, cfg.Params())
		if err != nil {
			contract.LogWarn("Scan history initialization failed", err)
		}
	}

	result, err := ScanObjects(ctx, cfg, client, progressWriter(ctx, cfg))
	if err != nil {
		return nil, err
	}

	if historyStore != nil && scanID > 0 {
		recordScan(historyStore, scanID, result)
	}
	return result, nil
}

// ExecuteLargestObjects runs the objects command and prints results in the configured format.
func ExecuteLargestObjects(ctx context.Context, cfg *contract.Config, client contract.ObjectSource, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := GetLargestObjectsResults(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	if result.SkippedObjects > 0 {
		contract.LogWarn("Size lookup", fmt.Errorf("%d of %d objects skipped", result.SkippedObjects, result.TotalObjects))
	}
	return outwriter.WriteObjectResults(result, cfg, time.Since(start))
}

// recordScan stores the ranked objects and the run summary. Failures only warn.
func recordScan(store contract.HistoryStore, scanID int64, result *schema.ScanResult) {
	for i, o := range result.Objects {
		if err := store.RecordObject(scanID, i+1, o); err != nil {
			contract.LogWarn("Failed to record object "+o.Hash, err)
		}
	}
	if err := store.EndScan(scanID, result); err != nil {
		contract.LogWarn("Failed to finalize scan history", err)
	}
}

// progressWriter picks where status lines go. Text output keeps them on stdout;
// machine formats send them to stderr so stdout stays parseable.
func progressWriter(ctx context.Context, cfg *contract.Config) io.Writer {
	if shouldSuppressHeader(ctx) {
		return io.Discard
	}
	if cfg.Output == schema.TextOut || cfg.Output == "" {
		return os.Stdout
	}
	return os.Stderr
}
