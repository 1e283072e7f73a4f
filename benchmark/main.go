// Package main provides a performance benchmarking tool for the gitbloat CLI.
// It times 'gitbloat objects' across repositories of different sizes, once with
// scan history disabled and once recording into a scratch SQLite file, and
// writes the averages to a CSV file for documentation.
//
// Prerequisites:
// - gitbloat binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the timings of one repository.
type BenchmarkResult struct {
	Repository   string
	Objects      int
	NoHistoryAvg string
	HistoryAvg   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	Limit     int
	TestRepos []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:  os.Args[1],
		Timeout:   15 * time.Minute,
		Runs:      3,
		Limit:     50,
		TestRepos: []string{"csv-parser", "fd", "git", "kubernetes"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	historyDir, err := os.MkdirTemp("", "gitbloat-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create scratch directory: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(historyDir) }()

	results := runBenchmarks(config, filepath.Join(historyDir, "history.db"))

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that gitbloat binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("gitbloat"); err != nil {
		return fmt.Errorf("gitbloat binary not found in PATH")
	}

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes the benchmark across configured repositories
func runBenchmarks(config BenchmarkConfig, historyDB string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs per phase\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)
		repoPath := filepath.Join(config.RepoBase, repo)

		objects, noHistory := runPhase(config, repoPath, nil, "No-history")
		_, withHistory := runPhase(config, repoPath, []string{
			"GITBLOAT_HISTORY_BACKEND=sqlite",
			"GITBLOAT_HISTORY_DB_CONNECT=" + historyDB,
		}, "SQLite history")

		fmt.Printf("  Objects: %d, no-history average: %s, history average: %s\n", objects, noHistory, withHistory)
		results = append(results, BenchmarkResult{
			Repository:   repo,
			Objects:      objects,
			NoHistoryAvg: noHistory,
			HistoryAvg:   withHistory,
		})
	}

	return results
}

// runPhase runs gitbloat config.Runs times and returns the object count and the average time.
func runPhase(config BenchmarkConfig, repoPath string, env []string, phaseName string) (int, string) {
	fmt.Printf("  %s phase (%d runs)\n", phaseName, config.Runs)

	var objects int
	var sum float64
	var successes int
	for range config.Runs {
		start := time.Now()
		total, err := runObjects(config, repoPath, env)
		if err != nil {
			fmt.Printf("    run failed: %v\n", err)
			continue
		}
		sum += time.Since(start).Seconds()
		successes++
		objects = total
	}

	if successes == 0 {
		return objects, "FAILED"
	}
	return objects, fmt.Sprintf("%.3fs", sum/float64(successes))
}

// runObjects executes one scan and checks the JSON summary it prints.
func runObjects(config BenchmarkConfig, repoPath string, env []string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "gitbloat", "objects", "--output", "json", "--limit", strconv.Itoa(config.Limit))
	cmd.Dir = repoPath
	cmd.Env = append(os.Environ(), env...)

	output, err := cmd.Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, fmt.Errorf("timed out after %v", config.Timeout)
	}
	if err != nil {
		return 0, err
	}

	var summary struct {
		TotalObjects int `json:"total_objects"`
	}
	if err := json.Unmarshal(output, &summary); err != nil {
		return 0, fmt.Errorf("unexpected output: %w", err)
	}
	if summary.TotalObjects == 0 {
		return 0, errors.New("no objects listed")
	}
	return summary.TotalObjects, nil
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("gitbloat_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "objects", "no_history_avg", "history_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{result.Repository, strconv.Itoa(result.Objects), result.NoHistoryAvg, result.HistoryAvg}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s: %9d objects, no history: %s, sqlite history: %s\n",
			result.Repository, result.Objects, result.NoHistoryAvg, result.HistoryAvg)
	}
}
