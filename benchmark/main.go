// Package main provides a performance benchmarking tool for the klord CLI.
// It generates synthetic record exports of increasing size, runs the series and
// chart commands against each of them several times, treating the first cached run
// as cold and averaging the rest as warm, and writes the timings to a CSV file.
//
// Prerequisites:
// - klord binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic record files are written
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Now         time.Time
	Datasets    map[string]int
	Order       []string
}

// syntheticStep and syntheticRecord mirror the booking backend payload.
type syntheticStep struct {
	Completed bool `json:"completed"`
}

type syntheticRecord struct {
	ID             string          `json:"_id"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt,omitempty"`
	CertificateURL string          `json:"certificateUrl,omitempty"`
	Steps          []syntheticStep `json:"steps"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Now:         time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Datasets: map[string]int{
			"small":  1_000,
			"medium": 50_000,
			"large":  500_000,
		},
		Order: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using klord cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("klord", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the klord binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("klord"); err != nil {
		return fmt.Errorf("klord binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// datasetPath returns the record file of a dataset.
func datasetPath(config BenchmarkConfig, name string) string {
	return filepath.Join(config.WorkDir, "records_"+name+".json")
}

// generateDatasets writes one synthetic record export per dataset, spread over the
// year before the reference time so every mode has work to do.
func generateDatasets(config BenchmarkConfig) error {
	rng := rand.New(rand.NewPCG(42, 7))
	for _, name := range config.Order {
		size := config.Datasets[name]
		records := make([]syntheticRecord, size)
		for i := range records {
			created := config.Now.Add(-time.Duration(rng.Int64N(int64(365 * 24 * time.Hour))))
			steps := make([]syntheticStep, 4+rng.IntN(8))
			done := rng.IntN(len(steps) + 1)
			for j := range done {
				steps[j].Completed = true
			}
			records[i] = syntheticRecord{
				ID:        fmt.Sprintf("lead-%d", i),
				CreatedAt: created.Format(time.RFC3339),
				Steps:     steps,
			}
			if rng.IntN(3) == 0 {
				records[i].UpdatedAt = created.Add(time.Duration(rng.IntN(72)) * time.Hour).Format(time.RFC3339)
			}
			if done == len(steps) && rng.IntN(2) == 0 {
				records[i].CertificateURL = fmt.Sprintf("https://cdn.example.com/cert/%d.pdf", i)
			}
		}

		data, err := json.Marshal(map[string]any{"data": records})
		if err != nil {
			return err
		}
		path := datasetPath(config, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Generated %s (%d records, %d bytes)\n", path, size, len(data))
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Order), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, name := range config.Order {
		fmt.Printf("Benchmarking %s\n", name)

		results = append(results, runBenchmarkSuite(config, name, "series", "monthly series", "--mode monthly"))
		results = append(results, runBenchmarkSuite(config, name, "series", "yearly series", "--mode yearly --window 3"))
		results = append(results, runBenchmarkSuite(config, name, "chart", "progress chart", "--kind progress --series completed"))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     description,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a klord command multiple times with the specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataset, command, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command,
		"--source", "file",
		"--input", datasetPath(config, dataset),
		"--now", config.Now.Format(time.RFC3339),
		"--cache-backend", cacheBackend,
	}
	args = append(args, strings.Fields(extraArgs)...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("klord", args...)

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "completed in") &&
		strings.Contains(outputStr, "Cache backend:")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("klord_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
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
		fmt.Printf("  %-8s %-16s: No-cache: %s, Cold: %s, Warm: %s\n",
			result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
