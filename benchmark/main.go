// Package main provides a performance benchmarking tool for the nutriscope CLI.
// It measures fetch latency for each screen against a local stub API,
// treating the first run after a cache clear as cold and averaging the rest
// as warm, generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - nutriscope binary installed and available in PATH
//
// Usage: go run benchmark/main.go [output-csv]
//
//	output-csv: Path for the CSV results (default: benchmark_results.csv)
package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"time"
)

// BenchmarkResult holds the result of one command's benchmark run.
type BenchmarkResult struct {
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout  time.Duration
	WarmRuns int
	Commands []string
}

// stubPayloads maps API routes to minimal valid payloads.
var stubPayloads = map[string]string{
	"/v1/dashboard/summary":   `{"health_score": 75, "calories_consumed": 2000, "calories_burned": 400, "hydration_pct": 60, "sleep_hours": 7, "macros": {"protein_g": 90, "carbs_g": 220, "fat_g": 65, "fiber_g": 25}}`,
	"/v1/dashboard/trend":     `[{"date": "2026-08-28", "health_score": 75, "calories": 2000}]`,
	"/v1/charts/series":       `[{"metric": "calories", "unit": "kcal", "points": [{"date": "2026-08-28", "value": 2000}]}]`,
	"/v1/charts/summaries":    `[{"metric": "calories", "unit": "kcal", "average": 2000, "min": 1800, "max": 2200}]`,
	"/v1/charts/correlations": `[]`,
	"/v1/care/providers":      `[]`,
	"/v1/care/records":        `[]`,
	"/v1/care/appointments":   `[]`,
}

func main() {
	outputPath := "benchmark_results.csv"
	if len(os.Args) == 2 {
		outputPath = os.Args[1]
	}

	config := BenchmarkConfig{
		Timeout:  time.Minute,
		WarmRuns: 4,
		Commands: []string{"dashboard", "charts", "care"},
	}

	// Serve the stub API locally so latency measures the CLI, not the network
	mux := http.NewServeMux()
	for route, payload := range stubPayloads {
		body := payload
		mux.HandleFunc(route, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		})
	}
	server := httptest.NewServer(mux)
	defer server.Close()

	env := append(os.Environ(),
		"NUTRISCOPE_BASE_URL="+server.URL,
		"NUTRISCOPE_CACHE_BACKEND=sqlite",
	)

	var results []BenchmarkResult
	for _, command := range config.Commands {
		result, err := benchmarkCommand(config, env, command)
		if err != nil {
			fmt.Printf("Benchmark failed for %s: %v\n", command, err)
			os.Exit(1)
		}
		results = append(results, result)
		fmt.Printf("%-10s cold=%s warm=%s\n", command, result.ColdTime, result.WarmTime)
	}

	if err := writeResults(outputPath, results); err != nil {
		fmt.Printf("Failed to write results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to %s\n", outputPath)
}

// benchmarkCommand runs one command cold (empty cache) and warm (cached).
func benchmarkCommand(config BenchmarkConfig, env []string, command string) (BenchmarkResult, error) {
	if err := runCLI(config.Timeout, env, "cache", "clear"); err != nil {
		return BenchmarkResult{}, fmt.Errorf("cache clear failed: %w", err)
	}

	// Cold: first fetch hits the stub API and populates the cache
	coldStart := time.Now()
	if err := runCLI(config.Timeout, env, command); err != nil {
		return BenchmarkResult{}, err
	}
	cold := time.Since(coldStart)

	// Warm: subsequent fetches are served from the cache
	var warmTotal time.Duration
	for range config.WarmRuns {
		warmStart := time.Now()
		if err := runCLI(config.Timeout, env, command); err != nil {
			return BenchmarkResult{}, err
		}
		warmTotal += time.Since(warmStart)
	}
	warm := warmTotal / time.Duration(config.WarmRuns)

	return BenchmarkResult{
		Command:  command,
		ColdTime: cold.Round(time.Millisecond).String(),
		WarmTime: warm.Round(time.Millisecond).String(),
	}, nil
}

func runCLI(timeout time.Duration, env []string, args ...string) error {
	cmd := exec.Command("nutriscope", args...)
	cmd.Env = env

	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("command timed out after %s", timeout)
	}
}

func writeResults(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"command", "cold", "warm_avg"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Command, r.ColdTime, r.WarmTime}); err != nil {
			return err
		}
	}
	return nil
}
