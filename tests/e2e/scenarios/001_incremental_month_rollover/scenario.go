package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	year           = 2024
	janDays        = 31
	febDays        = 10
	recordsPerHour = 4
	firstRunLast   = 20 // last January day of the first log
	secondRunFirst = 15 // first January day of the rotated log
)

var (
	hosts  = []string{"10.1.0.1", "10.1.0.2", "crawler.example.net", "www.example.org", "192.168.7.40", "a.b.example.com", "10.1.0.3", "proxy.example.net"}
	paths  = []string{"/", "/about.html", "/docs/index.html", "/img/logo.png"}
	agents = []string{
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

type day struct {
	month int
	day   int
}

// main runs the e2e scenario: 001_incremental_month_rollover
//
// This scenario runs the analyzer twice in incremental mode over two overlapping logs, the way a
// rotated access log is fed to it by cron.
//
// What it tests:
//   - Run state saved at the end of the first run and restored by the second
//   - Records already counted by the first run are ignored by the duplicate check
//   - The January month closes when the first February record arrives
//   - The history file carries both months, newest first
//   - A usage report is written for each month
//
// Expected results:
//   - Second run: every record up to January 20 is ignored
//   - History: January with 31*24*4 hits, February with 10*24*4 hits
//   - usage_202401.txt and usage_202402.txt in the output directory
func main() {
	// these configs can be changed to run the scenario
	binary := ".tmp/bin/webalizer"  // Analyzer binary, relative to project root (go build -o .tmp/bin/webalizer ./cmd/webalizer)
	workDir := ".tmp/e2e/001"       // Working directory for logs and output, relative to project root
	wantCleanWorkDir := true        // If true, clean up the working directory before running scenario

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	binaryPath := filepath.Join(projectRoot, binary)
	workPath := filepath.Join(projectRoot, workDir)

	if wantCleanWorkDir {
		fmt.Printf("Cleaning working directory: %s\n", workPath)
		if err := os.RemoveAll(workPath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean working directory: %v\n", err)
		}
	}
	outputPath := filepath.Join(workPath, "out")
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting e2e scenario: 001_incremental_month_rollover")
	fmt.Printf("BINARY: %s\n", binaryPath)
	fmt.Printf("WORK_DIR: %s\n", workPath)
	fmt.Println()

	var firstDays, secondDays []day
	for d := 1; d <= janDays; d++ {
		if d <= firstRunLast {
			firstDays = append(firstDays, day{1, d})
		}
		if d >= secondRunFirst {
			secondDays = append(secondDays, day{1, d})
		}
	}
	for d := 1; d <= febDays; d++ {
		secondDays = append(secondDays, day{2, d})
	}

	firstLog := filepath.Join(workPath, "access.log.1")
	secondLog := filepath.Join(workPath, "access.log")
	for path, days := range map[string][]day{firstLog: firstDays, secondLog: secondDays} {
		if err := writeLog(path, days); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	for i, log := range []string{firstLog, secondLog} {
		fmt.Printf("Run %d over %s\n", i+1, filepath.Base(log))
		cmd := exec.Command(binaryPath, "--incremental", "--gmt-time", "--summary", "--output-dir", outputPath, log)
		cmd.Stderr = os.Stderr
		out, err := cmd.Output()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Run %d failed: %v\n", i+1, err)
			os.Exit(1)
		}
		fmt.Printf("  %s", out)
	}
	fmt.Println()

	overlap := firstRunLast - secondRunFirst + 1
	wantIgnored := overlap * 24 * recordsPerHour
	wantHits := map[string]int{
		"1 2024": janDays * 24 * recordsPerHour,
		"2 2024": febDays * 24 * recordsPerHour,
	}

	var failures []string
	history, order, err := readHistory(filepath.Join(outputPath, "webalizer.hist"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read history: %v\n", err)
		os.Exit(1)
	}
	for month, want := range wantHits {
		if got := history[month]; got != want {
			failures = append(failures, fmt.Sprintf("history %s: got %d hits, want %d", month, got, want))
		}
	}
	if len(order) < 2 || order[0] != "2 2024" || order[1] != "1 2024" {
		failures = append(failures, fmt.Sprintf("history order: got %v, want newest first", order[:min(2, len(order))]))
	}
	for _, name := range []string{"usage_202401.txt", "usage_202402.txt", "webalizer.current"} {
		if _, err := os.Stat(filepath.Join(outputPath, name)); err != nil {
			failures = append(failures, fmt.Sprintf("missing %s", name))
		}
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Expected ignored in run 2: %d\n", wantIgnored)
	for month, want := range wantHits {
		fmt.Printf("History %s: %d hits (want %d)\n", month, history[month], want)
	}
	if len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("could not find go.mod, run from the project root")
}

func writeLog(path string, days []day) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	months := []string{"", "Jan", "Feb"}
	n := 0
	for _, d := range days {
		for hour := 0; hour < 24; hour++ {
			for i := 0; i < recordsPerHour; i++ {
				minute := i * (60 / recordsPerHour)
				fmt.Fprintf(w, "%s - - [%02d/%s/%d:%02d:%02d:00 -0000] \"GET %s HTTP/1.1\" 200 %d \"-\" \"%s\"\n",
					hosts[n%len(hosts)], d.day, months[d.month], year, hour, minute,
					paths[n%len(paths)], 512+n%1024, agents[n%len(agents)])
				n++
			}
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// readHistory returns the hits per "month year" and the months in file order.
func readHistory(path string) (map[string]int, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	hits := make(map[string]int)
	var order []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil || n == 0 {
			continue
		}
		key := fields[0] + " " + fields[1]
		hits[key] = n
		order = append(order, key)
	}
	return hits, order, scanner.Err()
}
