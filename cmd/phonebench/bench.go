package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/phone"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	exitSuccess      = 0
	exitRunError     = 1
	exitCommandError = 2
)

type options struct {
	Dir     string
	Format  string
	Workers int
	Verbose bool
}

// RegionStats counts outcomes for one region. Formatted counts parsed
// numbers that rendered to a non-empty INTERNATIONAL string and
// FormattedBytes is their total rendered length.
type RegionStats struct {
	Region         string `json:"region" yaml:"region"`
	Files          int    `json:"files" yaml:"files"`
	Lines          int    `json:"lines" yaml:"lines"`
	Parsed         int    `json:"parsed" yaml:"parsed"`
	Skipped        int    `json:"skipped" yaml:"skipped"`
	Valid          int    `json:"valid" yaml:"valid"`
	Formatted      int    `json:"formatted" yaml:"formatted"`
	FormattedBytes int    `json:"formattedBytes" yaml:"formattedBytes"`
}

// Report is the benchmark result.
type Report struct {
	Dir            string        `json:"dir" yaml:"dir"`
	Files          int           `json:"files" yaml:"files"`
	Lines          int           `json:"lines" yaml:"lines"`
	Parsed         int           `json:"parsed" yaml:"parsed"`
	Skipped        int           `json:"skipped" yaml:"skipped"`
	Valid          int           `json:"valid" yaml:"valid"`
	Formatted      int           `json:"formatted" yaml:"formatted"`
	FormattedBytes int           `json:"formattedBytes" yaml:"formattedBytes"`
	ElapsedMs      int64         `json:"elapsedMs" yaml:"elapsedMs"`
	Regions        []RegionStats `json:"regions" yaml:"regions"`
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	env := "production"
	if opts.Verbose {
		env = "development"
	}
	log := logger.NewWithWriter(env, stderr)

	report, err := benchmark(context.Background(), opts, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRunError
	}

	if err := writeReport(stdout, report, opts.Format); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRunError
	}
	return exitSuccess
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	flags := flag.NewFlagSet("phonebench", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.Dir, "dir", "data", "directory of sample files, one number per line")
	flags.StringVar(&opts.Format, "format", "text", "report format: text, json, yaml")
	flags.IntVar(&opts.Workers, "workers", runtime.NumCPU(), "files processed concurrently")
	flags.BoolVar(&opts.Verbose, "v", false, "log every file")

	if err := flags.Parse(args); err != nil {
		return options{}, err
	}
	switch opts.Format {
	case "text", "json", "yaml":
	default:
		return options{}, fmt.Errorf("unknown report format %q", opts.Format)
	}
	if opts.Workers < 1 {
		return options{}, errors.New("workers must be at least 1")
	}
	return opts, nil
}

// regionForFile takes the last two letters of a file name as its region.
func regionForFile(name string) string {
	upper := strings.ToUpper(name)
	if len(upper) < 2 {
		return upper
	}
	return upper[len(upper)-2:]
}

func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func benchmark(ctx context.Context, opts options, log *logger.Logger) (Report, error) {
	files, err := listFiles(opts.Dir)
	if err != nil {
		return Report{}, err
	}

	var (
		mu      sync.Mutex
		regions = make(map[string]*RegionStats)
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for _, path := range files {
		path := path // per-iteration copy (go directive is 1.21)
		g.Go(func() error {
			region := regionForFile(filepath.Base(path))
			stats, err := benchFile(gctx, path, region)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Debug("file processed", "file", path, "region", region, "lines", stats.Lines, "skipped", stats.Skipped)

			mu.Lock()
			defer mu.Unlock()
			agg, ok := regions[region]
			if !ok {
				agg = &RegionStats{Region: region}
				regions[region] = agg
			}
			agg.Files++
			agg.Lines += stats.Lines
			agg.Parsed += stats.Parsed
			agg.Skipped += stats.Skipped
			agg.Valid += stats.Valid
			agg.Formatted += stats.Formatted
			agg.FormattedBytes += stats.FormattedBytes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Dir: opts.Dir, ElapsedMs: time.Since(start).Milliseconds()}
	for _, stats := range regions {
		report.Files += stats.Files
		report.Lines += stats.Lines
		report.Parsed += stats.Parsed
		report.Skipped += stats.Skipped
		report.Valid += stats.Valid
		report.Formatted += stats.Formatted
		report.FormattedBytes += stats.FormattedBytes
		report.Regions = append(report.Regions, *stats)
	}
	sort.Slice(report.Regions, func(i, j int) bool {
		return report.Regions[i].Region < report.Regions[j].Region
	})
	return report, nil
}

// benchFile parses each non-empty line in region. Lines that fail to parse
// are counted as skipped; the rest are validated and rendered INTERNATIONAL.
func benchFile(ctx context.Context, path, region string) (RegionStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return RegionStats{}, err
	}
	defer f.Close()

	stats := RegionStats{Region: region}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return RegionStats{}, err
		}
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		stats.Lines++

		num, err := phone.ParseInRegion(line, region)
		if err != nil {
			stats.Skipped++
			continue
		}
		stats.Parsed++
		if phone.IsValidNumber(num) {
			stats.Valid++
		}
		if rendered := phone.FormatNumber(num, string(phone.INTERNATIONAL)); rendered != "" {
			stats.Formatted++
			stats.FormattedBytes += len(rendered)
		}
	}
	if err := scanner.Err(); err != nil {
		return RegionStats{}, err
	}
	return stats, nil
}

func writeReport(w io.Writer, report Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return writeText(w, report)
	}
}

func writeText(w io.Writer, report Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\n", report.Dir)
	fmt.Fprintf(&b, "%-8s %6s %10s %10s %10s %10s %10s %10s\n", "REGION", "FILES", "LINES", "PARSED", "SKIPPED", "VALID", "FORMATTED", "BYTES")
	for _, r := range report.Regions {
		fmt.Fprintf(&b, "%-8s %6d %10d %10d %10d %10d %10d %10d\n", r.Region, r.Files, r.Lines, r.Parsed, r.Skipped, r.Valid, r.Formatted, r.FormattedBytes)
	}
	fmt.Fprintf(&b, "%-8s %6d %10d %10d %10d %10d %10d %10d\n", "TOTAL", report.Files, report.Lines, report.Parsed, report.Skipped, report.Valid, report.Formatted, report.FormattedBytes)
	fmt.Fprintf(&b, "Elapsed: %dms\n", report.ElapsedMs)
	_, err := io.WriteString(w, b.String())
	return err
}
