package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/softscan/internal/report"
	"github.com/pdiddy/softscan/internal/scan"
	"github.com/pdiddy/softscan/internal/secrets"
	"github.com/pdiddy/softscan/internal/store"
	"github.com/pdiddy/softscan/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "softscan/0.1"
	defaultDBPath    = "softscan.db"
)

var scanCmd = &cobra.Command{
	Use:   "scan [pmcids...]",
	Short: "Scan PMC articles for statistical-software mentions",
	Long: `Scan fetches each article's open-access full text from Europe PMC,
extracts its readable content, and reports which statistical-software
packages it mentions. Identifiers may be given as separate arguments or as
comma/newline-separated lists; at most 20 are processed per batch.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	scanCmd.Flags().Duration("delay", 0, "minimum interval between fetches (default 200ms)")
	scanCmd.Flags().Int("concurrency", 1, "items processed in parallel (1-5)")
	scanCmd.Flags().Bool("save", false, "persist this run to the history database")
	scanCmd.Flags().String("db", defaultDBPath, "history database file")
	scanCmd.Flags().String("output", "", "write the batch result to a YAML file")
	scanCmd.Flags().Bool("no-color", false, "disable colored software names")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ids := splitIdentifiers(args)
	if len(ids) == 0 {
		return fmt.Errorf("provide one or more PMC identifiers (e.g. PMC7096066)")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = scan.DefaultFetchDelay
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	userAgent := defaultUserAgent
	if email := secretDefault(secrets.KeyContactEmail, ""); email != "" {
		userAgent = fmt.Sprintf("%s (mailto:%s)", userAgent, email)
	}

	cfg := types.ScanConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		FetchDelay:  delay,
		Concurrency: concurrency,
		MaxBatch:    scan.DefaultMaxBatch,
	}

	if len(ids) > cfg.MaxBatch {
		fmt.Fprintf(os.Stderr, "warning: %d identifiers given, processing the first %d\n",
			len(ids), cfg.MaxBatch)
		ids = ids[:cfg.MaxBatch]
	}

	runner := &scan.Runner{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}

	result := runner.Run(cmd.Context(), ids, os.Stderr)

	noColor, _ := cmd.Flags().GetBool("no-color")
	fmt.Println()
	report.WriteTable(os.Stdout, result, !noColor)
	fmt.Println()
	report.WriteSummary(os.Stdout, report.Summarize(result))

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := writeYAML(result, outPath); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote", outPath)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		dbPath, _ := cmd.Flags().GetString("db")
		s, err := store.Open(types.StoreConfig{DBPath: dbPath})
		if err != nil {
			return err
		}
		defer s.Close()

		runID, err := s.SaveRun(result)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run %d to %s\n", runID, dbPath)
	}

	return nil
}

// splitIdentifiers flattens the argument list: each argument may carry
// several identifiers separated by commas or newlines. Blanks are
// dropped and duplicates removed, preserving first-seen order.
func splitIdentifiers(args []string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, arg := range args {
		for _, part := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == '\n'
		}) {
			id := strings.TrimSpace(part)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func writeYAML(result types.BatchResult, path string) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
