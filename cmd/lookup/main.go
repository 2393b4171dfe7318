// Command lookup runs a single share range lookup against the SEC API and
// prints the six page fields. It exits non-zero when the lookup fails.
//
// Usage:
//
//	go run ./cmd/lookup -cik 0000320193
//	go run ./cmd/lookup -cik 0000320193 -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/couchcryptid/sec-shares-service/internal/adapter/edgar"
	"github.com/couchcryptid/sec-shares-service/internal/config"
	"github.com/couchcryptid/sec-shares-service/internal/domain"
	"github.com/couchcryptid/sec-shares-service/internal/observability"
	"github.com/couchcryptid/sec-shares-service/internal/pipeline"
	"github.com/couchcryptid/sec-shares-service/internal/view"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

func run(stdout, stderr io.Writer) int {
	cik := flag.String("cik", "", "10-digit CIK (defaults to DEFAULT_CIK)")
	asJSON := flag.Bool("json", false, "print the share range as JSON")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	// Logs share stdout with the result, so only warnings and errors are written.
	logger := sharedobs.NewLogger("warn", cfg.LogFormat)
	metrics := observability.NewMetrics()
	client := edgar.NewClient(cfg.SECBaseURL, cfg.SECUserAgent, metrics, logger)
	p := pipeline.New(client, nil, cfg.DefaultCIK, logger, metrics)

	outcome := p.Run(context.Background(), *cik)

	if *asJSON && outcome.Status == domain.OutcomeOK {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome.Range); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}

	formatter, err := view.NewFormatter(cfg.DisplayLocale)
	if err != nil {
		fmt.Fprintf(stderr, "formatter: %v\n", err)
		return 2
	}
	printPage(stdout, view.Render(outcome, formatter))

	if outcome.Status != domain.OutcomeOK {
		fmt.Fprintf(stderr, "lookup failed (%s): %v\n", outcome.Kind, outcome.Err)
		return 1
	}
	return 0
}

func printPage(w io.Writer, page view.Page) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "title\t%s\n", page.Title)
	fmt.Fprintf(tw, "entity\t%s\n", page.EntityName)
	fmt.Fprintf(tw, "max\t%s\t(FY %s)\n", page.MaxValue, page.MaxFY)
	fmt.Fprintf(tw, "min\t%s\t(FY %s)\n", page.MinValue, page.MinFY)
	_ = tw.Flush()
}
