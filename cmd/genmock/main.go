// Command genmock downloads a live companyconcept document from the SEC API
// and writes it as a test fixture. It runs the fixture through the domain
// package and prints the resulting share range so the expected test values
// can be checked by eye.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -cik 0001267238 \
//	  -out data/mock/companyconcept_0001267238.json
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/domain"
)

const (
	conceptURL = "https://data.sec.gov/api/xbrl/companyconcept/CIK%s/dei/EntityCommonStockSharesOutstanding.json"
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cik := flag.String("cik", domain.DefaultCIK, "10-digit CIK to download")
	out := flag.String("out", "", "output path for the fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := domain.ValidateCIK(*cik); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw, err := download(ctx, *cik)
	if err != nil {
		return fmt.Errorf("download %s: %w", *cik, err)
	}

	var concept domain.CompanyConcept
	if err := json.Unmarshal(raw, &concept); err != nil {
		return fmt.Errorf("decode fixture: %w", err)
	}
	log.Printf("%s: %d share observations", concept.EntityName, len(concept.Units.Shares))

	if err := writeFixture(*out, raw); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	r, err := domain.ReduceShares(concept)
	if err != nil {
		log.Printf("reduce: %v", err)
		return nil
	}
	log.Printf("max: %.0f (FY %s)", r.Max.Val, r.Max.FY)
	log.Printf("min: %.0f (FY %s)", r.Min.Val, r.Min.FY)
	return nil
}

func download(ctx context.Context, cik string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(conceptURL, cik), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}
	return io.ReadAll(resp.Body)
}

func writeFixture(path string, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
