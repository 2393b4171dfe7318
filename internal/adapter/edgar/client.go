package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/domain"
	"github.com/couchcryptid/sec-shares-service/internal/observability"
)

// conceptPath selects the dei/EntityCommonStockSharesOutstanding concept.
const conceptPath = "/api/xbrl/companyconcept/CIK%s/dei/EntityCommonStockSharesOutstanding.json"

// Client fetches companyconcept documents from the SEC XBRL API.
// It implements pipeline.ConceptFetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an SEC API client. The HTTP client carries no timeout of
// its own; a call ends when the response completes or ctx is done.
func NewClient(baseURL, userAgent string, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		metrics:    metrics,
		logger:     logger,
	}
}

// CompanyConcept fetches the shares-outstanding concept for cik. The caller
// is expected to have validated cik.
func (c *Client) CompanyConcept(ctx context.Context, cik string) (domain.CompanyConcept, error) {
	u := c.baseURL + fmt.Sprintf(conceptPath, cik)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.CompanyConcept{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return domain.CompanyConcept{}, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.metrics.UpstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.CompanyConcept{}, &domain.StatusError{
			Code:   resp.StatusCode,
			Status: statusText(resp),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.CompanyConcept{}, fmt.Errorf("%w: read response: %w", domain.ErrUpstream, err)
	}

	// The whole body must be one JSON document; trailing content is malformed.
	var concept domain.CompanyConcept
	if err := json.Unmarshal(body, &concept); err != nil {
		return domain.CompanyConcept{}, fmt.Errorf("%w: decode response: %w", domain.ErrMalformedResponse, err)
	}

	c.logger.Debug("company concept fetched",
		"cik", cik,
		"entity", concept.EntityName,
		"observations", len(concept.Units.Shares),
		"duration", time.Since(start),
	)
	return concept, nil
}

// statusText returns the reason phrase sent by the server, falling back to
// the standard text for the code.
func statusText(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		return http.StatusText(resp.StatusCode)
	}
	return reason
}
