package edgar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/domain"
	"github.com/couchcryptid/sec-shares-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCIK           = "0001267238"
	testUserAgent     = "Mozilla/5.0 (test)"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		userAgent:  testUserAgent,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func mockConcept(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "data", "mock", "companyconcept_0001267238.json"))
	require.NoError(t, err)
	return data
}

func TestClient_CompanyConcept_Success(t *testing.T) {
	body := mockConcept(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/xbrl/companyconcept/CIK0001267238/dei/EntityCommonStockSharesOutstanding.json", r.URL.Path)
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	concept, err := c.CompanyConcept(context.Background(), testCIK)
	require.NoError(t, err)

	assert.Equal(t, "ASSURANT, INC.", concept.EntityName)
	assert.JSONEq(t, `"EntityCommonStockSharesOutstanding"`, string(concept.Tag))
	require.Len(t, concept.Units.Shares, 13)

	first := concept.Units.Shares[0]
	assert.Equal(t, domain.FiscalYear("2019"), first.FY)
	assert.JSONEq(t, `"10-Q"`, string(first.Form))
	v, ok := first.Numeric()
	assert.True(t, ok)
	assert.Equal(t, float64(61823474), v)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues("200")))
}

func TestClient_CompanyConcept_TrailingSlashBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/xbrl/companyconcept/CIK0000320193/dei/EntityCommonStockSharesOutstanding.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"entityName":"Apple Inc.","units":{"shares":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", testUserAgent, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	concept, err := c.CompanyConcept(context.Background(), "0000320193")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", concept.EntityName)
}

func TestClient_CompanyConcept_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0"?><Error><Code>NoSuchKey</Code></Error>`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.CompanyConcept(context.Background(), "0000000001")
	require.Error(t, err)

	var statusErr *domain.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "Not Found", statusErr.Status)
	assert.Equal(t, "failed to fetch data: 404 Not Found", err.Error())
	assert.Equal(t, domain.KindTransport, domain.KindOf(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues("404")))
}

func TestClient_CompanyConcept_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CompanyConcept(context.Background(), testCIK)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_CompanyConcept_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, "text/html")
		_, _ = w.Write([]byte(`<html>rate limited</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CompanyConcept(context.Background(), testCIK)
	require.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, domain.KindParse, domain.KindOf(err))
}

func TestClient_CompanyConcept_TrailingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"entityName":"X","units":{"shares":[{"val":5,"fy":2022}]}}<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CompanyConcept(context.Background(), testCIK)
	require.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, domain.KindParse, domain.KindOf(err))
}

func TestClient_CompanyConcept_UnusedFieldsAnyType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"cik":1267238,"label":null,"tag":["x"],"entityName":"X",` +
			`"units":{"shares":[{"val":5,"fy":2022,"fp":1,"form":{"a":1},"end":false,"accn":7}]}}`))
	}))
	defer srv.Close()

	concept, err := testClient(srv.URL).CompanyConcept(context.Background(), testCIK)
	require.NoError(t, err)

	r, err := domain.ReduceShares(concept)
	require.NoError(t, err)
	assert.Equal(t, "X", r.EntityName)
	assert.Equal(t, domain.SharePoint{Val: 5, FY: "2022"}, r.Max)
}

func TestClient_CompanyConcept_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := testClient(baseURL)
	_, err := c.CompanyConcept(context.Background(), testCIK)
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, domain.KindTransport, domain.KindOf(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues("error")))
}

func TestClient_CompanyConcept_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(srv.URL).CompanyConcept(ctx, testCIK)
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_NoTimeout(t *testing.T) {
	c := NewClient("https://data.sec.gov/", testUserAgent, observability.NewMetricsForTesting(), slog.Default())
	assert.Zero(t, c.httpClient.Timeout)
	assert.Equal(t, "https://data.sec.gov", c.baseURL)
}
