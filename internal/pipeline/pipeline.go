package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/domain"
	"github.com/couchcryptid/sec-shares-service/internal/observability"
)

// publishTimeout bounds a result publish, which outlives the inbound request.
const publishTimeout = 5 * time.Second

// unreachableHold is how long readiness fails after the SEC could not be
// reached.
const unreachableHold = 30 * time.Second

// ConceptFetcher retrieves the shares-outstanding concept for a CIK.
type ConceptFetcher interface {
	CompanyConcept(ctx context.Context, cik string) (domain.CompanyConcept, error)
}

// ResultPublisher forwards completed share ranges downstream.
type ResultPublisher interface {
	Publish(ctx context.Context, r domain.ShareRange) error
}

// Pipeline runs the resolve, fetch, and reduce stages for one lookup.
type Pipeline struct {
	fetcher    ConceptFetcher
	publisher  ResultPublisher
	defaultCIK string
	logger     *slog.Logger
	metrics    *observability.Metrics
	downUntil  atomic.Int64 // unix nanos; zero when the last call reached the SEC
}

// New creates a Pipeline. Pass a nil publisher to disable result publishing.
func New(f ConceptFetcher, pub ResultPublisher, defaultCIK string, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:    f,
		publisher:  pub,
		defaultCIK: defaultCIK,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns an error for a short while after an SEC request
// failed without a response, unless a later request got through.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if until := p.downUntil.Load(); until != 0 && domain.Now().UnixNano() < until {
		return errors.New("sec api unreachable on last request")
	}
	return nil
}

func (p *Pipeline) trackUpstream(err error) {
	if errors.Is(err, domain.ErrUpstream) {
		p.downUntil.Store(domain.Now().Add(unreachableHold).UnixNano())
		return
	}
	p.downUntil.Store(0)
}

// Run looks up the share range for rawCIK, or the default CIK when rawCIK is
// empty. Every failure is returned as a failed Outcome; Run never panics on
// bad input and never retries.
func (p *Pipeline) Run(ctx context.Context, rawCIK string) domain.Outcome {
	cik, err := domain.ResolveCIK(rawCIK, p.defaultCIK)
	if err != nil {
		return p.fail(rawCIK, err)
	}

	concept, err := p.fetcher.CompanyConcept(ctx, cik)
	// A lookup abandoned by its caller says nothing about the SEC.
	if ctx.Err() == nil {
		p.trackUpstream(err)
	}
	if err != nil {
		return p.fail(cik, err)
	}

	r, err := domain.ReduceShares(concept)
	if err != nil {
		return p.fail(cik, err)
	}
	r = domain.Stamp(r, cik)

	p.publish(ctx, r)
	p.metrics.Lookups.WithLabelValues(domain.OutcomeOK.String()).Inc()
	p.logger.Info("share lookup succeeded",
		"cik", cik,
		"entity", r.EntityName,
		"max", r.Max.Val, "max_fy", r.Max.FY,
		"min", r.Min.Val, "min_fy", r.Min.FY,
	)
	return domain.Succeeded(r)
}

func (p *Pipeline) fail(cik string, err error) domain.Outcome {
	o := domain.Failed(cik, err)
	p.metrics.Lookups.WithLabelValues(string(o.Kind)).Inc()
	p.logger.Error("share lookup failed", "error", err, "kind", o.Kind, "cik", cik)
	return o
}

// publish writes r to the publisher, if any. Failures are logged and counted
// but never change the lookup outcome.
func (p *Pipeline) publish(ctx context.Context, r domain.ShareRange) {
	if p.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.publisher.Publish(ctx, r); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("publish share range failed", "error", err, "cik", r.CIK)
		return
	}
	p.metrics.ResultsPublished.Inc()
}
