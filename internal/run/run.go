package run

import (
	"context"
	"log"
	"sync"
	"time"

	"internwatch/internal/classify"
	"internwatch/internal/domain"
	"internwatch/internal/resolve"
	"internwatch/internal/scrape"
)

// Resolver is the source-resolution dependency; satisfied by
// resolve.Resolver and by fakes in tests.
type Resolver interface {
	Resolve(ctx context.Context, co domain.Company) resolve.CareerSource
}

// Pipeline fans a batch of companies across a bounded worker pool. Each
// worker runs one company's resolve -> extract -> classify chain to
// completion; results merge through a channel as companies finish, in no
// particular order.
type Pipeline struct {
	Resolver   Resolver
	Registry   *scrape.Registry
	Classifier *classify.Classifier
	Workers    int
	// CompanyTimeout bounds one company's whole chain. Individual
	// network calls carry their own shorter timeouts.
	CompanyTimeout time.Duration
}

// Run processes every company and merges the classified postings. A
// failing or panicking company contributes an empty result; the batch
// always completes.
func (p *Pipeline) Run(ctx context.Context, companies []domain.Company) []domain.ClassifiedPosting {
	workers := p.Workers
	if workers <= 0 {
		workers = 30
	}
	if workers > len(companies) {
		workers = len(companies)
	}

	workCh := make(chan domain.Company)
	resultCh := make(chan []domain.ClassifiedPosting, len(companies))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for co := range workCh {
				resultCh <- p.runCompany(ctx, co)
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, co := range companies {
			select {
			case <-ctx.Done():
				return
			case workCh <- co:
			}
		}
	}()

	wg.Wait()
	close(resultCh)

	var out []domain.ClassifiedPosting
	for batch := range resultCh {
		out = append(out, batch...)
	}
	return out
}

// runCompany executes one company's full chain. Panics are swallowed here
// so a single bad page can never abort the batch.
func (p *Pipeline) runCompany(ctx context.Context, co domain.Company) (out []domain.ClassifiedPosting) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[run] company=%q panic: %v", co.Name, r)
			out = nil
		}
	}()

	if p.CompanyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.CompanyTimeout)
		defer cancel()
	}

	src := p.Resolver.Resolve(ctx, co)
	if !src.Verified {
		log.Printf("[run] company=%q no career source found", co.Name)
		return nil
	}

	ex := p.Registry.For(src.Platform)
	postings := ex.Extract(ctx, src.URL, co.Name)

	for _, raw := range postings {
		ok, reason := p.Classifier.Classify(raw)
		if !ok {
			log.Printf("[%s] skipped (%s) company=%q title=%q", ex.Name(), reason, co.Name, raw.Title)
			continue
		}
		out = append(out, domain.ClassifiedPosting{
			RawPosting: raw,
			ID:         raw.Fingerprint(),
		})
	}

	if len(out) > 0 {
		log.Printf("[run] company=%q platform=%s postings=%d", co.Name, src.Platform, len(out))
	}
	return out
}
