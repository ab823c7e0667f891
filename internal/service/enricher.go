package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/koya1616/koko-pic/internal/geocoding"
	"github.com/koya1616/koko-pic/internal/metrics"
	"github.com/koya1616/koko-pic/internal/models"
	"github.com/koya1616/koko-pic/internal/repository"
)

// Enricher resolves place names for photo requests that were posted with a
// coordinate but no label, by reverse geocoding them through the configured
// provider. It polls the directory periodically and processes each batch with
// a worker pool.
type Enricher struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	provider     geocoding.Provider   // Geocoding provider for external geocoding services
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval for polling lookup batches
	language     string               // Preferred language for resolved place names
}

// NewEnricher creates a new place name enricher. It takes a logger, a
// repository interface, a geocoding provider, the provider name for metrics,
// metrics for monitoring, the number of workers to use, a polling interval,
// and the preferred result language. It returns a pointer to the newly
// created Enricher.
func NewEnricher(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	language string,
) *Enricher {
	return &Enricher{
		log:          log,
		repo:         repo,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
		language:     language,
	}
}

// Run starts the enricher, which periodically polls for requests missing a
// place name. It listens for a cancellation signal from the context to
// gracefully stop the service.
func (e *Enricher) Run(ctx context.Context) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	e.log.InfoContext(ctx, "Place name enricher started...")

	for {
		select {
		case <-ctx.Done():
			e.log.InfoContext(ctx, "Place name enricher stopped.")
			return
		case <-ticker.C:
			e.log.InfoContext(ctx, "Polling for requests without place name...")
			e.processBatch(ctx)
		}
	}
}

// processBatch fetches requests missing a place name from the repository,
// starts a worker pool to resolve them, and waits for all workers to finish.
// It logs errors if the fetch fails and logs the status of batch processing.
func (e *Enricher) processBatch(ctx context.Context) {
	lookupLimit := 100
	requests, err := e.repo.FetchRequestsForPlaceLookup(ctx, lookupLimit)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to fetch requests", "error", err)
		return
	}
	if len(requests) == 0 {
		e.log.InfoContext(ctx, "No requests to process.")
		return
	}

	e.log.InfoContext(
		ctx,
		"Found requests to process. Starting worker pool.",
		"jobs",
		len(requests),
		"num_workers",
		e.numWorkers,
	)

	jobs := make(chan models.Request, len(requests))
	var wgr sync.WaitGroup

	for i := 1; i <= e.numWorkers; i++ {
		wgr.Add(1)
		go e.worker(ctx, i, &wgr, jobs)
	}

	for _, request := range requests {
		jobs <- request
	}
	close(jobs)

	wgr.Wait()
	e.log.InfoContext(ctx, "Processing batch finished")
}

// worker resolves place names for requests from the jobs channel. It
// increments the active worker count, measures the duration of each reverse
// lookup, and updates the request on success. On error it updates the failure
// count and logs the error. Requests without a coordinate are skipped
// outright; the fetch query should never return them.
func (e *Enricher) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Request) {
	defer wg.Done()
	for request := range jobs {
		if request.Location == nil {
			e.log.WarnContext(ctx, "Skipping request without location", "worker", idx, "request", request.ID)
			continue
		}

		e.metrics.ActiveWorkers.Inc()
		e.log.DebugContext(ctx, "Processing request", "worker", idx, "request", request.ID)

		startTime := time.Now()
		placeName, err := e.provider.Reverse(ctx, *request.Location, e.language)
		duration := time.Since(startTime).Seconds()
		e.metrics.RequestSeconds.WithLabelValues(e.providerName).Observe(duration)

		if err != nil {
			e.log.ErrorContext(ctx, "Failed to reverse geocode", "worker", idx, "request", request.ID, "error", err)
			e.metrics.LookupsProcessed.WithLabelValues("failure").Inc()
			e.metrics.APIErrors.Inc()

			if err = e.repo.IncrementLookupFailure(ctx, request.ID, err.Error()); err != nil {
				e.log.ErrorContext(
					ctx,
					"Could not update failure count for request",
					"worker", idx,
					"request", request.ID,
					"error", err,
				)
			}
			e.metrics.ActiveWorkers.Dec()
			continue
		}

		e.metrics.LookupsProcessed.WithLabelValues("success").Inc()

		if err = e.repo.UpdateRequestPlaceName(ctx, request.ID, placeName); err != nil {
			e.log.ErrorContext(
				ctx,
				"Failed to update place name for request",
				"worker", idx,
				"request", request.ID,
				"error", err,
			)
		} else {
			e.log.DebugContext(ctx, "Worker successfully processed the request", "worker", idx, "request", request.ID)
		}

		e.metrics.ActiveWorkers.Dec()
	}
}
