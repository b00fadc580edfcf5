package insight

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/telemetry"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// Target is the state container an insight refresh reads from and writes to.
// NextGeneration issues the token a refresh carries; ReplaceInsights must reject any
// token that is no longer the latest issued.
type Target interface {
	Snapshot() []models.Product
	NextGeneration() uint64
	ReplaceInsights(generation uint64, insights []models.Insight) bool
}

// Refresher runs analysis cycles. Analysis is best effort: any collaborator fault
// degrades to an empty insight sequence and is only logged.
type Refresher struct {
	target   Target
	provider AnalysisProvider
	timeout  time.Duration
	inflight atomic.Int32
}

func NewRefresher(target Target, provider AnalysisProvider, timeout time.Duration) *Refresher {
	return &Refresher{target: target, provider: provider, timeout: timeout}
}

// Loading reports whether a refresh is between request and response.
func (r *Refresher) Loading() bool { return r.inflight.Load() > 0 }

// Refresh runs one analysis cycle and reports whether its result was applied. A result is
// not applied when a newer refresh was issued while this one was in flight.
func (r *Refresher) Refresh(ctx context.Context) bool {
	r.inflight.Add(1)
	defer r.inflight.Add(-1)

	generation := r.target.NextGeneration()
	summaries := Summarize(r.target.Snapshot())

	insights, err := r.collect(ctx, generation, summaries)

	if !r.target.ReplaceInsights(generation, insights) {
		telemetry.InsightRefreshes.WithLabelValues("stale").Inc()
		logger.Log.Debug().Uint64("generation", generation).Msg("discarding stale insight response")
		return false
	}
	if err != nil {
		telemetry.InsightRefreshes.WithLabelValues("failed").Inc()
	} else {
		telemetry.InsightRefreshes.WithLabelValues("applied").Inc()
	}
	return true
}

// collect never fails the cycle: on error it returns an empty sequence together with the
// cause, for accounting only.
func (r *Refresher) collect(ctx context.Context, generation uint64, summaries []ProductSummary) ([]models.Insight, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := r.provider.Analyze(ctx, summaries)
	telemetry.CollaboratorLatency.WithLabelValues("analysis").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Log.Warn().Err(err).Uint64("generation", generation).Msg("analysis provider failed, clearing insights")
		return []models.Insight{}, err
	}

	insights, rejected := NormalizeValid(raw)
	for _, rerr := range rejected {
		telemetry.InsightsRejected.Inc()
		logger.Log.Warn().Err(rerr).Uint64("generation", generation).Msg("dropping malformed insight")
	}
	return insights, nil
}

// Trigger starts a refresh without waiting for it. The caller's context is not used
// because the refresh must outlive the request that caused it.
func (r *Refresher) Trigger() {
	go r.Refresh(context.Background())
}

// Debounced returns a trigger that coalesces calls made within wait of each other into
// a single refresh, started wait after the last call.
func (r *Refresher) Debounced(wait time.Duration) func() {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, r.Trigger)
	}
}
