package dashboard

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/log"
	"fintrack/internal/session"
	"fintrack/internal/storage"
)

// Analysis is the state of the analysis screen.
type Analysis struct {
	Insights  *core.Insights
	UpdatedAt time.Time
	// Cached is set while the insights come from local storage; Stale when
	// that entry is older than the freshness window.
	Cached bool
	Stale  bool

	Monthly []core.MonthPoint
	Daily   []core.DailyAggregate
	// DailyErr is why Daily is empty, if it failed. It never fails the view.
	DailyErr error
}

// CurrentMonth returns the report's month snapshot, or nil.
func (a *Analysis) CurrentMonth() *core.MonthSnapshot {
	if a == nil {
		return nil
	}
	return a.Insights.CurrentMonth()
}

// Paint receives an early state, before the network calls finish.
type Paint func(*Analysis)

type Analyzer struct {
	api    API
	cache  *insights.Cache
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

func NewAnalyzer(client API, cache *insights.Cache, ttl time.Duration, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Discard()
	}
	return &Analyzer{
		api:    client,
		cache:  cache,
		ttl:    ttl,
		logger: logger.WithComponent(log.ComponentDashboard),
		now:    time.Now,
	}
}

// Analysis paints any cached insights first, then always fetches fresh ones,
// rewrites the cache and loads the monthly and daily series. Failing to
// fetch insights or the monthly series fails the view; the returned state
// still holds whatever was loaded. Cache and daily failures are logged only.
func (a *Analyzer) Analysis(ctx context.Context, sess session.Session, paint Paint) (*Analysis, error) {
	view := &Analysis{Monthly: []core.MonthPoint{}, Daily: []core.DailyAggregate{}}

	if cached, ok := a.readCache(ctx); ok {
		view.Insights = cached.insights
		view.UpdatedAt = cached.at
		view.Cached = true
		view.Stale = !cached.fresh
		if paint != nil {
			early := *view
			paint(&early)
		}
	}

	raw, fresh, err := a.api.Insights(ctx, sess)
	if err != nil {
		return view, err
	}
	view.Insights = &fresh
	view.UpdatedAt = a.now()
	view.Cached, view.Stale = false, false
	if a.cache != nil {
		if _, err := a.cache.Write(ctx, raw); err != nil {
			a.logger.WarnContext(ctx, "Insight cache write failed", log.FieldKey, storage.KeyInsightsCache, log.FieldError, err)
		}
	}

	rows, err := a.api.Monthly(ctx, sess)
	if err != nil {
		return view, err
	}
	view.Monthly = core.MonthlySeries(rows)

	txs, err := a.api.Transactions(ctx, sess)
	if err != nil {
		a.logger.WarnContext(ctx, "Daily series unavailable", log.FieldSection, "daily", log.FieldError, err)
		view.DailyErr = err
		return view, nil
	}
	view.Daily = core.AggregateDaily(txs)
	return view, nil
}

type cachedInsights struct {
	insights *core.Insights
	at       time.Time
	fresh    bool
}

func (a *Analyzer) readCache(ctx context.Context) (cachedInsights, bool) {
	if a.cache == nil {
		return cachedInsights{}, false
	}
	entry, err := a.cache.Read(ctx)
	if err != nil {
		if !errors.Is(err, insights.ErrMiss) {
			a.logger.WarnContext(ctx, "Insight cache unreadable", log.FieldError, err)
		}
		return cachedInsights{}, false
	}

	var ins *core.Insights
	if err := entry.Decode(&ins); err != nil {
		a.logger.WarnContext(ctx, "Cached insights do not decode", log.FieldError, err)
		return cachedInsights{}, false
	}
	return cachedInsights{
		insights: ins,
		at:       entry.CapturedAt(),
		fresh:    entry.Fresh(a.now(), a.ttl),
	}, true
}
