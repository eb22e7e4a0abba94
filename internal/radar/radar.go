// Package radar composes the source adapters, the keyword scorer and
// the persistence gateway into one bounded scan run.
package radar

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/elp-logistics/market-radar/internal/scoring"
	"github.com/elp-logistics/market-radar/internal/source"
	"github.com/elp-logistics/market-radar/internal/source/headhunter"
	"github.com/elp-logistics/market-radar/internal/storage"
	"github.com/elp-logistics/market-radar/internal/util"
)

// ScanNameJobBoard keys the job-board scan's self-throttle state.
const ScanNameJobBoard = "hh_jobs"

// DefaultHotThreshold is the demand score at which a lead is pushed to
// the operator immediately.
const DefaultHotThreshold = 60

// Gateway is the slice of the persistence store the orchestrator needs.
type Gateway interface {
	IsSeen(ctx context.Context, url string) (bool, error)
	MarkSeen(ctx context.Context, url string) error
	SaveLead(ctx context.Context, lead storage.Lead) (bool, error)
	LastScanTime(ctx context.Context, name string) (time.Time, bool, error)
	SetLastScanTime(ctx context.Context, name string, t time.Time) error
}

// Notifier delivers a hot lead to the operator chat. Fire-and-forget: a
// failure is logged and the run continues.
type Notifier interface {
	NotifyLead(ctx context.Context, lead storage.Lead) error
}

// FeedFetcher fetches one RSS feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]source.Item, error)
}

// SearchProvider is one of the interchangeable web-search backends.
type SearchProvider interface {
	Name() string
	Enabled() bool
	Fetch(ctx context.Context, query string, maxResults int) ([]source.Item, error)
}

// JobBoard is the hh.ru adapter surface consumed by the job phase.
type JobBoard interface {
	ResolveAreas(ctx context.Context) (headhunter.AreaIDs, error)
	FetchQuery(ctx context.Context, query string, areas headhunter.AreaIDs, maxPages int) ([]source.Item, error)
}

// Config holds the per-run tunables.
type Config struct {
	MaxItemsPerRun int
	MaxSendPerRun  int
	HotThreshold   int
	FeedTimeout    time.Duration

	SearchResultsPerQuery int

	JobBoardEnabled  bool
	JobBoardInterval time.Duration
	JobBoardPageCap  int
}

// withDefaults fills unset knobs.
func (c Config) withDefaults() Config {
	if c.MaxItemsPerRun <= 0 {
		c.MaxItemsPerRun = 50
	}
	if c.MaxSendPerRun <= 0 {
		c.MaxSendPerRun = 10
	}
	if c.HotThreshold <= 0 {
		c.HotThreshold = DefaultHotThreshold
	}
	if c.FeedTimeout <= 0 {
		c.FeedTimeout = 20 * time.Second
	}
	if c.SearchResultsPerQuery <= 0 {
		c.SearchResultsPerQuery = 5
	}
	if c.JobBoardInterval <= 0 {
		c.JobBoardInterval = 12 * time.Hour
	}
	if c.JobBoardPageCap <= 0 {
		c.JobBoardPageCap = 5
	}
	return c
}

// Deps aggregates the orchestrator's collaborators.
type Deps struct {
	Scorer        *scoring.Scorer
	Store         Gateway
	Notifier      Notifier
	Feeds         FeedFetcher
	FeedURLs      []string
	Providers     []SearchProvider
	SearchQueries []string
	JobBoard      JobBoard
	JobQueries    []string
	Logger        *zap.Logger
}

// Radar runs the scan-and-score pipeline: fixed phase order (RSS, web
// search, job board) under one global item budget and one send cap.
type Radar struct {
	cfg     Config
	deps    Deps
	allowed map[string]bool
	now     func() time.Time

	// Guards against overlapping runs when the cron trigger and an
	// on-demand scan fire together.
	running sync.Mutex
}

// nopNotifier drops leads; used when no delivery channel is wired, as
// in one-shot CLI scans.
type nopNotifier struct{}

func (nopNotifier) NotifyLead(context.Context, storage.Lead) error { return nil }

func New(cfg Config, deps Deps) *Radar {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	return &Radar{
		cfg:     cfg.withDefaults(),
		deps:    deps,
		allowed: scoring.RSSAllowedSegments(),
		now:     time.Now,
	}
}

// Run executes one scan. Per-source failures degrade to report
// diagnostics; the run itself always completes. At most one run is
// active at a time: a call that finds another run in flight returns
// immediately with a diagnostic instead of doubling the work.
func (r *Radar) Run(ctx context.Context) *Report {
	report := &Report{}
	if !r.running.TryLock() {
		r.deps.Logger.Info("scan already in progress, skipping")
		report.addError("scan already in progress")
		return report
	}
	defer r.running.Unlock()

	started := r.now()

	r.runRSSPhase(ctx, report)
	if r.budgetLeft(report) {
		r.runSearchPhase(ctx, report)
	}
	if r.budgetLeft(report) {
		r.runJobPhase(ctx, report)
	}

	r.deps.Logger.Info("scan finished",
		zap.Int("collected", report.Collected),
		zap.Int("new_leads", report.NewLeads),
		zap.Int("sent", report.Sent),
		zap.Int("feeds_ok", report.FeedsOK),
		zap.Int("feeds_failed", report.FeedsFailed),
		zap.Int("errors", len(report.Errors)),
		zap.Duration("took", r.now().Sub(started)),
	)
	return report
}

func (r *Radar) budgetLeft(report *Report) bool {
	return report.Collected < r.cfg.MaxItemsPerRun
}

func (r *Radar) runRSSPhase(ctx context.Context, report *Report) {
	for _, feedURL := range r.deps.FeedURLs {
		if !r.budgetLeft(report) {
			return
		}

		feedCtx, cancel := context.WithTimeout(ctx, r.cfg.FeedTimeout)
		items, err := r.deps.Feeds.Fetch(feedCtx, feedURL)
		cancel()
		if err != nil {
			report.FeedsFailed++
			report.addError("feed %s: %v", util.TruncateForLog(feedURL, 80), err)
			continue
		}

		report.FeedsOK++
		if len(items) == 0 {
			report.EmptyFeeds++
			continue
		}

		for _, item := range items {
			if !r.budgetLeft(report) {
				break
			}
			r.processItem(ctx, item, report, &report.RSSNew, newsPolicy)
		}
	}
}

func (r *Radar) runSearchPhase(ctx context.Context, report *Report) {
	var active SearchProvider
	for _, p := range r.deps.Providers {
		if !p.Enabled() {
			continue
		}
		if active != nil {
			report.addError("search phase skipped: more than one provider enabled")
			return
		}
		active = p
	}
	if active == nil {
		return
	}

	for _, query := range r.deps.SearchQueries {
		if !r.budgetLeft(report) {
			return
		}
		items, err := active.Fetch(ctx, query, r.cfg.SearchResultsPerQuery)
		if err != nil {
			report.addError("search %s %q: %v", active.Name(), query, err)
			continue
		}
		for _, item := range items {
			if !r.budgetLeft(report) {
				return
			}
			if item.Source == "" {
				item.Source = active.Name()
			}
			r.processItem(ctx, item, report, &report.SearchNew, newsPolicy)
		}
	}
}

func (r *Radar) runJobPhase(ctx context.Context, report *Report) {
	if !r.cfg.JobBoardEnabled {
		report.JobsSkipped = "disabled"
		return
	}
	if r.deps.JobBoard == nil {
		report.JobsSkipped = "no adapter"
		return
	}

	last, ok, err := r.deps.Store.LastScanTime(ctx, ScanNameJobBoard)
	if err != nil {
		report.addError("job-board scan state: %v", err)
		return
	}
	if ok && r.now().Sub(last) < r.cfg.JobBoardInterval {
		report.JobsSkipped = "interval not elapsed"
		return
	}

	// Restart the throttle window regardless of yield.
	defer func() {
		if err := r.deps.Store.SetLastScanTime(ctx, ScanNameJobBoard, r.now()); err != nil {
			report.addError("job-board scan state update: %v", err)
		}
	}()

	areas, err := r.deps.JobBoard.ResolveAreas(ctx)
	if err != nil {
		report.addError("job-board areas: %v", err)
		return
	}

	for _, query := range r.deps.JobQueries {
		if !r.budgetLeft(report) {
			return
		}
		items, err := r.deps.JobBoard.FetchQuery(ctx, query, areas, r.cfg.JobBoardPageCap)
		if err != nil {
			report.addError("job-board %q: %v", query, err)
			continue
		}
		report.JobsFound += len(items)
		for _, item := range items {
			if !r.budgetLeft(report) {
				return
			}
			r.processItem(ctx, item, report, &report.JobsNew, jobPolicy)
		}
	}
}

// itemPolicy varies per-phase handling: news and search items must pass
// the relevance filter, job-board items bypass it and get the score
// floor plus the vacancy bonus.
type itemPolicy int

const (
	newsPolicy itemPolicy = iota
	jobPolicy
)

// jobScoreFloor is the minimum raw score of a job-board lead, applied
// before the vacancy bonus. Vacancies on the watched queries are
// inherently higher-confidence signals than news or search hits.
const jobScoreFloor = 70

func (r *Radar) score(item source.Item, policy itemPolicy) int {
	base := r.deps.Scorer.DemandScore(item.Title, item.Summary)
	if policy != jobPolicy {
		return base
	}
	if base < jobScoreFloor {
		base = jobScoreFloor
	}
	total := base + r.deps.Scorer.VacancyBonus(item.Title+" "+item.Summary)
	return min(total, 100)
}

func (r *Radar) processItem(ctx context.Context, item source.Item, report *Report, phaseNew *int, policy itemPolicy) {
	if item.URL == "" {
		return
	}
	report.Collected++

	seen, err := r.deps.Store.IsSeen(ctx, item.URL)
	if err != nil {
		report.addError("seen check %s: %v", item.URL, err)
		return
	}
	if seen {
		return
	}

	if policy == newsPolicy && !r.relevant(item) {
		if err := r.deps.Store.MarkSeen(ctx, item.URL); err != nil {
			report.addError("mark seen %s: %v", item.URL, err)
		}
		return
	}

	lead := storage.Lead{
		Title:        item.Title,
		URL:          item.URL,
		Published:    item.Published,
		Source:       item.Source,
		Summary:      item.Summary,
		DemandScore:  r.score(item, policy),
		Segment:      r.deps.Scorer.DetectSegment(item.Title, item.Summary),
		Timing:       r.deps.Scorer.DetectTiming(item.Title, item.Summary),
		CompanyGuess: scoring.GuessCompany(item.Title),
	}

	inserted, err := r.deps.Store.SaveLead(ctx, lead)
	if err != nil {
		report.addError("save lead %s: %v", item.URL, err)
		return
	}
	if err := r.deps.Store.MarkSeen(ctx, item.URL); err != nil {
		report.addError("mark seen %s: %v", item.URL, err)
	}
	if !inserted {
		return
	}

	report.NewLeads++
	*phaseNew++
	report.addSample(lead.URL)

	if lead.DemandScore >= r.cfg.HotThreshold && report.Sent < r.cfg.MaxSendPerRun {
		if err := r.deps.Notifier.NotifyLead(ctx, lead); err != nil {
			report.addError("notify %s: %v", lead.URL, err)
			return
		}
		report.Sent++
	}
}

// relevant is the news/search filter: the text must mention the region
// and classify into one of the allow-listed segments.
func (r *Radar) relevant(item source.Item) bool {
	if !r.deps.Scorer.HasRegion(item.Title, item.Summary) {
		return false
	}
	return r.allowed[r.deps.Scorer.DetectSegment(item.Title, item.Summary)]
}
