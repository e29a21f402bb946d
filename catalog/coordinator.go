package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lribeiro/dexview/client"
)

// BatchFetcher loads a slice of records at an absolute list offset.
type BatchFetcher interface {
	FetchBatch(ctx context.Context, offset, limit int) ([]client.Pokemon, error)
}

// Notifier receives the user-visible load events. Background preload
// failures never reach it.
type Notifier interface {
	LoadComplete(region string, count int)
	LoadFailed(err error)
}

// Config tunes batch sizes and the preload cadence. Zero values fall
// back to the defaults the viewer ships with.
type Config struct {
	BatchSize        int           // records per scroll-triggered load
	PreloadBatchSize int           // records per background batch
	PreloadDelay     time.Duration // pause between background batches
	AcceleratedDelay time.Duration // pause while a search is active
	BusyRetry        time.Duration // defer while a scroll load is in flight
	AcceleratedRetry time.Duration // same, while a search is active
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 30
	}
	if c.PreloadBatchSize <= 0 {
		c.PreloadBatchSize = 10
	}
	if c.PreloadDelay <= 0 {
		c.PreloadDelay = 800 * time.Millisecond
	}
	if c.AcceleratedDelay <= 0 {
		c.AcceleratedDelay = 200 * time.Millisecond
	}
	if c.BusyRetry <= 0 {
		c.BusyRetry = time.Second
	}
	if c.AcceleratedRetry <= 0 {
		c.AcceleratedRetry = 200 * time.Millisecond
	}
	return c
}

// State is an observable snapshot of the coordinator.
type State struct {
	Region            Region
	ScrollOffset      int
	PreloadOffset     int
	Total             int
	HasMore           bool
	IsLoadingMore     bool
	IsPreloading      bool
	SearchAccelerated bool
	Filters           Filters
	SortField         SortField
	SortAscending     bool
}

// Coordinator owns the scroll-driven pagination and the background
// preload over a growing record list. Two cursors move independently:
// scrollOffset advances only through LoadMore, preloadOffset only
// through the preload loop, and scrollOffset <= preloadOffset <= total
// holds after every transition.
type Coordinator struct {
	mu       sync.Mutex
	fetcher  BatchFetcher
	notifier Notifier
	logger   *log.Logger
	cfg      Config

	region  Region
	records []client.Pokemon

	scrollOffset  int
	preloadOffset int
	total         int

	hasMore           bool
	loadingMore       bool
	preloading        bool
	searchAccelerated bool

	// generation invalidates in-flight fetches on region change;
	// preloadGen is the liveness token checked by the preload loop.
	generation int
	preloadGen int

	filters       Filters
	sortField     SortField
	sortAscending bool
	groupByType   bool
}

// NewCoordinator creates a coordinator for the given region. notifier
// may be nil.
func NewCoordinator(fetcher BatchFetcher, notifier Notifier, logger *log.Logger, region Region, cfg Config) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		fetcher:       fetcher,
		notifier:      notifier,
		logger:        logger,
		cfg:           cfg.withDefaults(),
		region:        region,
		total:         region.Count,
		hasMore:       true,
		sortField:     SortByID,
		sortAscending: true,
	}
}

// State returns a snapshot of the observable state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Region:            c.region,
		ScrollOffset:      c.scrollOffset,
		PreloadOffset:     c.preloadOffset,
		Total:             c.total,
		HasMore:           c.hasMore,
		IsLoadingMore:     c.loadingMore,
		IsPreloading:      c.preloading,
		SearchAccelerated: c.searchAccelerated,
		Filters:           c.filters,
		SortField:         c.sortField,
		SortAscending:     c.sortAscending,
	}
}

// VisibleList derives the current display list via the projection
// rule.
func (c *Coordinator) VisibleList() []client.Pokemon {
	c.mu.Lock()
	records := c.records
	scroll := c.scrollOffset
	filters := c.filters
	field := c.sortField
	asc := c.sortAscending
	c.mu.Unlock()
	return Project(records, scroll, filters, field, asc)
}

// GroupedList derives the display list split into type sections.
func (c *Coordinator) GroupedList() []Group {
	c.mu.Lock()
	enabled := c.groupByType
	filters := c.filters
	c.mu.Unlock()
	return GroupByPrimaryType(c.VisibleList(), enabled, filters)
}

// ResultCount is the length of the current display list.
func (c *Coordinator) ResultCount() int {
	return len(c.VisibleList())
}

// LoadMore runs one scroll-triggered load. When preload has already
// fetched past the scroll frontier this is a fast path that advances
// scrollOffset without touching the network. A real fetch advances
// both cursors; on failure the error is surfaced through the notifier
// and the cursors stay put so the user can retry by scrolling again.
func (c *Coordinator) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loadingMore || !c.hasMore {
		c.mu.Unlock()
		return nil
	}

	remaining := c.total - c.scrollOffset
	batchLimit := c.cfg.BatchSize
	if remaining < batchLimit {
		batchLimit = remaining
	}
	if batchLimit <= 0 {
		c.hasMore = false
		c.mu.Unlock()
		return nil
	}

	// Fast path: records are already in memory, just surface them.
	if c.scrollOffset < c.preloadOffset {
		next := c.scrollOffset + batchLimit
		if next > c.preloadOffset {
			next = c.preloadOffset
		}
		c.scrollOffset = next
		if c.scrollOffset >= c.total {
			c.hasMore = false
		}
		c.mu.Unlock()
		return nil
	}

	c.loadingMore = true
	gen := c.generation
	offset := c.region.Start - 1 + c.scrollOffset
	c.mu.Unlock()

	batch, err := c.fetcher.FetchBatch(ctx, offset, batchLimit)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// Region changed while the fetch was in flight; drop the result.
		return nil
	}
	c.loadingMore = false

	if err != nil {
		c.logger.Error("batch load failed", "offset", offset, "limit", batchLimit, "error", err)
		if c.notifier != nil {
			c.notifier.LoadFailed(err)
		}
		return err
	}
	if len(batch) == 0 {
		c.hasMore = false
		return nil
	}

	// The preload loop may have appended this very range while our
	// fetch was in flight; its records win and this turns into a late
	// fast path.
	if c.scrollOffset < c.preloadOffset {
		next := c.scrollOffset + len(batch)
		if next > c.preloadOffset {
			next = c.preloadOffset
		}
		c.scrollOffset = next
		if c.scrollOffset >= c.total {
			c.hasMore = false
		}
		return nil
	}

	c.records = append(c.records, batch...)
	c.scrollOffset += len(batch)
	c.preloadOffset += len(batch)

	if c.scrollOffset >= c.total || len(batch) < batchLimit {
		c.hasMore = false
		if c.scrollOffset >= c.total && c.notifier != nil && !c.filters.Active() {
			c.notifier.LoadComplete(c.region.Name, c.scrollOffset)
		}
	}
	return nil
}

// StartPreloading launches the background preload loop if it is not
// already running and there is anything left to fetch.
func (c *Coordinator) StartPreloading() {
	c.mu.Lock()
	if c.preloading || c.preloadOffset >= c.total {
		c.mu.Unlock()
		return
	}
	c.preloading = true
	c.preloadGen++
	gen := c.preloadGen
	c.mu.Unlock()

	go c.preloadLoop(gen)
}

// StopPreloading tells the loop to exit at its next liveness check.
func (c *Coordinator) StopPreloading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preloadGen++
	c.preloading = false
}

// preloadLoop fetches small batches at the preload frontier until the
// region is exhausted, the generation moves on, or a fetch fails.
// While a scroll load is in flight it defers instead of racing it.
// Errors stop the loop silently; preload is a best-effort
// optimization.
func (c *Coordinator) preloadLoop(gen int) {
	for {
		c.mu.Lock()
		if gen != c.preloadGen {
			c.mu.Unlock()
			return
		}
		if c.preloadOffset >= c.total {
			c.preloading = false
			c.mu.Unlock()
			return
		}
		if c.loadingMore {
			retry := c.cfg.BusyRetry
			if c.searchAccelerated {
				retry = c.cfg.AcceleratedRetry
			}
			c.mu.Unlock()
			time.Sleep(retry)
			continue
		}

		remaining := c.total - c.preloadOffset
		batchLimit := c.cfg.PreloadBatchSize
		if remaining < batchLimit {
			batchLimit = remaining
		}
		offset := c.region.Start - 1 + c.preloadOffset
		regionGen := c.generation
		c.mu.Unlock()

		batch, err := c.fetcher.FetchBatch(context.Background(), offset, batchLimit)

		c.mu.Lock()
		if gen != c.preloadGen || regionGen != c.generation {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.preloading = false
			c.mu.Unlock()
			c.logger.Debug("preload stopped", "offset", offset, "error", err)
			return
		}
		if len(batch) == 0 {
			c.preloading = false
			c.mu.Unlock()
			return
		}

		c.records = append(c.records, batch...)
		c.preloadOffset += len(batch)

		if c.preloadOffset >= c.total {
			c.preloading = false
			c.mu.Unlock()
			c.logger.Debug("preload finished", "region", c.region.Key)
			return
		}

		delay := c.cfg.PreloadDelay
		if c.searchAccelerated {
			delay = c.cfg.AcceleratedDelay
		}
		c.mu.Unlock()
		time.Sleep(delay)
	}
}

// SetRegion stops preloading, resets both cursors and the record list,
// and invalidates in-flight fetches from the previous region. The
// caller triggers the first LoadMore of the new region.
func (c *Coordinator) SetRegion(region Region) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.preloadGen++
	c.preloading = false
	c.loadingMore = false

	c.region = region
	c.total = region.Count
	c.records = nil
	c.scrollOffset = 0
	c.preloadOffset = 0
	c.hasMore = true

	c.filters = Filters{}
	c.searchAccelerated = false
}

// SetNameFilter updates the name filter. A non-empty filter engages
// search-accelerated preloading so the projection can see the whole
// region; clearing it drops back to scroll-driven lazy loading.
func (c *Coordinator) SetNameFilter(name string) {
	c.mu.Lock()
	c.filters.Name = name

	if strings.TrimSpace(name) != "" {
		c.searchAccelerated = true
		needPreload := !c.preloading && c.preloadOffset < c.total
		c.mu.Unlock()
		if needPreload {
			c.StartPreloading()
		}
		return
	}

	c.searchAccelerated = false
	c.preloadGen++
	c.preloading = false
	if c.scrollOffset < c.total {
		c.hasMore = true
	}
	c.mu.Unlock()
}

// SetTypeFilter updates the type filter (OR semantics). Activating it
// starts a background preload so counts and matches cover the whole
// region.
func (c *Coordinator) SetTypeFilter(types []string) {
	c.mu.Lock()
	c.filters.Types = types
	needPreload := len(types) > 0 && !c.preloading && c.preloadOffset < c.total
	c.mu.Unlock()
	if needPreload {
		c.StartPreloading()
	}
}

// SetStatFilters updates the hp/weight/height ranges.
func (c *Coordinator) SetStatFilters(hp, weight, height Range) {
	c.mu.Lock()
	c.filters.HP = hp
	c.filters.Weight = weight
	c.filters.Height = height
	needPreload := (hp.Active() || weight.Active() || height.Active()) &&
		!c.preloading && c.preloadOffset < c.total
	c.mu.Unlock()
	if needPreload {
		c.StartPreloading()
	}
}

// SetSort updates the sort order.
func (c *Coordinator) SetSort(field SortField, ascending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortField = field
	c.sortAscending = ascending
}

// SetGroupByType toggles type grouping of the display list.
func (c *Coordinator) SetGroupByType(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groupByType = enabled
}

// ClearFilters resets the filter set, the sort order and grouping, and
// stops accelerated preloading. Scroll-driven loading resumes where it
// left off.
func (c *Coordinator) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filters = Filters{}
	c.sortField = SortByID
	c.sortAscending = true
	c.groupByType = false

	c.searchAccelerated = false
	c.preloadGen++
	c.preloading = false
	if c.scrollOffset < c.total {
		c.hasMore = true
	}
}
