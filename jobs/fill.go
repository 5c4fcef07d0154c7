package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-filler/cache"
	"github.com/sprintertech/sprinter-filler/filler"
	"github.com/sprintertech/sprinter-filler/orders"
)

const DEFAULT_POLL_INTERVAL = 5 * time.Second

type OrderFiller interface {
	GetOrders(ctx context.Context) ([]orders.SignedOrder, error)
	FillWith(ctx context.Context, strategy filler.Strategy, os []orders.SignedOrder) ([]*filler.Result, error)
}

type OrderFilter interface {
	Filter(os []orders.SignedOrder) []orders.SignedOrder
}

type FillMetrics interface {
	TrackFill(state string, count int)
}

type FillJob struct {
	filler   OrderFiller
	filter   OrderFilter
	cache    *cache.FillCache
	metrics  FillMetrics
	strategy filler.Strategy
	interval time.Duration

	// held from the pending check until the attempt is recorded so an order is
	// never submitted twice
	fillLock sync.Mutex
}

func NewFillJob(
	f OrderFiller,
	filter OrderFilter,
	c *cache.FillCache,
	metrics FillMetrics,
	strategy filler.Strategy,
	interval time.Duration,
) *FillJob {
	if interval <= 0 {
		interval = DEFAULT_POLL_INTERVAL
	}

	return &FillJob{
		filler:   f,
		filter:   filter,
		cache:    c,
		metrics:  metrics,
		strategy: strategy,
		interval: interval,
	}
}

// Start polls the transaction cache every interval and fills the pending orders
// until the context is cancelled.
func (j *FillJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Info().Str("strategy", string(j.strategy)).Msgf("Started fill job with interval %s", j.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		err := j.Poll(ctx)
		if err != nil {
			log.Warn().Msgf("Fill job poll failed: %s", err)
		}
	}
}

// Poll fills every order of the transaction cache that was not attempted yet,
// has not expired and passes the order filter.
func (j *FillJob) Poll(ctx context.Context) error {
	j.fillLock.Lock()
	defer j.fillLock.Unlock()

	os, err := j.PendingOrders(ctx)
	if err != nil {
		return err
	}

	if j.filter != nil {
		os = j.filter.Filter(os)
	}
	if len(os) == 0 {
		log.Debug().Msg("No orders to fill")
		return nil
	}

	_, err = j.fill(ctx, os)
	return err
}

// PendingOrders lists the orders of the transaction cache that are neither expired
// nor already filled.
func (j *FillJob) PendingOrders(ctx context.Context) ([]orders.SignedOrder, error) {
	os, err := j.filler.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed fetching orders: %w", err)
	}

	// nolint:gosec
	now := uint64(time.Now().Unix())
	pending := make([]orders.SignedOrder, 0, len(os))
	for _, o := range os {
		if o.Expired(now) || !j.cache.Pending(o.ID()) {
			continue
		}
		pending = append(pending, o)
	}
	return pending, nil
}

// FillOrders fills the pending orders with the given ids right away, bypassing the
// order filter.
func (j *FillJob) FillOrders(ctx context.Context, ids []common.Hash) ([]cache.FillStatus, error) {
	j.fillLock.Lock()
	defer j.fillLock.Unlock()

	pending, err := j.PendingOrders(ctx)
	if err != nil {
		return nil, err
	}

	os := make([]orders.SignedOrder, 0, len(ids))
	for _, id := range ids {
		for _, o := range pending {
			if o.ID() == id {
				os = append(os, o)
				break
			}
		}
	}
	if len(os) == 0 {
		return nil, fmt.Errorf("no pending orders with the given ids")
	}

	results, err := j.fill(ctx, os)
	if len(results) == 0 {
		return nil, err
	}

	statuses := make([]cache.FillStatus, 0, len(os))
	for _, result := range results {
		for _, id := range result.Orders {
			status, _ := j.cache.Status(id)
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

// fill must be called with fillLock held.
func (j *FillJob) fill(ctx context.Context, os []orders.SignedOrder) ([]*filler.Result, error) {
	results, err := j.filler.FillWith(ctx, j.strategy, os)
	for _, result := range results {
		if result == nil {
			continue
		}
		j.record(result)
	}
	return results, err
}

func (j *FillJob) record(result *filler.Result) {
	status := cache.FillStatus{
		State:    result.State.String(),
		Deadline: result.Deadline,
	}
	if result.State == filler.Failed {
		status.FailedAt = result.FailedAt.String()
	}
	if result.Err != nil {
		status.Error = result.Err.Error()
	}
	for _, s := range result.Submissions {
		status.Bundles = append(status.Bundles, s.BundleID.String())
		status.TargetBlock = s.TargetBlock
	}
	for _, tx := range result.RollupTxs {
		status.RollupTxs = append(status.RollupTxs, tx.Hash)
	}
	for _, tx := range result.HostTxs {
		status.HostTxs = append(status.HostTxs, tx.Hash)
	}

	for _, id := range result.Orders {
		status.OrderID = id
		j.cache.Set(status)
	}

	if j.metrics != nil {
		j.metrics.TrackFill(status.State, len(result.Orders))
	}
}
