package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
)

const (
	// FILL_STATUS_TTL is how long a status is kept after the order deadline passed.
	FILL_STATUS_TTL = time.Minute * 10

	FAILED_STATE = "Failed"
)

type FillStatus struct {
	OrderID     common.Hash   `json:"orderId"`
	State       string        `json:"state"`
	FailedAt    string        `json:"failedAt,omitempty"`
	Error       string        `json:"error,omitempty"`
	Deadline    uint64        `json:"deadline"`
	Bundles     []string      `json:"bundles,omitempty"`
	RollupTxs   []common.Hash `json:"rollupTxs,omitempty"`
	HostTxs     []common.Hash `json:"hostTxs,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	TargetBlock uint64        `json:"targetBlock,omitempty"`
}

func (s FillStatus) Failed() bool {
	return s.State == FAILED_STATE
}

// FillCache remembers the status of every fill attempt per order until the order
// deadline passes.
type FillCache struct {
	statusCache *ttlcache.Cache[common.Hash, FillStatus]
}

func NewFillCache(ctx context.Context) *FillCache {
	cache := ttlcache.New(
		ttlcache.WithTTL[common.Hash, FillStatus](FILL_STATUS_TTL),
		ttlcache.WithDisableTouchOnHit[common.Hash, FillStatus](),
	)

	fc := &FillCache{
		statusCache: cache,
	}

	go cache.Start()
	go fc.watch(ctx)
	return fc
}

// Set stores the status of the order until its deadline plus FILL_STATUS_TTL.
func (c *FillCache) Set(status FillStatus) {
	ttl := FILL_STATUS_TTL
	if status.Deadline != 0 {
		// nolint:gosec
		untilDeadline := time.Until(time.Unix(int64(status.Deadline), 0))
		if untilDeadline > 0 {
			ttl += untilDeadline
		}
	}

	status.UpdatedAt = time.Now()
	c.statusCache.Set(status.OrderID, status, ttl)
	log.Debug().Str("orderID", status.OrderID.Hex()).Str("state", status.State).Msgf("Stored fill status")
}

func (c *FillCache) Status(id common.Hash) (FillStatus, error) {
	status := c.statusCache.Get(id)
	if status == nil {
		return FillStatus{}, fmt.Errorf("no fill status found for order %s", id.Hex())
	}

	return status.Value(), nil
}

// Pending reports whether the order has not been attempted yet or its last
// attempt failed.
func (c *FillCache) Pending(id common.Hash) bool {
	status, err := c.Status(id)
	if err != nil {
		return true
	}

	return status.Failed()
}

func (c *FillCache) Len() int {
	return c.statusCache.Len()
}

func (c *FillCache) watch(ctx context.Context) {
	<-ctx.Done()
	c.statusCache.Stop()
}
