package filler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/sprintertech/sprinter-filler/errs"
)

const (
	DEFAULT_CONFIRMATION_TIMEOUT = 300 * time.Second
	DEFAULT_POLL_INTERVAL        = 2 * time.Second
)

type ConfirmationMetrics interface {
	TrackConfirmation(chainID uint64, duration time.Duration)
	TrackConfirmationTimeout(chainID uint64)
}

type noopMetrics struct{}

func (noopMetrics) TrackConfirmation(chainID uint64, duration time.Duration) {}
func (noopMetrics) TrackConfirmationTimeout(chainID uint64)                  {}

// Watch is a transaction expected to land on a chain.
type Watch struct {
	ChainID uint64
	Hash    common.Hash
}

type WatchResult struct {
	Watch
	Receipt *types.Receipt
	Err     error

	// position of the watch among all watches in the order they settled
	settled int64
}

type Watcher struct {
	clients          map[uint64]ChainClient
	metrics          ConfirmationMetrics
	timeout          time.Duration
	minConfirmations uint64
	pollInterval     time.Duration
}

func NewWatcher(
	clients map[uint64]ChainClient,
	metrics ConfirmationMetrics,
	timeout time.Duration,
	minConfirmations uint64,
	pollInterval time.Duration,
) *Watcher {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if timeout == 0 {
		timeout = DEFAULT_CONFIRMATION_TIMEOUT
	}
	if minConfirmations == 0 {
		minConfirmations = 1
	}
	if pollInterval == 0 {
		pollInterval = DEFAULT_POLL_INTERVAL
	}

	return &Watcher{
		clients:          clients,
		metrics:          metrics,
		timeout:          timeout,
		minConfirmations: minConfirmations,
		pollInterval:     pollInterval,
	}
}

// WaitForConfirmations watches all transactions concurrently and returns once every
// watch settled. The result of each watch is returned in input order. The error is the
// one of the first watch to time out or, without timeouts, of the first failed watch.
func (w *Watcher) WaitForConfirmations(ctx context.Context, watches []Watch) ([]WatchResult, error) {
	results := make([]WatchResult, len(watches))
	var settled atomic.Int64
	p := pool.New()
	for i, watch := range watches {
		p.Go(func() {
			receipt, err := w.WaitForConfirmation(ctx, watch)
			results[i] = WatchResult{
				Watch:   watch,
				Receipt: receipt,
				Err:     err,
				settled: settled.Add(1),
			}
		})
	}
	p.Wait()

	var firstErr error
	var firstTimeout *WatchResult
	for i, r := range results {
		if r.Err != nil {
			log.Warn().Uint64("chainID", r.ChainID).Str("txHash", r.Hash.Hex()).Msgf("Transaction not confirmed: %s", r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			if errs.KindOf(r.Err) == errs.ConfirmationTimeout && (firstTimeout == nil || r.settled < firstTimeout.settled) {
				firstTimeout = &results[i]
			}
			continue
		}

		log.Info().Uint64("chainID", r.ChainID).Str("txHash", r.Hash.Hex()).Msgf("Transaction confirmed in block %s", r.Receipt.BlockNumber)
	}
	if firstTimeout != nil {
		return results, firstTimeout.Err
	}
	return results, firstErr
}

// WaitForConfirmation blocks until the transaction has the minimal number of
// confirmations or the timeout passes.
func (w *Watcher) WaitForConfirmation(ctx context.Context, watch Watch) (*types.Receipt, error) {
	client, ok := w.clients[watch.ChainID]
	if !ok {
		return nil, errs.ForTx(errs.UnknownChain, watch.ChainID, watch.Hash, fmt.Errorf("no client for chain"))
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	for {
		receipt, err := w.confirmedReceipt(ctx, client, watch.Hash)
		if err != nil {
			return nil, errs.ForTx(errs.ConfirmationError, watch.ChainID, watch.Hash, err)
		}
		if receipt != nil {
			w.metrics.TrackConfirmation(watch.ChainID, time.Since(start))
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			w.metrics.TrackConfirmationTimeout(watch.ChainID)
			return nil, errs.ForTx(
				errs.ConfirmationTimeout,
				watch.ChainID,
				watch.Hash,
				fmt.Errorf("timed out waiting for confirmations: %w", ctx.Err()))
		case <-time.After(w.pollInterval):
		}
	}
}

// confirmedReceipt returns nil without an error while the transaction is pending or
// not yet deep enough.
func (w *Watcher) confirmedReceipt(ctx context.Context, client ChainClient, hash common.Hash) (*types.Receipt, error) {
	receipt, err := client.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) || (err == nil && receipt == nil) {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil
		}
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction reverted in block %s", receipt.BlockNumber)
	}

	latest, err := client.LatestBlock(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil
		}
		log.Warn().Str("txHash", hash.Hex()).Msgf("Error fetching current block: %v", err)
		return nil, nil
	}

	receiptBlock := receipt.BlockNumber.Uint64()
	if latest < receiptBlock || latest-receiptBlock+1 < w.minConfirmations {
		log.Debug().Str("txHash", hash.Hex()).Msgf("Waiting for %d confirmations", w.minConfirmations)
		return nil, nil
	}
	return receipt, nil
}
