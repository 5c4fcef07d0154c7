// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package filler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-filler/bundle"
	"github.com/sprintertech/sprinter-filler/chains/evm/calls/events"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
	"github.com/sprintertech/sprinter-filler/errs"
	"github.com/sprintertech/sprinter-filler/orders"
)

type Strategy string

const (
	// IndividualStrategy submits one bundle per order so a failing order does not
	// block the others.
	IndividualStrategy Strategy = "individual"
	// AggregateStrategy fills all orders with one aggregate fill in a single bundle.
	AggregateStrategy Strategy = "aggregate"
)

type State int

const (
	Aggregating State = iota
	Signing
	Sequencing
	Encoding
	Submitting
	Submitted
	Confirming
	Confirmed
	Failed
)

var stateNames = []string{"Aggregating", "Signing", "Sequencing", "Encoding", "Submitting", "Submitted", "Confirming", "Confirmed", "Failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type OrderSource interface {
	GetOrders(ctx context.Context) ([]orders.SignedOrder, error)
}

type BundleSubmitter interface {
	Submit(ctx context.Context, txs [][]byte, hostTxs [][]byte, currentBlock uint64, deadline uint64) ([]bundle.Submission, error)
}

// Result describes a fill attempt. Fields are populated up to the state the attempt
// reached.
type Result struct {
	Orders        []common.Hash
	State         State
	FailedAt      State
	Deadline      uint64
	RollupTxs     []SignedTx
	HostTxs       []SignedTx
	Submissions   []bundle.Submission
	Confirmations []WatchResult
	FilledEvents  int
	OrderEvents   int
	Err           error
}

type Filler struct {
	signer    signer.Signer
	source    OrderSource
	submitter BundleSubmitter
	sequencer *Sequencer
	encoder   *Encoder
	watcher   *Watcher
	rollup    ChainClient
	host      ChainClient
	contracts map[uint64]orders.ChainContracts

	waitForConfirmations bool
}

func NewFiller(
	s signer.Signer,
	source OrderSource,
	submitter BundleSubmitter,
	sequencer *Sequencer,
	encoder *Encoder,
	watcher *Watcher,
	rollup ChainClient,
	host ChainClient,
	contracts map[uint64]orders.ChainContracts,
	waitForConfirmations bool,
) *Filler {
	return &Filler{
		signer:               s,
		source:               source,
		submitter:            submitter,
		sequencer:            sequencer,
		encoder:              encoder,
		watcher:              watcher,
		rollup:               rollup,
		host:                 host,
		contracts:            contracts,
		waitForConfirmations: waitForConfirmations,
	}
}

// GetOrders lists the pending orders of the transaction cache.
func (f *Filler) GetOrders(ctx context.Context) ([]orders.SignedOrder, error) {
	return f.source.GetOrders(ctx)
}

// AwaitOrder polls the transaction cache every interval until the target order is
// listed and returns the cached orders matching it.
func (f *Filler) AwaitOrder(ctx context.Context, target *orders.SignedOrder, interval time.Duration) ([]orders.SignedOrder, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		os, err := f.source.GetOrders(ctx)
		if err != nil {
			log.Warn().Str("order", target.ID().Hex()).Msgf("Failed fetching orders: %s", err)
		} else if retained := orders.Retain(os, target); len(retained) > 0 {
			return retained, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("order %s not listed: %w", target.ID().Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// FillWith fills the orders with the given strategy.
func (f *Filler) FillWith(ctx context.Context, strategy Strategy, os []orders.SignedOrder) ([]*Result, error) {
	switch strategy {
	case AggregateStrategy:
		result, err := f.Fill(ctx, os)
		return []*Result{result}, err
	case IndividualStrategy, "":
		return f.FillIndividually(ctx, os)
	default:
		return nil, fmt.Errorf("unknown fill strategy %s", strategy)
	}
}

// FillIndividually submits one bundle per order. Every order is attempted; the errors
// of the failed attempts are joined.
func (f *Filler) FillIndividually(ctx context.Context, os []orders.SignedOrder) ([]*Result, error) {
	if len(os) == 0 {
		return nil, errs.New(errs.EmptyOrderSet, fmt.Errorf("no orders to fill"))
	}

	log.Debug().Int("orders", len(os)).Msg("Filling orders individually")
	results := make([]*Result, len(os))
	failures := make([]error, 0)
	for i := range os {
		result, err := f.Fill(ctx, os[i:i+1])
		results[i] = result
		if err != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", os[i].ID().Hex(), err))
		}
	}
	return results, errors.Join(failures...)
}

// Fill fills the orders with one aggregate fill per chain in a single bundle. If any
// order cannot be filled none of them are.
func (f *Filler) Fill(ctx context.Context, os []orders.SignedOrder) (*Result, error) {
	result := &Result{
		Orders: make([]common.Hash, len(os)),
		State:  Aggregating,
	}
	for i := range os {
		result.Orders[i] = os[i].ID()
	}
	l := log.With().Int("orders", len(os)).Logger()
	l.Info().Msg("Filling orders in bundle")

	err := f.fill(ctx, l, os, result)
	if err != nil {
		l.Warn().Str("state", result.State.String()).Msgf("Fill failed: %s", err)
		result.FailedAt = result.State
		result.State = Failed
		result.Err = err
		return result, err
	}
	return result, nil
}

func (f *Filler) fill(ctx context.Context, l zerolog.Logger, os []orders.SignedOrder, result *Result) error {
	agg, err := orders.Aggregate(os)
	if err != nil {
		return err
	}
	deadline, err := orders.FillDeadline(os)
	if err != nil {
		return err
	}
	result.Deadline = deadline
	now := time.Now().Unix()
	if now >= 0 && uint64(now) >= deadline {
		return errs.Newf(errs.DeadlineExpired, "fill deadline %d passed", deadline)
	}
	for _, chainID := range agg.ChainIDs() {
		if chainID != f.rollup.ChainID() && chainID != f.host.ChainID() {
			return errs.ForChain(errs.UnknownChain, chainID, fmt.Errorf("orders output to unsupported chain"))
		}
	}

	f.transition(l, result, Signing)
	fills, err := orders.NewUnsignedFill(agg).
		WithDeadline(deadline).
		WithChains(f.contracts).
		Sign(ctx, f.signer)
	if err != nil {
		return err
	}

	f.transition(l, result, Sequencing)
	rollupRequests, err := f.sequencer.RollupRequests(fills, os)
	if err != nil {
		return err
	}
	hostRequests, err := f.sequencer.HostRequests(fills)
	if err != nil {
		return err
	}

	f.transition(l, result, Encoding)
	result.RollupTxs, err = f.encoder.Encode(ctx, f.rollup, rollupRequests)
	if err != nil {
		return err
	}
	result.HostTxs, err = f.encoder.Encode(ctx, f.host, hostRequests)
	if err != nil {
		return err
	}

	f.transition(l, result, Submitting)
	currentBlock, err := f.rollup.LatestBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed fetching rollup block: %w", err)
	}
	result.Submissions, err = f.submitter.Submit(ctx, RawTxs(result.RollupTxs), RawTxs(result.HostTxs), currentBlock, deadline)
	if err != nil {
		return err
	}

	if !f.waitForConfirmations {
		f.transition(l, result, Submitted)
		return nil
	}

	f.transition(l, result, Confirming)
	watches := make([]Watch, 0, len(result.RollupTxs)+len(result.HostTxs))
	for _, tx := range append(append([]SignedTx{}, result.RollupTxs...), result.HostTxs...) {
		watches = append(watches, Watch{ChainID: tx.ChainID, Hash: tx.Hash})
	}
	result.Confirmations, err = f.watcher.WaitForConfirmations(ctx, watches)
	if err != nil {
		return err
	}
	for _, c := range result.Confirmations {
		contract := f.contracts[c.ChainID].Orders
		result.FilledEvents += events.CountEvents(c.Receipt, contract, events.FilledSig)
		result.OrderEvents += events.CountEvents(c.Receipt, contract, events.OrderSig)
	}
	l.Info().Int("filled", result.FilledEvents).Int("initiated", result.OrderEvents).Msg("Fill confirmed")

	f.transition(l, result, Confirmed)
	return nil
}

func (f *Filler) transition(l zerolog.Logger, result *Result, state State) {
	l.Debug().Str("from", result.State.String()).Str("to", state.String()).Msg("Fill state transition")
	result.State = state
}
