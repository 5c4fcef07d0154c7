// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package bundle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-filler/errs"
)

const DEFAULT_RESUBMIT_BLOCKS = 10

type Relay interface {
	ForwardBundle(ctx context.Context, bundle *Bundle) (uuid.UUID, error)
}

type Metrics interface {
	TrackBundleSubmitted(targetBlock uint64)
	TrackBundleRejected()
}

// Policy decides which future blocks a bundle targets. Blocks equal to one is the
// single-shot policy; larger values resubmit the same transactions for each of the
// consecutive blocks after the current one.
type Policy struct {
	Blocks uint64
}

func SingleShot() Policy {
	return Policy{Blocks: 1}
}

func Resubmit(blocks uint64) Policy {
	if blocks == 0 {
		blocks = DEFAULT_RESUBMIT_BLOCKS
	}
	return Policy{Blocks: blocks}
}

// Submission is the relay acknowledgement of one bundle.
type Submission struct {
	TargetBlock uint64
	BundleID    uuid.UUID
}

type Submitter struct {
	relay   Relay
	policy  Policy
	metrics Metrics
	now     func() time.Time
}

type noopMetrics struct{}

func (noopMetrics) TrackBundleSubmitted(targetBlock uint64) {}
func (noopMetrics) TrackBundleRejected()                    {}

// NewSubmitter creates a submitter. Metrics may be nil.
func NewSubmitter(relay Relay, policy Policy, metrics Metrics) *Submitter {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Submitter{
		relay:   relay,
		policy:  policy,
		metrics: metrics,
		now:     time.Now,
	}
}

// Submit forwards one bundle per targeted block, starting at currentBlock+1. Bundles
// differ only in their target block. Submission stops once the deadline (unix seconds,
// zero for none) passes or the context is done; the bundles acknowledged until then are
// returned. Any subset of the submitted bundles may land.
func (s *Submitter) Submit(
	ctx context.Context,
	txs [][]byte,
	hostTxs [][]byte,
	currentBlock uint64,
	deadline uint64,
) ([]Submission, error) {
	blocks := s.policy.Blocks
	if blocks == 0 {
		blocks = 1
	}

	submissions := make([]Submission, 0, blocks)
	for i := uint64(1); i <= blocks; i++ {
		targetBlock := currentBlock + i
		if err := s.expired(ctx, deadline); err != nil {
			if len(submissions) == 0 {
				return nil, err
			}

			log.Warn().Uint64("targetBlock", targetBlock).Msgf("Stopped bundle resubmission: %s", err)
			return submissions, nil
		}

		bundle := NewBundle(txs, hostTxs, targetBlock)
		log.Info().
			Int("txs", len(bundle.Txs)).
			Int("hostTxs", len(bundle.HostTxs)).
			Uint64("targetBlock", targetBlock).
			Msg("Forwarding bundle to transaction cache")

		id, err := s.relay.ForwardBundle(ctx, bundle)
		if err != nil {
			s.metrics.TrackBundleRejected()
			return submissions, errs.New(errs.RelayRejected, fmt.Errorf("bundle for block %d: %w", targetBlock, err))
		}

		s.metrics.TrackBundleSubmitted(targetBlock)
		log.Info().Str("bundleID", id.String()).Uint64("targetBlock", targetBlock).Msg("Bundle sent to cache")
		submissions = append(submissions, Submission{
			TargetBlock: targetBlock,
			BundleID:    id,
		})
	}

	return submissions, nil
}

func (s *Submitter) expired(ctx context.Context, deadline uint64) error {
	if err := ctx.Err(); err != nil {
		return errs.New(errs.DeadlineExpired, err)
	}
	now := s.now().Unix()
	if deadline != 0 && now >= 0 && uint64(now) >= deadline {
		return errs.Newf(errs.DeadlineExpired, "deadline %d passed", deadline)
	}
	return nil
}
