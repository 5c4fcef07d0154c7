package metrics

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type FillerMetrics struct {
	*HostMetrics

	opts metric.MeasurementOption

	bundlesSubmittedCounter metric.Int64Counter
	bundlesRejectedCounter  metric.Int64Counter
	confirmationHistogram   metric.Float64Histogram
	confirmationTimeouts    metric.Int64Counter
	fillsCounter            metric.Int64Counter
	targetBlockGauge        metric.Int64ObservableGauge

	lastTargetBlock atomic.Uint64
}

// NewFillerMetrics initializes metrics tracking bundle submissions and fill confirmations
func NewFillerMetrics(ctx context.Context, meter metric.Meter, env, relayerID, version string) (*FillerMetrics, error) {
	opts := metric.WithAttributes(
		attribute.String("env", env),
		attribute.String("relayerid", relayerID),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	bundlesSubmittedCounter, err := meter.Int64Counter(
		"filler.BundlesSubmitted",
		metric.WithDescription("Number of bundles forwarded to the relay"),
	)
	if err != nil {
		return nil, err
	}
	bundlesRejectedCounter, err := meter.Int64Counter(
		"filler.BundlesRejected",
		metric.WithDescription("Number of bundles the relay rejected"),
	)
	if err != nil {
		return nil, err
	}
	confirmationHistogram, err := meter.Float64Histogram(
		"filler.ConfirmationTime",
		metric.WithDescription("Seconds between submission and confirmation of a fill transaction"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	confirmationTimeouts, err := meter.Int64Counter(
		"filler.ConfirmationTimeouts",
		metric.WithDescription("Number of fill transactions not confirmed in time"),
	)
	if err != nil {
		return nil, err
	}
	fillsCounter, err := meter.Int64Counter(
		"filler.Fills",
		metric.WithDescription("Number of fill attempts by final state"),
	)
	if err != nil {
		return nil, err
	}

	m := &FillerMetrics{
		HostMetrics:             hostMetrics,
		opts:                    opts,
		bundlesSubmittedCounter: bundlesSubmittedCounter,
		bundlesRejectedCounter:  bundlesRejectedCounter,
		confirmationHistogram:   confirmationHistogram,
		confirmationTimeouts:    confirmationTimeouts,
		fillsCounter:            fillsCounter,
	}
	m.targetBlockGauge, err = meter.Int64ObservableGauge(
		"filler.LastTargetBlock",
		metric.WithDescription("Rollup block targeted by the latest submitted bundle"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			block := m.lastTargetBlock.Load()
			if block == 0 {
				return nil
			}
			// nolint:gosec
			result.Observe(int64(block), opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// TrackBundleSubmitted counts the bundle and keeps the highest block a bundle targeted.
func (m *FillerMetrics) TrackBundleSubmitted(targetBlock uint64) {
	m.bundlesSubmittedCounter.Add(context.Background(), 1, m.opts)
	for {
		last := m.lastTargetBlock.Load()
		if targetBlock <= last || m.lastTargetBlock.CompareAndSwap(last, targetBlock) {
			return
		}
	}
}

func (m *FillerMetrics) TrackBundleRejected() {
	m.bundlesRejectedCounter.Add(context.Background(), 1, m.opts)
}

func (m *FillerMetrics) TrackConfirmation(chainID uint64, duration time.Duration) {
	m.confirmationHistogram.Record(
		context.Background(),
		duration.Seconds(),
		m.opts,
		metric.WithAttributes(attribute.String("chainid", strconv.FormatUint(chainID, 10))))
}

func (m *FillerMetrics) TrackConfirmationTimeout(chainID uint64) {
	m.confirmationTimeouts.Add(
		context.Background(),
		1,
		m.opts,
		metric.WithAttributes(attribute.String("chainid", strconv.FormatUint(chainID, 10))))
}

func (m *FillerMetrics) TrackFill(state string, count int) {
	m.fillsCounter.Add(
		context.Background(),
		int64(count),
		m.opts,
		metric.WithAttributes(attribute.String("state", state)))
}
