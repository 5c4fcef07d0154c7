package metrics

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/metric"
)

// HostMetrics reports when the filler process started and how long it has been running.
type HostMetrics struct {
	startTime    time.Time
	registration metric.Registration
}

// NewHostMetrics registers the process gauges until the context is cancelled
func NewHostMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*HostMetrics, error) {
	startTimeGauge, err := meter.Int64ObservableGauge(
		"filler.StartTimeSeconds",
		metric.WithDescription("Unix time the filler process started"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	uptimeGauge, err := meter.Float64ObservableGauge(
		"filler.UptimeSeconds",
		metric.WithDescription("Time since the filler process started"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m := &HostMetrics{
		startTime: time.Now(),
	}
	m.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		o.ObserveInt64(startTimeGauge, m.startTime.Unix(), opts)
		o.ObserveFloat64(uptimeGauge, time.Since(m.startTime).Seconds(), opts)
		return nil
	}, startTimeGauge, uptimeGauge)
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := m.registration.Unregister(); err != nil {
			log.Warn().Msgf("Failed unregistering host metrics: %s", err)
		}
	}()
	return m, nil
}
