package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/sprintertech/sprinter-filler/metrics"
	"github.com/stretchr/testify/suite"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type FillerMetricsTestSuite struct {
	suite.Suite

	reader  sdkmetric.Reader
	metrics *metrics.FillerMetrics
}

func TestRunFillerMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(FillerMetricsTestSuite))
}

func (s *FillerMetricsTestSuite) SetupTest() {
	s.reader = sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))

	m, err := metrics.NewFillerMetrics(context.Background(), provider.Meter("test"), "test", "filler", "0.0.1")
	s.Nil(err)
	s.metrics = m
}

func (s *FillerMetricsTestSuite) collect() map[string]metricdata.Aggregation {
	var rm metricdata.ResourceMetrics
	err := s.reader.Collect(context.Background(), &rm)
	s.Nil(err)

	collected := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			collected[m.Name] = m.Data
		}
	}
	return collected
}

func (s *FillerMetricsTestSuite) Test_TrackBundles() {
	s.metrics.TrackBundleSubmitted(101)
	s.metrics.TrackBundleSubmitted(102)
	s.metrics.TrackBundleRejected()

	collected := s.collect()

	submitted := collected["filler.BundlesSubmitted"].(metricdata.Sum[int64])
	s.Equal(int64(2), submitted.DataPoints[0].Value)
	rejected := collected["filler.BundlesRejected"].(metricdata.Sum[int64])
	s.Equal(int64(1), rejected.DataPoints[0].Value)
	targetBlock := collected["filler.LastTargetBlock"].(metricdata.Gauge[int64])
	s.Equal(int64(102), targetBlock.DataPoints[0].Value)
}

func (s *FillerMetricsTestSuite) Test_TrackBundleSubmitted_KeepsHighestTargetBlock() {
	s.metrics.TrackBundleSubmitted(105)
	s.metrics.TrackBundleSubmitted(103)

	collected := s.collect()

	targetBlock := collected["filler.LastTargetBlock"].(metricdata.Gauge[int64])
	s.Equal(int64(105), targetBlock.DataPoints[0].Value)
}

func (s *FillerMetricsTestSuite) Test_TrackConfirmation() {
	s.metrics.TrackConfirmation(17001, time.Second*3)
	s.metrics.TrackConfirmationTimeout(17000)

	collected := s.collect()

	histogram := collected["filler.ConfirmationTime"].(metricdata.Histogram[float64])
	s.Equal(uint64(1), histogram.DataPoints[0].Count)
	s.Equal(float64(3), histogram.DataPoints[0].Sum)
	timeouts := collected["filler.ConfirmationTimeouts"].(metricdata.Sum[int64])
	s.Equal(int64(1), timeouts.DataPoints[0].Value)
}

func (s *FillerMetricsTestSuite) Test_HostGauges() {
	collected := s.collect()

	startTime := collected["filler.StartTimeSeconds"].(metricdata.Gauge[int64])
	s.InDelta(time.Now().Unix(), startTime.DataPoints[0].Value, 5)
	uptime := collected["filler.UptimeSeconds"].(metricdata.Gauge[float64])
	s.GreaterOrEqual(uptime.DataPoints[0].Value, float64(0))
}

func (s *FillerMetricsTestSuite) Test_NoTargetBlockBeforeSubmission() {
	collected := s.collect()

	targetBlock, ok := collected["filler.LastTargetBlock"]
	if ok {
		s.Empty(targetBlock.(metricdata.Gauge[int64]).DataPoints)
	}
}
