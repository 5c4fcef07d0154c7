package bundle_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sprintertech/sprinter-filler/bundle"
	mock_bundle "github.com/sprintertech/sprinter-filler/bundle/mock"
	"github.com/sprintertech/sprinter-filler/errs"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SubmitterTestSuite struct {
	suite.Suite

	mockRelay   *mock_bundle.MockRelay
	mockMetrics *mock_bundle.MockMetrics

	txs     [][]byte
	hostTxs [][]byte
}

func TestRunSubmitterTestSuite(t *testing.T) {
	suite.Run(t, new(SubmitterTestSuite))
}

func (s *SubmitterTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockRelay = mock_bundle.NewMockRelay(ctrl)
	s.mockMetrics = mock_bundle.NewMockMetrics(ctrl)
	s.mockMetrics.EXPECT().TrackBundleSubmitted(gomock.Any()).AnyTimes()

	s.txs = [][]byte{{1}, {2}}
	s.hostTxs = [][]byte{{3}}
}

func (s *SubmitterTestSuite) futureDeadline() uint64 {
	return uint64(time.Now().Add(time.Hour).Unix())
}

func (s *SubmitterTestSuite) Test_Submit_SingleShot() {
	id := uuid.New()
	s.mockRelay.EXPECT().ForwardBundle(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, b *bundle.Bundle) (uuid.UUID, error) {
			s.Equal(uint64(101), uint64(b.BlockNumber))
			s.Len(b.Txs, 2)
			s.Len(b.HostTxs, 1)
			return id, nil
		})
	submitter := bundle.NewSubmitter(s.mockRelay, bundle.SingleShot(), s.mockMetrics)

	submissions, err := submitter.Submit(context.Background(), s.txs, s.hostTxs, 100, s.futureDeadline())

	s.Nil(err)
	s.Equal([]bundle.Submission{{TargetBlock: 101, BundleID: id}}, submissions)
}

func (s *SubmitterTestSuite) Test_Submit_ResubmitsForConsecutiveBlocks() {
	targets := make([]uint64, 0)
	bundles := make([]*bundle.Bundle, 0)
	s.mockRelay.EXPECT().ForwardBundle(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, b *bundle.Bundle) (uuid.UUID, error) {
			targets = append(targets, uint64(b.BlockNumber))
			bundles = append(bundles, b)
			return uuid.New(), nil
		}).Times(10)
	submitter := bundle.NewSubmitter(s.mockRelay, bundle.Resubmit(10), s.mockMetrics)

	submissions, err := submitter.Submit(context.Background(), s.txs, s.hostTxs, 100, s.futureDeadline())

	s.Nil(err)
	s.Len(submissions, 10)
	s.Equal([]uint64{101, 102, 103, 104, 105, 106, 107, 108, 109, 110}, targets)

	ids := make(map[uuid.UUID]struct{})
	for _, sub := range submissions {
		ids[sub.BundleID] = struct{}{}
	}
	s.Len(ids, 10)

	for _, b := range bundles[1:] {
		s.Equal(bundles[0].Txs, b.Txs)
		s.Equal(bundles[0].HostTxs, b.HostTxs)
		s.NotEqual(bundles[0].BlockNumber, b.BlockNumber)
	}
}

func (s *SubmitterTestSuite) Test_Submit_RelayRejected() {
	s.mockRelay.EXPECT().ForwardBundle(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
	s.mockRelay.EXPECT().ForwardBundle(gomock.Any(), gomock.Any()).Return(uuid.Nil, fmt.Errorf("503"))
	s.mockMetrics.EXPECT().TrackBundleRejected()
	submitter := bundle.NewSubmitter(s.mockRelay, bundle.Resubmit(10), s.mockMetrics)

	submissions, err := submitter.Submit(context.Background(), s.txs, nil, 100, s.futureDeadline())

	s.Equal(errs.RelayRejected, errs.KindOf(err))
	s.Len(submissions, 1)
}

func (s *SubmitterTestSuite) Test_Submit_DeadlinePassed() {
	submitter := bundle.NewSubmitter(s.mockRelay, bundle.Resubmit(10), s.mockMetrics)

	submissions, err := submitter.Submit(context.Background(), s.txs, nil, 100, uint64(time.Now().Unix()-1))

	s.Nil(submissions)
	s.Equal(errs.DeadlineExpired, errs.KindOf(err))
}

func (s *SubmitterTestSuite) Test_Submit_StopsOnCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	s.mockRelay.EXPECT().ForwardBundle(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, b *bundle.Bundle) (uuid.UUID, error) {
			cancel()
			return uuid.New(), nil
		})
	submitter := bundle.NewSubmitter(s.mockRelay, bundle.Resubmit(10), s.mockMetrics)

	submissions, err := submitter.Submit(ctx, s.txs, nil, 100, s.futureDeadline())

	s.Nil(err)
	s.Len(submissions, 1)
}

type BundleTestSuite struct {
	suite.Suite
}

func TestRunBundleTestSuite(t *testing.T) {
	suite.Run(t, new(BundleTestSuite))
}

func (s *BundleTestSuite) Test_MarshalJSON() {
	b := bundle.NewBundle([][]byte{{0xaa, 0xbb}}, nil, 26)

	data, err := json.Marshal(b)

	s.Nil(err)
	s.JSONEq(`{
		"txs": ["0xaabb"],
		"blockNumber": "0x1a",
		"revertingTxHashes": [],
		"hostTxs": []
	}`, string(data))
}

func (s *BundleTestSuite) Test_MarshalJSON_OptionalFields() {
	b := bundle.NewBundle([][]byte{{0xaa}}, [][]byte{{0xcc}}, 1).
		WithTimestamps(10, 20).
		WithReplacementUUID("2ef2e6ef-a1ad-4b16-9fe3-8c0a4a3e2a53")

	data, err := json.Marshal(b)

	s.Nil(err)
	s.JSONEq(`{
		"txs": ["0xaa"],
		"blockNumber": "0x1",
		"minTimestamp": 10,
		"maxTimestamp": 20,
		"revertingTxHashes": [],
		"replacementUuid": "2ef2e6ef-a1ad-4b16-9fe3-8c0a4a3e2a53",
		"hostTxs": ["0xcc"]
	}`, string(data))
}
