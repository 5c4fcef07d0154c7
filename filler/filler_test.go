package filler_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/sprintertech/sprinter-filler/bundle"
	"github.com/sprintertech/sprinter-filler/chains/evm/calls/contracts"
	"github.com/sprintertech/sprinter-filler/chains/evm/calls/events"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
	"github.com/sprintertech/sprinter-filler/errs"
	"github.com/sprintertech/sprinter-filler/filler"
	mock_filler "github.com/sprintertech/sprinter-filler/filler/mock"
	"github.com/sprintertech/sprinter-filler/orders"
	"github.com/sprintertech/sprinter-filler/orders/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type FillerTestSuite struct {
	suite.Suite

	signer        *signer.LocalSigner
	mockRollup    *mock_filler.MockChainClient
	mockHost      *mock_filler.MockChainClient
	mockSource    *mock_filler.MockOrderSource
	mockSubmitter *mock_filler.MockBundleSubmitter
	mockMetrics   *mock_filler.MockConfirmationMetrics

	deadline uint64
}

func TestRunFillerTestSuite(t *testing.T) {
	suite.Run(t, new(FillerTestSuite))
}

func (s *FillerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockRollup = mock_filler.NewMockChainClient(ctrl)
	s.mockRollup.EXPECT().ChainID().Return(mock.RollupChainID).AnyTimes()
	s.mockHost = mock_filler.NewMockChainClient(ctrl)
	s.mockHost.EXPECT().ChainID().Return(mock.HostChainID).AnyTimes()
	s.mockSource = mock_filler.NewMockOrderSource(ctrl)
	s.mockSubmitter = mock_filler.NewMockBundleSubmitter(ctrl)
	s.mockMetrics = mock_filler.NewMockConfirmationMetrics(ctrl)

	var err error
	s.signer, err = signer.NewLocalSigner(fillerKey)
	s.Nil(err)
	s.deadline = uint64(time.Now().Add(time.Hour).Unix())
}

func (s *FillerTestSuite) filler(waitForConfirmations bool) *filler.Filler {
	sequencer, err := filler.NewSequencer(mock.RollupChainID, mock.HostChainID, mock.Contracts(), s.signer.Address())
	s.Nil(err)
	clients := map[uint64]filler.ChainClient{
		mock.RollupChainID: s.mockRollup,
		mock.HostChainID:   s.mockHost,
	}

	return filler.NewFiller(
		s.signer,
		s.mockSource,
		s.mockSubmitter,
		sequencer,
		filler.NewEncoder(s.signer, 0, 0),
		filler.NewWatcher(clients, s.mockMetrics, 50*time.Millisecond, 1, time.Millisecond),
		s.mockRollup,
		s.mockHost,
		mock.Contracts(),
		waitForConfirmations,
	)
}

func (s *FillerTestSuite) expectEncoding(client *mock_filler.MockChainClient) {
	client.EXPECT().PendingNonceAt(gomock.Any(), s.signer.Address()).Return(uint64(0), nil)
	client.EXPECT().BaseFee(gomock.Any()).Return(big.NewInt(1), nil)
}

func (s *FillerTestSuite) Test_GetOrders() {
	os := []orders.SignedOrder{mock.SignedOrder(1, s.deadline, mock.RollupOutput(1))}
	s.mockSource.EXPECT().GetOrders(gomock.Any()).Return(os, nil)

	polled, err := s.filler(false).GetOrders(context.Background())

	s.Nil(err)
	s.Equal(os, polled)
}

func (s *FillerTestSuite) Test_Fill_EmptyOrderSet() {
	result, err := s.filler(false).Fill(context.Background(), []orders.SignedOrder{})

	s.Equal(errs.EmptyOrderSet, errs.KindOf(err))
	s.Equal(filler.Failed, result.State)
	s.Equal(filler.Aggregating, result.FailedAt)
}

func (s *FillerTestSuite) Test_Fill_DeadlineExpired() {
	os := []orders.SignedOrder{mock.SignedOrder(1, uint64(time.Now().Unix()-10), mock.RollupOutput(1))}

	_, err := s.filler(false).Fill(context.Background(), os)

	s.Equal(errs.DeadlineExpired, errs.KindOf(err))
}

func (s *FillerTestSuite) Test_Fill_UnsupportedChain() {
	out := mock.RollupOutput(1)
	out.ChainID = 1
	os := []orders.SignedOrder{mock.SignedOrder(1, s.deadline, out)}

	_, err := s.filler(false).Fill(context.Background(), os)

	s.Equal(errs.UnknownChain, errs.KindOf(err))
}

func (s *FillerTestSuite) Test_Fill_RollupOnly() {
	order := mock.SignedOrder(1, s.deadline, mock.RollupOutput(10))
	s.expectEncoding(s.mockRollup)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil)
	id := uuid.New()
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), uint64(100), s.deadline).DoAndReturn(
		func(ctx context.Context, txs [][]byte, hostTxs [][]byte, currentBlock uint64, deadline uint64) ([]bundle.Submission, error) {
			s.Len(txs, 2)
			s.Len(hostTxs, 0)

			fillTx, _, err := filler.DecodeSignedTx(txs[0])
			s.Nil(err)
			s.Equal(mock.RollupOrders, *fillTx.To())
			fill, err := contracts.NewOrdersContract(mock.RollupOrders).DecodeFillCall(fillTx.Data())
			s.Nil(err)
			s.Equal(s.signer.Address(), fill.Permit2.Owner)
			s.Equal(new(big.Int).SetUint64(s.deadline), fill.Permit2.Permit.Deadline)

			initiateTx, _, err := filler.DecodeSignedTx(txs[1])
			s.Nil(err)
			s.Equal(fillTx.Nonce()+1, initiateTx.Nonce())
			return []bundle.Submission{{TargetBlock: 101, BundleID: id}}, nil
		})

	result, err := s.filler(false).Fill(context.Background(), []orders.SignedOrder{order})

	s.Nil(err)
	s.Equal(filler.Submitted, result.State)
	s.Equal(s.deadline, result.Deadline)
	s.Len(result.RollupTxs, 2)
	s.Len(result.HostTxs, 0)
	s.Equal([]bundle.Submission{{TargetBlock: 101, BundleID: id}}, result.Submissions)
}

func (s *FillerTestSuite) Test_Fill_UsesEarliestDeadline() {
	earliest := s.deadline - 100
	os := []orders.SignedOrder{
		mock.SignedOrder(1, s.deadline, mock.HostOutput(10)),
		mock.SignedOrder(2, earliest, mock.HostOutput(5)),
	}
	s.expectEncoding(s.mockRollup)
	s.expectEncoding(s.mockHost)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil)
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), uint64(100), earliest).DoAndReturn(
		func(ctx context.Context, txs [][]byte, hostTxs [][]byte, currentBlock uint64, deadline uint64) ([]bundle.Submission, error) {
			s.Len(txs, 2)
			s.Len(hostTxs, 1)

			hostTx, _, err := filler.DecodeSignedTx(hostTxs[0])
			s.Nil(err)
			s.Equal(mock.HostOrders, *hostTx.To())
			fill, err := contracts.NewOrdersContract(mock.HostOrders).DecodeFillCall(hostTx.Data())
			s.Nil(err)
			s.Equal(big.NewInt(15), fill.Outputs[0].Amount)
			return []bundle.Submission{{TargetBlock: 101, BundleID: uuid.New()}}, nil
		})

	result, err := s.filler(false).Fill(context.Background(), os)

	s.Nil(err)
	s.Equal(earliest, result.Deadline)
}

func (s *FillerTestSuite) Test_Fill_RelayRejected() {
	order := mock.SignedOrder(1, s.deadline, mock.RollupOutput(10))
	s.expectEncoding(s.mockRollup)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil)
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(
		nil, errs.New(errs.RelayRejected, fmt.Errorf("bad bundle")))

	result, err := s.filler(false).Fill(context.Background(), []orders.SignedOrder{order})

	s.Equal(errs.RelayRejected, errs.KindOf(err))
	s.Equal(filler.Submitting, result.FailedAt)
}

func (s *FillerTestSuite) Test_Fill_WaitsForConfirmations() {
	order := mock.SignedOrder(1, s.deadline, mock.RollupOutput(10))
	s.expectEncoding(s.mockRollup)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil)
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]bundle.Submission{{TargetBlock: 101, BundleID: uuid.New()}}, nil)
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(
		&types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(101),
			Logs: []*types.Log{
				{Address: mock.RollupOrders, Topics: []common.Hash{events.FilledSig.GetTopic()}},
				{Address: mock.RollupOrders, Topics: []common.Hash{events.OrderSig.GetTopic()}},
			},
		}, nil).Times(2)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(101), nil).Times(2)
	s.mockMetrics.EXPECT().TrackConfirmation(mock.RollupChainID, gomock.Any()).Times(2)

	result, err := s.filler(true).Fill(context.Background(), []orders.SignedOrder{order})

	s.Nil(err)
	s.Equal(filler.Confirmed, result.State)
	s.Len(result.Confirmations, 2)
	s.Equal(2, result.FilledEvents)
	s.Equal(2, result.OrderEvents)
}

func (s *FillerTestSuite) Test_FillIndividually_ContinuesAfterFailure() {
	os := []orders.SignedOrder{
		mock.SignedOrder(1, s.deadline, mock.RollupOutput(10)),
		mock.SignedOrder(2, s.deadline, mock.RollupOutput(20)),
	}
	s.mockRollup.EXPECT().PendingNonceAt(gomock.Any(), s.signer.Address()).Return(uint64(0), nil).Times(2)
	s.mockRollup.EXPECT().BaseFee(gomock.Any()).Return(big.NewInt(1), nil).Times(2)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil).Times(2)
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(
		nil, errs.New(errs.RelayRejected, fmt.Errorf("bad bundle")))
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]bundle.Submission{{TargetBlock: 101, BundleID: uuid.New()}}, nil)

	results, err := s.filler(false).FillWith(context.Background(), filler.IndividualStrategy, os)

	s.Equal(errs.RelayRejected, errs.KindOf(err))
	s.Contains(err.Error(), os[0].ID().Hex())
	s.Len(results, 2)
	s.Equal(filler.Failed, results[0].State)
	s.Equal(filler.Submitted, results[1].State)
	s.Equal([]common.Hash{os[1].ID()}, results[1].Orders)
}

func (s *FillerTestSuite) Test_FillWith_Aggregate() {
	os := []orders.SignedOrder{
		mock.SignedOrder(1, s.deadline, mock.RollupOutput(10)),
		mock.SignedOrder(2, s.deadline, mock.RollupOutput(20)),
	}
	s.expectEncoding(s.mockRollup)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil)
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, txs [][]byte, hostTxs [][]byte, currentBlock uint64, deadline uint64) ([]bundle.Submission, error) {
			s.Len(txs, 3)
			return []bundle.Submission{{TargetBlock: 101, BundleID: uuid.New()}}, nil
		})

	results, err := s.filler(false).FillWith(context.Background(), filler.AggregateStrategy, os)

	s.Nil(err)
	s.Len(results, 1)
	s.Len(results[0].Orders, 2)
}

func (s *FillerTestSuite) Test_FillWith_UnknownStrategy() {
	_, err := s.filler(false).FillWith(context.Background(), filler.Strategy("random"), nil)

	s.NotNil(err)
}

func (s *FillerTestSuite) Test_AwaitOrder_RetainsTarget() {
	target := mock.SignedOrder(1, s.deadline, mock.RollupOutput(1))
	other := mock.SignedOrder(2, s.deadline, mock.RollupOutput(1))
	gomock.InOrder(
		s.mockSource.EXPECT().GetOrders(gomock.Any()).Return([]orders.SignedOrder{other}, nil),
		s.mockSource.EXPECT().GetOrders(gomock.Any()).Return(nil, fmt.Errorf("unavailable")),
		s.mockSource.EXPECT().GetOrders(gomock.Any()).Return([]orders.SignedOrder{other, target}, nil),
	)

	retained, err := s.filler(false).AwaitOrder(context.Background(), &target, time.Millisecond)

	s.Nil(err)
	s.Len(retained, 1)
	s.Equal(target.ID(), retained[0].ID())
}

func (s *FillerTestSuite) Test_AwaitOrder_ContextCancelled() {
	target := mock.SignedOrder(1, s.deadline, mock.RollupOutput(1))
	other := mock.SignedOrder(2, s.deadline, mock.RollupOutput(1))
	s.mockSource.EXPECT().GetOrders(gomock.Any()).Return([]orders.SignedOrder{other}, nil).MinTimes(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.filler(false).AwaitOrder(ctx, &target, time.Millisecond)

	s.ErrorIs(err, context.DeadlineExceeded)
}
