package filler_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sprintertech/sprinter-filler/errs"
	"github.com/sprintertech/sprinter-filler/filler"
	mock_filler "github.com/sprintertech/sprinter-filler/filler/mock"
	"github.com/sprintertech/sprinter-filler/orders/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WatcherTestSuite struct {
	suite.Suite

	watcher *filler.Watcher

	mockRollup  *mock_filler.MockChainClient
	mockHost    *mock_filler.MockChainClient
	mockMetrics *mock_filler.MockConfirmationMetrics
}

func TestRunWatcherTestSuite(t *testing.T) {
	suite.Run(t, new(WatcherTestSuite))
}

func (s *WatcherTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockRollup = mock_filler.NewMockChainClient(ctrl)
	s.mockHost = mock_filler.NewMockChainClient(ctrl)
	s.mockMetrics = mock_filler.NewMockConfirmationMetrics(ctrl)

	s.watcher = filler.NewWatcher(
		map[uint64]filler.ChainClient{
			mock.RollupChainID: s.mockRollup,
			mock.HostChainID:   s.mockHost,
		},
		s.mockMetrics,
		50*time.Millisecond,
		2,
		time.Millisecond,
	)
}

func receipt(block int64, status uint64) *types.Receipt {
	return &types.Receipt{
		Status:      status,
		BlockNumber: big.NewInt(block),
	}
}

func (s *WatcherTestSuite) Test_WaitForConfirmation_Confirmed() {
	hash := common.HexToHash("0x01")
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound)
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(receipt(10, types.ReceiptStatusSuccessful), nil).Times(2)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(10), nil)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(11), nil)
	s.mockMetrics.EXPECT().TrackConfirmation(mock.RollupChainID, gomock.Any())

	r, err := s.watcher.WaitForConfirmation(context.Background(), filler.Watch{ChainID: mock.RollupChainID, Hash: hash})

	s.Nil(err)
	s.Equal(big.NewInt(10), r.BlockNumber)
}

func (s *WatcherTestSuite) Test_WaitForConfirmation_Reverted() {
	hash := common.HexToHash("0x01")
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(receipt(10, types.ReceiptStatusFailed), nil)

	_, err := s.watcher.WaitForConfirmation(context.Background(), filler.Watch{ChainID: mock.RollupChainID, Hash: hash})

	s.Equal(errs.ConfirmationError, errs.KindOf(err))
}

func (s *WatcherTestSuite) Test_WaitForConfirmation_ProviderError() {
	hash := common.HexToHash("0x01")
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, fmt.Errorf("connection reset"))

	_, err := s.watcher.WaitForConfirmation(context.Background(), filler.Watch{ChainID: mock.RollupChainID, Hash: hash})

	s.Equal(errs.ConfirmationError, errs.KindOf(err))
}

func (s *WatcherTestSuite) Test_WaitForConfirmation_UnknownChain() {
	_, err := s.watcher.WaitForConfirmation(context.Background(), filler.Watch{ChainID: 1, Hash: common.HexToHash("0x01")})

	s.Equal(errs.UnknownChain, errs.KindOf(err))
}

func (s *WatcherTestSuite) Test_WaitForConfirmations_OneChainTimesOut() {
	rollupHash := common.HexToHash("0x01")
	hostHash := common.HexToHash("0x02")
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), rollupHash).Return(receipt(10, types.ReceiptStatusSuccessful), nil)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(12), nil)
	s.mockHost.EXPECT().TransactionReceipt(gomock.Any(), hostHash).Return(nil, ethereum.NotFound).AnyTimes()
	s.mockMetrics.EXPECT().TrackConfirmation(mock.RollupChainID, gomock.Any())
	s.mockMetrics.EXPECT().TrackConfirmationTimeout(mock.HostChainID)

	results, err := s.watcher.WaitForConfirmations(context.Background(), []filler.Watch{
		{ChainID: mock.RollupChainID, Hash: rollupHash},
		{ChainID: mock.HostChainID, Hash: hostHash},
	})

	s.Equal(errs.ConfirmationTimeout, errs.KindOf(err))
	s.Contains(err.Error(), hostHash.Hex())
	s.Len(results, 2)
	s.Nil(results[0].Err)
	s.NotNil(results[0].Receipt)
	s.Equal(hostHash, results[1].Hash)
	s.NotNil(results[1].Err)
}

func (s *WatcherTestSuite) Test_WaitForConfirmations_AllConfirmed() {
	rollupHash := common.HexToHash("0x01")
	hostHash := common.HexToHash("0x02")
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), rollupHash).Return(receipt(10, types.ReceiptStatusSuccessful), nil)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(12), nil)
	s.mockHost.EXPECT().TransactionReceipt(gomock.Any(), hostHash).Return(receipt(20, types.ReceiptStatusSuccessful), nil)
	s.mockHost.EXPECT().LatestBlock(gomock.Any()).Return(uint64(21), nil)
	s.mockMetrics.EXPECT().TrackConfirmation(gomock.Any(), gomock.Any()).Times(2)

	results, err := s.watcher.WaitForConfirmations(context.Background(), []filler.Watch{
		{ChainID: mock.RollupChainID, Hash: rollupHash},
		{ChainID: mock.HostChainID, Hash: hostHash},
	})

	s.Nil(err)
	s.Len(results, 2)
}

func (s *WatcherTestSuite) Test_WaitForConfirmations_TimeoutReportedOverProviderError() {
	rollupHash := common.HexToHash("0x01")
	hostHash := common.HexToHash("0x02")
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), rollupHash).Return(nil, fmt.Errorf("connection reset"))
	s.mockHost.EXPECT().TransactionReceipt(gomock.Any(), hostHash).Return(nil, ethereum.NotFound).AnyTimes()
	s.mockMetrics.EXPECT().TrackConfirmationTimeout(mock.HostChainID)

	results, err := s.watcher.WaitForConfirmations(context.Background(), []filler.Watch{
		{ChainID: mock.RollupChainID, Hash: rollupHash},
		{ChainID: mock.HostChainID, Hash: hostHash},
	})

	s.Equal(errs.ConfirmationTimeout, errs.KindOf(err))
	s.Contains(err.Error(), hostHash.Hex())
	s.Equal(errs.ConfirmationError, errs.KindOf(results[0].Err))
}

func (s *WatcherTestSuite) Test_WaitForConfirmations_ProviderErrorWithoutTimeout() {
	rollupHash := common.HexToHash("0x01")
	hostHash := common.HexToHash("0x02")
	s.mockRollup.EXPECT().TransactionReceipt(gomock.Any(), rollupHash).Return(receipt(10, types.ReceiptStatusSuccessful), nil)
	s.mockRollup.EXPECT().LatestBlock(gomock.Any()).Return(uint64(12), nil)
	s.mockHost.EXPECT().TransactionReceipt(gomock.Any(), hostHash).Return(receipt(20, types.ReceiptStatusFailed), nil)
	s.mockMetrics.EXPECT().TrackConfirmation(mock.RollupChainID, gomock.Any())

	_, err := s.watcher.WaitForConfirmations(context.Background(), []filler.Watch{
		{ChainID: mock.RollupChainID, Hash: rollupHash},
		{ChainID: mock.HostChainID, Hash: hostHash},
	})

	s.Equal(errs.ConfirmationError, errs.KindOf(err))
	s.Contains(err.Error(), hostHash.Hex())
}
