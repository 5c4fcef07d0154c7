package orders_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-filler/errs"
	"github.com/sprintertech/sprinter-filler/orders"
	"github.com/sprintertech/sprinter-filler/orders/mock"
	"github.com/stretchr/testify/suite"
)

type AggregateTestSuite struct {
	suite.Suite
}

func TestRunAggregateTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateTestSuite))
}

func (s *AggregateTestSuite) Test_Aggregate_EmptyOrderSet() {
	agg, err := orders.Aggregate([]orders.SignedOrder{})

	s.Nil(agg)
	s.Equal(errs.EmptyOrderSet, errs.KindOf(err))
}

func (s *AggregateTestSuite) Test_Aggregate_SumsPerChainAndToken() {
	os := []orders.SignedOrder{
		mock.SignedOrder(1, 100, mock.RollupOutput(10), mock.HostOutput(5)),
		mock.SignedOrder(2, 100, mock.RollupOutput(20)),
		mock.SignedOrder(3, 100, mock.HostOutput(7)),
	}

	agg, err := orders.Aggregate(os)

	s.Nil(err)
	s.Equal([]uint64{mock.HostChainID, mock.RollupChainID}, agg.ChainIDs())
	s.Equal(big.NewInt(30), agg.OutputAmount(mock.RollupChainID, mock.RollupWETH))
	s.Equal(big.NewInt(12), agg.OutputAmount(mock.HostChainID, mock.HostWETH))
	s.Equal(big.NewInt(0), agg.OutputAmount(mock.HostChainID, mock.RollupWETH))
	s.Equal(big.NewInt(3000), agg.InputAmount(mock.RollupWETH))
}

func (s *AggregateTestSuite) Test_Aggregate_KeepsRecipientsSeparate() {
	other := common.HexToAddress("0x0000000000000000000000000000000000000abc")
	out := mock.RollupOutput(4)
	out.Recipient = other
	os := []orders.SignedOrder{
		mock.SignedOrder(1, 100, mock.RollupOutput(10)),
		mock.SignedOrder(2, 100, out),
	}

	agg, err := orders.Aggregate(os)

	s.Nil(err)
	outputs := agg.OutputsForChain(mock.RollupChainID)
	s.Len(outputs, 2)
	s.Equal(other, outputs[0].Recipient)
	s.Equal(big.NewInt(4), outputs[0].Amount)
	s.Equal(mock.Recipient, outputs[1].Recipient)
	s.Equal(big.NewInt(14), agg.OutputAmount(mock.RollupChainID, mock.RollupWETH))
}

func (s *AggregateTestSuite) Test_Aggregate_NegativeAmount() {
	os := []orders.SignedOrder{
		mock.SignedOrder(1, 100, mock.RollupOutput(-1)),
	}

	_, err := orders.Aggregate(os)

	s.Equal(errs.InvalidOrder, errs.KindOf(err))
}

func (s *AggregateTestSuite) Test_Aggregate_NoOutputs() {
	_, err := orders.Aggregate([]orders.SignedOrder{mock.SignedOrder(1, 100)})

	s.Equal(errs.InvalidOrder, errs.KindOf(err))
}

func (s *AggregateTestSuite) Test_Aggregate_Deterministic() {
	os := []orders.SignedOrder{
		mock.SignedOrder(1, 100, mock.RollupOutput(10), mock.HostOutput(5)),
		mock.SignedOrder(2, 100, mock.RollupOutput(20)),
	}

	agg1, err := orders.Aggregate(os)
	s.Nil(err)
	agg2, err := orders.Aggregate(os)
	s.Nil(err)

	s.Equal(agg1.OutputsForChain(mock.RollupChainID), agg2.OutputsForChain(mock.RollupChainID))
	s.Equal(agg1.OutputsForChain(mock.HostChainID), agg2.OutputsForChain(mock.HostChainID))
}

type SignedOrderTestSuite struct {
	suite.Suite
}

func TestRunSignedOrderTestSuite(t *testing.T) {
	suite.Run(t, new(SignedOrderTestSuite))
}

func (s *SignedOrderTestSuite) Test_Retain_MatchesBySignature() {
	target := mock.SignedOrder(2, 100, mock.RollupOutput(1))
	polled := []orders.SignedOrder{
		mock.SignedOrder(1, 100, mock.RollupOutput(1)),
		mock.SignedOrder(2, 100, mock.RollupOutput(1)),
		mock.SignedOrder(3, 100, mock.RollupOutput(1)),
	}

	retained := orders.Retain(polled, &target)

	s.Len(retained, 1)
	s.Equal(target.ID(), retained[0].ID())
}

func (s *SignedOrderTestSuite) Test_FillDeadline_UsesEarliest() {
	os := []orders.SignedOrder{
		mock.SignedOrder(1, 300, mock.RollupOutput(1)),
		mock.SignedOrder(2, 100, mock.RollupOutput(1)),
		mock.SignedOrder(3, 200, mock.RollupOutput(1)),
	}

	deadline, err := orders.FillDeadline(os)

	s.Nil(err)
	s.Equal(uint64(100), deadline)
}

func (s *SignedOrderTestSuite) Test_FillDeadline_InvalidDeadline() {
	o := mock.SignedOrder(1, 100, mock.RollupOutput(1))
	o.Permit.Permit.Deadline = nil

	_, err := orders.FillDeadline([]orders.SignedOrder{o})

	s.Equal(errs.InvalidDeadline, errs.KindOf(err))
}

func (s *SignedOrderTestSuite) Test_FillDeadline_EmptyOrderSet() {
	_, err := orders.FillDeadline(nil)

	s.Equal(errs.EmptyOrderSet, errs.KindOf(err))
}

func (s *SignedOrderTestSuite) Test_Expired() {
	o := mock.SignedOrder(1, 100, mock.RollupOutput(1))

	s.False(o.Expired(99))
	s.True(o.Expired(100))
}

func (s *SignedOrderTestSuite) Test_UnmarshalJSON_CacheFormat() {
	raw := `{
		"permit": {
			"permit": {
				"permitted": [{"token": "0x0000000000000000007369676e65742d77657468", "amount": "0x3b9aca00"}],
				"nonce": "0x1",
				"deadline": "0x6553f100"
			},
			"owner": "0xde526bA5d1ad94cC59D7A79d99A59F607d31A657",
			"signature": "0x0102"
		},
		"outputs": [{
			"token": "0xD1278f17e86071f1E658B656084c65b7FD3c90eF",
			"amount": "0x3b9aca00",
			"recipient": "0x5ECF7351930e4A251193aA022Ef06249C6cBfa27",
			"chainId": 17000
		}]
	}`

	var o orders.SignedOrder
	err := json.Unmarshal([]byte(raw), &o)

	s.Nil(err)
	s.Equal(big.NewInt(1000000000), o.Permit.Permit.Permitted[0].Amount)
	s.Equal([]byte{1, 2}, o.Permit.Signature)
	s.Equal(uint32(17000), o.Outputs[0].ChainID)
	deadline, err := o.Deadline()
	s.Nil(err)
	s.Equal(uint64(1700000000), deadline)

	encoded, err := json.Marshal(o)
	s.Nil(err)
	var decoded orders.SignedOrder
	s.Nil(json.Unmarshal(encoded, &decoded))
	s.True(o.Equal(&decoded))
	s.Equal(o.Outputs, decoded.Outputs)
}
