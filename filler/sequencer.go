package filler

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-filler/chains/evm/calls/contracts"
	"github.com/sprintertech/sprinter-filler/errs"
	"github.com/sprintertech/sprinter-filler/orders"
)

type RequestKind int

const (
	FillRequest RequestKind = iota
	InitiateRequest
	TransferRequest
)

func (k RequestKind) String() string {
	switch k {
	case FillRequest:
		return "fill"
	case InitiateRequest:
		return "initiate"
	case TransferRequest:
		return "transfer"
	default:
		return fmt.Sprintf("RequestKind(%d)", int(k))
	}
}

// TransactionRequest is an unsigned call on a single chain.
type TransactionRequest struct {
	Kind    RequestKind
	ChainID uint64
	To      common.Address
	Value   *big.Int
	Data    []byte
	// OrderID is set for initiate requests.
	OrderID common.Hash
}

// NewTransferRequest creates a plain value transfer.
func NewTransferRequest(chainID uint64, to common.Address, value *big.Int) TransactionRequest {
	return TransactionRequest{
		Kind:    TransferRequest,
		ChainID: chainID,
		To:      to,
		Value:   value,
	}
}

// Sequencer orders the calls of a fill attempt for the rollup and the host chain.
type Sequencer struct {
	rollupChainID uint64
	hostChainID   uint64
	rollup        *contracts.OrdersContract
	host          *contracts.OrdersContract
	// tokenRecipient receives the order inputs on initiation.
	tokenRecipient common.Address
}

func NewSequencer(
	rollupChainID uint64,
	hostChainID uint64,
	chainContracts map[uint64]orders.ChainContracts,
	tokenRecipient common.Address,
) (*Sequencer, error) {
	rollup, ok := chainContracts[rollupChainID]
	if !ok {
		return nil, errs.ForChain(errs.UnknownChain, rollupChainID, fmt.Errorf("no orders contract for rollup"))
	}
	host, ok := chainContracts[hostChainID]
	if !ok {
		return nil, errs.ForChain(errs.UnknownChain, hostChainID, fmt.Errorf("no orders contract for host"))
	}

	return &Sequencer{
		rollupChainID:  rollupChainID,
		hostChainID:    hostChainID,
		rollup:         contracts.NewOrdersContract(rollup.Orders),
		host:           contracts.NewOrdersContract(host.Orders),
		tokenRecipient: tokenRecipient,
	}, nil
}

// RollupRequests returns the rollup fill, if there is one, followed by one initiate per
// order in input order. The fill has to precede the initiates because an initiate reverts
// until the outputs of its order are filled on the same chain.
func (s *Sequencer) RollupRequests(fills map[uint64]orders.SignedFill, os []orders.SignedOrder) ([]TransactionRequest, error) {
	requests := make([]TransactionRequest, 0, len(os)+1)

	if fill, ok := fills[s.rollupChainID]; ok {
		data, err := s.rollup.FillCalldata(fill)
		if err != nil {
			return nil, errs.ForChain(errs.EncodingFailed, s.rollupChainID, err)
		}
		requests = append(requests, TransactionRequest{
			Kind:    FillRequest,
			ChainID: s.rollupChainID,
			To:      s.rollup.Address(),
			Value:   big.NewInt(0),
			Data:    data,
		})
	}

	for i := range os {
		data, err := s.rollup.InitiateCalldata(s.tokenRecipient, os[i])
		if err != nil {
			return nil, errs.ForChain(errs.EncodingFailed, s.rollupChainID, err)
		}
		requests = append(requests, TransactionRequest{
			Kind:    InitiateRequest,
			ChainID: s.rollupChainID,
			To:      s.rollup.Address(),
			Value:   big.NewInt(0),
			Data:    data,
			OrderID: os[i].ID(),
		})
	}

	return requests, nil
}

// HostRequests returns the host fill, if there is one. Host transactions are processed
// before the targeted rollup block so no ordering against the rollup list is needed.
func (s *Sequencer) HostRequests(fills map[uint64]orders.SignedFill) ([]TransactionRequest, error) {
	fill, ok := fills[s.hostChainID]
	if !ok {
		return []TransactionRequest{}, nil
	}

	data, err := s.host.FillCalldata(fill)
	if err != nil {
		return nil, errs.ForChain(errs.EncodingFailed, s.hostChainID, err)
	}
	return []TransactionRequest{{
		Kind:    FillRequest,
		ChainID: s.hostChainID,
		To:      s.host.Address(),
		Value:   big.NewInt(0),
		Data:    data,
	}}, nil
}
