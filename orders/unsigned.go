package orders

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-filler/chains/evm/signature"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
)

// UnsignedOrder builds an order to be signed by its owner and forwarded to the
// transaction cache.
type UnsignedOrder struct {
	order     Order
	nonce     *big.Int
	chainID   uint64
	contracts ChainContracts
}

func NewUnsignedOrder() *UnsignedOrder {
	return &UnsignedOrder{}
}

func (u *UnsignedOrder) WithInput(token common.Address, amount *big.Int) *UnsignedOrder {
	u.order.Inputs = append(u.order.Inputs, Input{Token: token, Amount: amount})
	return u
}

func (u *UnsignedOrder) WithOutput(token common.Address, amount *big.Int, recipient common.Address, chainID uint32) *UnsignedOrder {
	u.order.Outputs = append(u.order.Outputs, Output{
		Token:     token,
		Amount:    amount,
		Recipient: recipient,
		ChainID:   chainID,
	})
	return u
}

func (u *UnsignedOrder) WithDeadline(deadline uint64) *UnsignedOrder {
	u.order.Deadline = deadline
	return u
}

func (u *UnsignedOrder) WithNonce(nonce *big.Int) *UnsignedOrder {
	u.nonce = nonce
	return u
}

// WithChain sets the rollup the order is initiated on.
func (u *UnsignedOrder) WithChain(chainID uint64, contracts ChainContracts) *UnsignedOrder {
	u.chainID = chainID
	u.contracts = contracts
	return u
}

func (u *UnsignedOrder) Order() Order {
	return u.order
}

// Sign produces the owner's Permit2 signature over the order inputs with the outputs
// as witness.
func (u *UnsignedOrder) Sign(ctx context.Context, s signer.Signer) (*SignedOrder, error) {
	if len(u.order.Inputs) == 0 || len(u.order.Outputs) == 0 {
		return nil, fmt.Errorf("order requires inputs and outputs")
	}
	if u.order.Deadline == 0 {
		return nil, fmt.Errorf("order deadline not set")
	}
	if u.chainID == 0 || u.contracts.Orders == (common.Address{}) {
		return nil, fmt.Errorf("order chain not set")
	}

	permit2 := u.contracts.Permit2
	if permit2 == (common.Address{}) {
		permit2 = signature.PERMIT2_ADDRESS
	}
	nonce := u.nonce
	if nonce == nil {
		nonce = big.NewInt(time.Now().UnixMicro())
	}

	permitted := make([]TokenPermissions, len(u.order.Inputs))
	for i, in := range u.order.Inputs {
		permitted[i] = TokenPermissions(in)
	}

	digest, err := signature.PermitBatchWitnessHash(
		tokenPermissions(permitted),
		witnessOutputs(u.order.Outputs),
		u.contracts.Orders,
		nonce,
		u.order.Deadline,
		new(big.Int).SetUint64(u.chainID),
		permit2,
	)
	if err != nil {
		return nil, err
	}

	sig, err := signer.SignTypedHash(ctx, s, digest)
	if err != nil {
		return nil, err
	}

	outputs := make([]Output, len(u.order.Outputs))
	copy(outputs, u.order.Outputs)
	return &SignedOrder{
		Permit: Permit2Batch{
			Permit: PermitBatchTransferFrom{
				Permitted: permitted,
				Nonce:     new(big.Int).Set(nonce),
				Deadline:  new(big.Int).SetUint64(u.order.Deadline),
			},
			Owner:     s.Address(),
			Signature: sig,
		},
		Outputs: outputs,
	}, nil
}
