// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package orders

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sprintertech/sprinter-filler/chains/evm/signature"
	"github.com/sprintertech/sprinter-filler/errs"
)

// Input is a token amount the order owner gives up on the rollup.
type Input struct {
	Token  common.Address `abi:"token"`
	Amount *big.Int       `abi:"amount"`
}

// Output is a token amount owed to a recipient on the destination chain.
type Output struct {
	Token     common.Address `abi:"token"`
	Amount    *big.Int       `abi:"amount"`
	Recipient common.Address `abi:"recipient"`
	ChainID   uint32         `abi:"chainId"`
}

type TokenPermissions struct {
	Token  common.Address `abi:"token"`
	Amount *big.Int       `abi:"amount"`
}

type PermitBatchTransferFrom struct {
	Permitted []TokenPermissions `abi:"permitted"`
	Nonce     *big.Int           `abi:"nonce"`
	Deadline  *big.Int           `abi:"deadline"`
}

// Permit2Batch is a signed Permit2 batch transfer as accepted by the orders contracts.
type Permit2Batch struct {
	Permit    PermitBatchTransferFrom `abi:"permit"`
	Owner     common.Address          `abi:"owner"`
	Signature []byte                  `abi:"signature"`
}

// Order is the unsigned content of an exchange request.
type Order struct {
	Inputs   []Input
	Outputs  []Output
	Deadline uint64
}

// SignedOrder is an order together with the Permit2 signature of its owner.
// The permitted tokens of the permit are the order inputs.
type SignedOrder struct {
	Permit  Permit2Batch
	Outputs []Output
}

// ID identifies the order by its permit signature.
func (o *SignedOrder) ID() common.Hash {
	return crypto.Keccak256Hash(o.Permit.Signature)
}

// Equal reports whether both orders carry the same permit signature.
func (o *SignedOrder) Equal(other *SignedOrder) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(o.Permit.Signature, other.Permit.Signature)
}

func (o *SignedOrder) Owner() common.Address {
	return o.Permit.Owner
}

func (o *SignedOrder) Inputs() []Input {
	inputs := make([]Input, len(o.Permit.Permit.Permitted))
	for i, p := range o.Permit.Permit.Permitted {
		inputs[i] = Input(p)
	}
	return inputs
}

// Deadline returns the permit deadline in unix seconds.
func (o *SignedOrder) Deadline() (uint64, error) {
	d := o.Permit.Permit.Deadline
	if d == nil || d.Sign() <= 0 || !d.IsUint64() {
		return 0, errs.Newf(errs.InvalidDeadline, "order %s has invalid deadline %v", o.ID().Hex(), d)
	}
	return d.Uint64(), nil
}

// Expired reports whether the order deadline is at or before the given unix time.
func (o *SignedOrder) Expired(now uint64) bool {
	d, err := o.Deadline()
	if err != nil {
		return true
	}
	return d <= now
}

// Retain keeps the orders with the same identity as the target, preserving order.
func Retain(orders []SignedOrder, target *SignedOrder) []SignedOrder {
	retained := make([]SignedOrder, 0)
	for i := range orders {
		if orders[i].Equal(target) {
			retained = append(retained, orders[i])
		}
	}
	return retained
}

// FillDeadline returns the deadline a fill covering all of the orders has to use.
// It is the earliest deadline of the set so the fill never outlives an order.
func FillDeadline(orders []SignedOrder) (uint64, error) {
	if len(orders) == 0 {
		return 0, errs.New(errs.EmptyOrderSet, nil)
	}

	var deadline uint64
	for i := range orders {
		d, err := orders[i].Deadline()
		if err != nil {
			return 0, err
		}
		if i == 0 || d < deadline {
			deadline = d
		}
	}
	return deadline, nil
}

func witnessOutputs(outputs []Output) []signature.WitnessOutput {
	witness := make([]signature.WitnessOutput, len(outputs))
	for i, o := range outputs {
		witness[i] = signature.WitnessOutput(o)
	}
	return witness
}

func tokenPermissions(permitted []TokenPermissions) []signature.TokenPermission {
	perms := make([]signature.TokenPermission, len(permitted))
	for i, p := range permitted {
		perms[i] = signature.TokenPermission(p)
	}
	return perms
}
