// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-filler/chains/evm/calls/consts"
	"github.com/sprintertech/sprinter-filler/orders"
)

type FillInput struct {
	Outputs []orders.Output     `abi:"outputs"`
	Permit2 orders.Permit2Batch `abi:"permit2"`
}

type InitiateInput struct {
	TokenRecipient common.Address      `abi:"tokenRecipient"`
	Outputs        []orders.Output     `abi:"outputs"`
	Permit2        orders.Permit2Batch `abi:"permit2"`
}

// OrdersContract encodes calls to the RollupOrders and HostOrders contracts.
type OrdersContract struct {
	address common.Address
	abi     abi.ABI
}

func NewOrdersContract(address common.Address) *OrdersContract {
	return &OrdersContract{
		address: address,
		abi:     consts.OrdersABI,
	}
}

func (c *OrdersContract) Address() common.Address {
	return c.address
}

// FillCalldata encodes fillPermit2 for a signed fill.
func (c *OrdersContract) FillCalldata(fill orders.SignedFill) ([]byte, error) {
	return c.abi.Pack("fillPermit2", fill.Outputs, fill.Permit)
}

// InitiateCalldata encodes initiatePermit2 for an order, sending its inputs to the
// token recipient.
func (c *OrdersContract) InitiateCalldata(tokenRecipient common.Address, order orders.SignedOrder) ([]byte, error) {
	return c.abi.Pack("initiatePermit2", tokenRecipient, order.Outputs, order.Permit)
}

func (c *OrdersContract) DecodeFillCall(calldata []byte) (*FillInput, error) {
	var fillInput FillInput
	if err := c.decode("fillPermit2", calldata, &fillInput); err != nil {
		return nil, err
	}
	return &fillInput, nil
}

func (c *OrdersContract) DecodeInitiateCall(calldata []byte) (*InitiateInput, error) {
	var initiateInput InitiateInput
	if err := c.decode("initiatePermit2", calldata, &initiateInput); err != nil {
		return nil, err
	}
	return &initiateInput, nil
}

func (c *OrdersContract) decode(name string, calldata []byte, out interface{}) error {
	method := c.abi.Methods[name]
	if len(calldata) < 4 || !bytes.Equal(calldata[:4], method.ID) {
		return fmt.Errorf("calldata is not a %s call", name)
	}

	res, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return err
	}

	return method.Inputs.Copy(out, res)
}
