// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package events

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type EventSig string

func (es EventSig) GetTopic() common.Hash {
	return crypto.Keccak256Hash([]byte(es))
}

const (
	FilledSig EventSig = "Filled((address,uint256,address,uint32)[])"
	OrderSig  EventSig = "Order(uint256,(address,uint256)[],(address,uint256,address,uint32)[])"
)

// CountEvents returns how many logs in the receipt were emitted by the contract
// with the given event signature.
func CountEvents(receipt *types.Receipt, contract common.Address, sig EventSig) int {
	if receipt == nil {
		return 0
	}

	count := 0
	topic := sig.GetTopic()
	for _, l := range receipt.Logs {
		if l.Address != contract || len(l.Topics) == 0 {
			continue
		}
		if l.Topics[0] == topic {
			count++
		}
	}
	return count
}
