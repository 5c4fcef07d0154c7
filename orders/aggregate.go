package orders

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-filler/errs"
)

type OutputKey struct {
	ChainID uint64
	Token   common.Address
}

// AggregateOrders is the netted obligation of a set of orders. Inputs are summed per
// token and outputs per (chain, token, recipient).
type AggregateOrders struct {
	Inputs  map[common.Address]*big.Int
	Outputs map[OutputKey]map[common.Address]*big.Int
}

// Aggregate sums the inputs and outputs of the orders. No netting is done across
// different tokens.
func Aggregate(orders []SignedOrder) (*AggregateOrders, error) {
	if len(orders) == 0 {
		return nil, errs.New(errs.EmptyOrderSet, fmt.Errorf("no orders to aggregate"))
	}

	agg := &AggregateOrders{
		Inputs:  make(map[common.Address]*big.Int),
		Outputs: make(map[OutputKey]map[common.Address]*big.Int),
	}
	for i := range orders {
		if err := agg.ingest(&orders[i]); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

func (a *AggregateOrders) ingest(o *SignedOrder) error {
	if len(o.Outputs) == 0 {
		return errs.Newf(errs.InvalidOrder, "order %s has no outputs", o.ID().Hex())
	}

	for _, in := range o.Permit.Permit.Permitted {
		if in.Amount == nil || in.Amount.Sign() < 0 {
			return errs.Newf(errs.InvalidOrder, "order %s has invalid input amount", o.ID().Hex())
		}
		total, ok := a.Inputs[in.Token]
		if !ok {
			total = new(big.Int)
			a.Inputs[in.Token] = total
		}
		total.Add(total, in.Amount)
	}

	for _, out := range o.Outputs {
		if out.Amount == nil || out.Amount.Sign() < 0 {
			return errs.Newf(errs.InvalidOrder, "order %s has invalid output amount", o.ID().Hex())
		}
		key := OutputKey{ChainID: uint64(out.ChainID), Token: out.Token}
		recipients, ok := a.Outputs[key]
		if !ok {
			recipients = make(map[common.Address]*big.Int)
			a.Outputs[key] = recipients
		}
		total, ok := recipients[out.Recipient]
		if !ok {
			total = new(big.Int)
			recipients[out.Recipient] = total
		}
		total.Add(total, out.Amount)
	}
	return nil
}

// ChainIDs returns the destination chains of the aggregate in ascending order.
func (a *AggregateOrders) ChainIDs() []uint64 {
	seen := make(map[uint64]struct{})
	ids := make([]uint64, 0)
	for key := range a.Outputs {
		if _, ok := seen[key.ChainID]; ok {
			continue
		}
		seen[key.ChainID] = struct{}{}
		ids = append(ids, key.ChainID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OutputAmount is the total owed in the token on the chain across all recipients.
func (a *AggregateOrders) OutputAmount(chainID uint64, token common.Address) *big.Int {
	total := new(big.Int)
	for _, amount := range a.Outputs[OutputKey{ChainID: chainID, Token: token}] {
		total.Add(total, amount)
	}
	return total
}

// InputAmount is the total of the token the filler receives once the orders are initiated.
func (a *AggregateOrders) InputAmount(token common.Address) *big.Int {
	total, ok := a.Inputs[token]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(total)
}

// OutputsForChain returns one output per (token, recipient) on the chain sorted by
// token then recipient, so that the signed payload is deterministic.
func (a *AggregateOrders) OutputsForChain(chainID uint64) []Output {
	outputs := make([]Output, 0)
	for key, recipients := range a.Outputs {
		if key.ChainID != chainID {
			continue
		}
		for recipient, amount := range recipients {
			outputs = append(outputs, Output{
				Token:     key.Token,
				Amount:    new(big.Int).Set(amount),
				Recipient: recipient,
				ChainID:   uint32(chainID),
			})
		}
	}

	sort.Slice(outputs, func(i, j int) bool {
		if c := bytes.Compare(outputs[i].Token.Bytes(), outputs[j].Token.Bytes()); c != 0 {
			return c < 0
		}
		return bytes.Compare(outputs[i].Recipient.Bytes(), outputs[j].Recipient.Bytes()) < 0
	})
	return outputs
}

// permittedForChain sums the outputs on the chain per token; this is what the filler
// permits the orders contract to pull.
func (a *AggregateOrders) permittedForChain(chainID uint64) []TokenPermissions {
	permitted := make([]TokenPermissions, 0)
	for key := range a.Outputs {
		if key.ChainID != chainID {
			continue
		}
		permitted = append(permitted, TokenPermissions{
			Token:  key.Token,
			Amount: a.OutputAmount(chainID, key.Token),
		})
	}

	sort.Slice(permitted, func(i, j int) bool {
		return bytes.Compare(permitted[i].Token.Bytes(), permitted[j].Token.Bytes()) < 0
	})
	return permitted
}
