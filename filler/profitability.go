package filler

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-filler/config"
	"github.com/sprintertech/sprinter-filler/orders"
)

type TokenPricer interface {
	TokenPrice(symbol string) (float64, error)
}

// ProfitabilityFilter drops orders whose inputs are not worth at least the minimal
// profit more than their outputs.
type ProfitabilityFilter struct {
	pricer        TokenPricer
	tokens        config.TokenStore
	rollupChainID uint64
	minProfitUSD  float64
}

func NewProfitabilityFilter(
	pricer TokenPricer,
	tokens config.TokenStore,
	rollupChainID uint64,
	minProfitUSD float64,
) *ProfitabilityFilter {
	return &ProfitabilityFilter{
		pricer:        pricer,
		tokens:        tokens,
		rollupChainID: rollupChainID,
		minProfitUSD:  minProfitUSD,
	}
}

// Profit returns the USD value of the order inputs minus the value of its outputs.
func (p *ProfitabilityFilter) Profit(o *orders.SignedOrder) (float64, error) {
	var inputs float64
	for _, in := range o.Inputs() {
		value, err := p.valueUSD(p.rollupChainID, in.Token, in.Amount)
		if err != nil {
			return 0, err
		}
		inputs += value
	}

	var outputs float64
	for _, out := range o.Outputs {
		value, err := p.valueUSD(uint64(out.ChainID), out.Token, out.Amount)
		if err != nil {
			return 0, err
		}
		outputs += value
	}
	return inputs - outputs, nil
}

// Filter keeps the orders that are profitable enough, preserving order. Orders that
// cannot be priced are dropped.
func (p *ProfitabilityFilter) Filter(os []orders.SignedOrder) []orders.SignedOrder {
	profitable := make([]orders.SignedOrder, 0, len(os))
	for i := range os {
		profit, err := p.Profit(&os[i])
		if err != nil {
			log.Warn().Str("order", os[i].ID().Hex()).Msgf("Failed pricing order: %s", err)
			continue
		}
		if profit < p.minProfitUSD {
			log.Debug().Str("order", os[i].ID().Hex()).Msgf("Skipping order with profit %f USD", profit)
			continue
		}

		profitable = append(profitable, os[i])
	}
	return profitable
}

func (p *ProfitabilityFilter) valueUSD(chainID uint64, token common.Address, amount *big.Int) (float64, error) {
	if amount == nil || amount.Sign() < 0 {
		return 0, fmt.Errorf("invalid amount %v of token %s on chain %d", amount, token.Hex(), chainID)
	}

	symbol, c, err := p.tokens.ConfigByAddress(chainID, token)
	if err != nil {
		return 0, err
	}

	price, err := p.pricer.TokenPrice(symbol)
	if err != nil {
		return 0, err
	}

	value, _ := new(big.Float).Quo(
		new(big.Float).Mul(big.NewFloat(price), new(big.Float).SetInt(amount)),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.Decimals)), nil)),
	).Float64()
	return value, nil
}
