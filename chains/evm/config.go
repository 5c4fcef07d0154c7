// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"

	"github.com/sprintertech/sprinter-filler/chains/evm/signature"
	"github.com/sprintertech/sprinter-filler/config"
	"github.com/sprintertech/sprinter-filler/config/chain"
	"github.com/sprintertech/sprinter-filler/orders"
)

type RawTokenConfig struct {
	Address  string `mapstructure:"address"`
	Decimals uint8  `mapstructure:"decimals"`
}

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	Orders  common.Address
	Permit2 common.Address
	Tokens  map[string]config.TokenConfig

	Blocktime time.Duration
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	Orders                   string                    `mapstructure:"orders"`
	Permit2                  string                    `mapstructure:"permit2"`
	Tokens                   map[string]RawTokenConfig `mapstructure:"tokens"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if c.Type != "evm" {
		return fmt.Errorf("type '%s' not recognized for chain %d", c.Type, *c.Id)
	}
	if !common.IsHexAddress(c.Orders) {
		return fmt.Errorf("invalid orders contract address %s for chain %d", c.Orders, *c.Id)
	}
	if c.Permit2 != "" && !common.IsHexAddress(c.Permit2) {
		return fmt.Errorf("invalid permit2 contract address %s for chain %d", c.Permit2, *c.Id)
	}
	for symbol, token := range c.Tokens {
		if !common.IsHexAddress(token.Address) {
			return fmt.Errorf("invalid address %s for token %s on chain %d", token.Address, symbol, *c.Id)
		}
	}
	return nil
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return nil, err
	}
	err = decoder.Decode(chainConfig)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	permit2 := signature.PERMIT2_ADDRESS
	if c.Permit2 != "" {
		permit2 = common.HexToAddress(c.Permit2)
	}

	tokens := make(map[string]config.TokenConfig)
	for symbol, t := range c.Tokens {
		tokens[symbol] = config.TokenConfig{
			Address:  common.HexToAddress(t.Address),
			Decimals: t.Decimals,
		}
	}

	return &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,
		Orders:             common.HexToAddress(c.Orders),
		Permit2:            permit2,
		Tokens:             tokens,
		// nolint:gosec
		Blocktime: time.Duration(c.Blocktime) * time.Second,
	}, nil
}

// NewEVMConfigs decodes every chain config and checks that the rollup and host chain
// are among them.
func NewEVMConfigs(chainConfigs []map[string]interface{}, rollupChainID uint64, hostChainID uint64) (map[uint64]*EVMConfig, error) {
	configs := make(map[uint64]*EVMConfig)
	for _, chainConfig := range chainConfigs {
		c, err := NewEVMConfig(chainConfig)
		if err != nil {
			return nil, err
		}
		if _, ok := configs[*c.GeneralChainConfig.Id]; ok {
			return nil, fmt.Errorf("duplicate config for chain %d", *c.GeneralChainConfig.Id)
		}
		configs[*c.GeneralChainConfig.Id] = c
	}

	for _, id := range []uint64{rollupChainID, hostChainID} {
		if _, ok := configs[id]; !ok {
			return nil, fmt.Errorf("no config for chain %d", id)
		}
	}
	return configs, nil
}

func (c *EVMConfig) Contracts() orders.ChainContracts {
	return orders.ChainContracts{
		Orders:  c.Orders,
		Permit2: c.Permit2,
	}
}

// TokenStore collects the token configs of all chains.
func TokenStore(configs map[uint64]*EVMConfig) config.TokenStore {
	tokens := make(map[uint64]map[string]config.TokenConfig)
	for id, c := range configs {
		tokens[id] = c.Tokens
	}
	return config.TokenStore{Tokens: tokens}
}
