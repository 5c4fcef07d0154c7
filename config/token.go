package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenConfig is a token the filler can price. Decimals convert base units
// into whole tokens.
type TokenConfig struct {
	Address  common.Address
	Decimals uint8
}

// TokenStore holds the configured tokens per chain id, keyed by their price symbol.
type TokenStore struct {
	Tokens map[uint64]map[string]TokenConfig
}

// ConfigByAddress finds the price symbol of a token an order pays or receives.
func (s *TokenStore) ConfigByAddress(chainID uint64, address common.Address) (string, TokenConfig, error) {
	tokens, err := s.chainTokens(chainID)
	if err != nil {
		return "", TokenConfig{}, err
	}

	for symbol, c := range tokens {
		if c.Address == address {
			return symbol, c, nil
		}
	}
	return "", TokenConfig{}, fmt.Errorf("token %s not configured on chain %d", address.Hex(), chainID)
}

// ConfigBySymbol looks up a token by symbol, ignoring case.
func (s *TokenStore) ConfigBySymbol(chainID uint64, symbol string) (TokenConfig, error) {
	tokens, err := s.chainTokens(chainID)
	if err != nil {
		return TokenConfig{}, err
	}

	if c, ok := tokens[symbol]; ok {
		return c, nil
	}
	for configured, c := range tokens {
		if strings.EqualFold(configured, symbol) {
			return c, nil
		}
	}
	return TokenConfig{}, fmt.Errorf("token %s not configured on chain %d", symbol, chainID)
}

func (s *TokenStore) chainTokens(chainID uint64) (map[string]TokenConfig, error) {
	tokens, ok := s.Tokens[chainID]
	if !ok || len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens configured on chain %d", chainID)
	}
	return tokens, nil
}
