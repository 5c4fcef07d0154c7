// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	evmClient "github.com/sygmaprotocol/sygma-core/chains/evm/client"
)

type rpcClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// ChainClient is the chain provider used by the filler for a single EVM chain.
type ChainClient struct {
	rpc     rpcClient
	chainID uint64
}

// NewChainClient dials the endpoint and checks that it serves the expected chain.
func NewChainClient(ctx context.Context, endpoint string, chainID uint64) (*ChainClient, error) {
	c, err := evmClient.NewEVMClient(endpoint, nil)
	if err != nil {
		return nil, err
	}

	remoteID, err := c.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed fetching chain id from %s: %w", endpoint, err)
	}
	if !remoteID.IsUint64() || remoteID.Uint64() != chainID {
		return nil, fmt.Errorf("endpoint %s serves chain %s, expected %d", endpoint, remoteID, chainID)
	}

	return &ChainClient{
		rpc:     c,
		chainID: chainID,
	}, nil
}

func (c *ChainClient) ChainID() uint64 {
	return c.chainID
}

func (c *ChainClient) LatestBlock(ctx context.Context) (uint64, error) {
	return c.rpc.BlockNumber(ctx)
}

func (c *ChainClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.rpc.PendingNonceAt(ctx, account)
}

// BaseFee returns the base fee of the latest block.
func (c *ChainClient) BaseFee(ctx context.Context) (*big.Int, error) {
	header, err := c.rpc.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, err
	}
	if header.BaseFee == nil {
		return nil, fmt.Errorf("chain %d does not support EIP-1559", c.chainID)
	}
	return header.BaseFee, nil
}

func (c *ChainClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return c.rpc.TransactionReceipt(ctx, hash)
}
