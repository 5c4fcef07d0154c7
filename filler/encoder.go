// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package filler

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
	"github.com/sprintertech/sprinter-filler/errs"
	"golang.org/x/sync/errgroup"
)

const (
	DEFAULT_GAS_LIMIT               = 1_000_000
	DEFAULT_PRIORITY_FEE_MULTIPLIER = 16
)

type ChainClient interface {
	ChainID() uint64
	LatestBlock(ctx context.Context) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	BaseFee(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// SignedTx is a signed transaction in its canonical EIP-2718 encoding.
type SignedTx struct {
	ChainID uint64
	Hash    common.Hash
	Raw     []byte
}

// Encoder resolves fees and nonces for transaction requests and signs them with the
// filler key.
type Encoder struct {
	signer      signer.Signer
	gasLimit    uint64
	priorityFee *big.Int
}

// NewEncoder creates an encoder with a fixed gas limit and a priority fee of
// priorityFeeMultiplier gwei.
func NewEncoder(s signer.Signer, gasLimit uint64, priorityFeeMultiplier uint64) *Encoder {
	if gasLimit == 0 {
		gasLimit = DEFAULT_GAS_LIMIT
	}
	if priorityFeeMultiplier == 0 {
		priorityFeeMultiplier = DEFAULT_PRIORITY_FEE_MULTIPLIER
	}

	return &Encoder{
		signer:      s,
		gasLimit:    gasLimit,
		priorityFee: new(big.Int).Mul(big.NewInt(params.GWei), new(big.Int).SetUint64(priorityFeeMultiplier)),
	}
}

func (e *Encoder) Address() common.Address {
	return e.signer.Address()
}

// Encode signs every request for the chain of the client. Nonces are assigned in input
// order and the output preserves it. A failure of any request fails the whole batch.
func (e *Encoder) Encode(ctx context.Context, client ChainClient, requests []TransactionRequest) ([]SignedTx, error) {
	if len(requests) == 0 {
		return []SignedTx{}, nil
	}

	chainID := client.ChainID()
	for i, req := range requests {
		if req.ChainID != chainID {
			return nil, errs.ForChain(errs.EncodingFailed, chainID, fmt.Errorf("request %d targets chain %d", i, req.ChainID))
		}
	}

	nonce, err := client.PendingNonceAt(ctx, e.signer.Address())
	if err != nil {
		return nil, errs.ForChain(errs.EncodingFailed, chainID, fmt.Errorf("failed fetching nonce: %w", err))
	}
	baseFee, err := client.BaseFee(ctx)
	if err != nil {
		return nil, errs.ForChain(errs.EncodingFailed, chainID, fmt.Errorf("failed fetching base fee: %w", err))
	}
	feeCap := new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(2)), e.priorityFee)

	txs := make([]SignedTx, len(requests))
	g, gCtx := errgroup.WithContext(ctx)
	for i, req := range requests {
		value := req.Value
		if value == nil {
			value = big.NewInt(0)
		}
		to := req.To
		tx := types.NewTx(&types.DynamicFeeTx{
			ChainID:   new(big.Int).SetUint64(chainID),
			Nonce:     nonce + uint64(i),
			GasTipCap: new(big.Int).Set(e.priorityFee),
			GasFeeCap: new(big.Int).Set(feeCap),
			Gas:       e.gasLimit,
			To:        &to,
			Value:     value,
			Data:      req.Data,
		})

		g.Go(func() error {
			signed, err := signer.SignTx(gCtx, e.signer, tx, new(big.Int).SetUint64(chainID))
			if err != nil {
				return err
			}

			raw, err := signed.MarshalBinary()
			if err != nil {
				return err
			}

			txs[i] = SignedTx{
				ChainID: chainID,
				Hash:    signed.Hash(),
				Raw:     raw,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errs.ForChain(errs.EncodingFailed, chainID, err)
	}

	for i, tx := range txs {
		log.Debug().
			Uint64("chainID", chainID).
			Str("txHash", tx.Hash.Hex()).
			Str("kind", requests[i].Kind.String()).
			Msgf("Encoded transaction with nonce %d", nonce+uint64(i))
	}
	return txs, nil
}

// DecodeSignedTx parses a wire encoded transaction and recovers its sender.
func DecodeSignedTx(raw []byte) (*types.Transaction, common.Address, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, common.Address{}, err
	}

	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, common.Address{}, err
	}
	return tx, sender, nil
}

// RawTxs returns the encoded bytes of the transactions in order.
func RawTxs(txs []SignedTx) [][]byte {
	raw := make([][]byte, len(txs))
	for i, tx := range txs {
		raw[i] = tx.Raw
	}
	return raw
}
