// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs 32 byte digests with a secp256k1 key. Signatures are returned
// in the [R || S || V] form with V being 0 or 1.
type Signer interface {
	Address() common.Address
	SignHash(ctx context.Context, hash []byte) ([]byte, error)
}

// SignTx signs the transaction for the given chain with the signer key.
func SignTx(ctx context.Context, s Signer, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	txSigner := types.LatestSignerForChainID(chainID)
	sig, err := s.SignHash(ctx, txSigner.Hash(tx).Bytes())
	if err != nil {
		return nil, err
	}

	return tx.WithSignature(txSigner, sig)
}

// SignTypedHash signs an EIP-712 digest and returns the signature with V
// shifted to 27/28 as expected by on-chain ecrecover.
func SignTypedHash(ctx context.Context, s Signer, hash []byte) ([]byte, error) {
	sig, err := s.SignHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("invalid signature length %d", len(sig))
	}

	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

type LocalSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewLocalSigner creates a signer from a hex encoded private key.
func NewLocalSigner(hexKey string) (*LocalSigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return NewLocalSignerFromKey(key), nil
}

func NewLocalSignerFromKey(key *ecdsa.PrivateKey) *LocalSigner {
	return &LocalSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

func (s *LocalSigner) Address() common.Address {
	return s.address
}

func (s *LocalSigner) SignHash(ctx context.Context, hash []byte) ([]byte, error) {
	return crypto.Sign(hash, s.key)
}
