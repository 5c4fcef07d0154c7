package signer

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmsTypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"
)

var (
	secp256k1N     = crypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Div(secp256k1N, big.NewInt(2))
)

type KMSClient interface {
	Sign(ctx context.Context, params *kms.SignInput, optFns ...func(*kms.Options)) (*kms.SignOutput, error)
	GetPublicKey(ctx context.Context, params *kms.GetPublicKeyInput, optFns ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error)
}

type subjectPublicKeyInfo struct {
	Algorithm pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

type ecdsaSignature struct {
	R *big.Int
	S *big.Int
}

// KMSSigner signs digests with an ECC_SECG_P256K1 key held in AWS KMS.
type KMSSigner struct {
	client  KMSClient
	keyID   string
	pubKey  []byte
	address common.Address
}

// NewKMSSignerFromConfig loads the default AWS credential chain for the region
// and connects to the KMS key.
func NewKMSSignerFromConfig(ctx context.Context, keyID string, region string) (*KMSSigner, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed loading aws config: %w", err)
	}

	return NewKMSSigner(ctx, kms.NewFromConfig(cfg), keyID)
}

func NewKMSSigner(ctx context.Context, client KMSClient, keyID string) (*KMSSigner, error) {
	out, err := client.GetPublicKey(ctx, &kms.GetPublicKeyInput{
		KeyId: aws.String(keyID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed fetching kms public key: %w", err)
	}

	var spki subjectPublicKeyInfo
	if _, err := asn1.Unmarshal(out.PublicKey, &spki); err != nil {
		return nil, fmt.Errorf("failed decoding kms public key: %w", err)
	}

	pub, err := crypto.UnmarshalPubkey(spki.PublicKey.Bytes)
	if err != nil {
		return nil, fmt.Errorf("kms key is not a secp256k1 key: %w", err)
	}

	address := crypto.PubkeyToAddress(*pub)
	log.Info().Str("keyID", keyID).Str("address", address.Hex()).Msg("Connected to KMS signer")

	return &KMSSigner{
		client:  client,
		keyID:   keyID,
		pubKey:  crypto.FromECDSAPub(pub),
		address: address,
	}, nil
}

func (s *KMSSigner) Address() common.Address {
	return s.address
}

func (s *KMSSigner) PublicKey() (*ecdsa.PublicKey, error) {
	return crypto.UnmarshalPubkey(s.pubKey)
}

func (s *KMSSigner) SignHash(ctx context.Context, hash []byte) ([]byte, error) {
	out, err := s.client.Sign(ctx, &kms.SignInput{
		KeyId:            aws.String(s.keyID),
		Message:          hash,
		MessageType:      kmsTypes.MessageTypeDigest,
		SigningAlgorithm: kmsTypes.SigningAlgorithmSpecEcdsaSha256,
	})
	if err != nil {
		return nil, fmt.Errorf("kms sign request failed: %w", err)
	}

	var der ecdsaSignature
	if _, err := asn1.Unmarshal(out.Signature, &der); err != nil {
		return nil, fmt.Errorf("failed decoding kms signature: %w", err)
	}

	// ethereum only accepts signatures in the lower half of the curve order
	if der.S.Cmp(secp256k1HalfN) > 0 {
		der.S = new(big.Int).Sub(secp256k1N, der.S)
	}

	sig := make([]byte, crypto.SignatureLength)
	der.R.FillBytes(sig[0:32])
	der.S.FillBytes(sig[32:64])
	for v := byte(0); v < 2; v++ {
		sig[crypto.RecoveryIDOffset] = v
		recovered, err := crypto.Ecrecover(hash, sig)
		if err != nil {
			continue
		}
		if bytes.Equal(recovered, s.pubKey) {
			return sig, nil
		}
	}

	return nil, fmt.Errorf("failed recovering kms signature for key %s", s.keyID)
}
