package signer_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"math/big"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
	"github.com/stretchr/testify/suite"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

type fakeKMS struct {
	key    *ecdsa.PrivateKey
	highS  bool
	failed bool
}

func (f *fakeKMS) Sign(ctx context.Context, params *kms.SignInput, optFns ...func(*kms.Options)) (*kms.SignOutput, error) {
	if f.failed {
		return nil, fmt.Errorf("kms unavailable")
	}

	sig, err := crypto.Sign(params.Message, f.key)
	if err != nil {
		return nil, err
	}

	s := new(big.Int).SetBytes(sig[32:64])
	if f.highS {
		s = new(big.Int).Sub(crypto.S256().Params().N, s)
	}
	der, err := asn1.Marshal(struct {
		R *big.Int
		S *big.Int
	}{
		R: new(big.Int).SetBytes(sig[0:32]),
		S: s,
	})
	if err != nil {
		return nil, err
	}

	return &kms.SignOutput{Signature: der}, nil
}

func (f *fakeKMS) GetPublicKey(ctx context.Context, params *kms.GetPublicKeyInput, optFns ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error) {
	curve, _ := asn1.Marshal(asn1.ObjectIdentifier{1, 3, 132, 0, 10})
	pub := crypto.FromECDSAPub(&f.key.PublicKey)
	der, err := asn1.Marshal(struct {
		Algorithm pkix.AlgorithmIdentifier
		PublicKey asn1.BitString
	}{
		Algorithm: pkix.AlgorithmIdentifier{
			Algorithm:  asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1},
			Parameters: asn1.RawValue{FullBytes: curve},
		},
		PublicKey: asn1.BitString{Bytes: pub, BitLength: len(pub) * 8},
	})
	if err != nil {
		return nil, err
	}

	return &kms.GetPublicKeyOutput{PublicKey: der}, nil
}

type SignerTestSuite struct {
	suite.Suite

	key *ecdsa.PrivateKey
}

func TestRunSignerTestSuite(t *testing.T) {
	suite.Run(t, new(SignerTestSuite))
}

func (s *SignerTestSuite) SetupTest() {
	key, err := crypto.HexToECDSA(testKey)
	s.Nil(err)
	s.key = key
}

func (s *SignerTestSuite) Test_NewLocalSigner_InvalidKey() {
	_, err := signer.NewLocalSigner("invalid")

	s.NotNil(err)
}

func (s *SignerTestSuite) Test_LocalSigner_SignHash() {
	ls, err := signer.NewLocalSigner("0x" + testKey)
	s.Nil(err)
	hash := crypto.Keccak256([]byte("message"))

	sig, err := ls.SignHash(context.Background(), hash)
	s.Nil(err)

	pub, err := crypto.SigToPub(hash, sig)
	s.Nil(err)
	s.Equal(ls.Address(), crypto.PubkeyToAddress(*pub))
}

func (s *SignerTestSuite) Test_SignTypedHash_ShiftsRecoveryID() {
	ls := signer.NewLocalSignerFromKey(s.key)
	hash := crypto.Keccak256([]byte("typed"))

	sig, err := signer.SignTypedHash(context.Background(), ls, hash)

	s.Nil(err)
	s.True(sig[64] == 27 || sig[64] == 28)
}

func (s *SignerTestSuite) Test_SignTx_RecoversSender() {
	ls := signer.NewLocalSignerFromKey(s.key)
	to := common.HexToAddress("0x0000000000000000000000000000000000000001")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(17001),
		Nonce:     3,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})

	signed, err := signer.SignTx(context.Background(), ls, tx, big.NewInt(17001))
	s.Nil(err)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(17001)), signed)
	s.Nil(err)
	s.Equal(ls.Address(), sender)
}

func (s *SignerTestSuite) Test_KMSSigner_ValidSignature() {
	client := &fakeKMS{key: s.key}
	ks, err := signer.NewKMSSigner(context.Background(), client, "key-id")
	s.Nil(err)
	s.Equal(crypto.PubkeyToAddress(s.key.PublicKey), ks.Address())
	hash := crypto.Keccak256([]byte("kms"))

	sig, err := ks.SignHash(context.Background(), hash)
	s.Nil(err)

	pub, err := crypto.SigToPub(hash, sig)
	s.Nil(err)
	s.Equal(ks.Address(), crypto.PubkeyToAddress(*pub))
}

func (s *SignerTestSuite) Test_KMSSigner_NormalizesHighS() {
	client := &fakeKMS{key: s.key, highS: true}
	ks, err := signer.NewKMSSigner(context.Background(), client, "key-id")
	s.Nil(err)
	hash := crypto.Keccak256([]byte("kms high s"))

	sig, err := ks.SignHash(context.Background(), hash)
	s.Nil(err)

	sValue := new(big.Int).SetBytes(sig[32:64])
	halfN := new(big.Int).Div(crypto.S256().Params().N, big.NewInt(2))
	s.True(sValue.Cmp(halfN) <= 0)
	pub, err := crypto.SigToPub(hash, sig)
	s.Nil(err)
	s.Equal(ks.Address(), crypto.PubkeyToAddress(*pub))
}

func (s *SignerTestSuite) Test_KMSSigner_SignFails() {
	client := &fakeKMS{key: s.key}
	ks, err := signer.NewKMSSigner(context.Background(), client, "key-id")
	s.Nil(err)
	client.failed = true

	_, err = ks.SignHash(context.Background(), crypto.Keccak256([]byte("kms")))

	s.NotNil(err)
}
