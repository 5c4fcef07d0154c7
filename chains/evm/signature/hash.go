package signature

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	DOMAIN_NAME  = "Permit2"
	PRIMARY_TYPE = "PermitBatchWitnessTransferFrom"
)

// PERMIT2_ADDRESS is the canonical Permit2 deployment shared by every EVM chain.
var PERMIT2_ADDRESS = common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")

type TokenPermission struct {
	Token  common.Address
	Amount *big.Int
}

type WitnessOutput struct {
	Token     common.Address
	Amount    *big.Int
	Recipient common.Address
	ChainID   uint32
}

// PermitBatchWitnessHash calculates the EIP-712 digest of a Permit2 batch transfer whose
// witness is the list of outputs the permit pays for. The orders contract on the
// destination chain is the spender.
func PermitBatchWitnessHash(
	permitted []TokenPermission,
	outputs []WitnessOutput,
	spender common.Address,
	nonce *big.Int,
	deadline uint64,
	chainID *big.Int,
	permit2 common.Address,
) ([]byte, error) {
	permissions := make([]interface{}, len(permitted))
	for i, p := range permitted {
		permissions[i] = map[string]interface{}{
			"token":  p.Token.Hex(),
			"amount": p.Amount,
		}
	}

	witness := make([]interface{}, len(outputs))
	for i, o := range outputs {
		witness[i] = map[string]interface{}{
			"token":     o.Token.Hex(),
			"amount":    o.Amount,
			"recipient": o.Recipient.Hex(),
			"chainId":   new(big.Int).SetUint64(uint64(o.ChainID)),
		}
	}

	msg := apitypes.TypedDataMessage{
		"permitted": permissions,
		"spender":   spender.Hex(),
		"nonce":     nonce,
		"deadline":  new(big.Int).SetUint64(deadline),
		"outputs":   witness,
	}

	domainChainID := math.HexOrDecimal256(*chainID)
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			PRIMARY_TYPE: []apitypes.Type{
				{Name: "permitted", Type: "TokenPermissions[]"},
				{Name: "spender", Type: "address"},
				{Name: "nonce", Type: "uint256"},
				{Name: "deadline", Type: "uint256"},
				{Name: "outputs", Type: "Output[]"},
			},
			"TokenPermissions": []apitypes.Type{
				{Name: "token", Type: "address"},
				{Name: "amount", Type: "uint256"},
			},
			"Output": []apitypes.Type{
				{Name: "token", Type: "address"},
				{Name: "amount", Type: "uint256"},
				{Name: "recipient", Type: "address"},
				{Name: "chainId", Type: "uint32"},
			},
		},
		PrimaryType: PRIMARY_TYPE,
		Domain: apitypes.TypedDataDomain{
			Name:              DOMAIN_NAME,
			ChainId:           &domainChainID,
			VerifyingContract: permit2.Hex(),
		},
		Message: msg,
	}

	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return []byte{}, err
	}

	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return []byte{}, err
	}

	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(messageHash)))
	return crypto.Keccak256(rawData), nil
}
