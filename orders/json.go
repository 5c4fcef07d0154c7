package orders

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// The transaction cache encodes amounts as hex quantities and byte strings as 0x-prefixed hex.

type outputJSON struct {
	Token     common.Address `json:"token"`
	Amount    *hexutil.Big   `json:"amount"`
	Recipient common.Address `json:"recipient"`
	ChainID   uint32         `json:"chainId"`
}

func (o Output) MarshalJSON() ([]byte, error) {
	return json.Marshal(outputJSON{
		Token:     o.Token,
		Amount:    (*hexutil.Big)(o.Amount),
		Recipient: o.Recipient,
		ChainID:   o.ChainID,
	})
}

func (o *Output) UnmarshalJSON(data []byte) error {
	var dec outputJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}

	o.Token = dec.Token
	o.Amount = toBig(dec.Amount)
	o.Recipient = dec.Recipient
	o.ChainID = dec.ChainID
	return nil
}

type tokenPermissionsJSON struct {
	Token  common.Address `json:"token"`
	Amount *hexutil.Big   `json:"amount"`
}

func (p TokenPermissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenPermissionsJSON{
		Token:  p.Token,
		Amount: (*hexutil.Big)(p.Amount),
	})
}

func (p *TokenPermissions) UnmarshalJSON(data []byte) error {
	var dec tokenPermissionsJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}

	p.Token = dec.Token
	p.Amount = toBig(dec.Amount)
	return nil
}

type permitBatchJSON struct {
	Permitted []TokenPermissions `json:"permitted"`
	Nonce     *hexutil.Big       `json:"nonce"`
	Deadline  *hexutil.Big       `json:"deadline"`
}

func (p PermitBatchTransferFrom) MarshalJSON() ([]byte, error) {
	return json.Marshal(permitBatchJSON{
		Permitted: p.Permitted,
		Nonce:     (*hexutil.Big)(p.Nonce),
		Deadline:  (*hexutil.Big)(p.Deadline),
	})
}

func (p *PermitBatchTransferFrom) UnmarshalJSON(data []byte) error {
	var dec permitBatchJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}

	p.Permitted = dec.Permitted
	p.Nonce = toBig(dec.Nonce)
	p.Deadline = toBig(dec.Deadline)
	return nil
}

type permit2BatchJSON struct {
	Permit    PermitBatchTransferFrom `json:"permit"`
	Owner     common.Address          `json:"owner"`
	Signature hexutil.Bytes           `json:"signature"`
}

func (p Permit2Batch) MarshalJSON() ([]byte, error) {
	return json.Marshal(permit2BatchJSON{
		Permit:    p.Permit,
		Owner:     p.Owner,
		Signature: p.Signature,
	})
}

func (p *Permit2Batch) UnmarshalJSON(data []byte) error {
	var dec permit2BatchJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}

	p.Permit = dec.Permit
	p.Owner = dec.Owner
	p.Signature = dec.Signature
	return nil
}

type signedOrderJSON struct {
	Permit  Permit2Batch `json:"permit"`
	Outputs []Output     `json:"outputs"`
}

func (o SignedOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(signedOrderJSON(o))
}

func (o *SignedOrder) UnmarshalJSON(data []byte) error {
	var dec signedOrderJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}

	*o = SignedOrder(dec)
	return nil
}

func toBig(b *hexutil.Big) *big.Int {
	if b == nil {
		return nil
	}
	return b.ToInt()
}
