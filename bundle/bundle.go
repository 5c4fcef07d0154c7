package bundle

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bundle is a block targeted group of rollup transactions, together with the host
// transactions that have to land for the rollup transactions to be valid. The relay
// includes all rollup transactions in the target block or none of them.
type Bundle struct {
	Txs               []hexutil.Bytes `json:"txs"`
	BlockNumber       hexutil.Uint64  `json:"blockNumber"`
	MinTimestamp      *uint64         `json:"minTimestamp,omitempty"`
	MaxTimestamp      *uint64         `json:"maxTimestamp,omitempty"`
	RevertingTxHashes []common.Hash   `json:"revertingTxHashes"`
	ReplacementUUID   string          `json:"replacementUuid,omitempty"`
	HostTxs           []hexutil.Bytes `json:"hostTxs"`
}

func NewBundle(txs [][]byte, hostTxs [][]byte, targetBlock uint64) *Bundle {
	return &Bundle{
		Txs:               toHexBytes(txs),
		BlockNumber:       hexutil.Uint64(targetBlock),
		RevertingTxHashes: []common.Hash{},
		HostTxs:           toHexBytes(hostTxs),
	}
}

// WithTimestamps limits the validity of the bundle to the given unix time window.
func (b *Bundle) WithTimestamps(minTimestamp, maxTimestamp uint64) *Bundle {
	b.MinTimestamp = &minTimestamp
	b.MaxTimestamp = &maxTimestamp
	return b
}

// WithReplacementUUID marks the bundle as replaceable by a later bundle with the same id.
func (b *Bundle) WithReplacementUUID(id string) *Bundle {
	b.ReplacementUUID = id
	return b
}

func toHexBytes(txs [][]byte) []hexutil.Bytes {
	out := make([]hexutil.Bytes, len(txs))
	for i, tx := range txs {
		out[i] = tx
	}
	return out
}
