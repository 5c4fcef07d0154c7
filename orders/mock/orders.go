package mock

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-filler/orders"
)

var (
	RollupChainID uint64 = 17001
	HostChainID   uint64 = 17000

	RollupOrders = common.HexToAddress("0x4E8cC181805aFC307C83298242271142b8e2f249")
	HostOrders   = common.HexToAddress("0x96f44ddc3Bc8892371305531F1a6d8ca2331fE6C")

	RollupWETH = common.HexToAddress("0x0000000000000000007369676e65742d77657468")
	HostWETH   = common.HexToAddress("0xD1278f17e86071f1E658B656084c65b7FD3c90eF")

	Recipient = common.HexToAddress("0x5ECF7351930e4A251193aA022Ef06249C6cBfa27")
	Owner     = common.HexToAddress("0xde526bA5d1ad94cC59D7A79d99A59F607d31A657")
)

// SignedOrder builds an order with a fake signature derived from id.
func SignedOrder(id byte, deadline uint64, outputs ...orders.Output) orders.SignedOrder {
	sig := make([]byte, 65)
	sig[0] = id
	sig[64] = 27

	return orders.SignedOrder{
		Permit: orders.Permit2Batch{
			Permit: orders.PermitBatchTransferFrom{
				Permitted: []orders.TokenPermissions{
					{Token: RollupWETH, Amount: big.NewInt(1000)},
				},
				Nonce:    big.NewInt(int64(id)),
				Deadline: new(big.Int).SetUint64(deadline),
			},
			Owner:     Owner,
			Signature: sig,
		},
		Outputs: outputs,
	}
}

func RollupOutput(amount int64) orders.Output {
	return orders.Output{
		Token:     RollupWETH,
		Amount:    big.NewInt(amount),
		Recipient: Recipient,
		ChainID:   uint32(RollupChainID),
	}
}

func HostOutput(amount int64) orders.Output {
	return orders.Output{
		Token:     HostWETH,
		Amount:    big.NewInt(amount),
		Recipient: Recipient,
		ChainID:   uint32(HostChainID),
	}
}

func Contracts() map[uint64]orders.ChainContracts {
	return map[uint64]orders.ChainContracts{
		RollupChainID: {Orders: RollupOrders},
		HostChainID:   {Orders: HostOrders},
	}
}
