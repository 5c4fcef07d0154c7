package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const outputComponents = `[
  {"name": "token", "type": "address"},
  {"name": "amount", "type": "uint256"},
  {"name": "recipient", "type": "address"},
  {"name": "chainId", "type": "uint32"}
]`

const permit2BatchComponents = `[
  {
    "name": "permit",
    "type": "tuple",
    "components": [
      {
        "name": "permitted",
        "type": "tuple[]",
        "components": [
          {"name": "token", "type": "address"},
          {"name": "amount", "type": "uint256"}
        ]
      },
      {"name": "nonce", "type": "uint256"},
      {"name": "deadline", "type": "uint256"}
    ]
  },
  {"name": "owner", "type": "address"},
  {"name": "signature", "type": "bytes"}
]`

// OrdersABI covers the Permit2 entrypoints of the RollupOrders and HostOrders contracts.
var OrdersABI, _ = abi.JSON(strings.NewReader(`[
{
  "name": "fillPermit2",
  "type": "function",
  "stateMutability": "nonpayable",
  "inputs": [
    {"name": "outputs", "type": "tuple[]", "components": ` + outputComponents + `},
    {"name": "permit2", "type": "tuple", "components": ` + permit2BatchComponents + `}
  ],
  "outputs": []
},
{
  "name": "initiatePermit2",
  "type": "function",
  "stateMutability": "nonpayable",
  "inputs": [
    {"name": "tokenRecipient", "type": "address"},
    {"name": "outputs", "type": "tuple[]", "components": ` + outputComponents + `},
    {"name": "permit2", "type": "tuple", "components": ` + permit2BatchComponents + `}
  ],
  "outputs": []
},
{
  "name": "Filled",
  "type": "event",
  "anonymous": false,
  "inputs": [
    {"name": "outputs", "type": "tuple[]", "indexed": false, "components": ` + outputComponents + `}
  ]
}
]`))
