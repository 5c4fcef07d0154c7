package orders

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-filler/chains/evm/signature"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
	"github.com/sprintertech/sprinter-filler/errs"
)

// ChainContracts are the contracts a fill on a chain is executed against.
type ChainContracts struct {
	Orders  common.Address
	Permit2 common.Address
}

// SignedFill is the filler's permit to transfer the aggregated outputs on one chain.
type SignedFill struct {
	ChainID uint64
	Permit  Permit2Batch
	Outputs []Output
}

// UnsignedFill is an aggregate obligation awaiting the filler signature. Builder
// methods return a modified copy.
type UnsignedFill struct {
	aggregate *AggregateOrders
	deadline  uint64
	nonce     *big.Int
	chains    map[uint64]ChainContracts
}

func NewUnsignedFill(aggregate *AggregateOrders) *UnsignedFill {
	return &UnsignedFill{
		aggregate: aggregate,
		chains:    make(map[uint64]ChainContracts),
	}
}

func (f *UnsignedFill) clone() *UnsignedFill {
	chains := make(map[uint64]ChainContracts, len(f.chains))
	for id, c := range f.chains {
		chains[id] = c
	}
	c := *f
	c.chains = chains
	return &c
}

func (f *UnsignedFill) WithDeadline(deadline uint64) *UnsignedFill {
	c := f.clone()
	c.deadline = deadline
	return c
}

// WithNonce sets the Permit2 nonce. When unset a microsecond timestamp is used at
// signing time.
func (f *UnsignedFill) WithNonce(nonce *big.Int) *UnsignedFill {
	c := f.clone()
	c.nonce = new(big.Int).Set(nonce)
	return c
}

func (f *UnsignedFill) WithChain(chainID uint64, contracts ChainContracts) *UnsignedFill {
	c := f.clone()
	c.chains[chainID] = contracts
	return c
}

func (f *UnsignedFill) WithChains(chains map[uint64]ChainContracts) *UnsignedFill {
	c := f.clone()
	for id, contracts := range chains {
		c.chains[id] = contracts
	}
	return c
}

func (f *UnsignedFill) ChainIDs() []uint64 {
	return f.aggregate.ChainIDs()
}

// Digest returns the EIP-712 digest the filler signs for the chain.
func (f *UnsignedFill) Digest(chainID uint64, owner common.Address) ([]byte, error) {
	_, digest, err := f.permit(chainID, owner)
	return digest, err
}

func (f *UnsignedFill) permit(chainID uint64, owner common.Address) (*SignedFill, []byte, error) {
	if f.deadline == 0 {
		return nil, nil, errs.ForChain(errs.InvalidDeadline, chainID, fmt.Errorf("fill deadline not set"))
	}
	contracts, ok := f.chains[chainID]
	if !ok || contracts.Orders == (common.Address{}) {
		return nil, nil, errs.ForChain(errs.UnknownChain, chainID, fmt.Errorf("no orders contract configured"))
	}
	permit2 := contracts.Permit2
	if permit2 == (common.Address{}) {
		permit2 = signature.PERMIT2_ADDRESS
	}

	nonce := f.nonce
	if nonce == nil {
		nonce = big.NewInt(time.Now().UnixMicro())
	}

	outputs := f.aggregate.OutputsForChain(chainID)
	permitted := f.aggregate.permittedForChain(chainID)
	digest, err := signature.PermitBatchWitnessHash(
		tokenPermissions(permitted),
		witnessOutputs(outputs),
		contracts.Orders,
		nonce,
		f.deadline,
		new(big.Int).SetUint64(chainID),
		permit2,
	)
	if err != nil {
		return nil, nil, errs.ForChain(errs.SigningFailed, chainID, err)
	}

	return &SignedFill{
		ChainID: chainID,
		Outputs: outputs,
		Permit: Permit2Batch{
			Permit: PermitBatchTransferFrom{
				Permitted: permitted,
				Nonce:     new(big.Int).Set(nonce),
				Deadline:  new(big.Int).SetUint64(f.deadline),
			},
			Owner: owner,
		},
	}, digest, nil
}

// SignFor signs the fill for a single chain.
func (f *UnsignedFill) SignFor(ctx context.Context, chainID uint64, s signer.Signer) (*SignedFill, error) {
	fill, digest, err := f.permit(chainID, s.Address())
	if err != nil {
		return nil, err
	}

	sig, err := signer.SignTypedHash(ctx, s, digest)
	if err != nil {
		return nil, errs.ForChain(errs.SigningFailed, chainID, err)
	}
	fill.Permit.Signature = sig

	log.Debug().Uint64("chainID", chainID).Str("owner", s.Address().Hex()).Msgf("Signed fill with %d outputs", len(fill.Outputs))
	return fill, nil
}

// Sign signs a fill for every destination chain of the aggregate with one signer.
func (f *UnsignedFill) Sign(ctx context.Context, s signer.Signer) (map[uint64]SignedFill, error) {
	signers := make(map[uint64]signer.Signer)
	for _, chainID := range f.ChainIDs() {
		signers[chainID] = s
	}
	return f.SignWith(ctx, signers)
}

// SignWith signs a fill for every destination chain with the signer configured for
// that chain.
func (f *UnsignedFill) SignWith(ctx context.Context, signers map[uint64]signer.Signer) (map[uint64]SignedFill, error) {
	chainIDs := f.ChainIDs()
	if len(chainIDs) == 0 {
		return nil, errs.New(errs.EmptyOrderSet, fmt.Errorf("aggregate has no outputs"))
	}

	fills := make(map[uint64]SignedFill, len(chainIDs))
	for _, chainID := range chainIDs {
		s, ok := signers[chainID]
		if !ok {
			return nil, errs.ForChain(errs.SigningFailed, chainID, fmt.Errorf("no signer configured"))
		}

		fill, err := f.SignFor(ctx, chainID, s)
		if err != nil {
			return nil, err
		}
		fills[chainID] = *fill
	}
	return fills, nil
}
