package order

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/sygma-core/observability"

	"github.com/sprintertech/sprinter-filler/app"
	"github.com/sprintertech/sprinter-filler/chains/evm"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
	"github.com/sprintertech/sprinter-filler/config"
	"github.com/sprintertech/sprinter-filler/orders"
	"github.com/sprintertech/sprinter-filler/txcache"
)

var (
	OrderCMD = &cobra.Command{
		Use:   "order",
		Short: "Sign an order and forward it to the transaction cache",
		Long: "Sign an order initiated on the rollup with the configured signer as owner " +
			"and forward it to the transaction cache so it can be filled. With --fill the " +
			"order is filled by the same signer once the transaction cache lists it",
		RunE: sendOrder,
	}
)

var (
	inputToken     string
	inputAmount    string
	outputToken    string
	outputAmount   string
	outputChain    uint64
	recipient      string
	deadlineOffset time.Duration
	fill           bool
	pollInterval   time.Duration
)

func init() {
	OrderCMD.Flags().StringVar(&inputToken, "input-token", "WETH", "symbol of the token the order pays on the rollup")
	OrderCMD.Flags().StringVar(&inputAmount, "input-amount", "", "input amount in token base units")
	_ = OrderCMD.MarkFlagRequired("input-amount")
	OrderCMD.Flags().StringVar(&outputToken, "output-token", "WETH", "symbol of the token the order receives")
	OrderCMD.Flags().StringVar(&outputAmount, "output-amount", "", "output amount in token base units")
	_ = OrderCMD.MarkFlagRequired("output-amount")
	OrderCMD.Flags().Uint64Var(&outputChain, "output-chain", 0, "chain the output is paid on, defaults to the host chain")
	OrderCMD.Flags().StringVar(&recipient, "recipient", "", "output recipient, defaults to the signer")
	OrderCMD.Flags().DurationVar(&deadlineOffset, "deadline", time.Minute*10, "time until the order expires")
	OrderCMD.Flags().BoolVar(&fill, "fill", false, "fill the order once the transaction cache lists it")
	OrderCMD.Flags().DurationVar(&pollInterval, "poll-interval", time.Second, "interval between transaction cache polls while waiting for the order")
}

func sendOrder(cmd *cobra.Command, args []string) error {
	configuration, err := app.LoadConfig()
	if err != nil {
		return err
	}
	observability.ConfigureLogger(configuration.RelayerConfig.LogLevel, os.Stdout)

	chainConfigs, err := evm.NewEVMConfigs(configuration.ChainConfigs, configuration.RollupChainID, configuration.HostChainID)
	if err != nil {
		return err
	}
	tokens := evm.TokenStore(chainConfigs)

	ctx := context.Background()
	s, err := app.NewSigner(ctx, configuration.RelayerConfig.SignerConfig)
	if err != nil {
		return err
	}

	if outputChain == 0 {
		outputChain = configuration.HostChainID
	}
	outputRecipient := s.Address()
	if recipient != "" {
		if !common.IsHexAddress(recipient) {
			return fmt.Errorf("invalid recipient %s", recipient)
		}
		outputRecipient = common.HexToAddress(recipient)
	}

	in, err := tokens.ConfigBySymbol(configuration.RollupChainID, inputToken)
	if err != nil {
		return err
	}
	out, err := tokens.ConfigBySymbol(outputChain, outputToken)
	if err != nil {
		return err
	}
	inAmount, ok := new(big.Int).SetString(inputAmount, 10)
	if !ok {
		return fmt.Errorf("invalid input amount %s", inputAmount)
	}
	outAmount, ok := new(big.Int).SetString(outputAmount, 10)
	if !ok {
		return fmt.Errorf("invalid output amount %s", outputAmount)
	}

	// nolint:gosec
	deadline := uint64(time.Now().Add(deadlineOffset).Unix())
	order, err := orders.NewUnsignedOrder().
		WithInput(in.Address, inAmount).
		// nolint:gosec
		WithOutput(out.Address, outAmount, outputRecipient, uint32(outputChain)).
		WithDeadline(deadline).
		WithChain(configuration.RollupChainID, chainConfigs[configuration.RollupChainID].Contracts()).
		Sign(ctx, s)
	if err != nil {
		return err
	}

	err = txcache.NewClient(configuration.TxCacheURL).ForwardOrder(ctx, order)
	if err != nil {
		return err
	}

	log.Info().Str("orderID", order.ID().Hex()).Uint64("deadline", deadline).Msg("Forwarded order to transaction cache")

	if !fill {
		return nil
	}
	return fillOrder(ctx, configuration, chainConfigs, s, order, deadline)
}

func fillOrder(
	ctx context.Context,
	configuration *config.Config,
	chainConfigs map[uint64]*evm.EVMConfig,
	s signer.Signer,
	order *orders.SignedOrder,
	deadline uint64,
) error {
	clients, err := app.NewChainClients(ctx, chainConfigs)
	if err != nil {
		return err
	}
	f, err := app.NewFiller(configuration, chainConfigs, s, clients, nil)
	if err != nil {
		return err
	}

	// nolint:gosec
	ctx, cancel := context.WithDeadline(ctx, time.Unix(int64(deadline), 0))
	defer cancel()

	retained, err := f.AwaitOrder(ctx, order, pollInterval)
	if err != nil {
		return err
	}

	results, err := f.FillIndividually(ctx, retained)
	for _, result := range results {
		if result == nil {
			continue
		}
		for _, submission := range result.Submissions {
			log.Info().Uint64("targetBlock", submission.TargetBlock).Str("bundleID", submission.BundleID.String()).Msg("Submitted fill bundle")
		}
		log.Info().Str("state", result.State.String()).Int("filledEvents", result.FilledEvents).Int("orderEvents", result.OrderEvents).Msg("Fill finished")
	}
	return err
}
