package bundle

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/sygma-core/observability"

	"github.com/sprintertech/sprinter-filler/app"
	"github.com/sprintertech/sprinter-filler/bundle"
	"github.com/sprintertech/sprinter-filler/chains/evm"
	"github.com/sprintertech/sprinter-filler/filler"
	"github.com/sprintertech/sprinter-filler/txcache"
)

var (
	BundleCMD = &cobra.Command{
		Use:   "bundle",
		Short: "Send a dummy bundle to the transaction cache",
		Long: "Send a bundle with a 1 wei self transfer on the rollup, and on the host if requested, " +
			"to check that bundles forwarded to the transaction cache get included",
		RunE: sendBundle,
	}
)

var (
	blocks   uint64
	withHost bool
	wait     bool
)

func init() {
	BundleCMD.Flags().Uint64Var(&blocks, "blocks", bundle.DEFAULT_RESUBMIT_BLOCKS, "number of consecutive blocks the bundle targets")
	BundleCMD.Flags().BoolVar(&withHost, "host", false, "add a host transfer to the bundle")
	BundleCMD.Flags().BoolVar(&wait, "wait", true, "wait until the transfers are confirmed")
}

func sendBundle(cmd *cobra.Command, args []string) error {
	configuration, err := app.LoadConfig()
	if err != nil {
		return err
	}
	observability.ConfigureLogger(configuration.RelayerConfig.LogLevel, os.Stdout)

	chainConfigs, err := evm.NewEVMConfigs(configuration.ChainConfigs, configuration.RollupChainID, configuration.HostChainID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, err := app.NewSigner(ctx, configuration.RelayerConfig.SignerConfig)
	if err != nil {
		return err
	}
	clients, err := app.NewChainClients(ctx, chainConfigs)
	if err != nil {
		return err
	}
	rollup := clients[configuration.RollupChainID]
	host := clients[configuration.HostChainID]

	encoder := filler.NewEncoder(s, configuration.RelayerConfig.GasLimit, configuration.RelayerConfig.PriorityFeeMultiplier)
	rollupTxs, err := encoder.Encode(ctx, rollup, []filler.TransactionRequest{
		filler.NewTransferRequest(configuration.RollupChainID, s.Address(), big.NewInt(1)),
	})
	if err != nil {
		return err
	}
	watches := []filler.Watch{{ChainID: configuration.RollupChainID, Hash: rollupTxs[0].Hash}}

	var hostTxs []filler.SignedTx
	if withHost {
		hostTxs, err = encoder.Encode(ctx, host, []filler.TransactionRequest{
			filler.NewTransferRequest(configuration.HostChainID, s.Address(), big.NewInt(1)),
		})
		if err != nil {
			return err
		}
		watches = append(watches, filler.Watch{ChainID: configuration.HostChainID, Hash: hostTxs[0].Hash})
	}

	currentBlock, err := rollup.LatestBlock(ctx)
	if err != nil {
		return err
	}

	submitter := bundle.NewSubmitter(txcache.NewClient(configuration.TxCacheURL), bundle.Resubmit(blocks), nil)
	submissions, err := submitter.Submit(ctx, filler.RawTxs(rollupTxs), filler.RawTxs(hostTxs), currentBlock, 0)
	if err != nil {
		return err
	}
	for _, submission := range submissions {
		log.Info().Uint64("targetBlock", submission.TargetBlock).Str("bundleID", submission.BundleID.String()).Msg("Submitted bundle")
	}

	if !wait {
		return nil
	}

	watcher := filler.NewWatcher(
		clients,
		nil,
		configuration.RelayerConfig.ConfirmationTimeout,
		configuration.RelayerConfig.MinConfirmations,
		chainConfigs[configuration.RollupChainID].Blocktime)
	results, err := watcher.WaitForConfirmations(ctx, watches)
	if err != nil {
		return fmt.Errorf("bundle not included: %w", err)
	}
	for _, result := range results {
		log.Info().Uint64("chainID", result.ChainID).Str("txHash", result.Hash.Hex()).Uint64("block", result.Receipt.BlockNumber.Uint64()).Msg("Transfer confirmed")
	}
	return nil
}
