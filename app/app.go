// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/sprintertech/sprinter-filler/api"
	"github.com/sprintertech/sprinter-filler/api/handlers"
	"github.com/sprintertech/sprinter-filler/bundle"
	"github.com/sprintertech/sprinter-filler/cache"
	"github.com/sprintertech/sprinter-filler/chains/evm"
	"github.com/sprintertech/sprinter-filler/chains/evm/client"
	"github.com/sprintertech/sprinter-filler/chains/evm/signer"
	"github.com/sprintertech/sprinter-filler/config"
	"github.com/sprintertech/sprinter-filler/filler"
	"github.com/sprintertech/sprinter-filler/health"
	"github.com/sprintertech/sprinter-filler/jobs"
	"github.com/sprintertech/sprinter-filler/metrics"
	"github.com/sprintertech/sprinter-filler/orders"
	"github.com/sprintertech/sprinter-filler/price"
	"github.com/sprintertech/sprinter-filler/txcache"
	"github.com/sygmaprotocol/sygma-core/observability"
)

var Version string

// LoadConfig reads the configuration the way the flags of the root command select.
func LoadConfig() (*config.Config, error) {
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)
	configURL := viper.GetString(config.ConfigURLFlagName)

	var configuration *config.Config
	if configURL != "" {
		configuration, err = config.GetSharedConfigFromNetwork(configURL)
		if err != nil {
			return nil, err
		}
	}

	if strings.ToLower(configFlag) == "env" {
		return config.GetConfigFromENV(configuration)
	}
	return config.GetConfigFromFile(configFlag, configuration)
}

// NewSigner creates the signer holding the filler key.
func NewSigner(ctx context.Context, c config.SignerConfig) (signer.Signer, error) {
	switch c.Type {
	case "kms":
		return signer.NewKMSSignerFromConfig(ctx, c.KmsKeyID, c.Region)
	case "local", "":
		return signer.NewLocalSigner(c.Key)
	default:
		return nil, fmt.Errorf("unknown signer type %s", c.Type)
	}
}

// NewChainClients connects to every configured chain.
func NewChainClients(ctx context.Context, chainConfigs map[uint64]*evm.EVMConfig) (map[uint64]filler.ChainClient, error) {
	clients := make(map[uint64]filler.ChainClient)
	for id, c := range chainConfigs {
		log.Info().Uint64("chainID", id).Str("name", c.GeneralChainConfig.Name).Msgf("Connecting to chain")

		chainClient, err := client.NewChainClient(ctx, c.GeneralChainConfig.Endpoint, id)
		if err != nil {
			return nil, err
		}
		clients[id] = chainClient
	}
	return clients, nil
}

// NewFiller assembles the fill pipeline. Metrics may be nil.
func NewFiller(
	configuration *config.Config,
	chainConfigs map[uint64]*evm.EVMConfig,
	s signer.Signer,
	clients map[uint64]filler.ChainClient,
	fillerMetrics *metrics.FillerMetrics,
) (*filler.Filler, error) {
	contracts := make(map[uint64]orders.ChainContracts)
	for id, c := range chainConfigs {
		contracts[id] = c.Contracts()
	}

	tokenRecipient := s.Address()
	if configuration.RelayerConfig.TokenRecipient != "" {
		tokenRecipient = common.HexToAddress(configuration.RelayerConfig.TokenRecipient)
	}
	sequencer, err := filler.NewSequencer(configuration.RollupChainID, configuration.HostChainID, contracts, tokenRecipient)
	if err != nil {
		return nil, err
	}

	var bundleMetrics bundle.Metrics
	var confirmationMetrics filler.ConfirmationMetrics
	if fillerMetrics != nil {
		bundleMetrics = fillerMetrics
		confirmationMetrics = fillerMetrics
	}

	txCache := txcache.NewClient(configuration.TxCacheURL)
	submitter := bundle.NewSubmitter(txCache, bundle.Resubmit(configuration.RelayerConfig.ResubmitBlocks), bundleMetrics)
	encoder := filler.NewEncoder(s, configuration.RelayerConfig.GasLimit, configuration.RelayerConfig.PriorityFeeMultiplier)
	watcher := filler.NewWatcher(
		clients,
		confirmationMetrics,
		configuration.RelayerConfig.ConfirmationTimeout,
		configuration.RelayerConfig.MinConfirmations,
		chainConfigs[configuration.RollupChainID].Blocktime)
	return filler.NewFiller(
		s,
		txCache,
		submitter,
		sequencer,
		encoder,
		watcher,
		clients[configuration.RollupChainID],
		clients[configuration.HostChainID],
		contracts,
		configuration.RelayerConfig.WaitForConfirmations), nil
}

func Run() error {
	configuration, err := LoadConfig()
	panicOnError(err)

	observability.ConfigureLogger(configuration.RelayerConfig.LogLevel, os.Stdout)

	log.Info().Msg("Successfully loaded configuration")

	chainConfigs, err := evm.NewEVMConfigs(configuration.ChainConfigs, configuration.RollupChainID, configuration.HostChainID)
	panicOnError(err)

	mp, err := observability.InitMetricProvider(context.Background(), configuration.RelayerConfig.OpenTelemetryCollectorURL)
	panicOnError(err)
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error().Msgf("Error shutting down meter provider: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fillerMetrics, err := metrics.NewFillerMetrics(ctx, mp.Meter("filler-metric-provider"), configuration.RelayerConfig.Env, configuration.RelayerConfig.Id, Version)
	panicOnError(err)

	s, err := NewSigner(ctx, configuration.RelayerConfig.SignerConfig)
	panicOnError(err)
	log.Info().Str("address", s.Address().Hex()).Msg("Loaded filler signer")

	clients, err := NewChainClients(ctx, chainConfigs)
	panicOnError(err)

	f, err := NewFiller(configuration, chainConfigs, s, clients, fillerMetrics)
	panicOnError(err)

	chainInfo := make(map[uint64]handlers.ChainInfo)
	for id, c := range chainConfigs {
		tokens := make(map[string]common.Address)
		for symbol, t := range c.Tokens {
			tokens[symbol] = t.Address
		}
		chainInfo[id] = handlers.ChainInfo{
			ChainID: id,
			Name:    c.GeneralChainConfig.Name,
			Orders:  c.Orders,
			Permit2: c.Permit2,
			Tokens:  tokens,
		}
	}

	priceAPI := price.NewCoinmarketcapAPI(
		configuration.RelayerConfig.CoinmarketcapConfig.Url,
		configuration.RelayerConfig.CoinmarketcapConfig.ApiKey)
	var orderFilter jobs.OrderFilter
	if configuration.RelayerConfig.MinProfitUSD > 0 {
		orderFilter = filler.NewProfitabilityFilter(
			priceAPI,
			evm.TokenStore(chainConfigs),
			configuration.RollupChainID,
			configuration.RelayerConfig.MinProfitUSD)
	}

	fillCache := cache.NewFillCache(ctx)
	fillJob := jobs.NewFillJob(
		f,
		orderFilter,
		fillCache,
		fillerMetrics,
		filler.Strategy(configuration.RelayerConfig.Strategy),
		configuration.RelayerConfig.PollInterval)
	go fillJob.Start(ctx)

	go health.StartHealthEndpoint(configuration.RelayerConfig.HealthPort, map[string]health.Check{
		"rollup": func(ctx context.Context) error {
			_, err := clients[configuration.RollupChainID].LatestBlock(ctx)
			return err
		},
		"host": func(ctx context.Context) error {
			_, err := clients[configuration.HostChainID].LatestBlock(ctx)
			return err
		},
	})

	fillsHandler := handlers.NewFillsHandler(fillCache, fillJob)
	chainsHandler := handlers.NewChainsHandler(chainInfo)
	go api.Serve(ctx, configuration.RelayerConfig.ApiAddr, fillsHandler, chainsHandler)

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	log.Info().Msgf("Started filler %s with address %s. Version: v%s", configuration.RelayerConfig.Id, s.Address().Hex(), Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	return nil
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
