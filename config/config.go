// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName    = "config"
	ConfigURLFlagName = "config-url"
	EnvPrefix         = "FILLER"
)

type SignerConfig struct {
	Type     string `mapstructure:"type" json:"type" default:"local"`
	Key      string `mapstructure:"key" json:"key"`
	KmsKeyID string `mapstructure:"kmsKeyID" json:"kmsKeyID"`
	Region   string `mapstructure:"region" json:"region"`
}

type CoinmarketcapConfig struct {
	Url    string `mapstructure:"url" json:"url" default:"https://pro-api.coinmarketcap.com"`
	ApiKey string `mapstructure:"apiKey" json:"apiKey"`
}

type RelayerConfig struct {
	LogLevel                  zerolog.Level
	HealthPort                uint16
	ApiAddr                   string
	OpenTelemetryCollectorURL string
	Env                       string
	Id                        string
	PollInterval              time.Duration
	Strategy                  string
	ResubmitBlocks            uint64
	WaitForConfirmations      bool
	ConfirmationTimeout       time.Duration
	MinConfirmations          uint64
	GasLimit                  uint64
	PriorityFeeMultiplier     uint64
	SignerConfig              SignerConfig
	CoinmarketcapConfig       CoinmarketcapConfig
	MinProfitUSD              float64
	TokenRecipient            string
}

type RawRelayerConfig struct {
	LogLevel                  string              `mapstructure:"logLevel" json:"logLevel" default:"info"`
	HealthPort                uint16              `mapstructure:"healthPort" json:"healthPort" default:"9001"`
	ApiAddr                   string              `mapstructure:"apiAddr" json:"apiAddr" default:":3000"`
	OpenTelemetryCollectorURL string              `mapstructure:"openTelemetryCollectorURL" json:"openTelemetryCollectorURL"`
	Env                       string              `mapstructure:"env" json:"env"`
	Id                        string              `mapstructure:"id" json:"id"`
	PollInterval              uint64              `mapstructure:"pollInterval" json:"pollInterval" default:"5"`
	Strategy                  string              `mapstructure:"strategy" json:"strategy" default:"individual"`
	ResubmitBlocks            uint64              `mapstructure:"resubmitBlocks" json:"resubmitBlocks" default:"10"`
	WaitForConfirmations      bool                `mapstructure:"waitForConfirmations" json:"waitForConfirmations"`
	ConfirmationTimeout       uint64              `mapstructure:"confirmationTimeout" json:"confirmationTimeout" default:"300"`
	MinConfirmations          uint64              `mapstructure:"minConfirmations" json:"minConfirmations" default:"1"`
	GasLimit                  uint64              `mapstructure:"gasLimit" json:"gasLimit" default:"1000000"`
	PriorityFeeMultiplier     uint64              `mapstructure:"priorityFeeMultiplier" json:"priorityFeeMultiplier" default:"16"`
	SignerConfig              SignerConfig        `mapstructure:"signer" json:"signer"`
	CoinmarketcapConfig       CoinmarketcapConfig `mapstructure:"coinmarketcap" json:"coinmarketcap"`
	MinProfitUSD              float64             `mapstructure:"minProfitUSD" json:"minProfitUSD"`
	TokenRecipient            string              `mapstructure:"tokenRecipient" json:"tokenRecipient"`
}

type Config struct {
	RelayerConfig RelayerConfig
	TxCacheURL    string
	RollupChainID uint64
	HostChainID   uint64
	ChainConfigs  []map[string]interface{}
}

type RawConfig struct {
	RelayerConfig RawRelayerConfig         `mapstructure:"relayerConfig" json:"relayerConfig"`
	TxCacheURL    string                   `mapstructure:"txCacheURL" json:"txCacheURL"`
	RollupChainID uint64                   `mapstructure:"rollupChainID" json:"rollupChainID"`
	HostChainID   uint64                   `mapstructure:"hostChainID" json:"hostChainID"`
	ChainConfigs  []map[string]interface{} `mapstructure:"chains" json:"chains"`
}

// BindFlags binds the configuration flags shared by all commands.
func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, ".", "Path to JSON/YAML configuration file or 'env' to read it from the environment")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))
}

// GetConfigFromFile reads the configuration file and merges it over the given base
// configuration.
func GetConfigFromFile(path string, config *Config) (*Config, error) {
	rawConfig := RawConfig{}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "json" && ext != "yaml" && ext != "yml" {
		return nil, fmt.Errorf("unsupported config file type %s", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(&rawConfig); err != nil {
		return nil, err
	}

	return processRawConfig(rawConfig, config)
}

// GetConfigFromENV reads the configuration from FILLER_ prefixed environment variables.
// Chains are passed as a JSON list in FILLER_CHAINS.
func GetConfigFromENV(config *Config) (*Config, error) {
	rawConfig, err := loadFromEnv()
	if err != nil {
		return nil, err
	}

	return processRawConfig(rawConfig, config)
}

// GetSharedConfigFromNetwork fetches the shared JSON configuration from the url.
func GetSharedConfigFromNetwork(url string) (*Config, error) {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := retryClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed fetching shared config: status code %d", resp.StatusCode)
	}

	rawConfig := RawConfig{}
	if err := json.NewDecoder(resp.Body).Decode(&rawConfig); err != nil {
		return nil, err
	}

	config := &Config{}
	config.ChainConfigs = rawConfig.ChainConfigs
	config.TxCacheURL = rawConfig.TxCacheURL
	config.RollupChainID = rawConfig.RollupChainID
	config.HostChainID = rawConfig.HostChainID
	return config, nil
}

func loadFromEnv() (RawConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	env := make(map[string]interface{})
	for _, key := range envKeys(RawConfig{}) {
		if value := v.Get(key); value != nil {
			env[key] = value
		}
	}

	nested := make(map[string]interface{})
	for key, value := range env {
		setNested(nested, strings.Split(key, "."), value)
	}

	rawConfig := RawConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rawConfig,
	})
	if err != nil {
		return RawConfig{}, err
	}
	if err := decoder.Decode(nested); err != nil {
		return RawConfig{}, err
	}

	chains := os.Getenv(EnvPrefix + "_CHAINS")
	if chains != "" {
		if err := json.Unmarshal([]byte(chains), &rawConfig.ChainConfigs); err != nil {
			return RawConfig{}, fmt.Errorf("invalid %s_CHAINS: %w", EnvPrefix, err)
		}
	}

	return rawConfig, nil
}

func processRawConfig(rawConfig RawConfig, config *Config) (*Config, error) {
	if config == nil {
		config = &Config{}
	}

	if err := defaults.Set(&rawConfig.RelayerConfig); err != nil {
		return nil, err
	}

	relayerConfig, err := processRelayerConfig(rawConfig.RelayerConfig)
	if err != nil {
		return nil, err
	}

	processed := &Config{
		RelayerConfig: relayerConfig,
		TxCacheURL:    rawConfig.TxCacheURL,
		RollupChainID: rawConfig.RollupChainID,
		HostChainID:   rawConfig.HostChainID,
		ChainConfigs:  rawConfig.ChainConfigs,
	}
	if err := mergo.Merge(processed, config); err != nil {
		return nil, err
	}

	if err := processed.Validate(); err != nil {
		return nil, err
	}
	return processed, nil
}

func processRelayerConfig(rawConfig RawRelayerConfig) (RelayerConfig, error) {
	logLevel, err := zerolog.ParseLevel(rawConfig.LogLevel)
	if err != nil {
		return RelayerConfig{}, fmt.Errorf("unknown log level %s", rawConfig.LogLevel)
	}

	if rawConfig.Strategy != "individual" && rawConfig.Strategy != "aggregate" {
		return RelayerConfig{}, fmt.Errorf("unknown fill strategy %s", rawConfig.Strategy)
	}

	if rawConfig.SignerConfig.Type != "local" && rawConfig.SignerConfig.Type != "kms" {
		return RelayerConfig{}, fmt.Errorf("unknown signer type %s", rawConfig.SignerConfig.Type)
	}

	if rawConfig.TokenRecipient != "" && !common.IsHexAddress(rawConfig.TokenRecipient) {
		return RelayerConfig{}, fmt.Errorf("invalid token recipient %s", rawConfig.TokenRecipient)
	}

	return RelayerConfig{
		LogLevel:                  logLevel,
		HealthPort:                rawConfig.HealthPort,
		ApiAddr:                   rawConfig.ApiAddr,
		OpenTelemetryCollectorURL: rawConfig.OpenTelemetryCollectorURL,
		Env:                       rawConfig.Env,
		Id:                        rawConfig.Id,
		// nolint:gosec
		PollInterval:         time.Duration(rawConfig.PollInterval) * time.Second,
		Strategy:             rawConfig.Strategy,
		ResubmitBlocks:       rawConfig.ResubmitBlocks,
		WaitForConfirmations: rawConfig.WaitForConfirmations,
		// nolint:gosec
		ConfirmationTimeout:   time.Duration(rawConfig.ConfirmationTimeout) * time.Second,
		MinConfirmations:      rawConfig.MinConfirmations,
		GasLimit:              rawConfig.GasLimit,
		PriorityFeeMultiplier: rawConfig.PriorityFeeMultiplier,
		SignerConfig:          rawConfig.SignerConfig,
		CoinmarketcapConfig:   rawConfig.CoinmarketcapConfig,
		MinProfitUSD:          rawConfig.MinProfitUSD,
		TokenRecipient:        rawConfig.TokenRecipient,
	}, nil
}

func (c *Config) Validate() error {
	if c.TxCacheURL == "" {
		return fmt.Errorf("required field txCacheURL empty")
	}
	if c.RollupChainID == 0 {
		return fmt.Errorf("required field rollupChainID empty")
	}
	if c.HostChainID == 0 {
		return fmt.Errorf("required field hostChainID empty")
	}
	if len(c.ChainConfigs) == 0 {
		return fmt.Errorf("no chains configured")
	}

	signer := c.RelayerConfig.SignerConfig
	if signer.Type == "local" && signer.Key == "" {
		return fmt.Errorf("required field signer.key empty")
	}
	if signer.Type == "kms" && signer.KmsKeyID == "" {
		return fmt.Errorf("required field signer.kmsKeyID empty")
	}
	return nil
}

// envKeys lists the dotted mapstructure keys of all scalar fields of v.
func envKeys(v interface{}) []string {
	return collectKeys(reflect.TypeOf(v), "")
}

func collectKeys(t reflect.Type, prefix string) []string {
	keys := make([]string, 0)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if tag == "" || tag == "chains" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			keys = append(keys, collectKeys(field.Type, key)...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func setNested(m map[string]interface{}, path []string, value interface{}) {
	if len(path) == 1 {
		m[path[0]] = value
		return
	}

	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		child = make(map[string]interface{})
		m[path[0]] = child
	}
	setNested(child, path[1:], value)
}
