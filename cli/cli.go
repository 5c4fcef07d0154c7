// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sprintertech/sprinter-filler/cli/bundle"
	"github.com/sprintertech/sprinter-filler/cli/order"
	"github.com/sprintertech/sprinter-filler/config"
)

var (
	rootCMD = &cobra.Command{
		Use:   "",
		Short: "Fills signet orders through bundles forwarded to the transaction cache",
	}
)

func init() {
	config.BindFlags(rootCMD)

	rootCMD.PersistentFlags().String(config.ConfigURLFlagName, "", "URL of shared configuration")
	_ = viper.BindPFlag(config.ConfigURLFlagName, rootCMD.PersistentFlags().Lookup(config.ConfigURLFlagName))
}

func Execute() {
	rootCMD.AddCommand(runCMD, order.OrderCMD, bundle.BundleCMD)
	if err := rootCMD.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute root cmd")
	}
}
