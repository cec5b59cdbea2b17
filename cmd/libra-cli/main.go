// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/blinklabs-io/golibra/cmd/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	cfg        *common.Config
	logger     *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "libra-cli",
	Short: "Libra client toolkit",
	Long: `libra-cli builds and decodes account identifiers and payment intents,
computes dual attestation messages and queries a Libra full node over JSON-RPC.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		loaded, err := common.LoadConfig(v, configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = common.NewLogger(cfg, cmd.ErrOrStderr())
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "configuration file path (YAML, TOML or JSON)")
	flags.String(common.KeyURL, "", "full node JSON-RPC URL (defaults to the network's public endpoint)")
	flags.String(common.KeyNetwork, "testnet", "network name: mainnet, testnet, devnet or testing")
	flags.Duration(common.KeyTimeout, 0, "HTTP request timeout (defaults to 30s)")
	flags.String(common.KeyStateFile, "", "file used to persist the observed ledger state between runs")
	flags.Bool(common.KeyDebug, false, "enable debug logging")
	flags.String(common.KeyLogFormat, common.LogFormatText, "log format: text or json")

	rootCmd.AddCommand(
		newIdentifierCommand(),
		newIntentCommand(),
		newAttestationCommand(),
		newAccountCommand(),
		newMetadataCommand(),
		newCurrenciesCommand(),
		newWaitCommand(),
	)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
