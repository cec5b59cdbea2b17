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
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/blinklabs-io/golibra"
	"github.com/blinklabs-io/golibra/cmd/common"
	"github.com/blinklabs-io/golibra/jsonrpc"
	"github.com/blinklabs-io/golibra/types"
	"github.com/spf13/cobra"
)

var errTransactionNotFound = errors.New("transaction not found before timeout")

// runWithClient runs fn against a tracked client, prints its result and
// saves the observed ledger state
func runWithClient(cmd *cobra.Command, fn func(ctx context.Context, client *libra.Client) (any, error)) error {
	client, err := common.CreateClient(cfg, logger)
	if err != nil {
		return err
	}
	result, err := fn(cmd.Context(), client)
	if saveErr := common.FinishClient(cfg, client); saveErr != nil {
		logger.Warn(
			"failed to save ledger state",
			"component", "cli",
			"path", cfg.StateFile,
			"error", saveErr,
		)
	}
	if result != nil {
		if printErr := printJSON(cmd, result); printErr != nil {
			return printErr
		}
	}
	return err
}

func newAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account <address>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := types.ParseAccountAddress(args[0])
			if err != nil {
				return err
			}
			return runWithClient(cmd, func(ctx context.Context, client *libra.Client) (any, error) {
				account, err := client.GetAccount(ctx, address)
				if err != nil {
					return nil, err
				}
				if account == nil {
					return nil, fmt.Errorf("account %s does not exist", address)
				}
				return account, nil
			})
		},
	}
}

func newMetadataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Show ledger metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var version *uint64
			if cmd.Flags().Changed("version") {
				v, _ := cmd.Flags().GetUint64("version")
				version = &v
			}
			return runWithClient(cmd, func(ctx context.Context, client *libra.Client) (any, error) {
				meta, err := client.GetMetadata(ctx, version)
				if err != nil {
					return nil, err
				}
				return meta, nil
			})
		},
	}
	cmd.Flags().Uint64("version", 0, "ledger version, latest when omitted")
	return cmd
}

func newCurrenciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies known to the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(ctx context.Context, client *libra.Client) (any, error) {
				currencies, err := client.GetCurrencies(ctx)
				if err != nil {
					return nil, err
				}
				return currencies, nil
			})
		},
	}
}

type waitOutput struct {
	Found       bool                     `json:"found"`
	Transaction *jsonrpc.TransactionView `json:"transaction,omitempty"`
}

func newWaitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait <address> <sequence>",
		Short: "Wait for an account's transaction to be committed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := types.ParseAccountAddress(args[0])
			if err != nil {
				return err
			}
			sequenceNumber, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sequence number: %w", err)
			}
			timeout, _ := cmd.Flags().GetDuration("timeout")
			return runWithClient(cmd, func(ctx context.Context, client *libra.Client) (any, error) {
				txn, found, err := client.WaitForTransaction(ctx, address, sequenceNumber, timeout)
				if err != nil {
					return nil, err
				}
				out := waitOutput{Found: found, Transaction: txn}
				if !found {
					return out, fmt.Errorf("%w: %s", errTransactionNotFound, timeout)
				}
				return out, nil
			})
		},
	}
	cmd.Flags().Duration("timeout", 30*time.Second, "how long to wait")
	return cmd
}
