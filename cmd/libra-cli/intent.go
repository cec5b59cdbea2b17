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
	"fmt"

	"github.com/blinklabs-io/golibra/identifier"
	"github.com/spf13/cobra"
)

type intentOutput struct {
	identifierOutput
	Currency string `json:"currency,omitempty"`
	Amount   uint64 `json:"amount,omitempty"`
}

func newIntentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intent",
		Short: "Encode and decode payment intent URIs",
	}
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a payment intent URI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccount(cmd)
			if err != nil {
				return err
			}
			currency, _ := cmd.Flags().GetString("currency")
			amount, _ := cmd.Flags().GetUint64("amount")
			intent := identifier.PaymentIntent{
				AccountIdentifier: id,
				Currency:          currency,
				Amount:            amount,
			}
			uri, err := intent.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		},
	}
	addAccountFlags(encodeCmd)
	encodeCmd.Flags().String("currency", "", "currency code")
	encodeCmd.Flags().Uint64("amount", 0, "amount in micro-units")
	decodeCmd := &cobra.Command{
		Use:   "decode <uri>",
		Short: "Decode a payment intent URI for the configured network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent, err := identifier.DecodeIntent(cfg.NetworkDef().AddressPrefix, args[0])
			if err != nil {
				return err
			}
			id, err := newIdentifierOutput(&intent.AccountIdentifier)
			if err != nil {
				return err
			}
			return printJSON(cmd, intentOutput{
				identifierOutput: *id,
				Currency:         intent.Currency,
				Amount:           intent.Amount,
			})
		},
	}
	cmd.AddCommand(encodeCmd, decodeCmd)
	return cmd
}
