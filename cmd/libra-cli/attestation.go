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
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/golibra/attestation"
	"github.com/blinklabs-io/golibra/types"
	"github.com/spf13/cobra"
)

func newAttestationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attestation",
		Short: "Dual attestation helpers",
	}
	messageCmd := &cobra.Command{
		Use:   "message",
		Short: "Print the travel rule metadata and the message the receiver signs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			senderHex, _ := cmd.Flags().GetString("sender")
			amount, _ := cmd.Flags().GetUint64("amount")
			referenceID, _ := cmd.Flags().GetString("reference-id")
			sender, err := types.ParseAccountAddress(senderHex)
			if err != nil {
				return fmt.Errorf("invalid --sender: %w", err)
			}
			metadata, message, err := attestation.Build(referenceID, sender, amount)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{
				"metadata": hex.EncodeToString(metadata),
				"message":  hex.EncodeToString(message),
			})
		},
	}
	messageCmd.Flags().String("sender", "", "sending account address (hex)")
	messageCmd.Flags().Uint64("amount", 0, "amount in micro-units")
	messageCmd.Flags().String("reference-id", "", "off-chain reference id")
	_ = messageCmd.MarkFlagRequired("sender")
	cmd.AddCommand(messageCmd)
	return cmd
}
