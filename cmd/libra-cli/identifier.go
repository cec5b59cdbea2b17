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
	"github.com/blinklabs-io/golibra/types"
	"github.com/spf13/cobra"
)

type identifierOutput struct {
	Identifier string               `json:"identifier"`
	Prefix     string               `json:"prefix"`
	Version    uint8                `json:"version"`
	Address    types.AccountAddress `json:"address"`
	SubAddress types.SubAddress     `json:"sub_address"`
}

func newIdentifierOutput(id *identifier.AccountIdentifier) (*identifierOutput, error) {
	text, err := id.Encode()
	if err != nil {
		return nil, err
	}
	return &identifierOutput{
		Identifier: text,
		Prefix:     id.Prefix,
		Version:    id.Version,
		Address:    id.Address,
		SubAddress: id.SubAddress,
	}, nil
}

// parseAccount reads the --address and --subaddress flags shared by the
// identifier and intent commands
func parseAccount(cmd *cobra.Command) (identifier.AccountIdentifier, error) {
	addressHex, _ := cmd.Flags().GetString("address")
	subAddressHex, _ := cmd.Flags().GetString("subaddress")
	address, err := types.ParseAccountAddress(addressHex)
	if err != nil {
		return identifier.AccountIdentifier{}, fmt.Errorf("invalid --address: %w", err)
	}
	var subAddress types.SubAddress
	if subAddressHex != "" {
		subAddress, err = types.ParseSubAddress(subAddressHex)
		if err != nil {
			return identifier.AccountIdentifier{}, fmt.Errorf("invalid --subaddress: %w", err)
		}
	}
	return identifier.New(cfg.NetworkDef().AddressPrefix, address, subAddress), nil
}

func addAccountFlags(cmd *cobra.Command) {
	cmd.Flags().String("address", "", "account address (hex)")
	cmd.Flags().String("subaddress", "", "sub-address (hex), zero when omitted")
	_ = cmd.MarkFlagRequired("address")
}

func newIdentifierCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identifier",
		Short: "Encode and decode account identifiers",
	}
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode an address and sub-address as an account identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccount(cmd)
			if err != nil {
				return err
			}
			text, err := id.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	addAccountFlags(encodeCmd)
	decodeCmd := &cobra.Command{
		Use:   "decode <identifier>",
		Short: "Decode an account identifier for the configured network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identifier.Decode(cfg.NetworkDef().AddressPrefix, args[0])
			if err != nil {
				return err
			}
			out, err := newIdentifierOutput(id)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.AddCommand(encodeCmd, decodeCmd)
	return cmd
}
