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

package libra

import (
	"github.com/blinklabs-io/golibra/identifier"
	"github.com/blinklabs-io/golibra/types"
)

// Network definitions
var (
	NetworkMainnet = Network{
		Name:          "mainnet",
		ChainID:       types.ChainIDMainnet,
		AddressPrefix: identifier.MainnetPrefix,
	}
	NetworkTestnet = Network{
		Name:          "testnet",
		ChainID:       types.ChainIDTestnet,
		AddressPrefix: identifier.TestnetPrefix,
		DefaultURL:    "https://testnet.libra.org/v1",
	}
	NetworkDevnet = Network{
		Name:          "devnet",
		ChainID:       types.ChainIDDevnet,
		AddressPrefix: identifier.TestnetPrefix,
	}
	NetworkTesting = Network{
		Name:          "testing",
		ChainID:       types.ChainIDTesting,
		AddressPrefix: identifier.TestnetPrefix,
	}

	NetworkInvalid = Network{
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkDevnet,
	NetworkTesting,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByChainID returns a predefined network by chain ID
func NetworkByChainID(chainID types.ChainID) Network {
	for _, network := range networks {
		if network.ChainID == chainID {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Libra network
type Network struct {
	Name          string
	ChainID       types.ChainID
	AddressPrefix string // HRP used for account identifiers
	DefaultURL    string
}

// Valid reports whether n is one of the predefined networks
func (n Network) Valid() bool {
	return n.ChainID != 0
}

func (n Network) String() string {
	return n.Name
}
