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

package common

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blinklabs-io/golibra"
	"github.com/blinklabs-io/golibra/jsonrpc"
	"github.com/blinklabs-io/golibra/ledgerstate"
	"github.com/fxamacker/cbor/v2"
)

// LoadState reads a tracker state saved by SaveState. A missing file is not
// an error and returns nil
func LoadState(path string) (*ledgerstate.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var state ledgerstate.State
	if err := cbor.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", path, err)
	}
	return &state, nil
}

// SaveState writes state to path, replacing the previous file atomically
func SaveState(path string, state ledgerstate.State) error {
	data, err := cbor.Marshal(state)
	if err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".libra-state-*")
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to save state: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// CreateClient builds a tracked client for the configured node, resuming from
// the state file when one exists
func CreateClient(cfg *Config, logger *slog.Logger) (*libra.Client, error) {
	options := []libra.ClientOptionFunc{
		libra.WithNetwork(cfg.NetworkDef()),
		libra.WithLogger(logger),
		libra.WithRPCOptions(jsonrpc.WithTimeout(cfg.Timeout)),
	}
	if cfg.URL != "" {
		options = append(options, libra.WithURL(cfg.URL))
	}
	if cfg.StateFile != "" {
		state, err := LoadState(cfg.StateFile)
		if err != nil {
			return nil, err
		}
		if state != nil {
			logger.Debug(
				"resuming from saved ledger state",
				"component", "cli",
				"version", state.Version,
				"timestamp_usecs", state.TimestampUsecs,
			)
			options = append(options, libra.WithState(*state))
		}
	}
	return libra.NewClient(options...)
}

// FinishClient saves the client's ledger state if a state file is configured
func FinishClient(cfg *Config, client *libra.Client) error {
	if cfg.StateFile == "" {
		return nil
	}
	return SaveState(cfg.StateFile, client.State())
}
