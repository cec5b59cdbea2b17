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

package common_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blinklabs-io/golibra"
	"github.com/blinklabs-io/golibra/cmd/common"
	"github.com/blinklabs-io/golibra/ledgerstate"
	"github.com/blinklabs-io/golibra/types"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := common.LoadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, common.LogFormatText, cfg.LogFormat)
	assert.Equal(t, libra.NetworkTestnet, cfg.NetworkDef())
}

func TestLoadConfigSources(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "libra.yaml")
	require.NoError(
		t,
		os.WriteFile(
			configFile,
			[]byte("network: devnet\nurl: http://localhost:8080\nrpc-timeout: 5s\n"),
			0o600,
		),
	)
	t.Setenv("LIBRA_URL", "http://node.example:8080")
	t.Setenv("LIBRA_LOG_FORMAT", "json")
	cfg, err := common.LoadConfig(viper.New(), configFile)
	require.NoError(t, err)
	assert.Equal(t, "devnet", cfg.Network)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	// Environment takes precedence over the config file
	assert.Equal(t, "http://node.example:8080", cfg.URL)
	assert.Equal(t, common.LogFormatJSON, cfg.LogFormat)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("LIBRA_NETWORK", "nonet")
	_, err := common.LoadConfig(viper.New(), "")
	assert.ErrorIs(t, err, libra.ErrInvalidNetwork)

	t.Setenv("LIBRA_NETWORK", "mainnet")
	t.Setenv("LIBRA_LOG_FORMAT", "xml")
	_, err = common.LoadConfig(viper.New(), "")
	assert.ErrorIs(t, err, common.ErrInvalidLogFormat)

	_, err = common.LoadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := &common.Config{Debug: true, LogFormat: common.LogFormatJSON}
	logger := common.NewLogger(cfg, io.Discard)
	assert.True(t, logger.Handler().Enabled(t.Context(), -4))
	cfg.Debug = false
	logger = common.NewLogger(cfg, io.Discard)
	assert.False(t, logger.Handler().Enabled(t.Context(), -4))
}

func TestStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.cbor")
	state, err := common.LoadState(path)
	require.NoError(t, err)
	assert.Nil(t, state)

	saved := ledgerstate.State{
		ChainID:        types.ChainIDTestnet,
		Version:        1234,
		TimestampUsecs: 1_600_000_000_000_000,
	}
	require.NoError(t, common.SaveState(path, saved))
	state, err = common.LoadState(path)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, saved, *state)

	require.NoError(t, os.WriteFile(path, []byte{0xff}, 0o600))
	_, err = common.LoadState(path)
	assert.Error(t, err)
}

func TestCreateClientResumesState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.cbor")
	saved := ledgerstate.State{
		ChainID:        types.ChainIDTestnet,
		Version:        99,
		TimestampUsecs: 100,
	}
	require.NoError(t, common.SaveState(path, saved))
	cfg := &common.Config{
		URL:       "http://localhost:8080",
		Network:   "testnet",
		Timeout:   time.Second,
		StateFile: path,
	}
	logger := common.NewLogger(cfg, io.Discard)
	client, err := common.CreateClient(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, saved, client.State())
	require.NoError(t, common.FinishClient(cfg, client))

	// The saved state is for testnet
	cfg.Network = "mainnet"
	_, err = common.CreateClient(cfg, logger)
	assert.ErrorIs(t, err, libra.ErrStateChainIDMismatch)
}
