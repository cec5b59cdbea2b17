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
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/blinklabs-io/golibra"
	"github.com/spf13/viper"
)

const EnvPrefix = "LIBRA"

// Config keys, which double as flag names
const (
	KeyURL       = "url"
	KeyNetwork   = "network"
	KeyTimeout   = "rpc-timeout"
	KeyStateFile = "state-file"
	KeyDebug     = "debug"
	KeyLogFormat = "log-format"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var ErrInvalidLogFormat = errors.New("invalid log format")

type Config struct {
	URL       string        `mapstructure:"url"`
	Network   string        `mapstructure:"network"`
	Timeout   time.Duration `mapstructure:"rpc-timeout"`
	StateFile string        `mapstructure:"state-file"`
	Debug     bool          `mapstructure:"debug"`
	LogFormat string        `mapstructure:"log-format"`
}

// SetDefaults registers the default value of every config key
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyNetwork, libra.NetworkTestnet.Name)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyLogFormat, LogFormatText)
}

// LoadConfig reads configuration in priority order: flags bound to v,
// environment variables with the LIBRA_ prefix, the config file if one was
// given, and finally the defaults
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !libra.NetworkByName(c.Network).Valid() {
		return fmt.Errorf("%w: %s", libra.ErrInvalidNetwork, c.Network)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	return nil
}

// NetworkDef returns the predefined network named by the config
func (c *Config) NetworkDef() libra.Network {
	return libra.NetworkByName(c.Network)
}

// NewLogger builds the slog handler selected by the config
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if cfg.LogFormat == LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
