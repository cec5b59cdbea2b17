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

// Package jsonrpc is a JSON-RPC 2.0 client for the Libra full node API.
//
// Every response envelope carries the ledger position the server answered
// from. The client returns it as LedgerInfo next to the result so callers can
// check it for staleness; this package does no such checking itself and never
// retries.
package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	Version = "2.0"

	DefaultTimeout = 30 * time.Second
)

// Method names
const (
	MethodGetMetadata           = "get_metadata"
	MethodGetAccount            = "get_account"
	MethodGetAccountTransaction = "get_account_transaction"
	MethodGetTransactions       = "get_transactions"
	MethodGetEvents             = "get_events"
	MethodGetCurrencies         = "get_currencies"
	MethodSubmit                = "submit"
)

type Config struct {
	Timeout time.Duration
	Headers map[string]string
	Logger  *slog.Logger
}

// ClientOptionFunc is a function that modifies a Config.
type ClientOptionFunc func(*Config)

// NewConfig creates a new Config with default values, applying any provided option functions.
func NewConfig(options ...ClientOptionFunc) Config {
	c := Config{
		Timeout: DefaultTimeout,
		Headers: map[string]string{},
	}
	for _, option := range options {
		option(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// WithTimeout bounds each HTTP round trip
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHeader adds an HTTP header to every request
func WithHeader(name string, value string) ClientOptionFunc {
	return func(c *Config) {
		c.Headers[name] = value
	}
}

func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}

type request struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

type response struct {
	Version              string          `json:"jsonrpc"`
	ID                   *uint64         `json:"id"`
	Result               json.RawMessage `json:"result"`
	Error                *Error          `json:"error"`
	ChainID              uint8           `json:"libra_chain_id"`
	LedgerVersion        uint64          `json:"libra_ledger_version"`
	LedgerTimestampUsecs uint64          `json:"libra_ledger_timestampusec"`
}

// LedgerInfo is the ledger position a response was served from
type LedgerInfo struct {
	ChainID        uint8  `json:"libra_chain_id"`
	Version        uint64 `json:"libra_ledger_version"`
	TimestampUsecs uint64 `json:"libra_ledger_timestampusec"`
}

type Client struct {
	url    string
	config Config
	http   *resty.Client
	nextID atomic.Uint64
}

// New returns a client for the full node at url
func New(url string, options ...ClientOptionFunc) *Client {
	cfg := NewConfig(options...)
	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetLogger(&restyLogger{logger: cfg.Logger}).
		SetHeader("Content-Type", "application/json")
	for name, value := range cfg.Headers {
		httpClient.SetHeader(name, value)
	}
	return &Client{
		url:    url,
		config: cfg,
		http:   httpClient,
	}
}

func (c *Client) URL() string {
	return c.url
}

// Call invokes method and decodes its result into result, which may be nil.
// The ledger info is returned whenever the server sent a well-formed
// envelope, including alongside a server error
func (c *Client) Call(ctx context.Context, method string, result any, params ...any) (*LedgerInfo, error) {
	if params == nil {
		params = []any{}
	}
	req := request{
		Version: Version,
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	c.config.Logger.Debug(
		"rpc call",
		"component", "jsonrpc",
		"method", method,
		"id", req.ID,
		"status", resp.StatusCode(),
		"duration", time.Since(start),
	)
	if resp.StatusCode() != 200 {
		return nil, &HTTPError{
			Method:     method,
			StatusCode: resp.StatusCode(),
			Body:       truncate(resp.Body(), maxErrorBody),
		}
	}
	var envelope response
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidResponse, method, err)
	}
	if envelope.Version != Version {
		return nil, fmt.Errorf("%w: %s: jsonrpc version %q", ErrInvalidResponse, method, envelope.Version)
	}
	if envelope.ID == nil || *envelope.ID != req.ID {
		return nil, fmt.Errorf("%w: %s: response id does not match request %d", ErrInvalidResponse, method, req.ID)
	}
	info := LedgerInfo{
		ChainID:        envelope.ChainID,
		Version:        envelope.LedgerVersion,
		TimestampUsecs: envelope.LedgerTimestampUsecs,
	}
	if envelope.Error != nil {
		envelope.Error.Method = method
		return &info, envelope.Error
	}
	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return &info, fmt.Errorf("%w: %s: result: %s", ErrInvalidResponse, method, err)
		}
	}
	return &info, nil
}

const maxErrorBody = 1024

func truncate(body []byte, n int) string {
	if len(body) > n {
		return string(body[:n])
	}
	return string(body)
}

// restyLogger routes resty's own messages to slog
type restyLogger struct {
	logger *slog.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "jsonrpc")
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "jsonrpc")
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "jsonrpc")
}

var _ resty.Logger = (*restyLogger)(nil)
