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

// Package rpcmock serves a scripted JSON-RPC conversation over HTTP for
// client tests.
package rpcmock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"go.uber.org/goleak"
)

// Mock ledger position used by the pre-defined entries
const (
	MockChainID        uint8  = 2
	MockVersion        uint64 = 1000
	MockTimestampUsecs uint64 = 1_600_000_000_000_000
)

// Ledger is the ledger position reported in a response envelope
type Ledger struct {
	ChainID        uint8
	Version        uint64
	TimestampUsecs uint64
}

// MockLedger is the default ledger position
var MockLedger = Ledger{
	ChainID:        MockChainID,
	Version:        MockVersion,
	TimestampUsecs: MockTimestampUsecs,
}

// ErrorObject is a JSON-RPC error object
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ConversationEntry is one expected request and the response to it
type ConversationEntry struct {
	// Method is the expected method name
	Method string
	// Params, if not nil, must match the request params once both are JSON encoded
	Params []any
	// Result is sent as the result. A nil Result is sent as JSON null
	Result any
	Error  *ErrorObject
	Ledger Ledger
	// StatusCode other than 0 and 200 sends RawBody with that status instead of an envelope
	StatusCode int
	RawBody    string
	// ResponseID replaces the request id in the response when set
	ResponseID *uint64
	// Repeat serves the entry this many times. Zero means once
	Repeat int
}

type incomingRequest struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      uint64          `json:"id"`
}

// Server mocks a full node
type Server struct {
	*httptest.Server
	mutex        sync.Mutex
	conversation []ConversationEntry
	served       int
	requests     []string
	errors       []error
}

// NewServer starts a server that answers requests with the provided
// conversation entries, in order
func NewServer(conversation []ConversationEntry) *Server {
	s := &Server{}
	for _, entry := range conversation {
		count := max(entry.Repeat, 1)
		for range count {
			s.conversation = append(s.conversation, entry)
		}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Err returns the first mismatch between the conversation and the requests received
func (s *Server) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.errors) == 0 {
		return nil
	}
	return s.errors[0]
}

// Methods returns the methods requested so far
func (s *Server) Methods() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string(nil), s.requests...)
}

// Remaining returns the number of responses not yet served
func (s *Server) Remaining() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.conversation) - s.served
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.errors = append(s.errors, err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, fmt.Errorf("read request: %w", err))
		return
	}
	var req incomingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.fail(w, fmt.Errorf("decode request: %w", err))
		return
	}
	s.requests = append(s.requests, req.Method)
	if req.Version != "2.0" {
		s.fail(w, fmt.Errorf("unexpected jsonrpc version %q", req.Version))
		return
	}
	if s.served >= len(s.conversation) {
		s.fail(w, fmt.Errorf("unexpected request after end of conversation: %s", req.Method))
		return
	}
	entry := s.conversation[s.served]
	s.served++
	if req.Method != entry.Method {
		s.fail(
			w,
			fmt.Errorf("request method did not match expected value: expected %s, got %s", entry.Method, req.Method),
		)
		return
	}
	if entry.Params != nil {
		expected, err := json.Marshal(entry.Params)
		if err != nil {
			s.fail(w, fmt.Errorf("encode expected params: %w", err))
			return
		}
		if !jsonEqual(expected, req.Params) {
			s.fail(
				w,
				fmt.Errorf("request params did not match expected value: expected %s, got %s", expected, req.Params),
			)
			return
		}
	}
	if entry.StatusCode != 0 && entry.StatusCode != http.StatusOK {
		w.WriteHeader(entry.StatusCode)
		_, _ = w.Write([]byte(entry.RawBody))
		return
	}
	id := req.ID
	if entry.ResponseID != nil {
		id = *entry.ResponseID
	}
	resp := map[string]any{
		"jsonrpc":                    "2.0",
		"id":                         id,
		"libra_chain_id":             entry.Ledger.ChainID,
		"libra_ledger_version":       entry.Ledger.Version,
		"libra_ledger_timestampusec": entry.Ledger.TimestampUsecs,
	}
	if entry.Error != nil {
		resp["error"] = entry.Error
	} else {
		resp["result"] = entry.Result
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.errors = append(s.errors, fmt.Errorf("encode response: %w", err))
	}
}

func jsonEqual(a, b []byte) bool {
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false
	}
	ra, _ := json.Marshal(va)
	rb, _ := json.Marshal(vb)
	return string(ra) == string(rb)
}

// LeakOptions ignores the idle keep-alive goroutines of the HTTP client
// transport, which outlive a test by design of net/http
func LeakOptions() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	}
}
