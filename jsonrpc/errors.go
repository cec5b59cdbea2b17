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

package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidResponse = errors.New("jsonrpc: invalid response")

// Server error codes
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32000

	// Submitted transaction failed validation
	CodeVMValidationError = -32001
	// Submitted transaction was rejected by the mempool
	CodeMempoolError      = -32002
)

// Error is an error object returned by the server
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	// Method is filled in by the client
	Method string `json:"-"`
}

func (e *Error) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: jsonrpc error %d: %s", e.Method, e.Code, e.Message)
}

// HTTPError is returned when the server answers with a status other than 200
type HTTPError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected HTTP status %d: %s", e.Method, e.StatusCode, e.Body)
}
