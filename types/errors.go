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

package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLength      = errors.New("invalid length")
	ErrUnsupportedPayload = errors.New("unsupported transaction payload")
)

// InvalidLengthError reports a fixed-size value built from the wrong number
// of bytes. It matches ErrInvalidLength
type InvalidLengthError struct {
	Type     string
	Expected int
	Actual   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf(
		"invalid %s length: expected %d bytes, got %d",
		e.Type,
		e.Expected,
		e.Actual,
	)
}

func (e *InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}
