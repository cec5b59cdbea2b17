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

package ledgerstate

import (
	"context"
	"log/slog"
	"time"
)

const DefaultPollInterval = 100 * time.Millisecond

// PollConfig bounds a Poll call. A zero Timeout polls exactly once
type PollConfig struct {
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

// FetchFunc makes one poll attempt. It reports found=false when the value
// is not available yet
type FetchFunc[T any] func(ctx context.Context) (value T, found bool, err error)

// Poll calls fetch every Interval until it finds a value or Timeout has
// elapsed. Running out of time is not an error: Poll returns found=false.
// Errors from fetch and cancellation of ctx end the poll immediately
func Poll[T any](ctx context.Context, cfg PollConfig, fetch FetchFunc[T]) (T, bool, error) {
	var zero T
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}
		value, found, err := fetch(ctx)
		if err != nil {
			return zero, false, err
		}
		if found {
			return value, true, nil
		}
		elapsed := time.Since(start)
		logger.Debug(
			"poll attempt found no value",
			"component", "ledgerstate",
			"attempt", attempt,
			"elapsed", elapsed,
			"timeout", cfg.Timeout,
		)
		if elapsed >= cfg.Timeout {
			return zero, false, nil
		}
		wait := min(interval, cfg.Timeout-elapsed)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, false, ctx.Err()
		case <-timer.C:
		}
	}
}
