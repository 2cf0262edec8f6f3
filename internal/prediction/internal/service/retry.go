// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/retry"
)

// RetryFactory 每次调用返回一个新的策略，策略本身有状态不能共享
type RetryFactory func() retry.Strategy

// NewRetryFactory 指数退避，参数在这里校验一次
func NewRetryFactory(initial, maxInterval time.Duration, maxRetries int32) (RetryFactory, error) {
	if _, err := retry.NewExponentialBackoffRetryStrategy(initial, maxInterval, maxRetries); err != nil {
		return nil, err
	}
	return func() retry.Strategy {
		s, _ := retry.NewExponentialBackoffRetryStrategy(initial, maxInterval, maxRetries)
		return s
	}, nil
}

// withRetry 只能用在幂等的调用上
func withRetry(ctx context.Context, factory RetryFactory, fn func(ctx context.Context) error) error {
	strategy := factory()
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		// 超时或者被调用者取消就没必要重试了
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		interval, ok := strategy.Next()
		if !ok {
			return err
		}
		if timer == nil {
			timer = time.NewTimer(interval)
		} else {
			timer.Reset(interval)
		}
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
}
