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

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type IdempotencyCacheTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	cache IdempotencyCache
}

func (s *IdempotencyCacheTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	cmd := redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.cache = NewIdempotencyCache(eredis.NewCache(cmd))
}

func (s *IdempotencyCacheTestSuite) TestReserveComplete() {
	t := s.T()
	ctx := context.Background()

	_, _, err := s.cache.Lookup(ctx, "u1", "k1")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	ok, err := s.cache.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.mr.Exists("prediction:idempotency:u1:k1"))

	ok, err = s.cache.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.False(t, ok)
	// 不同用户互不影响
	ok, err = s.cache.Reserve(ctx, "u2", "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	id, done, err := s.cache.Lookup(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, int64(0), id)

	require.NoError(t, s.cache.Complete(ctx, "u1", "k1", 42))
	id, done, err = s.cache.Lookup(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, int64(42), id)
}

func (s *IdempotencyCacheTestSuite) TestReleaseAndExpire() {
	t := s.T()
	ctx := context.Background()
	ok, err := s.cache.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.cache.Release(ctx, "u1", "k1"))
	assert.False(t, s.mr.Exists("prediction:idempotency:u1:k1"))

	ok, err = s.cache.Reserve(ctx, "u1", "k2")
	require.NoError(t, err)
	require.True(t, ok)
	s.mr.FastForward(2 * time.Minute)
	_, _, err = s.cache.Lookup(ctx, "u1", "k2")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func (s *IdempotencyCacheTestSuite) TestRedisDown() {
	s.mr.Close()
	_, err := s.cache.Reserve(context.Background(), "u1", "k1")
	assert.Error(s.T(), err)
}

func TestIdempotencyCache(t *testing.T) {
	suite.Run(t, new(IdempotencyCacheTestSuite))
}
