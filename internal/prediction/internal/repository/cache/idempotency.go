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
	"strconv"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
)

const pendingMarker = "pending"

var ErrKeyNotFound = errors.New("幂等键不存在")

// IdempotencyCache 记录 Idempotency-Key 的状态：处理中或者已经落库的记录 id
//
//go:generate mockgen -source=./idempotency.go -package=cachemocks -destination=mocks/idempotency.mock.go IdempotencyCache
type IdempotencyCache interface {
	// Reserve 抢占 key，已经被占用时返回 false
	Reserve(ctx context.Context, userID, key string) (bool, error)
	// Complete 记录落库之后把 key 指向记录 id
	Complete(ctx context.Context, userID, key string, id int64) error
	// Lookup done 为 false 表示还在处理中
	Lookup(ctx context.Context, userID, key string) (id int64, done bool, err error)
	// Release 提交失败之后释放 key，让客户端可以重试
	Release(ctx context.Context, userID, key string) error
}

type idempotencyCache struct {
	cache ecache.Cache
	// 处理中的过期时间，防止进程崩溃后 key 永远占用
	pendingExpiration time.Duration
	doneExpiration    time.Duration
}

func NewIdempotencyCache(c ecache.Cache) IdempotencyCache {
	return &idempotencyCache{
		cache: &ecache.NamespaceCache{
			Namespace: "prediction:idempotency:",
			C:         c,
		},
		pendingExpiration: time.Minute,
		doneExpiration:    time.Hour * 24,
	}
}

func (c *idempotencyCache) Reserve(ctx context.Context, userID, key string) (bool, error) {
	ok, err := c.cache.SetNX(ctx, c.key(userID, key), pendingMarker, c.pendingExpiration)
	return ok, errors.Wrap(err, "抢占幂等键失败")
}

func (c *idempotencyCache) Complete(ctx context.Context, userID, key string, id int64) error {
	err := c.cache.Set(ctx, c.key(userID, key), strconv.FormatInt(id, 10), c.doneExpiration)
	return errors.Wrap(err, "写入幂等结果失败")
}

func (c *idempotencyCache) Lookup(ctx context.Context, userID, key string) (int64, bool, error) {
	val := c.cache.Get(ctx, c.key(userID, key))
	if val.KeyNotFound() {
		return 0, false, ErrKeyNotFound
	}
	if val.Err != nil {
		return 0, false, errors.Wrap(val.Err, "读取幂等键失败")
	}
	str, err := val.String()
	if err != nil {
		return 0, false, errors.Wrap(err, "幂等键的值不是字符串")
	}
	if str == pendingMarker {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "幂等键的值非法 %s", str)
	}
	return id, true, nil
}

func (c *idempotencyCache) Release(ctx context.Context, userID, key string) error {
	_, err := c.cache.Delete(ctx, c.key(userID, key))
	return errors.Wrap(err, "释放幂等键失败")
}

func (c *idempotencyCache) key(userID, key string) string {
	return userID + ":" + key
}
