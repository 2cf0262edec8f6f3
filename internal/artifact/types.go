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

package artifact

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidLocator locator 里找不到 bucket 路径段，或者路径段后面没有 key
var ErrInvalidLocator = errors.New("artifact: locator 不属于当前 bucket")

// Object 是 List 返回的对象摘要
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Store 是对象存储的抽象，一个 Store 只对应一个 bucket
//
//go:generate mockgen -source=./types.go -package=artifactmocks -destination=mocks/store.mock.go Store
type Store interface {
	// Upload 上传成功返回对外可访问的 locator
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Locator(key string) (string, error)
	// KeyOf 是 Locator 的逆运算
	KeyOf(locator string) (string, error)
	// Remove 删除不存在的 key 也视为成功
	Remove(ctx context.Context, key string) error
	// List 按 key 顺序分页，next 为空表示没有下一页
	List(ctx context.Context, marker string, limit int) (objs []Object, next string, err error)
}

// KeyAfterSegment 取 locator 路径中第一个 "/{segment}/" 之后的部分作为 key
func KeyAfterSegment(locator, segment string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", ErrInvalidLocator
	}
	sep := "/" + segment + "/"
	_, key, found := strings.Cut(u.Path, sep)
	if !found || key == "" {
		return "", ErrInvalidLocator
	}
	return key, nil
}
