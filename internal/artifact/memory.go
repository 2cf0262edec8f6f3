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
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore 进程内的对象存储，本地运行（storage.driver: memory）和测试用
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	base    string
	bucket  string
	now     func() time.Time
}

type memoryObject struct {
	data        []byte
	contentType string
	mtime       time.Time
}

func NewMemoryStore(baseURL, bucket string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		base:    strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		now:     time.Now,
	}
}

func (m *MemoryStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.objects[key] = memoryObject{data: cp, contentType: contentType, mtime: m.now()}
	m.mu.Unlock()
	return m.Locator(key)
}

func (m *MemoryStore) Locator(key string) (string, error) {
	return m.base + "/" + m.bucket + "/" + url.PathEscape(key), nil
}

func (m *MemoryStore) KeyOf(locator string) (string, error) {
	return KeyAfterSegment(locator, m.bucket)
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(ctx context.Context, marker string, limit int) ([]Object, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	m.mu.RLock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		if k > marker {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	next := ""
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
		next = keys[limit-1]
	}
	res := make([]Object, 0, len(keys))
	for _, k := range keys {
		obj := m.objects[k]
		res = append(res, Object{Key: k, Size: int64(len(obj.data)), ModTime: obj.mtime})
	}
	m.mu.RUnlock()
	return res, next, nil
}

// Get 返回对象内容，主要给测试断言用
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, ok
}

// Len 当前对象数量
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
