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

package classifier

import (
	"fmt"
	"sort"
	"sync"
)

// Config 对应配置文件里的 classifier 段
type Config struct {
	Variant      string `yaml:"variant"`
	ModelPath    string `yaml:"modelPath"`
	MetadataPath string `yaml:"metadataPath"`
	// LibraryPath onnxruntime 动态库路径，只有 onnx 需要
	LibraryPath string `yaml:"libraryPath"`
}

type Factory func(cfg Config) (Classifier, error)

// Registry 变体名到构造函数的映射，启动时选定一个，运行期间不会切换
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry 注册了 mock、onnx、graph 三种变体
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(MockID, func(cfg Config) (Classifier, error) {
		return NewMock(), nil
	})
	r.Register(ONNXID, func(cfg Config) (Classifier, error) {
		md, err := LoadMetadata(cfg.MetadataPath)
		if err != nil {
			return nil, err
		}
		return NewONNX(cfg.LibraryPath, cfg.ModelPath, md)
	})
	r.Register(GraphID, func(cfg Config) (Classifier, error) {
		md, err := LoadMetadata(cfg.MetadataPath)
		if err != nil {
			return nil, err
		}
		return LoadGraph(cfg.ModelPath, md)
	})
	return r
}

func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = f
}

// Build 变体名为空时使用 mock
func (r *Registry) Build(cfg Config) (Classifier, error) {
	id := cfg.Variant
	if id == "" {
		id = MockID
	}
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("未知的分类器 %s，可选 %v", id, r.IDs())
	}
	c, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化分类器 %s 失败: %w", id, err)
	}
	return c, nil
}

func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
