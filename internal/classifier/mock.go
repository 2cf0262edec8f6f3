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
	"context"
	"math/rand/v2"
)

const MockID = "mock"

var _ Classifier = (*Mock)(nil)

// Mock 从 MockLabels 里均匀随机挑一个，不给置信度，也不解码图片
type Mock struct {
	labels []string
	intN   func(n int) int
}

func NewMock() *Mock {
	return &Mock{labels: MockLabels, intN: rand.IntN}
}

func (m *Mock) ID() string {
	return MockID
}

func (m *Mock) Preprocess(data []byte) (Tensor, error) {
	return Tensor{}, nil
}

func (m *Mock) Infer(ctx context.Context, _ Tensor) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{Label: m.labels[m.intN(len(m.labels))]}, nil
}
