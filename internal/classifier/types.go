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
	"errors"
)

var (
	// ErrDecode 图片无法解码
	ErrDecode = errors.New("classifier: 图片解码失败")
	// ErrInference 推理失败，或者模型输出无法映射到标签
	ErrInference = errors.New("classifier: 推理失败")
)

// Layout 输入张量的维度顺序
type Layout string

const (
	LayoutNHWC Layout = "NHWC"
	LayoutNCHW Layout = "NCHW"
)

// Tensor 预处理后的输入，Data 按 Shape 的行主序平铺
type Tensor struct {
	Shape []int64
	Data  []float32
}

type Result struct {
	Label string
	// Confidence 为 nil 表示这个分类器不给置信度
	Confidence *float64
}

//go:generate mockgen -source=./types.go -package=classifiermocks -destination=mocks/classifier.mock.go Classifier
type Classifier interface {
	// ID 是注册表里的变体名，会落到记录的 model_id 上
	ID() string
	Preprocess(data []byte) (Tensor, error)
	Infer(ctx context.Context, input Tensor) (Result, error)
}
