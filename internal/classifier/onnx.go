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
	"fmt"
	"slices"

	ort "github.com/yalue/onnxruntime_go"
)

const ONNXID = "onnx"

var _ Classifier = (*ONNX)(nil)

// ONNX 在进程内用 onnxruntime 跑导出的模型。
// 会话创建后只读，每次 Infer 自己分配输入输出张量，可以并发调用
type ONNX struct {
	ImagePreprocessor
	md      Metadata
	inShape ort.Shape
	session *ort.DynamicAdvancedSession
}

// NewONNX libPath 为空时使用 onnxruntime 的默认查找路径
func NewONNX(libPath, modelPath string, md Metadata) (*ONNX, error) {
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("初始化 onnxruntime 失败: %w", err)
		}
	}
	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{md.InputName}, []string{md.OutputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("加载模型 %s 失败: %w", modelPath, err)
	}
	size := int64(md.ImageSize)
	inShape := ort.NewShape(1, size, size, 3)
	if md.Layout == LayoutNCHW {
		inShape = ort.NewShape(1, 3, size, size)
	}
	return &ONNX{
		ImagePreprocessor: ImagePreprocessor{Size: md.ImageSize, Layout: md.Layout},
		md:                md,
		inShape:           inShape,
		session:           session,
	}, nil
}

func (o *ONNX) ID() string {
	return ONNXID
}

func (o *ONNX) Infer(ctx context.Context, t Tensor) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !slices.Equal([]int64(o.inShape), t.Shape) {
		return Result{}, fmt.Errorf("%w: 输入形状 %v，模型需要 %v", ErrInference, t.Shape, o.inShape)
	}
	input, err := ort.NewTensor(o.inShape, t.Data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInference, err)
	}
	defer input.Destroy()
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(o.md.Classes))))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInference, err)
	}
	defer output.Destroy()

	if err = o.session.Run([]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInference, err)
	}
	return argMax(slices.Clone(output.GetData()), o.md.Classes)
}

func (o *ONNX) Close() error {
	return o.session.Destroy()
}
