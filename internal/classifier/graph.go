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
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

const GraphID = "graph"

var _ Classifier = (*Graph)(nil)

// DenseLayer out = activation(in * W + b)，W 是 in x out
type DenseLayer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// GraphSpec 是导出的全连接网络
type GraphSpec struct {
	Layers []DenseLayer `json:"layers"`
}

type layer struct {
	w   *mat.Dense
	b   *mat.VecDense
	act string
}

// Graph 在进程内用 gonum 计算一个全连接网络，适合小模型和本地调试
type Graph struct {
	ImagePreprocessor
	classes []string
	inDim   int
	layers  []layer
}

func LoadGraph(path string, md Metadata) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取模型文件失败: %w", err)
	}
	var spec GraphSpec
	if err = json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("解析模型文件失败: %w", err)
	}
	return NewGraph(spec, md)
}

func NewGraph(spec GraphSpec, md Metadata) (*Graph, error) {
	if len(spec.Layers) == 0 {
		return nil, errors.New("模型没有任何层")
	}
	inDim := md.ImageSize * md.ImageSize * 3
	layers := make([]layer, 0, len(spec.Layers))
	prev := inDim
	for i, l := range spec.Layers {
		if len(l.Weights) != prev {
			return nil, fmt.Errorf("第 %d 层输入维度 %d，上一层输出 %d", i, len(l.Weights), prev)
		}
		out := len(l.Bias)
		if out == 0 {
			return nil, fmt.Errorf("第 %d 层没有输出", i)
		}
		flat := make([]float64, 0, prev*out)
		for _, row := range l.Weights {
			if len(row) != out {
				return nil, fmt.Errorf("第 %d 层权重列数 %d 与偏置长度 %d 不一致", i, len(row), out)
			}
			flat = append(flat, row...)
		}
		switch l.Activation {
		case "", "linear", "relu", "softmax":
		default:
			return nil, fmt.Errorf("第 %d 层不支持的激活函数 %s", i, l.Activation)
		}
		layers = append(layers, layer{
			w:   mat.NewDense(prev, out, flat),
			b:   mat.NewVecDense(out, append([]float64(nil), l.Bias...)),
			act: l.Activation,
		})
		prev = out
	}
	// 置信度必须是概率，最后一层只能是 softmax
	if last := spec.Layers[len(spec.Layers)-1].Activation; last != "softmax" {
		return nil, fmt.Errorf("最后一层的激活函数必须是 softmax，实际是 %q", last)
	}
	if prev != len(md.Classes) {
		return nil, fmt.Errorf("模型输出 %d 维，标签 %d 个", prev, len(md.Classes))
	}
	return &Graph{
		ImagePreprocessor: ImagePreprocessor{Size: md.ImageSize, Layout: md.Layout},
		classes:           md.Classes,
		inDim:             inDim,
		layers:            layers,
	}, nil
}

func (g *Graph) ID() string {
	return GraphID
}

func (g *Graph) Infer(ctx context.Context, t Tensor) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(t.Data) != g.inDim {
		return Result{}, fmt.Errorf("%w: 输入 %d 维，模型需要 %d 维", ErrInference, len(t.Data), g.inDim)
	}
	x := mat.NewVecDense(g.inDim, nil)
	for i, v := range t.Data {
		x.SetVec(i, float64(v))
	}
	for _, l := range g.layers {
		_, out := l.w.Dims()
		y := mat.NewVecDense(out, nil)
		// W 是 in x out，所以用 W^T * x
		y.MulVec(l.w.T(), x)
		y.AddVec(y, l.b)
		activate(y, l.act)
		x = y
	}
	scores := make([]float32, x.Len())
	for i := range scores {
		scores[i] = float32(x.AtVec(i))
	}
	return argMax(scores, g.classes)
}

func activate(v *mat.VecDense, act string) {
	n := v.Len()
	switch act {
	case "relu":
		for i := 0; i < n; i++ {
			if v.AtVec(i) < 0 {
				v.SetVec(i, 0)
			}
		}
	case "softmax":
		maxV := mat.Max(v)
		sum := 0.0
		for i := 0; i < n; i++ {
			e := math.Exp(v.AtVec(i) - maxV)
			v.SetVec(i, e)
			sum += e
		}
		v.ScaleVec(1/sum, v)
	}
}
