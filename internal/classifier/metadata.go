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
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Metadata 跟模型文件一起导出的描述信息
type Metadata struct {
	Classes    []string `json:"classes"`
	ImageSize  int      `json:"image_size"`
	InputName  string   `json:"input_name"`
	OutputName string   `json:"output_name"`
	Layout     Layout   `json:"layout"`
}

// LoadMetadata 读取 metadata 文件，缺省字段用默认值补齐
func LoadMetadata(path string) (Metadata, error) {
	var md Metadata
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return md, fmt.Errorf("读取模型元数据失败: %w", err)
		}
		if err = json.Unmarshal(data, &md); err != nil {
			return md, fmt.Errorf("解析模型元数据失败: %w", err)
		}
	}
	return md.withDefaults(), nil
}

func (md Metadata) withDefaults() Metadata {
	if len(md.Classes) == 0 {
		md.Classes = DefaultLabels
	}
	if md.ImageSize <= 0 {
		md.ImageSize = 96
	}
	if md.InputName == "" {
		md.InputName = "input"
	}
	if md.OutputName == "" {
		md.OutputName = "output"
	}
	if md.Layout == "" {
		md.Layout = LayoutNHWC
	}
	return md
}

// argMax 返回最大值下标。分数的个数必须和标签个数一致，否则说明模型和标签表不匹配。
// 模型输出的不是概率分布（例如 logits）时先做 softmax，保证置信度落在 [0,1]
func argMax(scores []float32, classes []string) (Result, error) {
	if len(scores) == 0 || len(scores) != len(classes) {
		return Result{}, fmt.Errorf("%w: 输出 %d 个分数，标签 %d 个", ErrInference, len(scores), len(classes))
	}
	probs, err := probabilities(scores)
	if err != nil {
		return Result{}, err
	}
	idx := 0
	for i, p := range probs {
		if p > probs[idx] {
			idx = i
		}
	}
	conf := probs[idx]
	return Result{Label: classes[idx], Confidence: &conf}, nil
}

const probabilitySumTolerance = 1e-3

func probabilities(scores []float32) ([]float64, error) {
	res := make([]float64, len(scores))
	sum := 0.0
	isDist := true
	for i, s := range scores {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: 第 %d 个分数非法 %v", ErrInference, i, v)
		}
		if v < 0 || v > 1 {
			isDist = false
		}
		res[i] = v
		sum += v
	}
	if isDist && math.Abs(sum-1) <= probabilitySumTolerance {
		return res, nil
	}
	maxV := res[0]
	for _, v := range res {
		maxV = math.Max(maxV, v)
	}
	sum = 0
	for i, v := range res {
		res[i] = math.Exp(v - maxV)
		sum += res[i]
	}
	for i := range res {
		res[i] /= sum
	}
	return res, nil
}
