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
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// ImagePreprocessor 解码 -> 缩放到 Size x Size -> 归一化到 [0,1] -> 加 batch 维
type ImagePreprocessor struct {
	Size   int
	Layout Layout
}

func (p ImagePreprocessor) Preprocess(data []byte) (Tensor, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Tensor{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	size := p.Size
	resized := resize.Resize(uint(size), uint(size), img, resize.Bilinear)
	bounds := resized.Bounds()

	plane := size * size
	out := make([]float32, 3*plane)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// RGBA 返回 16 位的分量，alpha 直接丢弃
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rgb := [3]float32{float32(r) / 65535, float32(g) / 65535, float32(b) / 65535}
			idx := y*size + x
			for c := 0; c < 3; c++ {
				if p.Layout == LayoutNCHW {
					out[c*plane+idx] = rgb[c]
				} else {
					out[idx*3+c] = rgb[c]
				}
			}
		}
	}
	shape := []int64{1, int64(size), int64(size), 3}
	if p.Layout == LayoutNCHW {
		shape = []int64{1, 3, int64(size), int64(size)}
	}
	return Tensor{Shape: shape, Data: out}, nil
}
