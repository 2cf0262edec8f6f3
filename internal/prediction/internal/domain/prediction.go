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

package domain

import "time"

// Prediction 一次识别的结果，和上传的文件一一对应
type Prediction struct {
	ID       int64
	UserID   string
	Filename string
	// 对象存储返回的访问地址
	Locator string
	// 对象存储里的 key，旧数据为空时从 Locator 里解析
	Key   string
	Label string
	// mock 分类器没有置信度
	Confidence *float64
	ModelID    string
	Ctime      time.Time
}

// Submission 用户提交的一张图片
type Submission struct {
	UserID      string
	ModelID     string
	Filename    string
	ContentType string
	Data        []byte
	// 可选，相同的 key 只会产生一条记录
	IdempotencyKey string
}

func (s Submission) HasFile() bool {
	return s.Filename != "" || len(s.Data) > 0
}

// Orphan 对象存储里没有对应记录的文件
type Orphan struct {
	Key     string
	Locator string
}
