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

package web

import "time"

const timeLayout = "2006-01-02 15:04:05"

type PredictResp struct {
	ID         int64    `json:"id"`
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence,omitempty"`
	FileURL    string   `json:"file_url"`
}

type Prediction struct {
	ID         int64    `json:"id"`
	UserID     string   `json:"user_id"`
	Filename   string   `json:"filename"`
	FileURL    string   `json:"file_url"`
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence,omitempty"`
	ModelID    string   `json:"model_id,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

type RetractResp struct {
	Success bool `json:"success"`
}

type ErrorResp struct {
	Error string `json:"error"`
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}
