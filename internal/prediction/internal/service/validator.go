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

package service

import (
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/errs"
)

var allowedExtensions = []string{"png", "jpg", "jpeg"}

// Validate 只看扩展名，不检查文件内容
func Validate(filePresent bool, filename string, userIDPresent bool) error {
	if !filePresent || !userIDPresent {
		return errs.ErrMissingInput
	}
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return errs.ErrUnsupportedType
	}
	ext := strings.ToLower(filename[idx+1:])
	if !slice.Contains(allowedExtensions, ext) {
		return errs.ErrUnsupportedType
	}
	return nil
}
