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

package errs

import (
	"errors"
	"fmt"
)

// 客户端错误，原因可以直接返回给调用方
var (
	ErrMissingInput    = errors.New("missing input")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNotFound        = errors.New("prediction not found")
	ErrSubmitInFlight  = errors.New("submission in flight")
)

// 服务端错误，细节只进日志
var (
	ErrUploadFailed    = errors.New("upload failed")
	ErrDecode          = errors.New("image decode failed")
	ErrInferenceFailed = errors.New("inference failed")
	ErrPersistFailed   = errors.New("persist failed")
	ErrInvalidLocator  = errors.New("invalid locator")
	ErrRemoveFailed    = errors.New("remove artifact failed")
)

// OrphanError 表示提交流程在上传成功之后失败，并且补偿删除也没有成功。
// 对象存储里留下了一个没有记录的文件，Key 和 Locator 用于线下对账。
type OrphanError struct {
	Key     string
	Locator string
	Err     error
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("%s (orphan artifact %s left behind)", e.Err.Error(), e.Key)
}

func (e *OrphanError) Unwrap() error {
	return e.Err
}

// IsClientError 是否是调用方的问题
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSubmitInFlight)
}
