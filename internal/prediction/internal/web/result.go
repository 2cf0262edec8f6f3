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

import (
	"errors"
	"net/http"

	"github.com/ecodeclub/stargazer/internal/prediction/internal/errs"
)

// statusOf 把错误映射成状态码和对外的提示，服务端错误统一用一个固定的提示
func statusOf(err error) (int, errs.ErrorCode) {
	switch {
	case errors.Is(err, errs.ErrMissingInput):
		return http.StatusBadRequest, errs.MissingInput
	case errors.Is(err, errs.ErrUnsupportedType):
		return http.StatusBadRequest, errs.UnsupportedType
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, errs.NotFound
	case errors.Is(err, errs.ErrSubmitInFlight):
		return http.StatusConflict, errs.SubmitInFlight
	default:
		return http.StatusInternalServerError, errs.SystemError
	}
}
