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

var (
	SystemError     = ErrorCode{Code: 515001, Msg: "failed to process prediction"}
	MissingInput    = ErrorCode{Code: 515002, Msg: "Missing file or user_id"}
	UnsupportedType = ErrorCode{Code: 515003, Msg: "Invalid file type. Only JPG, JPEG, PNG allowed."}
	MissingUserID   = ErrorCode{Code: 515004, Msg: "Missing user_id"}
	NotFound        = ErrorCode{Code: 515005, Msg: "Prediction not found"}
	SubmitInFlight  = ErrorCode{Code: 515006, Msg: "A submission with this idempotency key is in progress"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
