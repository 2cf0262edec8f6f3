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

package ioc

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/stargazer/internal/artifact"
	"github.com/ecodeclub/stargazer/internal/classifier"
	"github.com/ecodeclub/stargazer/internal/prediction"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func InitPredictionModule(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	store artifact.Store,
	clf classifier.Classifier) (*prediction.Module, error) {
	var cfg prediction.Config
	err := econf.UnmarshalKey("prediction", &cfg)
	if err != nil {
		return nil, err
	}
	return prediction.InitModule(db, ec, q, store, clf, cfg)
}
