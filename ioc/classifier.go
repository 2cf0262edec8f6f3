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
	"github.com/ecodeclub/stargazer/internal/classifier"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
)

// InitClassifier 启动时选定唯一的分类器，之后不再切换
func InitClassifier() classifier.Classifier {
	var cfg classifier.Config
	err := econf.UnmarshalKey("classifier", &cfg)
	if err != nil {
		panic(err)
	}
	registry := classifier.NewDefaultRegistry()
	clf, err := registry.Build(cfg)
	if err != nil {
		panic(err)
	}
	elog.DefaultLogger.Info("分类器初始化完成",
		elog.String("variant", clf.ID()),
		elog.Any("available", registry.IDs()))
	return classifier.NewInstrumented(clf, prometheus.DefaultRegisterer)
}
