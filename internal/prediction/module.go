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

package prediction

import (
	"time"

	"github.com/ecodeclub/stargazer/internal/prediction/internal/event/consumer"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/job"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/service"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/web"
)

type Module struct {
	Svc      Service
	Hdl      *Hdl
	SweepJob *OrphanSweepJob
	Consumer *OrphanConsumer
}

type (
	Hdl            = web.Handler
	Service        = service.Service
	OrphanSweepJob = job.OrphanSweepJob
	OrphanConsumer = consumer.OrphanConsumer
)

// Config 对应配置文件里的 prediction 节点，零值都会用默认值替代
type Config struct {
	// RandomKeySuffix 同一秒内同名文件会撞 key，打开后 key 末尾追加随机串
	RandomKeySuffix   bool          `yaml:"randomKeySuffix"`
	CompensateTimeout time.Duration `yaml:"compensateTimeout"`
	Retry             struct {
		Initial    time.Duration `yaml:"initial"`
		Max        time.Duration `yaml:"max"`
		MaxRetries int32         `yaml:"maxRetries"`
	} `yaml:"retry"`
	Sweep struct {
		Grace    time.Duration `yaml:"grace"`
		PageSize int           `yaml:"pageSize"`
	} `yaml:"sweep"`
}
