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
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/kafka"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/ecodeclub/stargazer/config"
	"github.com/ecodeclub/stargazer/internal/pkg/mqx"
	"github.com/gotomicro/ego/core/econf"
)

func InitMQ() mq.MQ {
	var cfg config.MQConfig
	err := econf.UnmarshalKey("mq", &cfg)
	if err != nil {
		panic(err)
	}

	var q mq.MQ
	switch cfg.Driver {
	case "memory":
		// 本地单进程运行用，重启就丢消息
		q = memory.NewMQ()
	case "", "kafka":
		q, err = kafka.NewMQ(cfg.Network, cfg.Addresses)
		if err != nil {
			panic(err)
		}
	default:
		panic(fmt.Sprintf("未知的 mq 驱动 %s", cfg.Driver))
	}

	ctx, cancelFunc := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelFunc()
	for i := 0; i < len(cfg.Topics); i++ {
		if e := q.CreateTopic(ctx, cfg.Topics[i].Name, cfg.Topics[i].Partitions); e != nil {
			panic(fmt.Sprintf("创建Topic失败: %s : Topic = %s, Partitions = %d", e.Error(), cfg.Topics[i].Name, cfg.Topics[i].Partitions))
		}
	}
	return mqx.NewTraceMq(q)
}
