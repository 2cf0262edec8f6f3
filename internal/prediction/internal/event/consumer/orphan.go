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

package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/event"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/service"
	"github.com/gotomicro/ego/core/elog"
)

const orphanGroupID = "prediction_orphan_group"

// OrphanConsumer 异步清理补偿失败留下的文件
type OrphanConsumer struct {
	svc      service.ReconcileService
	consumer mq.Consumer
	logger   *elog.Component
}

func NewOrphanConsumer(svc service.ReconcileService, q mq.MQ) (*OrphanConsumer, error) {
	c, err := q.Consumer(event.OrphanTopic, orphanGroupID)
	if err != nil {
		return nil, err
	}
	return &OrphanConsumer{
		svc:      svc,
		consumer: c,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *OrphanConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if ctx.Err() != nil {
				c.logger.Info("停止消费孤儿文件事件")
				return
			}
			if err != nil {
				c.logger.Error("消费孤儿文件事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *OrphanConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt event.OrphanEvent
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	if evt.Key == "" {
		return errors.New("孤儿文件事件缺少 key")
	}
	removed, err := c.svc.RemoveOrphan(ctx, domain.Orphan{Key: evt.Key, Locator: evt.Locator})
	if err != nil {
		// 定时任务会兜底
		c.logger.Error("清理孤儿文件失败",
			elog.FieldErr(err),
			elog.Any("event", evt))
		return err
	}
	if !removed {
		c.logger.Warn("文件已有对应记录，跳过", elog.String("key", evt.Key))
	}
	return nil
}
