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
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/event"
	svcmocks "github.com/ecodeclub/stargazer/internal/prediction/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMQ(t *testing.T) mq.MQ {
	q := memory.NewMQ()
	require.NoError(t, q.CreateTopic(context.Background(), event.OrphanTopic, 1))
	return q
}

func TestOrphanConsumer_Consume(t *testing.T) {
	testCases := []struct {
		name    string
		evt     event.OrphanEvent
		mock    func(svc *svcmocks.MockReconcileService)
		wantErr bool
	}{
		{
			name: "删除孤儿文件",
			evt:  event.OrphanEvent{Key: "k1", Locator: "loc/k1", Reason: "persist failed"},
			mock: func(svc *svcmocks.MockReconcileService) {
				svc.EXPECT().RemoveOrphan(gomock.Any(), domain.Orphan{Key: "k1", Locator: "loc/k1"}).Return(true, nil)
			},
		},
		{
			name: "已有记录",
			evt:  event.OrphanEvent{Key: "k1", Locator: "loc/k1"},
			mock: func(svc *svcmocks.MockReconcileService) {
				svc.EXPECT().RemoveOrphan(gomock.Any(), gomock.Any()).Return(false, nil)
			},
		},
		{
			name: "删除失败",
			evt:  event.OrphanEvent{Key: "k1", Locator: "loc/k1"},
			mock: func(svc *svcmocks.MockReconcileService) {
				svc.EXPECT().RemoveOrphan(gomock.Any(), gomock.Any()).Return(false, errors.New("cos unavailable"))
			},
			wantErr: true,
		},
		{
			name:    "缺少 key",
			evt:     event.OrphanEvent{Locator: "loc/k1"},
			mock:    func(svc *svcmocks.MockReconcileService) {},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := svcmocks.NewMockReconcileService(ctrl)
			tc.mock(svc)
			q := newTestMQ(t)
			c, err := NewOrphanConsumer(svc, q)
			require.NoError(t, err)

			producer, err := event.NewOrphanEventProducer(q)
			require.NoError(t, err)
			require.NoError(t, producer.Produce(context.Background(), tc.evt))

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			err = c.Consume(ctx)
			assert.Equal(t, tc.wantErr, err != nil)
		})
	}
}

func TestOrphanConsumer_BadMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := newTestMQ(t)
	c, err := NewOrphanConsumer(svcmocks.NewMockReconcileService(ctrl), q)
	require.NoError(t, err)
	p, err := q.Producer(event.OrphanTopic)
	require.NoError(t, err)
	_, err = p.Produce(context.Background(), &mq.Message{Value: []byte("not json")})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	assert.Error(t, c.Consume(ctx))
}

func TestOrphanEventJSON(t *testing.T) {
	data, err := json.Marshal(event.OrphanEvent{Key: "k", Locator: "l", Reason: "r", Ctime: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"k","locator":"l","reason":"r","ctime":1}`, string(data))
}
