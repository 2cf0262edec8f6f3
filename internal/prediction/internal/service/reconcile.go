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
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/stargazer/internal/artifact"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// ReconcileService 清理对象存储里没有对应记录的文件
//
//go:generate mockgen -source=./reconcile.go -package=svcmocks -destination=mocks/reconcile.mock.go ReconcileService
type ReconcileService interface {
	// SweepOrphans 扫描修改时间早于 before 的对象，pageSize 是每次列举的数量。返回删除的数量
	SweepOrphans(ctx context.Context, before time.Time, pageSize int) (int, error)
	// RemoveOrphan 确认没有记录引用之后删除，返回是否真的删除了
	RemoveOrphan(ctx context.Context, orphan domain.Orphan) (bool, error)
}

type reconcileService struct {
	repo   repository.PredictionRepository
	store  artifact.Store
	logger *elog.Component
}

func NewReconcileService(repo repository.PredictionRepository, store artifact.Store) ReconcileService {
	return &reconcileService{
		repo:   repo,
		store:  store,
		logger: elog.DefaultLogger,
	}
}

func (s *reconcileService) SweepOrphans(ctx context.Context, before time.Time, pageSize int) (int, error) {
	removed := 0
	marker := ""
	for {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		objs, next, err := s.store.List(ctx, marker, pageSize)
		if err != nil {
			return removed, fmt.Errorf("列举对象失败: %w", err)
		}
		for _, obj := range objs {
			// 宽限期内的对象可能还在提交流程中
			if !obj.ModTime.Before(before) {
				continue
			}
			// 只按 key 匹配，地址前缀改过配置之后拼出来的地址和库里的对不上
			ok, er := s.RemoveOrphan(ctx, domain.Orphan{Key: obj.Key})
			if er != nil {
				return removed, er
			}
			if ok {
				removed++
			}
		}
		if next == "" {
			return removed, nil
		}
		marker = next
	}
}

func (s *reconcileService) RemoveOrphan(ctx context.Context, orphan domain.Orphan) (bool, error) {
	exists, err := s.repo.ExistsByKey(ctx, orphan.Key)
	if err != nil {
		return false, fmt.Errorf("查询对象 %s 的记录失败: %w", orphan.Key, err)
	}
	if exists {
		return false, nil
	}
	if err = s.store.Remove(ctx, orphan.Key); err != nil {
		return false, fmt.Errorf("删除孤儿对象 %s 失败: %w", orphan.Key, err)
	}
	s.logger.Info("删除孤儿对象", elog.String("key", orphan.Key))
	return true, nil
}
