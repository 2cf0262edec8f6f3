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

package job

import (
	"context"
	"time"

	"github.com/ecodeclub/stargazer/internal/prediction/internal/service"
	"github.com/gotomicro/ego/core/elog"
)

// OrphanSweepJob 定时清理没有记录的文件，兜底 MQ 没有处理掉的孤儿
type OrphanSweepJob struct {
	svc      service.ReconcileService
	grace    time.Duration
	pageSize int
	logger   *elog.Component
}

// NewOrphanSweepJob grace 是宽限期，最近 grace 内上传的文件可能还在提交流程中，不处理
func NewOrphanSweepJob(svc service.ReconcileService, grace time.Duration, pageSize int) *OrphanSweepJob {
	if grace <= 0 {
		grace = 30 * time.Minute
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &OrphanSweepJob{
		svc:      svc,
		grace:    grace,
		pageSize: pageSize,
		logger:   elog.DefaultLogger,
	}
}

func (j *OrphanSweepJob) Name() string {
	return "prediction_orphan_sweep_job"
}

func (j *OrphanSweepJob) Run(ctx context.Context) error {
	_, err := j.Sweep(ctx, time.Now().Add(-j.grace))
	return err
}

// Sweep 清理 before 之前上传且没有记录的文件，返回删除的数量
func (j *OrphanSweepJob) Sweep(ctx context.Context, before time.Time) (int, error) {
	n, err := j.svc.SweepOrphans(ctx, before, j.pageSize)
	j.logger.Info("孤儿文件清理完成",
		elog.Int("removed", n),
		elog.Int64("before", before.UnixMilli()))
	return n, err
}
