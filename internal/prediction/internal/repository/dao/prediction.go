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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

//go:generate mockgen -source=./prediction.go -package=daomocks -destination=mocks/prediction.mock.go PredictionDAO
type PredictionDAO interface {
	// Insert 返回自增 id，created_at 为空时由 DAO 填充
	Insert(ctx context.Context, p Prediction) (int64, error)
	FindByID(ctx context.Context, id int64) (Prediction, error)
	// FindByUserID 按 created_at 倒序，相同时间按 id 倒序
	FindByUserID(ctx context.Context, userID string) ([]Prediction, error)
	// Delete 返回实际删除的行数
	Delete(ctx context.Context, id int64) (int64, error)
	// ExistsByArtifactKey 用于孤儿对象的判断
	ExistsByArtifactKey(ctx context.Context, key string) (bool, error)
}

type PredictionGORMDAO struct {
	db *egorm.Component
}

func NewPredictionGORMDAO(db *egorm.Component) PredictionDAO {
	return &PredictionGORMDAO{db: db}
}

func (dao *PredictionGORMDAO) Insert(ctx context.Context, p Prediction) (int64, error) {
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixMilli()
	}
	err := dao.db.WithContext(ctx).Create(&p).Error
	return p.Id, err
}

func (dao *PredictionGORMDAO) FindByID(ctx context.Context, id int64) (Prediction, error) {
	var res Prediction
	err := dao.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (dao *PredictionGORMDAO) FindByUserID(ctx context.Context, userID string) ([]Prediction, error) {
	var res []Prediction
	err := dao.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (dao *PredictionGORMDAO) Delete(ctx context.Context, id int64) (int64, error) {
	res := dao.db.WithContext(ctx).Where("id = ?", id).Delete(&Prediction{})
	return res.RowsAffected, res.Error
}

func (dao *PredictionGORMDAO) ExistsByArtifactKey(ctx context.Context, key string) (bool, error) {
	var cnt int64
	err := dao.db.WithContext(ctx).Model(&Prediction{}).
		Where("artifact_key = ?", key).
		Count(&cnt).Error
	return cnt > 0, err
}
