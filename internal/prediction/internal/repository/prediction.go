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

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository/dao"
	"gorm.io/gorm"
)

var ErrPredictionNotFound = errors.New("预测记录不存在")

//go:generate mockgen -source=./prediction.go -package=repomocks -destination=mocks/prediction.mock.go PredictionRepository
type PredictionRepository interface {
	Create(ctx context.Context, p domain.Prediction) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.Prediction, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Prediction, error)
	// Delete 返回是否真的删掉了一行
	Delete(ctx context.Context, id int64) (bool, error)
	// ExistsByKey 按对象存储的 key 判断文件是否还被记录引用
	ExistsByKey(ctx context.Context, key string) (bool, error)
}

type predictionRepository struct {
	dao dao.PredictionDAO
}

func NewPredictionRepository(d dao.PredictionDAO) PredictionRepository {
	return &predictionRepository{dao: d}
}

func (r *predictionRepository) Create(ctx context.Context, p domain.Prediction) (int64, error) {
	return r.dao.Insert(ctx, r.toEntity(p))
}

func (r *predictionRepository) FindByID(ctx context.Context, id int64) (domain.Prediction, error) {
	p, err := r.dao.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Prediction{}, ErrPredictionNotFound
	}
	if err != nil {
		return domain.Prediction{}, err
	}
	return r.toDomain(p), nil
}

func (r *predictionRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Prediction, error) {
	ps, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return slice.Map(ps, func(idx int, src dao.Prediction) domain.Prediction {
		return r.toDomain(src)
	}), nil
}

func (r *predictionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	rows, err := r.dao.Delete(ctx, id)
	return rows > 0, err
}

func (r *predictionRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	return r.dao.ExistsByArtifactKey(ctx, key)
}

func (r *predictionRepository) toEntity(p domain.Prediction) dao.Prediction {
	var createdAt int64
	if !p.Ctime.IsZero() {
		createdAt = p.Ctime.UnixMilli()
	}
	conf := sql.NullFloat64{}
	if p.Confidence != nil {
		conf = sql.NullFloat64{Float64: *p.Confidence, Valid: true}
	}
	return dao.Prediction{
		Id:          p.ID,
		UserId:      p.UserID,
		Filename:    p.Filename,
		FileUrl:     p.Locator,
		ArtifactKey: p.Key,
		Label:       p.Label,
		Confidence:  conf,
		ModelId:     p.ModelID,
		CreatedAt:   createdAt,
	}
}

func (r *predictionRepository) toDomain(p dao.Prediction) domain.Prediction {
	var conf *float64
	if p.Confidence.Valid {
		v := p.Confidence.Float64
		conf = &v
	}
	return domain.Prediction{
		ID:         p.Id,
		UserID:     p.UserId,
		Filename:   p.Filename,
		Locator:    p.FileUrl,
		Key:        p.ArtifactKey,
		Label:      p.Label,
		Confidence: conf,
		ModelID:    p.ModelId,
		Ctime:      time.UnixMilli(p.CreatedAt),
	}
}
