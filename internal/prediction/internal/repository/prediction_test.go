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
	"testing"
	"time"

	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository/dao"
	daomocks "github.com/ecodeclub/stargazer/internal/prediction/internal/repository/dao/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestPredictionRepository_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := daomocks.NewMockPredictionDAO(ctrl)
	conf := 0.75
	ctime := time.UnixMilli(1700000000123)
	d.EXPECT().Insert(gomock.Any(), dao.Prediction{
		UserId:      "u1",
		Filename:    "sky.jpg",
		FileUrl:     "loc",
		ArtifactKey: "u1_1700000000_sky_jpg",
		Label:       "Lyra",
		Confidence:  sql.NullFloat64{Float64: 0.75, Valid: true},
		ModelId:     "onnx",
		CreatedAt:   1700000000123,
	}).Return(int64(9), nil)

	id, err := NewPredictionRepository(d).Create(context.Background(), domain.Prediction{
		UserID:     "u1",
		Filename:   "sky.jpg",
		Locator:    "loc",
		Key:        "u1_1700000000_sky_jpg",
		Label:      "Lyra",
		Confidence: &conf,
		ModelID:    "onnx",
		Ctime:      ctime,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
}

func TestPredictionRepository_FindByID(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) dao.PredictionDAO
		want    domain.Prediction
		wantErr error
	}{
		{
			name: "找到记录",
			mock: func(ctrl *gomock.Controller) dao.PredictionDAO {
				d := daomocks.NewMockPredictionDAO(ctrl)
				d.EXPECT().FindByID(gomock.Any(), int64(1)).Return(dao.Prediction{
					Id: 1, UserId: "u1", Filename: "a.png", FileUrl: "loc", ArtifactKey: "k", Label: "Orion",
					ModelId: "mock", CreatedAt: 1000,
				}, nil)
				return d
			},
			want: domain.Prediction{
				ID: 1, UserID: "u1", Filename: "a.png", Locator: "loc", Key: "k", Label: "Orion",
				ModelID: "mock", Ctime: time.UnixMilli(1000),
			},
		},
		{
			name: "记录不存在",
			mock: func(ctrl *gomock.Controller) dao.PredictionDAO {
				d := daomocks.NewMockPredictionDAO(ctrl)
				d.EXPECT().FindByID(gomock.Any(), int64(1)).Return(dao.Prediction{}, gorm.ErrRecordNotFound)
				return d
			},
			wantErr: ErrPredictionNotFound,
		},
		{
			name: "数据库错误",
			mock: func(ctrl *gomock.Controller) dao.PredictionDAO {
				d := daomocks.NewMockPredictionDAO(ctrl)
				d.EXPECT().FindByID(gomock.Any(), int64(1)).Return(dao.Prediction{}, errors.New("mock db error"))
				return d
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			p, err := NewPredictionRepository(tc.mock(ctrl)).FindByID(context.Background(), 1)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestPredictionRepository_ExistsByKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := daomocks.NewMockPredictionDAO(ctrl)
	d.EXPECT().ExistsByArtifactKey(gomock.Any(), "k").Return(true, nil)
	ok, err := NewPredictionRepository(d).ExistsByKey(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPredictionRepository_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := daomocks.NewMockPredictionDAO(ctrl)
	d.EXPECT().Delete(gomock.Any(), int64(1)).Return(int64(1), nil)
	d.EXPECT().Delete(gomock.Any(), int64(2)).Return(int64(0), nil)
	repo := NewPredictionRepository(d)

	ok, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredictionRepository_FindByUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := daomocks.NewMockPredictionDAO(ctrl)
	d.EXPECT().FindByUserID(gomock.Any(), "u1").Return([]dao.Prediction{
		{Id: 2, UserId: "u1", Label: "Lyra", Confidence: sql.NullFloat64{Float64: 0.5, Valid: true}, CreatedAt: 2000},
		{Id: 1, UserId: "u1", Label: "Orion", CreatedAt: 1000},
	}, nil)
	res, err := NewPredictionRepository(d).FindByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int64(2), res[0].ID)
	require.NotNil(t, res[0].Confidence)
	assert.Equal(t, 0.5, *res[0].Confidence)
	assert.Nil(t, res[1].Confidence)
}
