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
	"errors"
	"testing"
	"time"

	"github.com/ecodeclub/stargazer/internal/artifact"
	artifactmocks "github.com/ecodeclub/stargazer/internal/artifact/mocks"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	repomocks "github.com/ecodeclub/stargazer/internal/prediction/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReconcileService_SweepOrphans(t *testing.T) {
	before := time.UnixMilli(1700000000000)
	old := before.Add(-time.Hour)
	fresh := before.Add(time.Minute)
	testCases := []struct {
		name        string
		mock        func(repo *repomocks.MockPredictionRepository, store *artifactmocks.MockStore)
		wantRemoved int
		wantErr     bool
	}{
		{
			name: "分页扫描，只删除过了宽限期并且没有记录的对象",
			mock: func(repo *repomocks.MockPredictionRepository, store *artifactmocks.MockStore) {
				store.EXPECT().List(gomock.Any(), "", 2).Return([]artifact.Object{
					{Key: "a", ModTime: old},
					{Key: "b", ModTime: fresh},
				}, "b", nil)
				store.EXPECT().List(gomock.Any(), "b", 2).Return([]artifact.Object{
					{Key: "c", ModTime: old},
				}, "", nil)
				repo.EXPECT().ExistsByKey(gomock.Any(), "a").Return(false, nil)
				repo.EXPECT().ExistsByKey(gomock.Any(), "c").Return(true, nil)
				store.EXPECT().Remove(gomock.Any(), "a").Return(nil)
			},
			wantRemoved: 1,
		},
		{
			name: "列举失败",
			mock: func(repo *repomocks.MockPredictionRepository, store *artifactmocks.MockStore) {
				store.EXPECT().List(gomock.Any(), "", 2).Return(nil, "", errors.New("cos unavailable"))
			},
			wantErr: true,
		},
		{
			name: "删除失败时停止",
			mock: func(repo *repomocks.MockPredictionRepository, store *artifactmocks.MockStore) {
				store.EXPECT().List(gomock.Any(), "", 2).Return([]artifact.Object{
					{Key: "a", ModTime: old},
					{Key: "c", ModTime: old},
				}, "", nil)
				repo.EXPECT().ExistsByKey(gomock.Any(), "a").Return(false, nil)
				store.EXPECT().Remove(gomock.Any(), "a").Return(errors.New("cos unavailable"))
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockPredictionRepository(ctrl)
			store := artifactmocks.NewMockStore(ctrl)
			tc.mock(repo, store)
			n, err := NewReconcileService(repo, store).SweepOrphans(context.Background(), before, 2)
			assert.Equal(t, tc.wantErr, err != nil)
			assert.Equal(t, tc.wantRemoved, n)
		})
	}
}

func TestReconcileService_SweepOrphans_MemoryStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockPredictionRepository(ctrl)
	store := artifact.NewMemoryStore("https://cdn.example.com", "stars")
	for _, k := range []string{"k1", "k2", "k3"} {
		_, err := store.Upload(context.Background(), k, []byte(k), "image/png")
		require.NoError(t, err)
	}
	repo.EXPECT().ExistsByKey(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, key string) (bool, error) {
		return key == "k2", nil
	}).Times(3)

	n, err := NewReconcileService(repo, store).SweepOrphans(context.Background(), time.Now().Add(time.Second), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, ok := store.Get("k2")
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

// 记录是在旧的地址前缀下写入的，改了配置之后扫描也不能误删
func TestReconcileService_SweepOrphans_LocatorBaseChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockPredictionRepository(ctrl)
	oldStore := artifact.NewMemoryStore("https://old-cdn.example.com", "stars")
	oldLocator, err := oldStore.Upload(context.Background(), "u1_1700000000_sky_jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	records := []domain.Prediction{{ID: 1, Locator: oldLocator, Key: "u1_1700000000_sky_jpg"}}

	store := artifact.NewMemoryStore("https://cdn.example.com", "stars")
	for _, k := range []string{"u1_1700000000_sky_jpg", "u1_1700000001_moon_png"} {
		_, err = store.Upload(context.Background(), k, []byte(k), "image/png")
		require.NoError(t, err)
	}
	newLocator, err := store.Locator("u1_1700000000_sky_jpg")
	require.NoError(t, err)
	require.NotEqual(t, oldLocator, newLocator)

	repo.EXPECT().ExistsByKey(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, key string) (bool, error) {
		for _, r := range records {
			if r.Key == key {
				return true, nil
			}
		}
		return false, nil
	}).Times(2)

	n, err := NewReconcileService(repo, store).SweepOrphans(context.Background(), time.Now().Add(time.Second), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, ok := store.Get("u1_1700000000_sky_jpg")
	assert.True(t, ok)
	_, ok = store.Get("u1_1700000001_moon_png")
	assert.False(t, ok)
}

func TestReconcileService_RemoveOrphan(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockPredictionRepository(ctrl)
	store := artifactmocks.NewMockStore(ctrl)
	svc := NewReconcileService(repo, store)

	repo.EXPECT().ExistsByKey(gomock.Any(), "k").Return(true, nil)
	ok, err := svc.RemoveOrphan(context.Background(), domain.Orphan{Key: "k", Locator: "loc"})
	require.NoError(t, err)
	assert.False(t, ok)

	repo.EXPECT().ExistsByKey(gomock.Any(), "k").Return(false, nil)
	store.EXPECT().Remove(gomock.Any(), "k").Return(nil)
	ok, err = svc.RemoveOrphan(context.Background(), domain.Orphan{Key: "k", Locator: "loc"})
	require.NoError(t, err)
	assert.True(t, ok)
}
