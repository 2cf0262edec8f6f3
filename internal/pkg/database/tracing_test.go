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

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type star struct {
	Id   int64
	Name string
}

func newTracedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *tracetest.SpanRecorder) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, db.Use(NewGormTracingPluginWithTracer(tp.Tracer("test"))))
	return db, mock, recorder
}

func TestGormTracingPlugin(t *testing.T) {
	testCases := []struct {
		name       string
		mock       func(mock sqlmock.Sqlmock)
		exec       func(db *gorm.DB) error
		wantSpan   string
		wantStatus codes.Code
	}{
		{
			name: "查询成功",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .*").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Orion"))
			},
			exec: func(db *gorm.DB) error {
				var res []star
				return db.WithContext(context.Background()).Find(&res).Error
			},
			wantSpan:   "stars query",
			wantStatus: codes.Ok,
		},
		{
			name: "查不到数据不算错误",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .*").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
			},
			exec: func(db *gorm.DB) error {
				var res star
				err := db.WithContext(context.Background()).First(&res).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			},
			wantSpan:   "stars query",
			wantStatus: codes.Ok,
		},
		{
			name: "插入失败",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `stars` .*").WillReturnError(errors.New("mock db error"))
			},
			exec: func(db *gorm.DB) error {
				err := db.WithContext(context.Background()).Create(&star{Name: "Lyra"}).Error
				if err == nil {
					return errors.New("应该返回错误")
				}
				return nil
			},
			wantSpan:   "stars create",
			wantStatus: codes.Error,
		},
		{
			name: "删除",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM `stars` .*").WillReturnResult(sqlmock.NewResult(0, 1))
			},
			exec: func(db *gorm.DB) error {
				return db.WithContext(context.Background()).Where("id = ?", 1).Delete(&star{}).Error
			},
			wantSpan:   "stars delete",
			wantStatus: codes.Ok,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, recorder := newTracedDB(t)
			tc.mock(mock)
			require.NoError(t, tc.exec(db))
			require.NoError(t, mock.ExpectationsWereMet())

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.wantSpan, spans[0].Name())
			assert.Equal(t, tc.wantStatus, spans[0].Status().Code)
		})
	}
}
