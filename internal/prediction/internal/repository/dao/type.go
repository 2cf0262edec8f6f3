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
	"database/sql"

	"github.com/ego-component/egorm"
)

// Prediction 孤儿判断按 ArtifactKey 匹配，FileUrl 的前缀可能随配置变化
type Prediction struct {
	Id          int64           `gorm:"primaryKey,autoIncrement"`
	UserId      string          `gorm:"type:varchar(255);not null;index:idx_user_ctime,priority:1"`
	Filename    string          `gorm:"type:varchar(512);not null"`
	FileUrl     string          `gorm:"type:varchar(1024);not null"`
	ArtifactKey string          `gorm:"type:varchar(512);not null;default:'';index:idx_artifact_key"`
	Label       string          `gorm:"type:varchar(128);not null"`
	Confidence  sql.NullFloat64 `gorm:"type:double"`
	ModelId     string          `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt   int64           `gorm:"column:created_at;not null;index:idx_user_ctime,priority:2"`
}

func (Prediction) TableName() string {
	return "predictions"
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Prediction{})
}
