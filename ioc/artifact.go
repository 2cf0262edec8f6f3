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

package ioc

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ecodeclub/stargazer/config"
	"github.com/ecodeclub/stargazer/internal/artifact"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/tencentyun/cos-go-sdk-v5"
)

func InitArtifactStore() artifact.Store {
	var cfg config.StorageConfig
	err := econf.UnmarshalKey("storage", &cfg)
	if err != nil {
		panic(err)
	}
	switch cfg.Driver {
	case "memory":
		elog.DefaultLogger.Warn("使用内存存储，重启之后文件会丢失")
		return artifact.NewMemoryStore(cfg.Memory.BaseURL, cfg.Memory.Bucket)
	case "", "cos":
		return initCOSStore(cfg.COS)
	default:
		panic(fmt.Sprintf("未知的存储驱动 %s", cfg.Driver))
	}
}

func initCOSStore(cfg config.COSConfig) *artifact.COSStore {
	bucketURL, err := url.Parse(cfg.BucketURL)
	if err != nil {
		panic(fmt.Errorf("cos bucketURL 配置错误: %w", err))
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Timeout: timeout,
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})
	dir := cfg.Dir
	if dir == "" {
		dir = "predictions"
	}
	return artifact.NewCOSStore(client, dir, cfg.PublicBase)
}
