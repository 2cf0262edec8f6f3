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

package config

import "time"

type MQConfig struct {
	// Driver kafka 或者 memory
	Driver    string   `yaml:"driver"`
	Network   string   `yaml:"network"`
	Addresses []string `yaml:"addresses"`
	Topics    []struct {
		Name       string `yaml:"name"`
		Partitions int    `yaml:"partitions"`
	} `yaml:"topics"`
}

type StorageConfig struct {
	// Driver cos 或者 memory
	Driver string    `yaml:"driver"`
	COS    COSConfig `yaml:"cos"`
	Memory struct {
		BaseURL string `yaml:"baseURL"`
		Bucket  string `yaml:"bucket"`
	} `yaml:"memory"`
}

type COSConfig struct {
	// BucketURL 形如 https://<bucket>-<appid>.cos.<region>.myqcloud.com
	BucketURL string `yaml:"bucketURL"`
	SecretID  string `yaml:"secretID"`
	SecretKey string `yaml:"secretKey"`
	// Dir 桶内的目录，地址里面以 /<Dir>/ 分隔出对象的 key
	Dir string `yaml:"dir"`
	// PublicBase CDN 域名，为空时用桶的默认域名
	PublicBase string        `yaml:"publicBase"`
	Timeout    time.Duration `yaml:"timeout"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}
