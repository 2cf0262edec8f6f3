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
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Sanitize 把 [A-Za-z0-9_-] 之外的字符都换成 _
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}

// MakeKey 生成对象存储的 key: {user}_{unix 秒}_{filename}
// 同一个用户同一秒上传同名文件会冲突
func MakeKey(userID, filename string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(Sanitize(userID))
	sb.WriteByte('_')
	sb.WriteString(strconv.FormatInt(now.Unix(), 10))
	sb.WriteByte('_')
	sb.WriteString(Sanitize(baseName(filename)))
	return sb.String()
}

// baseName 去掉客户端带上来的目录部分
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

type KeyGenerator struct {
	// 开启之后在 key 后面追加一段随机串，避免同一秒内的冲突
	randomSuffix bool
	now          func() time.Time
}

func NewKeyGenerator(randomSuffix bool) *KeyGenerator {
	return &KeyGenerator{
		randomSuffix: randomSuffix,
		now:          time.Now,
	}
}

func (g *KeyGenerator) Generate(userID, filename string) string {
	key := MakeKey(userID, filename, g.now())
	if g.randomSuffix {
		key = key + "_" + shortuuid.New()
	}
	return key
}
