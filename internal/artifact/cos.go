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

package artifact

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"
)

var _ Store = (*COSStore)(nil)

// COSStore 基于腾讯云 COS。所有对象都放在桶内的 dir 目录下，
// locator 形如 https://{bucket}.cos.{region}.myqcloud.com/{dir}/{key}
type COSStore struct {
	client *cos.Client
	dir    string
	// 配置了 CDN 域名时 locator 用 CDN 域名拼接
	publicBase string
}

func NewCOSStore(client *cos.Client, dir, publicBase string) *COSStore {
	return &COSStore{
		client:     client,
		dir:        strings.Trim(dir, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (s *COSStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.Object.Put(ctx, s.objectName(key), bytes.NewReader(data), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: contentType,
		},
	})
	if err != nil {
		return "", fmt.Errorf("上传对象 %s 失败: %w", key, err)
	}
	return s.Locator(key)
}

func (s *COSStore) Locator(key string) (string, error) {
	if s.publicBase != "" {
		return s.publicBase + "/" + s.dir + "/" + url.PathEscape(key), nil
	}
	u := s.client.Object.GetObjectURL(s.objectName(key))
	if u == nil {
		return "", fmt.Errorf("无法生成 %s 的访问地址", key)
	}
	return u.String(), nil
}

func (s *COSStore) KeyOf(locator string) (string, error) {
	return KeyAfterSegment(locator, s.dir)
}

func (s *COSStore) Remove(ctx context.Context, key string) error {
	_, err := s.client.Object.Delete(ctx, s.objectName(key))
	if err != nil && !cos.IsNotFoundError(err) {
		return fmt.Errorf("删除对象 %s 失败: %w", key, err)
	}
	return nil
}

func (s *COSStore) List(ctx context.Context, marker string, limit int) ([]Object, string, error) {
	prefix := s.dir + "/"
	opt := &cos.BucketGetOptions{
		Prefix:  prefix,
		MaxKeys: limit,
	}
	if marker != "" {
		opt.Marker = s.objectName(marker)
	}
	res, _, err := s.client.Bucket.Get(ctx, opt)
	if err != nil {
		return nil, "", fmt.Errorf("列举对象失败: %w", err)
	}
	objs := make([]Object, 0, len(res.Contents))
	for _, c := range res.Contents {
		key := strings.TrimPrefix(c.Key, prefix)
		if key == "" {
			continue
		}
		// COS 返回的是 ISO8601，例如 2024-01-01T00:00:00.000Z
		mtime, er := time.Parse(time.RFC3339, c.LastModified)
		if er != nil {
			return nil, "", fmt.Errorf("解析对象 %s 修改时间失败: %w", c.Key, er)
		}
		objs = append(objs, Object{Key: key, Size: c.Size, ModTime: mtime})
	}
	next := ""
	if res.IsTruncated {
		next = strings.TrimPrefix(res.NextMarker, prefix)
		if next == "" && len(objs) > 0 {
			next = objs[len(objs)-1].Key
		}
	}
	return objs, next, nil
}

func (s *COSStore) objectName(key string) string {
	return s.dir + "/" + key
}
