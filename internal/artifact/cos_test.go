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
	"context"
	"fmt"
	"hash/crc64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tencentyun/cos-go-sdk-v5"
)

// fakeBucket 模拟 COS 的 PUT / DELETE / GET Bucket 三个接口
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	ctypes  map[string]string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := strings.TrimPrefix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[name] = body
		f.ctypes[name] = r.Header.Get("Content-Type")
		sum := crc64.Checksum(body, crc64.MakeTable(crc64.ECMA))
		w.Header().Set("x-cos-hash-crc64ecma", strconv.FormatUint(sum, 10))
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		if _, ok := f.objects[name]; !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`)
			return
		}
		delete(f.objects, name)
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodGet && name == "":
		prefix := r.URL.Query().Get("prefix")
		w.Header().Set("Content-Type", "application/xml")
		var sb strings.Builder
		sb.WriteString(`<ListBucketResult><Name>bucket</Name><Prefix>` + prefix + `</Prefix><IsTruncated>false</IsTruncated>`)
		for k, v := range f.objects {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<Contents><Key>%s</Key><LastModified>2024-01-02T03:04:05.000Z</LastModified><Size>%d</Size></Contents>`, k, len(v)))
		}
		sb.WriteString(`</ListBucketResult>`)
		_, _ = io.WriteString(w, sb.String())
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type COSStoreTestSuite struct {
	suite.Suite
	server *httptest.Server
	bucket *fakeBucket
	store  *COSStore
}

func (s *COSStoreTestSuite) SetupTest() {
	s.bucket = &fakeBucket{objects: map[string][]byte{}, ctypes: map[string]string{}}
	s.server = httptest.NewServer(s.bucket)
	u, err := url.Parse(s.server.URL)
	require.NoError(s.T(), err)
	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{SecretID: "id", SecretKey: "key"},
	})
	s.store = NewCOSStore(client, "stars", "")
}

func (s *COSStoreTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *COSStoreTestSuite) TestUploadRemove() {
	t := s.T()
	ctx := context.Background()
	loc, err := s.store.Upload(ctx, "u1_1700000000_sky_jpg", []byte("image"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, s.server.URL+"/stars/u1_1700000000_sky_jpg", loc)
	assert.Equal(t, []byte("image"), s.bucket.objects["stars/u1_1700000000_sky_jpg"])
	assert.Equal(t, "image/jpeg", s.bucket.ctypes["stars/u1_1700000000_sky_jpg"])

	key, err := s.store.KeyOf(loc)
	require.NoError(t, err)
	assert.Equal(t, "u1_1700000000_sky_jpg", key)

	require.NoError(t, s.store.Remove(ctx, key))
	assert.Empty(t, s.bucket.objects)
	// 删除不存在的对象也算成功
	require.NoError(t, s.store.Remove(ctx, key))
}

func (s *COSStoreTestSuite) TestList() {
	t := s.T()
	s.bucket.objects["stars/a"] = []byte("1")
	s.bucket.objects["other/b"] = []byte("22")
	objs, next, err := s.store.List(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Equal(t, "", next)
	require.Len(t, objs, 1)
	assert.Equal(t, "a", objs[0].Key)
	assert.Equal(t, int64(1), objs[0].Size)
	assert.Equal(t, int64(1704164645), objs[0].ModTime.Unix())
}

func (s *COSStoreTestSuite) TestPublicBaseLocator() {
	store := NewCOSStore(nil, "/stars/", "https://cdn.example.com/")
	loc, err := store.Locator("u1_1_a_png")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "https://cdn.example.com/stars/u1_1_a_png", loc)
}

func TestCOSStore(t *testing.T) {
	suite.Run(t, new(COSStoreTestSuite))
}
