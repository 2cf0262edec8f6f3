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

//go:build e2e

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecodeclub/stargazer/internal/artifact"
	"github.com/ecodeclub/stargazer/internal/classifier"
	"github.com/ecodeclub/stargazer/internal/prediction"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository/dao"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/web"
	testioc "github.com/ecodeclub/stargazer/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ModuleTestSuite struct {
	suite.Suite
	server *gin.Engine
	db     *egorm.Component
	store  *artifact.MemoryStore
	module *prediction.Module
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.store = artifact.NewMemoryStore("https://cdn.example.com", "stars")
	var cfg prediction.Config
	cfg.RandomKeySuffix = true
	cfg.Retry.Initial = 10 * time.Millisecond
	cfg.Retry.Max = 50 * time.Millisecond
	cfg.Retry.MaxRetries = 2
	module, err := prediction.InitModule(s.db, testioc.InitCache(), testioc.InitMQ(), s.store, classifier.NewMock(), cfg)
	require.NoError(s.T(), err)
	s.module = module

	gin.SetMode(gin.TestMode)
	server := gin.New()
	module.Hdl.PublicRoutes(server)
	s.server = server
}

func (s *ModuleTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `predictions`").Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) submit(userID, filename, idempotencyKey string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(s.T(), writer.WriteField("user_id", userID))
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(s.T(), err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(s.T(), err)
	require.NoError(s.T(), writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/predict", body)
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	return recorder
}

func (s *ModuleTestSuite) history(userID string) []web.Prediction {
	req, err := http.NewRequest(http.MethodGet, "/api/history?user_id="+userID, nil)
	require.NoError(s.T(), err)
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	require.Equal(s.T(), http.StatusOK, recorder.Code)
	var res []web.Prediction
	require.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &res))
	return res
}

func (s *ModuleTestSuite) TestLifecycle() {
	t := s.T()
	first := s.submit("u1", "sky.jpg", "")
	require.Equal(t, http.StatusOK, first.Code)
	var p1 web.PredictResp
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &p1))
	assert.Contains(t, classifier.MockLabels, p1.Label)
	assert.True(t, strings.HasPrefix(p1.FileURL, "https://cdn.example.com/stars/u1_"))

	// 保证第二条的 created_at 更大
	time.Sleep(5 * time.Millisecond)
	second := s.submit("u1", "lyra.png", "")
	require.Equal(t, http.StatusOK, second.Code)
	var p2 web.PredictResp
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &p2))

	records := s.history("u1")
	require.Len(t, records, 2)
	assert.Equal(t, p2.ID, records[0].ID)
	assert.Equal(t, p1.ID, records[1].ID)
	assert.Empty(t, s.history("u2"))

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("/api/history/%d", p1.ID), nil)
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, s.store.Len())

	records = s.history("u1")
	require.Len(t, records, 1)
	assert.Equal(t, p2.ID, records[0].ID)

	recorder = httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func (s *ModuleTestSuite) TestIdempotentSubmit() {
	t := s.T()
	key := fmt.Sprintf("idem-%d", time.Now().UnixNano())
	first := s.submit("u3", "sky.jpg", key)
	require.Equal(t, http.StatusOK, first.Code)
	second := s.submit("u3", "sky.jpg", key)
	require.Equal(t, http.StatusOK, second.Code)

	var p1, p2 web.PredictResp
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &p1))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &p2))
	assert.Equal(t, p1, p2)
	assert.Len(t, s.history("u3"), 1)
}

func (s *ModuleTestSuite) TestSweepOrphans() {
	t := s.T()
	const lost = "u4_1_lost_jpg"
	_, err := s.store.Upload(context.Background(), lost, []byte("lost"), "image/jpeg")
	require.NoError(t, err)
	recorder := s.submit("u4", "kept.jpg", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var kept web.PredictResp
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &kept))
	keptKey, err := s.store.KeyOf(kept.FileURL)
	require.NoError(t, err)

	// 截止时间放到未来，刚上传的文件也在清理范围内
	n, err := s.module.SweepJob.Sweep(context.Background(), time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	_, ok := s.store.Get(lost)
	assert.False(t, ok)
	_, ok = s.store.Get(keptKey)
	assert.True(t, ok)

	var count int64
	err = s.db.Model(&dao.Prediction{}).Where("user_id = ?", "u4").Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}
