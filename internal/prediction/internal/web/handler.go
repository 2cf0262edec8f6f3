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

package web

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/errs"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// 上传文件大小上限 10MB
const defaultMaxUploadSize int64 = 10 << 20

type Handler struct {
	svc           service.Service
	maxUploadSize int64
	logger        *elog.Component
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:           svc,
		maxUploadSize: defaultMaxUploadSize,
		logger:        elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/api")
	g.POST("/predict", h.Predict)
	g.GET("/history", h.History)
	g.DELETE("/history/:id", h.Retract)
}

func (h *Handler) Predict(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxUploadSize)
	var tooLarge *http.MaxBytesError
	if err := ctx.Request.ParseMultipartForm(h.maxUploadSize); errors.As(err, &tooLarge) {
		ctx.JSON(http.StatusRequestEntityTooLarge, ErrorResp{Error: "File too large"})
		return
	}
	sub := domain.Submission{
		UserID:         ctx.PostForm("user_id"),
		ModelID:        ctx.PostForm("model_id"),
		IdempotencyKey: ctx.GetHeader("Idempotency-Key"),
	}
	fh, err := ctx.FormFile("image")
	if err == nil {
		sub.Filename = fh.Filename
		sub.ContentType = fh.Header.Get("Content-Type")
		sub.Data, err = readFile(fh)
		if err != nil {
			h.logger.Error("读取上传文件失败", elog.FieldErr(err))
			ctx.JSON(http.StatusBadRequest, ErrorResp{Error: errs.MissingInput.Msg})
			return
		}
	}

	p, err := h.svc.Submit(ctx.Request.Context(), sub)
	if err != nil {
		h.writeError(ctx, err, map[string]string{
			"userID":   sub.UserID,
			"filename": sub.Filename,
		})
		return
	}
	ctx.JSON(http.StatusOK, PredictResp{
		ID:         p.ID,
		Label:      p.Label,
		Confidence: p.Confidence,
		FileURL:    p.Locator,
	})
}

func (h *Handler) History(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResp{Error: errs.MissingUserID.Msg})
		return
	}
	ps, err := h.svc.ListHistory(ctx.Request.Context(), userID)
	if err != nil {
		h.writeError(ctx, err, userID)
		return
	}
	ctx.JSON(http.StatusOK, slice.Map(ps, func(idx int, src domain.Prediction) Prediction {
		return h.toVO(src)
	}))
}

func (h *Handler) Retract(ctx *gin.Context) {
	// 不是正整数的 id 不可能对应任何记录
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusNotFound, ErrorResp{Error: errs.NotFound.Msg})
		return
	}
	err = h.svc.Retract(ctx.Request.Context(), id)
	if err != nil {
		h.writeError(ctx, err, id)
		return
	}
	ctx.JSON(http.StatusOK, RetractResp{Success: true})
}

// writeError 客户端错误返回具体原因，服务端错误只返回固定提示，细节进日志
func (h *Handler) writeError(ctx *gin.Context, err error, detail any) {
	status, code := statusOf(err)
	if status >= http.StatusInternalServerError {
		var orphan *errs.OrphanError
		if errors.As(err, &orphan) {
			h.logger.Error("请求失败并留下孤儿文件",
				elog.FieldErr(err),
				elog.String("key", orphan.Key),
				elog.Any("detail", detail))
		} else {
			h.logger.Error("处理请求失败",
				elog.FieldErr(err),
				elog.String("path", ctx.FullPath()),
				elog.Any("detail", detail))
		}
	}
	ctx.JSON(status, ErrorResp{Error: code.Msg})
}

func (h *Handler) toVO(p domain.Prediction) Prediction {
	return Prediction{
		ID:         p.ID,
		UserID:     p.UserID,
		Filename:   p.Filename,
		FileURL:    p.Locator,
		Label:      p.Label,
		Confidence: p.Confidence,
		ModelID:    p.ModelID,
		CreatedAt:  formatTime(p.Ctime),
	}
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
