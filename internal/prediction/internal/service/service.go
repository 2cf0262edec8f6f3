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
	"fmt"
	"time"

	"github.com/ecodeclub/stargazer/internal/artifact"
	"github.com/ecodeclub/stargazer/internal/classifier"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/domain"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/errs"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/event"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository/cache"
	"github.com/gotomicro/ego/core/elog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ecodeclub/stargazer/internal/prediction"

//go:generate mockgen -source=./service.go -package=svcmocks -destination=mocks/service.mock.go Service
type Service interface {
	// Submit 校验 -> 上传 -> 识别 -> 落库，顺序不可调整
	Submit(ctx context.Context, sub domain.Submission) (domain.Prediction, error)
	// Retract 删除文件和记录，第二次调用返回 errs.ErrNotFound
	Retract(ctx context.Context, id int64) error
	// ListHistory 按创建时间倒序
	ListHistory(ctx context.Context, userID string) ([]domain.Prediction, error)
}

type Options struct {
	// 补偿删除使用的超时时间，和请求的 ctx 无关
	CompensateTimeout time.Duration
}

type service struct {
	repo       repository.PredictionRepository
	store      artifact.Store
	clf        classifier.Classifier
	keys       *KeyGenerator
	idempotent cache.IdempotencyCache
	producer   event.OrphanEventProducer
	retry      RetryFactory
	opts       Options
	tracer     trace.Tracer
	logger     *elog.Component
}

func NewService(repo repository.PredictionRepository,
	store artifact.Store,
	clf classifier.Classifier,
	keys *KeyGenerator,
	idempotent cache.IdempotencyCache,
	producer event.OrphanEventProducer,
	retry RetryFactory,
	opts Options) Service {
	if opts.CompensateTimeout <= 0 {
		opts.CompensateTimeout = 10 * time.Second
	}
	return &service{
		repo:       repo,
		store:      store,
		clf:        clf,
		keys:       keys,
		idempotent: idempotent,
		producer:   producer,
		retry:      retry,
		opts:       opts,
		tracer:     otel.GetTracerProvider().Tracer(instrumentationName),
		logger:     elog.DefaultLogger,
	}
}

func (s *service) Submit(ctx context.Context, sub domain.Submission) (domain.Prediction, error) {
	if err := Validate(sub.HasFile(), sub.Filename, sub.UserID != ""); err != nil {
		return domain.Prediction{}, err
	}

	if sub.IdempotencyKey != "" {
		reserved, p, err := s.reserve(ctx, sub)
		if !reserved {
			return p, err
		}
		res, err := s.submit(ctx, sub)
		s.settle(sub, res, err)
		return res, err
	}
	return s.submit(ctx, sub)
}

func (s *service) submit(ctx context.Context, sub domain.Submission) (domain.Prediction, error) {
	key := s.keys.Generate(sub.UserID, sub.Filename)
	locator, err := s.upload(ctx, key, sub)
	if err != nil {
		s.logger.Error("上传文件失败",
			elog.FieldErr(err),
			elog.String("userID", sub.UserID),
			elog.String("key", key))
		return domain.Prediction{}, fmt.Errorf("%w: %w", errs.ErrUploadFailed, err)
	}

	res, err := s.classify(ctx, sub.Data)
	if err != nil {
		kind := errs.ErrInferenceFailed
		if errors.Is(err, classifier.ErrDecode) {
			kind = errs.ErrDecode
		}
		return domain.Prediction{}, s.compensate(key, locator, kind, err)
	}

	modelID := sub.ModelID
	if modelID == "" {
		modelID = s.clf.ID()
	}
	p := domain.Prediction{
		UserID:     sub.UserID,
		Filename:   sub.Filename,
		Locator:    locator,
		Key:        key,
		Label:      res.Label,
		Confidence: res.Confidence,
		ModelID:    modelID,
		Ctime:      time.Now(),
	}
	p.ID, err = s.persist(ctx, p)
	if err != nil {
		return domain.Prediction{}, s.compensate(key, locator, errs.ErrPersistFailed, err)
	}
	return p, nil
}

func (s *service) upload(ctx context.Context, key string, sub domain.Submission) (string, error) {
	ctx, span := s.tracer.Start(ctx, "prediction.upload")
	defer span.End()
	span.SetAttributes(attribute.String("artifact.key", key))
	var locator string
	// 同一个 key 同样的内容，重试是幂等的
	err := withRetry(ctx, s.retry, func(ctx context.Context) error {
		var er error
		locator, er = s.store.Upload(ctx, key, sub.Data, sub.ContentType)
		return er
	})
	endSpan(span, err)
	return locator, err
}

func (s *service) classify(ctx context.Context, data []byte) (classifier.Result, error) {
	ctx, span := s.tracer.Start(ctx, "prediction.classify")
	defer span.End()
	span.SetAttributes(attribute.String("classifier.id", s.clf.ID()))
	input, err := s.clf.Preprocess(data)
	if err != nil {
		endSpan(span, err)
		return classifier.Result{}, err
	}
	res, err := s.clf.Infer(ctx, input)
	if err == nil {
		span.SetAttributes(attribute.String("classifier.label", res.Label))
	}
	endSpan(span, err)
	return res, err
}

// persist 插入不是幂等的，不能重试
func (s *service) persist(ctx context.Context, p domain.Prediction) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "prediction.persist")
	defer span.End()
	id, err := s.repo.Create(ctx, p)
	endSpan(span, err)
	return id, err
}

// compensate 删除刚上传的文件。请求的 ctx 可能已经被取消，所以用一个独立的 ctx。
// 删除失败时返回 OrphanError，并且发消息让消费者异步清理
func (s *service) compensate(key, locator string, kind, cause error) error {
	s.logger.Error("上传之后的步骤失败，删除已上传文件",
		elog.FieldErr(cause),
		elog.String("key", key),
		elog.String("kind", kind.Error()))

	removeCtx, cancel := context.WithTimeout(context.Background(), s.opts.CompensateTimeout)
	defer cancel()
	err := withRetry(removeCtx, s.retry, func(ctx context.Context) error {
		return s.store.Remove(ctx, key)
	})
	if err == nil {
		return fmt.Errorf("%w: %w", kind, cause)
	}

	s.logger.Error("补偿删除失败，留下孤儿文件",
		elog.FieldErr(err),
		elog.String("key", key),
		elog.String("locator", locator))
	evt := event.OrphanEvent{
		Key:     key,
		Locator: locator,
		Reason:  kind.Error(),
		Ctime:   time.Now().UnixMilli(),
	}
	// 删除可能已经耗尽了 removeCtx，发消息用单独的超时
	produceCtx, produceCancel := context.WithTimeout(context.Background(), s.opts.CompensateTimeout)
	defer produceCancel()
	if er := s.producer.Produce(produceCtx, evt); er != nil {
		s.logger.Error("发送孤儿文件事件失败，只能等定时任务清理",
			elog.FieldErr(er),
			elog.Any("event", evt))
	}
	return &errs.OrphanError{Key: key, Locator: locator, Err: fmt.Errorf("%w: %w", kind, cause)}
}

// reserve 返回 true 表示抢到了幂等键，需要继续执行提交。
// 缓存不可用时降级为不做幂等
func (s *service) reserve(ctx context.Context, sub domain.Submission) (bool, domain.Prediction, error) {
	ok, err := s.idempotent.Reserve(ctx, sub.UserID, sub.IdempotencyKey)
	if err != nil {
		s.logger.Warn("幂等键不可用，按普通请求处理",
			elog.FieldErr(err),
			elog.String("userID", sub.UserID))
		return true, domain.Prediction{}, nil
	}
	if ok {
		return true, domain.Prediction{}, nil
	}

	id, done, err := s.idempotent.Lookup(ctx, sub.UserID, sub.IdempotencyKey)
	if err != nil || !done {
		// 刚好过期也当作处理中，让客户端稍后重试
		return false, domain.Prediction{}, errs.ErrSubmitInFlight
	}
	p, err := s.findByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		// 记录已经被撤回，这个幂等键不再指向任何结果，作废之后重新抢占
		return s.reclaim(ctx, sub)
	}
	return false, p, err
}

func (s *service) reclaim(ctx context.Context, sub domain.Submission) (bool, domain.Prediction, error) {
	if err := s.idempotent.Release(ctx, sub.UserID, sub.IdempotencyKey); err != nil {
		s.logger.Warn("释放失效的幂等键失败",
			elog.FieldErr(err),
			elog.String("userID", sub.UserID))
		return false, domain.Prediction{}, errs.ErrSubmitInFlight
	}
	ok, err := s.idempotent.Reserve(ctx, sub.UserID, sub.IdempotencyKey)
	if err != nil || !ok {
		// 被并发的重放抢先了
		return false, domain.Prediction{}, errs.ErrSubmitInFlight
	}
	return true, domain.Prediction{}, nil
}

// settle 提交成功记录结果，失败释放幂等键，让客户端可以重试
func (s *service) settle(sub domain.Submission, p domain.Prediction, submitErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.CompensateTimeout)
	defer cancel()
	var err error
	if submitErr == nil {
		err = s.idempotent.Complete(ctx, sub.UserID, sub.IdempotencyKey, p.ID)
	} else {
		err = s.idempotent.Release(ctx, sub.UserID, sub.IdempotencyKey)
	}
	if err != nil {
		s.logger.Warn("更新幂等键失败",
			elog.FieldErr(err),
			elog.String("userID", sub.UserID))
	}
}

func (s *service) Retract(ctx context.Context, id int64) error {
	p, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	key := p.Key
	if key == "" {
		key, err = s.store.KeyOf(p.Locator)
	}
	if err != nil {
		s.logger.Error("无法从地址中解析出 key",
			elog.FieldErr(err),
			elog.Int64("id", id),
			elog.String("locator", p.Locator))
		return fmt.Errorf("%w: %w", errs.ErrInvalidLocator, err)
	}

	err = withRetry(ctx, s.retry, func(ctx context.Context) error {
		return s.store.Remove(ctx, key)
	})
	if err != nil {
		s.logger.Error("删除文件失败",
			elog.FieldErr(err),
			elog.Int64("id", id),
			elog.String("key", key))
		return fmt.Errorf("%w: %w", errs.ErrRemoveFailed, err)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除记录失败",
			elog.FieldErr(err),
			elog.Int64("id", id))
		return fmt.Errorf("%w: %w", errs.ErrPersistFailed, err)
	}
	if !deleted {
		// 大概率是并发删除，文件已经删掉了
		s.logger.Warn("删除记录影响行数为 0", elog.Int64("id", id))
		return fmt.Errorf("%w: 记录 %d 已被删除", errs.ErrPersistFailed, id)
	}
	return nil
}

func (s *service) ListHistory(ctx context.Context, userID string) ([]domain.Prediction, error) {
	if userID == "" {
		return nil, errs.ErrMissingInput
	}
	var res []domain.Prediction
	err := withRetry(ctx, s.retry, func(ctx context.Context) error {
		var er error
		res, er = s.repo.FindByUserID(ctx, userID)
		return er
	})
	if err != nil {
		s.logger.Error("查询历史记录失败",
			elog.FieldErr(err),
			elog.String("userID", userID))
		return nil, fmt.Errorf("%w: %w", errs.ErrPersistFailed, err)
	}
	if res == nil {
		res = []domain.Prediction{}
	}
	return res, nil
}

func (s *service) findByID(ctx context.Context, id int64) (domain.Prediction, error) {
	var (
		p        domain.Prediction
		notFound bool
	)
	err := withRetry(ctx, s.retry, func(ctx context.Context) error {
		var er error
		p, er = s.repo.FindByID(ctx, id)
		if errors.Is(er, repository.ErrPredictionNotFound) {
			notFound = true
			return nil
		}
		return er
	})
	switch {
	case err != nil:
		s.logger.Error("查询记录失败", elog.FieldErr(err), elog.Int64("id", id))
		return domain.Prediction{}, fmt.Errorf("%w: %w", errs.ErrPersistFailed, err)
	case notFound:
		return domain.Prediction{}, errs.ErrNotFound
	default:
		return p, nil
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
