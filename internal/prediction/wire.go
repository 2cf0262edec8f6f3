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

//go:build wireinject

package prediction

import (
	"sync"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/stargazer/internal/artifact"
	"github.com/ecodeclub/stargazer/internal/classifier"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/event"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/event/consumer"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/job"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository/cache"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/repository/dao"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/service"
	"github.com/ecodeclub/stargazer/internal/prediction/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitModule(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	store artifact.Store,
	clf classifier.Classifier,
	cfg Config) (*Module, error) {
	wire.Build(
		initPredictionDAO,
		repository.NewPredictionRepository,
		cache.NewIdempotencyCache,
		initOrphanEventProducer,
		initRetryFactory,
		initKeyGenerator,
		initServiceOptions,
		service.NewService,
		service.NewReconcileService,
		web.NewHandler,
		initOrphanSweepJob,
		consumer.NewOrphanConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var daoOnce = sync.Once{}

func InitTableOnce(db *gorm.DB) {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
}

func initPredictionDAO(db *egorm.Component) dao.PredictionDAO {
	InitTableOnce(db)
	return dao.NewPredictionGORMDAO(db)
}

func initOrphanEventProducer(q mq.MQ) event.OrphanEventProducer {
	producer, err := event.NewOrphanEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

func initRetryFactory(cfg Config) (service.RetryFactory, error) {
	initial, maxInterval, maxRetries := cfg.Retry.Initial, cfg.Retry.Max, cfg.Retry.MaxRetries
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	if maxInterval <= 0 {
		maxInterval = time.Second
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return service.NewRetryFactory(initial, maxInterval, maxRetries)
}

func initKeyGenerator(cfg Config) *service.KeyGenerator {
	return service.NewKeyGenerator(cfg.RandomKeySuffix)
}

func initServiceOptions(cfg Config) service.Options {
	return service.Options{CompensateTimeout: cfg.CompensateTimeout}
}

func initOrphanSweepJob(svc service.ReconcileService, cfg Config) *OrphanSweepJob {
	return job.NewOrphanSweepJob(svc, cfg.Sweep.Grace, cfg.Sweep.PageSize)
}
