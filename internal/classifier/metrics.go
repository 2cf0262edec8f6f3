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

package classifier

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ Classifier = (*Instrumented)(nil)

// Instrumented 记录推理耗时和各个标签的出现次数
type Instrumented struct {
	Classifier
	duration *prometheus.HistogramVec
	labels   *prometheus.CounterVec
}

// NewInstrumented reg 为 nil 时注册到默认的 registry
func NewInstrumented(c Classifier, reg prometheus.Registerer) *Instrumented {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Instrumented{
		Classifier: c,
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "classifier_inference_duration_seconds",
			Help:    "Classifier inference duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"model", "status"}),
		labels: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "classifier_predicted_labels_total",
			Help: "Total number of predicted labels",
		}, []string{"model", "label"}),
	}
}

func (i *Instrumented) Infer(ctx context.Context, t Tensor) (Result, error) {
	start := time.Now()
	res, err := i.Classifier.Infer(ctx, t)
	status := "ok"
	if err != nil {
		status = "error"
	}
	i.duration.WithLabelValues(i.ID(), status).Observe(time.Since(start).Seconds())
	if err == nil {
		i.labels.WithLabelValues(i.ID(), res.Label).Inc()
	}
	return res, err
}
