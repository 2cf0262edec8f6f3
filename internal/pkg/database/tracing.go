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

package database

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	instrumentationName = "github.com/ecodeclub/stargazer/internal/pkg/database"
	spanKey             = "tracing:span"
)

// GormTracingPlugin 给 gorm 的增删改查和原始 SQL 打点
type GormTracingPlugin struct {
	tracer trace.Tracer
}

func NewGormTracingPlugin() *GormTracingPlugin {
	return NewGormTracingPluginWithTracer(otel.GetTracerProvider().Tracer(instrumentationName))
}

func NewGormTracingPluginWithTracer(tracer trace.Tracer) *GormTracingPlugin {
	return &GormTracingPlugin{tracer: tracer}
}

func (p *GormTracingPlugin) Name() string {
	return "GormTracingPlugin"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	type register func(name string, fn func(*gorm.DB)) error
	operations := []struct {
		op     string
		before register
		after  register
	}{
		{op: "query", before: cb.Query().Before("gorm:query").Register, after: cb.Query().After("gorm:query").Register},
		{op: "create", before: cb.Create().Before("gorm:create").Register, after: cb.Create().After("gorm:create").Register},
		{op: "update", before: cb.Update().Before("gorm:update").Register, after: cb.Update().After("gorm:update").Register},
		{op: "delete", before: cb.Delete().Before("gorm:delete").Register, after: cb.Delete().After("gorm:delete").Register},
		{op: "row", before: cb.Row().Before("gorm:row").Register, after: cb.Row().After("gorm:row").Register},
		{op: "raw", before: cb.Raw().Before("gorm:raw").Register, after: cb.Raw().After("gorm:raw").Register},
	}
	for _, o := range operations {
		if err := o.before("tracing:before_"+o.op, p.before(o.op)); err != nil {
			return err
		}
		if err := o.after("tracing:after_"+o.op, p.after); err != nil {
			return err
		}
	}
	return nil
}

func (p *GormTracingPlugin) before(op string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		name := "gorm." + op
		if db.Statement.Table != "" {
			name = db.Statement.Table + " " + op
		}
		ctx, span := p.tracer.Start(db.Statement.Context, name,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attribute.String("db.operation", op)))
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
	}
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	val, ok := db.InstanceGet(spanKey)
	if !ok {
		return
	}
	span, ok := val.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("db.system", db.Dialector.Name()),
		attribute.String("db.statement", db.Statement.SQL.String()),
		attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
	}
	if db.Statement.Table != "" {
		attrs = append(attrs, attribute.String("db.table", db.Statement.Table))
	}
	span.SetAttributes(attrs...)

	// 查不到数据是正常的业务结果
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
