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

package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/stargazer/config"
	"github.com/ecodeclub/stargazer/internal/pkg/middleware"
	"github.com/ecodeclub/stargazer/internal/prediction"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/prometheus/client_golang/prometheus"
)

const welcome = "Hello, friend! Welcome to the Constellation Recognizer 6001X Deluxe API!"

func initGinxServer(predictionHdl *prediction.Hdl) *egin.Component {
	var corsCfg config.CORSConfig
	err := econf.UnmarshalKey("server.cors", &corsCfg)
	if err != nil {
		panic(err)
	}
	res := egin.Load("server.web").Build()
	res.Use(cors.New(cors.Config{
		AllowHeaders:    []string{"Content-Type", "Idempotency-Key"},
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowOriginFunc: allowOrigin(corsCfg.AllowOrigins),
	}))
	res.Use(middleware.NewMetricsBuilder("stargazer", prometheus.DefaultRegisterer).Build())
	res.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, welcome)
	})
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	predictionHdl.PublicRoutes(res.Engine)
	return res
}

// allowOrigin 没有配置的时候只允许本地开发
func allowOrigin(allowed []string) func(origin string) bool {
	return func(origin string) bool {
		if strings.HasPrefix(origin, "http://localhost") {
			return true
		}
		for _, a := range allowed {
			if a == "*" || origin == a {
				return true
			}
			// 支持 .example.com 这种后缀写法
			if strings.HasPrefix(a, ".") && strings.HasSuffix(origin, a) {
				return true
			}
		}
		return false
	}
}
