package middleware

import (
	"net/http"
	"time"

	"orgchart/config"
	"orgchart/internal/core"
	"orgchart/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace *telemetry.Trace
	conf  *config.Configuration
}

func NewCors(trace *telemetry.Trace, conf *config.Configuration) *Cors {
	return &Cors{trace: trace, conf: conf}
}

type corsMeta struct {
	AllowOrigins []string `trace:"http.cors.allow_origins"`
	AllowAll     bool     `trace:"http.cors.allow_all_origins"`
	Origin       string   `trace:"http.request.header.origin,omitempty"`
}

// corsConfig 組織圖前端只讀取資料與觸發重建
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Traceparent", "Tracestate"},
		ExposeHeaders: []string{"X-Request-ID", "X-App-Version"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// CorsHandler passthrough 路徑不開 span，但仍套用 CORS 讓 preflight 通過
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := corsConfig(m.conf.App.CorsAllowOrigins)
	corsHandler := cors.New(cfg)

	return func(c *gin.Context) {
		if isPassthrough(c.FullPath()) {
			corsHandler(c)
			return
		}

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, corsMeta{
			AllowOrigins: cfg.AllowOrigins,
			AllowAll:     cfg.AllowAllOrigins,
			Origin:       c.GetHeader("Origin"),
		})
		end(nil)

		corsHandler(c)
	}
}
