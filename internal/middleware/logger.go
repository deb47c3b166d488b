package middleware

import (
	"net/http"
	"strings"

	"orgchart/config"
	"orgchart/internal/core"
	"orgchart/internal/database/fluentd/model"
	"orgchart/internal/database/fluentd/repository"
	"orgchart/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 不寫入 log 與 span 的 header
var redactedHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
}

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler 記錄進站請求；組織圖 API 不接受 request body，只記錄路由與查詢對象
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPassthrough(c.FullPath()) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))
		id := requestID(c, span)
		meta := core.LoggerRequestMeta{
			Method:    c.Request.Method,
			Route:     routeLabel(c),
			Path:      c.Request.URL.Path,
			Query:     c.Request.URL.RawQuery,
			UserID:    c.Param("userId"),
			UserAgent: c.Request.UserAgent(),
			ClientIP:  c.ClientIP(),
			Headers:   headerMap(c.Request.Header),
		}
		m.trace.ApplyTraceAttributes(span, meta)

		fields := []zap.Field{
			zap.String("method", meta.Method),
			zap.String("route", meta.Route),
			zap.String("path", meta.Path),
			zap.String("requestId", id),
		}
		if meta.UserID != "" {
			fields = append(fields, zap.String("userId", meta.UserID))
		}
		if meta.Query != "" {
			fields = append(fields, zap.String("query", meta.Query))
		}
		m.logger.Info("[Request] "+meta.Method+" "+meta.Route, fields...)

		err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID:   id,
			Method:      meta.Method,
			Route:       meta.Route,
			Path:        meta.Path,
			UserID:      meta.UserID,
			ProjectName: m.config.App.Name,
			RequestTS:   requestStart(c).UTC().Format(logTimeLayout),
			IPHash:      hashIP(meta.ClientIP),
			UserAgent:   meta.UserAgent,
			Version:     m.config.App.Version,
		})
		if err != nil {
			m.logger.Warn("post request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

// headerMap 小寫 key，多值以逗號串接
func headerMap(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for k, v := range header {
		lk := strings.ToLower(k)
		if _, redacted := redactedHeaders[lk]; redacted {
			continue
		}
		out[lk] = strings.Join(v, ",")
	}
	return out
}
