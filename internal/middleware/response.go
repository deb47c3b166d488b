package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"orgchart/config"
	"orgchart/internal/core"
	"orgchart/internal/database/fluentd/model"
	"orgchart/internal/database/fluentd/repository"
	cErr "orgchart/internal/pkg/error"
	"orgchart/internal/pkg/response"
	"orgchart/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 完整組織圖可能很大，log 與 span 只保留前段
const maxLoggedBody = 4096

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// FormatHandler 把 handler 以 response.Success 設定的資料包成統一格式輸出
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPassthrough(c.FullPath()) {
			c.Next()
			return
		}
		start := requestStart(c)

		c.Next()

		// 錯誤交給 Recovery；handler 自行寫出的回應不再包裝
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(status, "request error"))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		data, message := response.Payload(c)
		// data 只序列化一次，log 與回應共用
		body, err := json.Marshal(data)
		if err != nil {
			end(err)
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}
		id := requestID(c, span)
		envelope, err := json.Marshal(response.Response{
			RequestID:   id,
			Code:        0,
			Data:        json.RawMessage(body),
			Message:     "OK",
			Description: message,
		})
		if err != nil {
			end(err)
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}

		route := routeLabel(c)
		duration := time.Since(start)
		preview := truncateUTF8(string(body), maxLoggedBody)
		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     status,
			Message:    message,
			Code:       0,
			DurationMs: float64(duration.Milliseconds()),
			Data:       preview,
		})
		middleware.logger.Info("[Response] "+message,
			zap.String("route", route),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Int("bytes", len(body)),
			zap.Duration("duration", duration),
			zap.String("requestId", id),
		)
		err = middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:   id,
			ProjectName: middleware.config.App.Name,
			Route:       route,
			Code:        0,
			StatusCode:  status,
			Bytes:       len(body),
			DurationMs:  duration.Milliseconds(),
			Body:        preview,
			ResponseTS:  time.Now().UTC().Format(logTimeLayout),
			Version:     middleware.config.App.Version,
		})
		if err != nil {
			middleware.logger.Warn("post response log failed", zap.Error(err))
		}
		if middleware.metric.HttpSuccessTotal != nil {
			middleware.metric.HttpSuccessTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		}

		c.Data(status, "application/json; charset=utf-8", envelope)
	}
}
