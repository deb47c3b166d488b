package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"orgchart/config"
	"orgchart/internal/core"
	"orgchart/internal/database/fluentd/model"
	"orgchart/internal/database/fluentd/repository"
	cErr "orgchart/internal/pkg/error"
	res "orgchart/internal/pkg/response"
	"orgchart/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := requestStart(c)

		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			if rec := recover(); rec != nil {
				duration := time.Since(requestTime)

				ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
				id := requestID(c, span)

				meta := core.TracePanicMeta{
					Path:       c.Request.URL.Path,
					Method:     c.Request.Method,
					ClientIP:   c.ClientIP(),
					UserAgent:  c.Request.UserAgent(),
					DurationMs: float64(duration.Milliseconds()),
					Message:    toSafeString(fmt.Sprint(rec)),
					Stack:      toSafeStack(debug.Stack()),
					Status:     http.StatusInternalServerError,
				}
				middleware.trace.ApplyTraceAttributes(span, meta)

				middleware.logger.Error("[PANIC] Recovered",
					zap.String("path", meta.Path),
					zap.String("method", meta.Method),
					zap.String("client_ip", meta.ClientIP),
					zap.String("user_agent", meta.UserAgent),
					zap.Duration("duration", duration),
					zap.String("panic", meta.Message),
					zap.String("stacktrace", meta.Stack),
					zap.String("requestId", id),
				)

				err := cErr.InternalServer("unexpected panic")
				end(err)
				// 尚未回寫才輸出
				if !c.Writer.Written() {
					res.FailByErr(c, id, err)
				}
				middleware.logResponse(ctx, id, cErr.INTERNAL_ERROR, http.StatusInternalServerError, meta.Message)
				middleware.observeFail(c, "panic")
				c.Abort()
			}
		}()

		// 執行下游
		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
		id := requestID(c, span)

		// 找第一個 *cErr.Error
		for _, e := range c.Errors {
			appErr, ok := e.Err.(*cErr.Error)
			if !ok {
				continue
			}
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       appErr.ErrorCode(),
				Message:    appErr.Error(),
				Detail:     appErr.ErrorDesc(),
				DurationMs: float64(duration.Milliseconds()),
				Status:     appErr.HttpCode(),
			})
			end(appErr)
			middleware.logger.Warn(appErr.Error(),
				zap.Int("code", appErr.ErrorCode()),
				zap.String("data", appErr.ErrorDesc()),
				zap.Duration("duration", duration),
				zap.String("requestId", id),
			)
			middleware.logResponse(ctx, id, appErr.ErrorCode(), appErr.HttpCode(), appErr.ErrorDesc())
			middleware.observeFail(c, appErr.Error())
			res.FailByErr(c, id, appErr)
			c.Abort()
			return
		}

		// 其餘未知錯誤
		unknown := c.Errors.String()
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       cErr.INTERNAL_ERROR,
			Message:    "unknown-error",
			Detail:     toSafeString(unknown),
			DurationMs: float64(duration.Milliseconds()),
			Status:     http.StatusInternalServerError,
		})
		end(c.Errors.Last().Err)
		middleware.logger.Warn("[ERROR] unknown",
			zap.String("error", unknown),
			zap.Duration("duration", duration),
			zap.String("requestId", id),
		)
		middleware.logResponse(ctx, id, cErr.INTERNAL_ERROR, http.StatusInternalServerError, toSafeString(unknown))
		middleware.observeFail(c, "unknown")
		res.Fail(c, id, http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", unknown)
		c.Abort()
	}
}

func (middleware *Recovery) logResponse(ctx context.Context, requestID string, code, status int, errorText string) {
	if middleware.fluentdRepository == nil {
		return
	}
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:   requestID,
		ProjectName: middleware.config.App.Name,
		Code:        code,
		StatusCode:  status,
		Error:       errorText,
		ResponseTS:  time.Now().UTC().Format(logTimeLayout),
		Version:     middleware.config.App.Version,
	})
	if err != nil {
		middleware.logger.Warn("post response log failed", zap.Error(err))
	}
}

// observeFail 失敗次數依原因分類；請求耗時由 trace entry 統一記錄
func (middleware *Recovery) observeFail(c *gin.Context, reason string) {
	if middleware.metric == nil || middleware.metric.HttpFailTotal == nil {
		return
	}
	middleware.metric.HttpFailTotal.WithLabelValues(reason).Inc()
}

// ---- helpers ----

func toSafeString(s string) string {
	if !utf8.ValidString(s) {
		return "b64:" + base64.StdEncoding.EncodeToString([]byte(truncateUTF8(s, 6000)))
	}
	return truncateUTF8(s, 8000)
}

func toSafeStack(b []byte) string {
	if !utf8.Valid(b) {
		b = b[:min(len(b), 12000)]
		return "b64:" + base64.StdEncoding.EncodeToString(b)
	}
	return truncateUTF8(string(b), 16000)
}
