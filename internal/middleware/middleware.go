package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"orgchart/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/google/wire"
	"go.opentelemetry.io/otel/trace"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewResponse,
)

// fluentd 時間欄位格式
const logTimeLayout = "2006-01-02 15:04:05.999999 UTC"

// 不追蹤、不記錄、不包裝回應的路徑
var passthroughPrefixes = []string{"/swagger", "/metrics", "/version", "/health", "/debug/pprof"}

func isPassthrough(route string) bool {
	for _, prefix := range passthroughPrefixes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}

// routeLabel 指標與 span 使用路由樣板，未匹配的路徑統一為 unmatched
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// requestStart 取得請求開始時間；第一個呼叫者負責寫入
func requestStart(c *gin.Context) time.Time {
	if v, ok := c.Get(core.ContextRequestStartKey); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	now := time.Now()
	c.Set(core.ContextRequestStartKey, now)
	return now
}

// requestID 同一個請求只產生一次：trace id，未啟用 tracing 時為 UUIDv7
func requestID(c *gin.Context, span trace.Span) string {
	if id := c.GetString(core.ContextRequestIDKey); id != "" {
		return id
	}
	var id string
	if sc := span.SpanContext(); sc.HasTraceID() {
		traceID := sc.TraceID()
		id = fmt.Sprintf("%x", traceID[:])
	} else if v7, err := uuid.NewV7(); err == nil {
		id = v7.String()
	} else {
		id = uuid.NewString()
	}
	c.Set(core.ContextRequestIDKey, id)
	return id
}

// truncateUTF8 截斷到 max bytes 內最近的字元邊界
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "…"
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:16])
}
