package response

import (
	"errors"
	"net/http"

	cErr "orgchart/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// handler 與 response middleware 之間傳遞資料的 key
const (
	contextDataKey    = "response_data"
	contextMessageKey = "response_message"
)

const defaultMessage = "Request Success"

// Response 統一回應格式
type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Success 交由 response middleware 包裝成統一格式
func Success(c *gin.Context, data any) {
	SuccessWithMessage(c, data, defaultMessage)
}

func SuccessWithMessage(c *gin.Context, data any, message string) {
	c.Set(contextDataKey, data)
	c.Set(contextMessageKey, message)
	c.Abort()
}

// Payload 取出 handler 設定的資料；沒有資料時回傳空物件
func Payload(c *gin.Context) (any, string) {
	data, _ := c.Get(contextDataKey)
	if data == nil {
		data = struct{}{}
	}
	message := c.GetString(contextMessageKey)
	if message == "" {
		message = defaultMessage
	}
	return data, message
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, Response{
		RequestID:   requestID,
		Code:        errorCode,
		Message:     msg,
		Description: desc,
	})
	c.Abort()
}

// FailByErr 以 *cErr.Error 的狀態碼輸出，其他錯誤一律 500
func FailByErr(c *gin.Context, requestID string, err error) {
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		Fail(c, requestID, appErr.HttpCode(), appErr.ErrorCode(), appErr.Error(), appErr.ErrorDesc())
		return
	}
	Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, "internal-error", err.Error())
}
