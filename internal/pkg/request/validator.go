package request

import (
	"errors"
	"regexp"

	cErr "orgchart/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

// Validator DTO 可提供自訂驗證訊息，key 為 "欄位.tag"，例如 "UserID.max"
type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

// 陣列索引一律視為 .*，讓 "Items.*.required" 對所有元素生效
var indexPattern = regexp.MustCompile(`\[\d+\]`)

// GetError 取第一個驗證錯誤轉為 400；有自訂訊息時使用自訂訊息
func GetError(request any, err error) *cErr.Error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return cErr.ValidateErr("Parameter error")
	}

	first := validationErrors[0]
	if v, ok := request.(Validator); ok {
		key := indexPattern.ReplaceAllString(first.Field(), ".*") + "." + first.Tag()
		if message, exist := v.GetMessages()[key]; exist {
			return cErr.ValidateErr(message)
		}
	}
	return cErr.ValidateErr(first.Error())
}
