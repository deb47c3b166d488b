package validate

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	cErr "orgchart/internal/pkg/error"
	"orgchart/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 輸出格式化的 validator error（欄位 json 名/型別/規則列表）
func ValidationErrorResponse(obj interface{}, err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var b strings.Builder
		b.WriteString("Validation error:\n")
		for _, fe := range errs {
			field := jsonFieldName(obj, fe.StructField())
			ftype := fieldType(obj, fe.StructField())
			format := getFieldFormat(obj, fe.StructField())
			b.WriteString(fmt.Sprintf(" - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n",
				field, ftype, fe.Tag(), format))
		}
		return b.String()
	}
	return fmt.Sprintf("Validation error: %s", err.Error())
}

func jsonFieldName(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}
	return structField
}

func fieldType(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		return f.Type.Name()
	}
	return ""
}

func getFieldFormat(obj interface{}, structField string) []string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		for _, key := range []string{"binding", "validate"} {
			if tag := f.Tag.Get(key); tag != "" {
				return strings.Split(tag, ",")
			}
		}
	}
	return nil
}

// BindUri 綁定路徑參數；request 有自訂訊息時優先使用
func BindUri(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindUri(req); err != nil {
		if _, ok := req.(request.Validator); ok {
			appErr := request.GetError(req, err)
			return err, cErr.ValidatePathParamsErr(appErr.ErrorDesc())
		}
		return err, cErr.ValidatePathParamsErr(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// Struct 以 `validate` tag 驗證非 HTTP 來源的輸入（CLI 參數）
func Struct(obj any) error {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := structValidator.Struct(obj); err != nil {
		return cErr.ValidateErr(ValidationErrorResponse(obj, err))
	}
	return nil
}
