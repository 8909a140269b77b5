package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ReadAndValidateQuery binds query parameters into req, fills `default` tags, then validates.
// Failures come back as a 400 *AppError.
func ReadAndValidateQuery(c echo.Context, req interface{}) *AppError {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		return validatorDefaultRules(err)
	}

	if err := defaults.Set(req); err != nil {
		return validatorDefaultRules(err)
	}

	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return validatorDefaultRules(err)
	}

	return nil
}

func validatorDefaultRules(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		code := "ERR_VALIDATION"
		for _, e := range validationErrors {
			msgs = append(msgs, getErrorMessage(e))
			code = "ERR_" + strings.ToUpper(e.Tag())
		}
		return BadRequestError(code, strings.Join(msgs, "；")).WithError(err)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return BadRequestError("ERR_BIND", fmt.Sprintf("参数格式错误：%v", he.Message)).WithError(err)
	}

	return BadRequestError("ERR_UNKNOWN", err.Error()).WithError(err)
}

func getErrorMessage(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("缺少参数 %s", field)
	case "max":
		return fmt.Sprintf("参数 %s 过长（最多 %s 个字符）", field, fe.Param())
	case "nefield":
		return fmt.Sprintf("参数 %s 不能与 %s 相同", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("参数 %s 校验失败：%s", field, fe.Tag())
	}
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}
