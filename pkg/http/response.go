package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// MIMETextPlainUTF8 is the content type of every body this service writes.
const MIMETextPlainUTF8 = "text/plain; charset=utf-8"

const internalErrorText = "服务内部错误，请稍后再试"

// TextResponse writes a plain-text body.
func TextResponse(c echo.Context, status int, body string) error {
	return c.Blob(status, MIMETextPlainUTF8, []byte(body))
}

// SuccessResponse writes a 200 plain-text body.
func SuccessResponse(c echo.Context, body string) error {
	return TextResponse(c, http.StatusOK, body)
}

// InternalServerErrorResponse writes a generic 500.
func InternalServerErrorResponse(c echo.Context) error {
	return TextResponse(c, http.StatusInternalServerError, internalErrorText)
}

// AppErrorResponse writes an application error; anything else becomes a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return TextResponse(c, appErr.Status, appErr.Message)
	}
	return InternalServerErrorResponse(c)
}

// ErrorHandler renders errors that escape handlers (routing misses, AppErrors, panics turned errors).
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = TextResponse(c, he.Code, msg)
		return
	}
	_ = AppErrorResponse(c, err)
}
