package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	applogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
)

// Recover turns a panic into a plain-text 500 so no fault reaches the caller raw.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.Error(perr),
						applogger.String("path", c.Request().URL.Path),
						applogger.String("stack", string(debug.Stack())),
					)
					if !c.Response().Committed {
						err = c.Blob(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("服务内部错误，请稍后再试"))
					}
				}
			}()
			return next(c)
		}
	}
}
