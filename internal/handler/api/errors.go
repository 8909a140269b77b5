package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	xhttp "github.com/Stella-M-560/currency-bot-api/pkg/http"
	xlogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
)

// mapError turns a use case error into a user-facing AppError and logs it at a fitting level.
func (h *RatesHandler) mapError(err error, rawAmount string) *xhttp.AppError {
	var appErr *xhttp.AppError
	var ce *models.CurrencyError

	switch {
	case errors.Is(err, models.ErrAmbiguousCurrency) && errors.As(err, &ce):
		appErr = xhttp.BadRequestErrorf("ERR_AMBIGUOUS_CURRENCY",
			"货币名称有歧义：「%s」可能是 %s，请使用三位货币代码", ce.Input, strings.Join(ce.Candidates, "、"))
	case errors.Is(err, models.ErrUnrecognizedCurrency):
		input := ""
		if errors.As(err, &ce) {
			input = ce.Input
		}
		appErr = xhttp.BadRequestErrorf("ERR_UNRECOGNIZED_CURRENCY", "无法识别的货币：「%s」", input)
	case errors.Is(err, models.ErrInvalidAmount):
		appErr = xhttp.BadRequestErrorf("ERR_INVALID_AMOUNT", "无效的金额：「%s」，示例：100、3万、1.5K", rawAmount)
	case errors.Is(err, models.ErrInvalidRequest):
		appErr = xhttp.BadRequestError("ERR_INVALID_REQUEST", "起始货币与目标货币相同，请选择两种不同的货币")
	case errors.Is(err, models.ErrInsufficientData):
		appErr = xhttp.ServiceUnavailableError("ERR_INSUFFICIENT_DATA", "历史数据不足")
	case errors.Is(err, models.ErrUpstreamUnavailable):
		appErr = xhttp.BadGatewayError("ERR_UPSTREAM_UNAVAILABLE", "汇率服务暂时不可用，请稍后再试")
	default:
		appErr = xhttp.InternalError("服务内部错误，请稍后再试")
	}
	appErr.WithError(err)

	fields := []xlogger.Field{xlogger.String("code", appErr.Code), xlogger.Error(err)}
	if ce != nil && len(ce.Candidates) > 0 {
		fields = append(fields, xlogger.Strings("candidates", ce.Candidates))
	}
	if appErr.Status >= 500 {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}
	return appErr
}

func pairLabel(from, to string) string {
	if from == "" || to == "" {
		return "该货币对"
	}
	return fmt.Sprintf("%s → %s", from, to)
}
