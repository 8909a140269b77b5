package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	"github.com/Stella-M-560/currency-bot-api/internal/usecase"
	xhttp "github.com/Stella-M-560/currency-bot-api/pkg/http"
	xlogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
)

// RatesHandler serves conversion and history as plain text.
type RatesHandler struct {
	logger    *xlogger.Logger
	converter *usecase.Converter
	history   *usecase.History
}

func NewRatesHandler(logger *xlogger.Logger, converter *usecase.Converter, history *usecase.History) *RatesHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &RatesHandler{logger: logger, converter: converter, history: history}
}

func (h *RatesHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Convert)
	e.GET("/history", h.History)
	e.GET("/history/*", h.History)
}

// Convert handles GET /?from=&to=&amount=.
func (h *RatesHandler) Convert(c echo.Context) error {
	req := &models.ConvertRequest{}
	if verr := xhttp.ReadAndValidateQuery(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	res, err := h.converter.Convert(c.Request().Context(), *req)
	if err != nil {
		appErr := h.mapError(err, req.Amount)
		if appErr.Status == http.StatusBadGateway {
			appErr.Message = formatConvertUnavailable(req.From, req.To)
		}
		return xhttp.AppErrorResponse(c, appErr)
	}
	return xhttp.SuccessResponse(c, formatConversion(res))
}

// History handles GET /history?from=&to=&range=.
func (h *RatesHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateQuery(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	res, err := h.history.Summarize(c.Request().Context(), *req)
	if err != nil {
		appErr := h.mapError(err, "")
		if appErr.Status >= http.StatusBadGateway {
			appErr.Message = formatHistoryUnavailable(res, req.Range, appErr.Status)
		}
		return xhttp.AppErrorResponse(c, appErr)
	}
	return xhttp.SuccessResponse(c, formatHistory(res))
}
