package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-cli/internal/apperr"
	"github.com/vzahanych/weather-cli/internal/locale"
	"github.com/vzahanych/weather-cli/internal/lookup"
	"github.com/vzahanych/weather-cli/internal/present"
	"github.com/vzahanych/weather-cli/internal/server/utils"
	"go.uber.org/zap"
)

type ForecastHandler struct {
	lookup *lookup.Service
	logger *zap.Logger
}

func NewForecastHandler(svc *lookup.Service, logger *zap.Logger) *ForecastHandler {
	return &ForecastHandler{
		lookup: svc,
		logger: logger,
	}
}

// GetForecast serves the same document the CLI prints with --json.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    apperr.KindInvalid.String(),
			Details: err.Error(),
		})
		return
	}

	cat := locale.Get(req.Lang)

	report, err := h.lookup.Lookup(ctx, lookup.Query{
		Name:       req.Name,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Days:       req.Days,
		Lang:       req.Lang,
	})
	if err != nil {
		c.Error(err)
		h.writeError(c, cat, err)
		return
	}

	if report.IgnoredName != "" {
		c.Header("Warning", `199 - "`+cat.T(locale.KeyNotePlzUsed, report.IgnoredName)+`"`)
	}

	c.JSON(http.StatusOK, present.NewDocument(report.Location, report.Forecast, cat))
}

func (h *ForecastHandler) writeError(c *gin.Context, cat *locale.Catalog, err error) {
	msg, hint := cat.Describe(err)
	resp := ErrorResponse{
		Error: msg,
		Hint:  hint,
	}

	status := http.StatusInternalServerError
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status = appErr.Kind.HTTPStatus()
		resp.Code = appErr.Kind.String()
		resp.Countries = appErr.Countries
	}

	c.JSON(status, resp)
}
