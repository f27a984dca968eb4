package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pathnottaken-go/internal/fetcher"
	"pathnottaken-go/internal/model"
)

// statusFor 错误到HTTP状态码和对外提示的映射，内部细节只写日志
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidPayload):
		return http.StatusBadRequest, "Invalid request payload"
	case errors.Is(err, fetcher.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "Analysis service unavailable"
	case errors.Is(err, fetcher.ErrConfigurationMissing):
		return http.StatusInternalServerError, "LLM service configuration is missing"
	case errors.Is(err, fetcher.ErrEmptyModelOutput):
		return http.StatusInternalServerError, "No analysis content returned"
	case errors.Is(err, fetcher.ErrMalformedModelOutput):
		return http.StatusInternalServerError, "Failed to parse model output"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	c.AbortWithStatusJSON(status, model.ErrorResponse{Error: msg})
}
