// Package common holds helpers shared by the v1 handlers.
package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/interchange"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/utils"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

// MissingVariablesData is the data of a 400 caused by absent required
// variables.
type MissingVariablesData struct {
	Missing []string `json:"missing"`
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, interchange.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err in the response envelope. Internal errors are logged
// and hidden from the client.
func WriteError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		_ = c.Error(err)
		c.JSON(status, utils.NewErrorResponse(status, "Internal server error"))
		return
	}

	var missing *services.MissingRequiredVariablesError
	if errors.As(err, &missing) {
		c.JSON(status, utils.NewResponse(status, err.Error(), MissingVariablesData{Missing: missing.Names}))
		return
	}
	c.JSON(status, utils.NewErrorResponse(status, err.Error()))
}
