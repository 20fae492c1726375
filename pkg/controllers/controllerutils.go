package controllers

import (
	"context"
	"net/http"

	"florist-api-io/api/internal/common"
	"florist-api-io/api/internal/helpers"
	"florist-api-io/api/pkg/bouquet"
	"florist-api-io/api/pkg/catalog"
	"florist-api-io/api/pkg/services"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ControllerContext wraps the standard context with useful utilities for controllers
type ControllerContext struct {
	Ctx       context.Context
	Cancel    context.CancelFunc
	SessionID string
}

// WithTimeout creates a context with the standard request timeout
func WithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), common.REQUEST_TIMEOUT_SECS)
}

// SetupControllerContext creates a standard controller context with timeout and cart session
func SetupControllerContext(c *gin.Context) (*ControllerContext, bool) {
	sessionID, err := helpers.MySessionId(c)
	if err != nil {
		return nil, false
	}

	ctx, cancel := WithTimeout(c)
	return &ControllerContext{
		Ctx:       ctx,
		Cancel:    cancel,
		SessionID: sessionID,
	}, true
}

// SetupControllerContextWithoutSession creates a controller context for public catalog routes
func SetupControllerContextWithoutSession(c *gin.Context) *ControllerContext {
	ctx, cancel := WithTimeout(c)

	return &ControllerContext{
		Ctx:    ctx,
		Cancel: cancel,
	}
}

// Cleanup should be called to release resources (typically deferred)
func (cc *ControllerContext) Cleanup() {
	if cc.Cancel != nil {
		cc.Cancel()
	}
}

// BindJSONAndValidate binds JSON and handles validation errors
func BindJSONAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	if err := common.Validate.Struct(obj); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	return true
}

// HandlePaginationAndResponse is a utility for common pagination responses
func HandlePaginationAndResponse(c *gin.Context, data any, count int64, paginationArgs util.PaginationArgs, message string) {
	util.HandleSuccessMeta(c, http.StatusOK, message, data, gin.H{
		"pagination": util.Pagination{
			Limit: paginationArgs.Limit,
			Skip:  paginationArgs.Skip,
			Count: count,
		},
	})
}

// HandleServiceError maps domain errors to HTTP answers.
func HandleServiceError(c *gin.Context, err error) {
	var verr *bouquet.ValidationError
	switch {
	case errors.As(err, &verr):
		util.LogInfo("bouquet validation failed", zap.Strings("messages", verr.Messages))
		util.HandleValidationMessages(c, http.StatusUnprocessableEntity, err, verr.Messages)
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, bouquet.ErrUnknownOption):
		util.HandleError(c, http.StatusNotFound, err)
	case errors.Is(err, bouquet.ErrInvalidStep):
		util.HandleError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrCatalogUnavailable):
		util.HandleError(c, http.StatusBadGateway, err)
	case errors.Is(err, context.DeadlineExceeded):
		util.HandleError(c, http.StatusGatewayTimeout, err)
	default:
		util.HandleError(c, http.StatusInternalServerError, err)
	}
}
