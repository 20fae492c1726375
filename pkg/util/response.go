package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
}

func HandleSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Meta:    nil,
	})
}

func HandleSuccessMeta(c *gin.Context, statusCode int, message string, data, meta interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

type ErrorResponse struct {
	Error    string   `json:"error,omitempty"`
	Messages []string `json:"messages,omitempty"`
	Status   int      `json:"status"`
}

func HandleError(c *gin.Context, statusCode int, err error) {
	zap.L().Warn("request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", statusCode),
		zap.Error(err),
	)
	c.JSON(statusCode, ErrorResponse{
		Error:  err.Error(),
		Status: statusCode,
	})
}

// HandleValidationMessages answers with user-facing validation messages.
func HandleValidationMessages(c *gin.Context, statusCode int, err error, messages []string) {
	c.JSON(statusCode, ErrorResponse{
		Error:    err.Error(),
		Messages: messages,
		Status:   statusCode,
	})
}

type PaginationArgs struct {
	Sort  string
	Limit int
	Skip  int
}

type Pagination struct {
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
	Count int64 `json:"count"`
}

// Paginate returns the window of items selected by args. Limit <= 0 means
// no upper bound.
func Paginate[T any](items []T, args PaginationArgs) []T {
	skip := args.Skip
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if args.Limit > 0 && skip+args.Limit < end {
		end = skip + args.Limit
	}
	return items[skip:end]
}
