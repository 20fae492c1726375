package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"florist-api-io/api/pkg/bouquet"
	"florist-api-io/api/pkg/catalog"
	"florist-api-io/api/pkg/services"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &bouquet.ValidationError{Messages: []string{bouquet.MsgNoFlowers}}, http.StatusUnprocessableEntity},
		{"missing product", catalog.ErrProductNotFound, http.StatusNotFound},
		{"unknown option", errors.Wrap(bouquet.ErrUnknownOption, "wrapper 9"), http.StatusNotFound},
		{"invalid step", errors.Wrapf(bouquet.ErrInvalidStep, "step %d", 7), http.StatusBadRequest},
		{"upstream", fmt.Errorf("%w: %w", services.ErrCatalogUnavailable, errors.New("dial tcp")), http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleServiceError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var body util.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Status)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandleServiceErrorListsMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", nil)

	HandleServiceError(c, &bouquet.ValidationError{Messages: []string{bouquet.MsgNoFlowers, bouquet.MsgNoWrapper}})

	var body util.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{bouquet.MsgNoFlowers, bouquet.MsgNoWrapper}, body.Messages)
}
