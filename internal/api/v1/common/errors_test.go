package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/interchange"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Validation", &services.ValidationError{Field: "name", Message: "empty"}, http.StatusBadRequest},
		{"Missing variables", &services.MissingRequiredVariablesError{Names: []string{"a"}}, http.StatusBadRequest},
		{"Malformed import", &interchange.MalformedInterchangeError{Reason: "bad"}, http.StatusBadRequest},
		{"Not found", &services.NotFoundError{Resource: "tag", ID: "x"}, http.StatusNotFound},
		{"Conflict", fmt.Errorf("%w: taken", services.ErrConflict), http.StatusConflict},
		{"Other", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestWriteErrorMissingVariables(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/prompts/execute", nil)

	WriteError(c, &services.MissingRequiredVariablesError{Names: []string{"language", "code"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Status int                  `json:"status"`
		Data   MissingVariablesData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, []string{"language", "code"}, resp.Data.Missing)
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/prompts", nil)

	WriteError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}
