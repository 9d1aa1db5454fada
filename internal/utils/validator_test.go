package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" binding:"required,max=10"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Count int    `json:"count"`
}

func bind(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	return w, BindAndValidate(c, &req)
}

func decodeDetails(t *testing.T, w *httptest.ResponseRecorder) []ValidationErrorDetail {
	t.Helper()
	var resp struct {
		Data ValidationErrorData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.Errors
}

func TestBindAndValidate(t *testing.T) {
	_, ok := bind(t, `{"name":"ok","color":"#3B82F6"}`)
	assert.True(t, ok)

	w, ok := bind(t, `{"color":"blue"}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	details := decodeDetails(t, w)
	require.Len(t, details, 2)
	assert.Equal(t, "name", details[0].Field)
	assert.Equal(t, "Field 'name' is required", details[0].Message)
	assert.Equal(t, "color", details[1].Field)

	w, ok = bind(t, `{"name":"x","count":"three"}`)
	assert.False(t, ok)
	details = decodeDetails(t, w)
	require.Len(t, details, 1)
	assert.Equal(t, "count", details[0].Field)

	w, ok = bind(t, `{not json`)
	assert.False(t, ok)
	assert.Equal(t, "body", decodeDetails(t, w)[0].Field)
}
