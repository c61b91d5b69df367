package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	Success(ctx, "it worked", gin.H{"value": 1})

	assert.Equal(t, http.StatusOK, w.Code)

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, true, env["success"])
	assert.Equal(t, "it worked", env["message"])
	assert.NotNil(t, env["data"])
	_, hasStatus := env["statusCode"]
	assert.False(t, hasStatus, "success responses carry no statusCode")
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	Error(ctx, http.StatusNotFound, "post not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "post not found", env["message"])
	assert.Equal(t, float64(http.StatusNotFound), env["statusCode"])
	_, hasData := env["data"]
	assert.False(t, hasData, "error responses carry no data")
}
