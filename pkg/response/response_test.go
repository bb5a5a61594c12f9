package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")
	response.Success(c, 0, map[string]int{"n": 1}, "ok", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "rid-1", body["request_id"])
	assert.Equal(t, map[string]any{"n": float64(1)}, body["data"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	response.Abort(c, http.StatusForbidden, "forbidden", map[string]string{"resource": "users"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, c.IsAborted())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "forbidden", body["message"])
}
