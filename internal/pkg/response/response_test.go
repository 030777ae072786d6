package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMessageAndErrorResponses(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Message(c, "Logged out successfully")
	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "Logged out successfully", body["message"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	NotFound(c, "Report not found")
	require.Equal(t, 404, w.Code)
	var bodyErr map[string]any
	err = json.Unmarshal(w.Body.Bytes(), &bodyErr)
	require.NoError(t, err)
	require.Equal(t, "Report not found", bodyErr["message"])
}

func TestPayloadResponses(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, map[string]any{"id": "abc"})
	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "abc", body["id"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Created(c, map[string]any{"slug": "lost-a-sample-batch"})
	require.Equal(t, 201, w.Code)
	var created map[string]any
	err = json.Unmarshal(w.Body.Bytes(), &created)
	require.NoError(t, err)
	require.Equal(t, "lost-a-sample-batch", created["slug"])
}
