package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func fixNow(t *testing.T) {
	old := now
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 34, 56, 789000000, time.FixedZone("CST", 8*3600)) }
	t.Cleanup(func() { now = old })
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	fixNow(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, gin.H{"id": "x"})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "2024-05-01T04:34:56.789Z", resp.Timestamp)
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Conflict(c, "exists")

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeConflict, resp.Error.Code)
	assert.Equal(t, "exists", resp.Error.Message)
	assert.NotContains(t, w.Body.String(), `"data"`)
}

type bindTarget struct {
	Name  string `json:"name" binding:"required"`
	Count int    `json:"count"`
}

func bind(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	err := c.ShouldBindJSON(&target)
	require.Error(t, err)
	BindError(c, err)
	return w
}

func TestBindErrorVariants(t *testing.T) {
	for name, body := range map[string]string{
		"malformed":  `{"name":`,
		"empty":      ``,
		"wrong type": `{"name":"a","count":"x"}`,
		"missing":    `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := bind(t, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, CodeValidation, resp.Error.Code)
		})
	}

	w := bind(t, `{}`)
	assert.Contains(t, w.Body.String(), `"rule":"required"`)
}

func TestHandleErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleError(c, errors.New("dial tcp: secret host"), "查询失败")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret host")
	assert.Equal(t, CodeInternal, decode(t, w).Error.Code)
	assert.Len(t, c.Errors, 1)
}
