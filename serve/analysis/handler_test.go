package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LifeKLine/cmn"
	"LifeKLine/cmn/destiny"
)

func newTestRouter(t *testing.T, svc Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(svc)
	r := gin.New()
	r.POST("/api/analyze", h.HandleAnalyze)
	r.GET("/api/health", h.HandleHealth)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleAnalyze(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{})
	r := newTestRouter(t, svc)

	body := `{"name":"张三","gender":"Male","birthYear":"1990","yearPillar":"庚午","monthPillar":"辛巳",
		"dayPillar":"庚辰","hourPillar":"癸未","startAge":"8","firstDaYun":"壬午","apiKey":"random"}`
	w := doRequest(r, http.MethodPost, "/api/analyze", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result destiny.LifeDestinyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NoError(t, result.Validate())
	assert.Equal(t, 8, result.ChartData[0].Age)
	assert.Equal(t, "壬午", destiny.StringValue(result.ChartData[0].SuperLuck))

	svc.Wait()
}

func TestHandleAnalyzeErrors(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{})
	r := newTestRouter(t, svc)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"malformed json", `{"gender":`, http.StatusBadRequest},
		{"missing pillar", `{"gender":"Male","yearPillar":"庚午","firstSuperLuck":"壬午"}`, http.StatusBadRequest},
		{"bad gender", `{"gender":"X","yearPillar":"庚午","monthPillar":"辛巳","dayPillar":"庚辰","hourPillar":"癸未","firstSuperLuck":"壬午"}`, http.StatusBadRequest},
		{"bad start age", `{"gender":"Male","startAge":"八","yearPillar":"庚午","monthPillar":"辛巳","dayPillar":"庚辰","hourPillar":"癸未","firstSuperLuck":"壬午"}`, http.StatusBadRequest},
		{"no key", `{"gender":"Male","yearPillar":"庚午","monthPillar":"辛巳","dayPillar":"庚辰","hourPillar":"癸未","firstSuperLuck":"壬午"}`, http.StatusPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/analyze", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)

			var reply cmn.ErrorReply
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
			assert.NotEmpty(t, reply.Detail)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	r := newTestRouter(t, NewService(newTestDB(t), nil, &fakeLLM{}))

	w := doRequest(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var reply cmn.HealthReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "ok", reply.Status)
	assert.Equal(t, cmn.Version, reply.Version)
}
