package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/schisto-api/api/mocks"
	"github.com/bitmark-inc/schisto-api/schema"
	"github.com/bitmark-inc/schisto-api/store"
	"github.com/bitmark-inc/schisto-api/utils"
)

const (
	testMetricKey = "metric-key"
	testJWTSecret = "jwt-secret"
)

func init() {
	gin.SetMode(gin.TestMode)
	viper.Set("server.apikey.metric", testMetricKey)
	viper.Set("server.version", "test")

	if err := utils.LoadI18NBundle("../i18n"); err != nil {
		panic(err)
	}
}

type testServer struct {
	*Server
	core     *mocks.MockSchistoCore
	mongo    *mocks.MockMongoStore
	chatbot  *mocks.MockChatbot
	registry *store.SessionRegistry
	router   *gin.Engine
}

func newTestServer(ctl *gomock.Controller) *testServer {
	core := mocks.NewMockSchistoCore(ctl)
	mongo := mocks.NewMockMongoStore(ctl)
	chatbot := mocks.NewMockChatbot(ctl)
	registry := store.NewSessionRegistry(time.Minute)

	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.WatchSessions(registry)

	s := &Server{
		ctx:             context.Background(),
		store:           core,
		mongoStore:      mongo,
		sessions:        registry,
		zones:           schema.KenyanHotspotZones,
		jwtSecret:       []byte(testJWTSecret),
		chatbot:         chatbot,
		freePromptLimit: 15,
		metrics:         metrics,
	}

	return &testServer{
		Server:   s,
		core:     core,
		mongo:    mongo,
		chatbot:  chatbot,
		registry: registry,
		router:   s.setupRouter(),
	}
}

func (ts *testServer) do(method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) doJSON(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return ts.do(method, path, r, nil)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var e ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &e), "wrong json unmarshal")
	return e
}

func TestHealthz(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(ctl)
	ts.core.EXPECT().Ping().Return(nil).Times(1)
	ts.mongo.EXPECT().Ping().Return(nil).Times(1)

	w := ts.doJSON("GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp["status"])
	assert.Equal(t, "test", resp["version"])
}

func TestHealthzWithBrokenDatabase(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(ctl)
	ts.core.EXPECT().Ping().Return(nil).Times(1)
	ts.mongo.EXPECT().Ping().Return(fmt.Errorf("no reachable servers")).Times(1)

	w := ts.doJSON("GET", "/healthz", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")
	assert.Equal(t, errorInternalServer, decodeError(t, w))
}

func TestInformation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(ctl)
	w := ts.doJSON("GET", "/api/information", "")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Information struct {
			Languages       []string `json:"languages"`
			Steps           []string `json:"steps"`
			FreePromptLimit int      `json:"free_prompt_limit"`
		} `json:"information"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"en", "sw", "luo"}, resp.Information.Languages)
	assert.Equal(t, []string{"intro", "geo", "behavior", "clinical", "snail", "result"}, resp.Information.Steps)
	assert.Equal(t, 15, resp.Information.FreePromptLimit)
}

func TestListZones(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(ctl)
	w := ts.doJSON("GET", "/api/zones", "")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Result []schema.HotspotZone `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Result, 6)
	assert.Equal(t, "Lake Victoria Basin (Kisumu/Homa Bay)", resp.Result[0].Name)
	assert.Equal(t, 80.0, resp.Result[0].RadiusKm)
}

func TestMetricsRequiresApiToken(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(ctl)

	w := ts.doJSON("GET", "/metrics", "")
	assert.Equal(t, http.StatusForbidden, w.Code, "wrong status code")

	w = ts.do("GET", "/metrics", nil, map[string]string{"Api-Token": "wrong"})
	assert.Equal(t, http.StatusForbidden, w.Code, "wrong status code")
}

func TestMetrics(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(ctl)
	ts.doJSON("POST", "/api/assessments", "")
	ts.doJSON("POST", "/api/assessments", "")

	w := ts.do("GET", "/metrics", nil, map[string]string{"Api-Token": testMetricKey})
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Contains(t, w.Body.String(), "schisto_assessments_created_total 2")
	assert.Contains(t, w.Body.String(), "schisto_assessment_sessions 2")
}

func TestParseGeoPosition(t *testing.T) {
	lat, lng, err := parseGeoPosition("-0.0917;34.768")
	assert.NoError(t, err)
	assert.Equal(t, -0.0917, lat)
	assert.Equal(t, 34.768, lng)

	for _, invalid := range []string{"", "1.0", "a;b", "1;2;3", "91;0", "0;181"} {
		_, _, err := parseGeoPosition(invalid)
		assert.Error(t, err, invalid)
	}
}
