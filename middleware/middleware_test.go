package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"startup-registration/logging"
	"startup-registration/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_LogsAndCountsByRouteTemplate(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, logging.Config{Format: "text"})
	m := metrics.New()

	router := mux.NewRouter()
	router.HandleFunc("/uploads/videos/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	h := RequestLogger(log, m, router)(router)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/videos/a.mp4", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/uploads/videos/{name}", "GET", "404")))
	assert.Contains(t, buf.String(), "path=/uploads/videos/a.mp4")
	assert.Contains(t, buf.String(), "status=404")
}

func TestRequestLogger_CountsUnmatchedRequests(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, logging.Config{Format: "text"})
	m := metrics.New()

	router := mux.NewRouter()
	router.HandleFunc("/api/startups", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodGet)
	h := RequestLogger(log, m, router)(CORS([]string{"*"})(router))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/nope", nil),
		httptest.NewRequest(http.MethodPost, "/api/startups", nil),
	} {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("unmatched", "POST", "405")))
	assert.Contains(t, buf.String(), "path=/nope")
}

func TestRecover_ReturnsInternalServerError(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, logging.Config{Format: "text"})

	router := mux.NewRouter()
	router.Use(Recover(log))
	router.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "kaboom")
}

func TestCORS_AnswersPreflight(t *testing.T) {
	h := CORS([]string{"https://app.example"})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/payment/order", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
