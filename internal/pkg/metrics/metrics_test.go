package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	r := gin.New()
	r.Use(collector.Middleware())
	r.GET("/api/reports", func(c *gin.Context) {
		c.JSON(200, gin.H{})
	})
	r.GET("/metrics", Handler(reg))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports", nil))
		require.Equal(t, 200, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `postmortem_http_requests_total{method="GET",route="/api/reports",status="200"} 3`)
}

func TestRecordReportView(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	collector.RecordReportView()
	collector.RecordReportView()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range mfs {
		if strings.HasPrefix(mf.GetName(), "postmortem_report_views_total") {
			found = true
			require.Equal(t, float64(2), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	require.True(t, found)
}
