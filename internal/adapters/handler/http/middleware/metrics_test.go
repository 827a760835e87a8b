package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/items/:id", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	counter := httpRequests.WithLabelValues(http.MethodGet, "/items/:id", "202")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/items/1", "/items/2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter), "requests are grouped by route pattern")

	unmatched := httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(unmatched))
}
