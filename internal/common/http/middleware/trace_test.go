package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	commonmw "surveysvc/internal/common/http/middleware"
	"surveysvc/internal/testutil"
	"surveysvc/pkg/utils/contextkey"

	"github.com/gin-gonic/gin"
)

func newTraceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(commonmw.TraceContextMiddleware())
	router.GET("/trace", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"trace_id":       c.GetString("trace_id"),
			"request_id":     c.GetString("request_id"),
			"ctx_trace_id":   ctx.Value(contextkey.TraceID),
			"ctx_request_id": ctx.Value(contextkey.RequestID),
		})
	})
	return router
}

func TestTraceContextMiddlewareGeneratesIDs(t *testing.T) {
	router := newTraceRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trace", nil))
	testutil.AssertEqual(t, rec.Code, http.StatusOK)

	var body map[string]string
	testutil.MustUnmarshalJSON(t, rec.Body.Bytes(), &body)
	testutil.AssertTrue(t, body["trace_id"] != "", "trace id must be generated")
	testutil.AssertTrue(t, body["request_id"] != "", "request id must be generated")
	testutil.AssertEqual(t, body["ctx_trace_id"], body["trace_id"])
	testutil.AssertEqual(t, body["ctx_request_id"], body["request_id"])
	testutil.AssertEqual(t, rec.Header().Get("X-Trace-Id"), body["trace_id"])
	testutil.AssertEqual(t, rec.Header().Get("X-Request-Id"), body["request_id"])
}

func TestTraceContextMiddlewarePreservesIDs(t *testing.T) {
	router := newTraceRouter()

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set("X-Trace-Id", "trace-123")
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]string
	testutil.MustUnmarshalJSON(t, rec.Body.Bytes(), &body)
	testutil.AssertEqual(t, body["trace_id"], "trace-123")
	testutil.AssertEqual(t, body["request_id"], "req-123")
	testutil.AssertEqual(t, rec.Header().Get("X-Trace-Id"), "trace-123")
}
