package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPage string

func (p stubPage) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(p))
	return err
}

func mountTestController(rs *RouterService) {
	ctrl := NewRESTController("TestController", "/", func(rs *RouterService, c *RESTController) {
		rs.AddGetHandler(c, "ip", func(ctx *RequestContext) *ServiceResult {
			return OKResult(ctx.ClientIP(), "ok")
		})

		rs.AddPostHandler(c, "echo", func(ctx *RequestContext) *ServiceResult {
			var payload map[string]any
			if err := ctx.ShouldBindJSON(&payload); err != nil {
				return BadRequestResult("bad")
			}
			return CreatedResult("echo", payload, "created")
		})

		rs.AddGetHandler(c, "page", func(ctx *RequestContext) *ServiceResult {
			return HTMLResult(http.StatusOK, stubPage("<p>hi</p>"))
		})

		rs.AddGetHandler(c, "nil", func(ctx *RequestContext) *ServiceResult {
			return nil
		})

		rs.AddGetHandler(c, "panic", func(ctx *RequestContext) *ServiceResult {
			panic("boom")
		})
	})

	rs.MountController(ctrl)
}

func newTestRouterService(t *testing.T, cfg Config) *RouterService {
	t.Helper()

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	rs := CreateRouterService(log.NewDiscardLogger(), &cfg)
	mountTestController(rs)
	return rs
}

func serve(rs *RouterService, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&body), w.Body.String())
	return body
}

func TestTrustedProxies_DisabledByDefault(t *testing.T) {
	rs := newTestRouterService(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	req.Header.Set("X-Forwarded-For", "1.1.1.1")

	w := serve(rs, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "10.0.0.2", decode(t, w)["data"])
}

func TestTrustedProxies_StarTrustsForwardedFor(t *testing.T) {
	rs := newTestRouterService(t, Config{TrustedProxies: "*"})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	req.Header.Set("X-Forwarded-For", "1.1.1.1")

	w := serve(rs, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "1.1.1.1", decode(t, w)["data"])
}

func TestMaxBodySize_Returns413(t *testing.T) {
	rs := newTestRouterService(t, Config{MaxBodyBytes: 10})

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(bytes.Repeat([]byte{'a'}, 50)))
	req.Header.Set("Content-Type", "application/json")

	w := serve(rs, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request payload too large", decode(t, w)["error"])
}

func TestResultShapes(t *testing.T) {
	rs := newTestRouterService(t, Config{})

	t.Run("created uses data key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":1}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(rs, req)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "created", body["message"])
		assert.Equal(t, map[string]any{"a": float64(1)}, body["echo"])
		assert.NotContains(t, body, "data")
	})

	t.Run("error has only error key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(rs, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]any{"error": "bad"}, decode(t, w))
	})

	t.Run("html page", func(t *testing.T) {
		w := serve(rs, httptest.NewRequest(http.MethodGet, "/page", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, "<p>hi</p>", w.Body.String())
	})

	t.Run("nil result is a 500", func(t *testing.T) {
		w := serve(rs, httptest.NewRequest(http.MethodGet, "/nil", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred", decode(t, w)["error"])
	})

	t.Run("panic is a 500 json", func(t *testing.T) {
		w := serve(rs, httptest.NewRequest(http.MethodGet, "/panic", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred", decode(t, w)["error"])
	})
}

func TestNoRouteAndNoMethod(t *testing.T) {
	rs := newTestRouterService(t, Config{})

	w := serve(rs, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]any{"error": "Route not found"}, decode(t, w))

	w = serve(rs, httptest.NewRequest(http.MethodDelete, "/echo", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, map[string]any{"error": "Method not allowed"}, decode(t, w))
}

func TestCorrelationIDEchoed(t *testing.T) {
	rs := newTestRouterService(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Correlation-ID", "corr-1")
	w := serve(rs, req)
	assert.Equal(t, "corr-1", w.Header().Get("X-Correlation-ID"))

	w = serve(rs, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestCORS(t *testing.T) {
	rs := newTestRouterService(t, Config{AllowedOrigins: []string{" https://example.com "}})

	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "https://example.com")
	w := serve(rs, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = serve(rs, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHSTS(t *testing.T) {
	rs := newTestRouterService(t, Config{AppEnv: "production", HSTSIncludeSubdomains: true})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := serve(rs, req)
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))

	w = serve(rs, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	off := newTestRouterService(t, Config{AppEnv: "production", HSTSEnabled: "false"})
	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Empty(t, serve(off, req).Header().Get("Strict-Transport-Security"))
}

func TestMetricsEndpoint(t *testing.T) {
	rs := newTestRouterService(t, Config{MetricsEnabled: true})

	serve(rs, httptest.NewRequest(http.MethodGet, "/ip", nil))
	w := serve(rs, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/ip",status="200"} 1`)

	disabled := newTestRouterService(t, Config{})
	assert.Equal(t, http.StatusNotFound, serve(disabled, httptest.NewRequest(http.MethodGet, "/metrics", nil)).Code)
}

func TestDuplicateHandlerPanics(t *testing.T) {
	rs := newTestRouterService(t, Config{})

	assert.Panics(t, func() {
		rs.MountController(NewRESTController("Other", "/", func(rs *RouterService, c *RESTController) {
			rs.AddGetHandler(c, "ip", func(*RequestContext) *ServiceResult { return nil })
		}))
	})
}
