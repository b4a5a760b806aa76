// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amwozniak/entertainment-api/internal/platform/constants"
	"github.com/amwozniak/entertainment-api/internal/platform/ctxutil"
	"github.com/amwozniak/entertainment-api/internal/platform/middleware"
)

/*
TestRequestID tests correlation ID propagation.
*/
func TestRequestID(t *testing.T) {
	t.Run("echoes_client_supplied_id", func(t *testing.T) {
		var seen string
		handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
			seen = ctxutil.GetRequestID(request.Context())
		}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRequestID, "client-supplied-id")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "client-supplied-id", seen)
		assert.Equal(t, "client-supplied-id", recorder.Header().Get(constants.HeaderXRequestID))
	})

	t.Run("generates_id_when_missing", func(t *testing.T) {
		var seen string
		handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
			seen = ctxutil.GetRequestID(request.Context())
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
	})
}

/*
TestRealIP tests proxy-aware client address extraction.
*/
func TestRealIP(t *testing.T) {
	newRequest := func() *http.Request {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.7:52114"
		return request
	}

	t.Run("x_real_ip_wins", func(t *testing.T) {
		request := newRequest()
		request.Header.Set(constants.HeaderXRealIP, "203.0.113.9")
		request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.1, 10.0.0.1")

		assert.Equal(t, "203.0.113.9", middleware.RealIP(request))
	})

	t.Run("first_forwarded_hop", func(t *testing.T) {
		request := newRequest()
		request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.1, 10.0.0.1")

		assert.Equal(t, "198.51.100.1", middleware.RealIP(request))
	})

	t.Run("falls_back_to_remote_addr", func(t *testing.T) {
		assert.Equal(t, "10.0.0.7", middleware.RealIP(newRequest()))
	})
}

// devConfig satisfies middleware.AppConfig for CORS tests.
type devConfig struct{ dev bool }

func (c devConfig) IsDevelopment() bool { return c.dev }

/*
TestCORS tests origin-gated response headers and pre-flight handling.
*/
func TestCORS(t *testing.T) {
	passthrough := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	t.Run("no_origin_is_untouched", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		middleware.CORS(devConfig{dev: true})(passthrough).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("dev_allows_any_origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderOrigin, "http://localhost:3000")

		recorder := httptest.NewRecorder()
		middleware.CORS(devConfig{dev: true})(passthrough).ServeHTTP(recorder, request)

		assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("prod_rejects_foreign_origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderOrigin, "http://evil.example")

		recorder := httptest.NewRecorder()
		middleware.CORS(devConfig{dev: false})(passthrough).ServeHTTP(recorder, request)

		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight_short_circuits", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodOptions, "/", nil)
		request.Header.Set(constants.HeaderOrigin, "http://localhost:3000")

		recorder := httptest.NewRecorder()
		middleware.CORS(devConfig{dev: true})(passthrough).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}
