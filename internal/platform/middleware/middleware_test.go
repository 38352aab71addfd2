// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/ctxutil"
	"github.com/taibuivan/bookhub/internal/platform/middleware"
	"github.com/taibuivan/bookhub/internal/platform/respond"
	"github.com/taibuivan/bookhub/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(_ context.Context, token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("revoked")
	}
	return verifier.claims, nil
}

// echoActor writes the actor id seen by the downstream handler.
var echoActor = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	actor := ctxutil.GetActor(request.Context())
	if actor == nil {
		respond.OK(writer, "anonymous")
		return
	}
	respond.OK(writer, actor.ID)
})

func decodeCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Code
}

/*
TestAuthenticate_And_RequireAuth walks the access gate through anonymous,
rejected and accepted sessions.
*/
func TestAuthenticate_And_RequireAuth(t *testing.T) {
	verifier := stubVerifier{claims: &sec.AuthClaims{SessionID: "s1", UserID: "1", UserName: "Kim"}}

	open := middleware.Authenticate(verifier)(echoActor)
	gated := middleware.Authenticate(verifier)(middleware.RequireAuth(echoActor))

	tests := []struct {
		name       string
		handler    http.Handler
		header     string
		wantStatus int
		wantCode   string
	}{
		{"anonymous_open_route", open, "", http.StatusOK, ""},
		{"anonymous_gated_route", gated, "", http.StatusUnauthorized, apperr.CodeLoginRequired},
		{"malformed_header", gated, "Token good", http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"revoked_session", gated, "Bearer stale", http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"valid_session", gated, "Bearer good", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/discussions", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			tt.handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeCode(t, recorder))
			}
		})
	}
}

/*
TestRateLimiter_RejectsOverBurst verifies the per-IP token bucket and that the
eviction goroutine exits on cancellation.
*/
func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	limiter := middleware.NewRateLimiter(ctx, 1, 2)
	handler := limiter.Middleware(echoActor)

	statuses := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/books", nil)
		request.RemoteAddr = "203.0.113.7:5555"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		statuses = append(statuses, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	cancel()
	select {
	case <-limiter.Done():
	case <-time.After(time.Second):
		t.Fatal("rate limiter cleanup goroutine did not stop")
	}
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, apperr.CodeInternal, decodeCode(t, recorder))
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", middleware.RealIP(request))
}

func TestRequestID_Propagates(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, ctxutil.GetRequestID(request.Context()))
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "req-42")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "req-42", recorder.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"data":"req-42"}`, recorder.Body.String())
}
