// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/constants"
	"github.com/taibuivan/bookhub/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/bookhub/internal/platform/request"
	"github.com/taibuivan/bookhub/internal/platform/respond"
	"github.com/taibuivan/bookhub/internal/platform/sec"
)

// TokenVerifier resolves a session token to its live claims.
//
// Implementations must reject tokens whose session has been closed.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the session token from the Authorization header.
//
// # Flow
//  1. No Authorization header: the request proceeds as anonymous.
//  2. Malformed header, or a token that is forged, expired or logged out: 401.
//  3. Otherwise [*sec.AuthClaims] is injected into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get(constants.HeaderAuthorization) == "" {
				next.ServeHTTP(writer, request)
				return
			}

			token, ok := requestutil.BearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctxutil.GetLogger(ctx).DebugContext(ctx, "session_authenticated", slog.String("user_id", claims.UserID))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth is the access gate for protected routes. Anonymous requests get
// LOGIN_REQUIRED, which tells the client to show its login prompt.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := sec.RequireActor(ctxutil.GetActor(request.Context())); err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request)
	})
}
