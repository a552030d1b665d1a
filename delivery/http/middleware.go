package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"procurement-service/domain/model"
	"procurement-service/pkg/api"
	"procurement-service/pkg/jwt"
	"procurement-service/pkg/logger"

	"github.com/go-chi/chi/v5/middleware"
)

type actorKey struct{}

// ContextWithActor stores the resolved caller on ctx
func ContextWithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller stored by JWTMiddleware
func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(model.Actor)
	return actor, ok
}

// LoggingMiddleware adds detailed request logging
// The middleware logs method, path, status, duration and client information
// of each HTTP request once it completes
func LoggingMiddleware(appLogger logger.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			appLogger.InfoContext(r.Context(), "HTTP request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// JWTMiddleware validates the Bearer token and resolves the caller identity
// Returns a 401 status code for missing or invalid tokens and for tokens
// carrying an unknown role
func JWTMiddleware(jwtClient jwt.JWTClient, appLogger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				appLogger.WarnContext(ctx, "Missing Authorization header")
				apiClient.Unauthorized(ctx, w, "Missing Authorization header")
				return
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				appLogger.WarnContext(ctx, "Invalid Authorization header format")
				apiClient.Unauthorized(ctx, w, "Invalid Authorization header format")
				return
			}

			claims, err := jwtClient.ValidateAccessToken(tokenString)
			if err != nil {
				appLogger.WarnContext(ctx, "Invalid access token", "error", err)
				apiClient.Unauthorized(ctx, w, "Invalid access token")
				return
			}

			actor := model.Actor{ID: claims.UserID, Role: model.Role(claims.Role)}
			if actor.ID == 0 || !actor.Role.Valid() {
				appLogger.WarnContext(ctx, "Access token carries no usable identity", "user_id", claims.UserID, "role", claims.Role)
				apiClient.Unauthorized(ctx, w, "Invalid access token")
				return
			}

			ctx = ContextWithActor(ctx, actor)
			ctx = logger.ContextWithAttrs(ctx, "user_id", actor.ID, "role", string(actor.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
