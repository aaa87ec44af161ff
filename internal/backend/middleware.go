package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const HeaderCorrelationID = "X-Correlation-Id"

type ctxKey int

const (
	ownerKey ctxKey = iota
	loggerKey
)

// OwnerResolver maps a bearer token to the id of the account that owns carts,
// favorites and orders.
type OwnerResolver func(ctx context.Context, token string) (string, error)

// TokenAsOwner treats the token itself as the owner id. Development only.
func TokenAsOwner(_ context.Context, token string) (string, error) {
	return token, nil
}

func ownerFrom(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}

func loggerFrom(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(loggerKey).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}

// requestLogger tags every request with a correlation id, echoes it back and
// logs one line per request once the response is written.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationID := r.Header.Get(HeaderCorrelationID)
			if correlationID == "" {
				correlationID = uuid.NewString()
			}
			w.Header().Set(HeaderCorrelationID, correlationID)

			reqLog := log.WithFields(logrus.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
			})

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			ctx := context.WithValue(r.Context(), loggerKey, reqLog)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLog.WithFields(logrus.Fields{
				"status":   ww.Status(),
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start),
			}).Info("request served")
		})
	}
}

// bearerAuth resolves the owner from the Authorization header and rejects
// requests without one.
func bearerAuth(resolve OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				handleError(w, r, errUnauthenticated, "")
				return
			}

			owner, err := resolve(r.Context(), token)
			if err != nil || owner == "" {
				handleError(w, r, errUnauthenticated, "")
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
