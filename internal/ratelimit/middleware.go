package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	authhttp "github.com/gideon/notes/internal/auth/http"
	"github.com/gideon/notes/internal/httputil"
)

// Rate limit headers. Remaining is set on every admitted request so clients
// can pace themselves; the retry headers only on rejections.
const (
	headerRemaining  = "X-Rate-Limit-Remaining"
	headerRetryAfter = "X-Rate-Limit-Retry-After-Seconds"
)

// SubjectExtractor reads the subject out of a bearer token without touching
// any identity store. A bogus token is fine here: the extractor fails, the
// request falls back to an address-based key, and authentication rejects it
// later anyway.
type SubjectExtractor interface {
	ExtractSubject(tokenString string) (string, error)
}

// RejectionRecorder receives one event per rejected request, labeled by
// category. May be nil when metrics are disabled.
type RejectionRecorder interface {
	RateLimitRejected(ctx context.Context, category string)
}

type routeKey struct {
	method  string
	pattern string
}

// routeCategories classifies requests by matched route pattern, not by raw
// URL, so a note titled "signup" can never land in the AUTH bucket. Restore
// is listed explicitly: it shares its verb with creation but is billed as
// plain API traffic.
var routeCategories = map[routeKey]Category{
	{http.MethodPost, "/api/auth/signup"}:       CategoryAuth,
	{http.MethodPost, "/api/auth/login"}:        CategoryAuth,
	{http.MethodPost, "/api/auth/refresh"}:      CategoryAuth,
	{http.MethodPost, "/api/notes"}:             CategoryNotesCreate,
	{http.MethodPut, "/api/notes/:id"}:          CategoryNotesUpdate,
	{http.MethodPost, "/api/notes/:id/restore"}: CategoryAPI,
}

func categorize(c *gin.Context) Category {
	if category, ok := routeCategories[routeKey{c.Request.Method, c.FullPath()}]; ok {
		return category
	}
	return CategoryAPI
}

// clientKey identifies the caller for bucket lookup. Authenticated clients
// are keyed by token subject so limits follow the account across addresses;
// anonymous clients fall back to the forwarded address, then the peer
// address.
func clientKey(c *gin.Context, subjects SubjectExtractor) string {
	if token, ok := authhttp.BearerToken(c); ok {
		if subject, err := subjects.ExtractSubject(token); err == nil && subject != "" {
			return subject
		}
	}

	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwarded)
	}

	return c.ClientIP()
}

// AdmissionMiddleware enforces per-client, per-category rate limits. It runs
// before authentication: a rejected request costs token parsing at most and
// never reaches the database.
func AdmissionMiddleware(
	registry *Registry,
	subjects SubjectExtractor,
	events RejectionRecorder,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := categorize(c)
		client := clientKey(c, subjects)

		result := registry.Consume(client, category)
		if result.Admitted {
			c.Header(headerRemaining, strconv.FormatInt(result.Remaining, 10))
			c.Next()
			return
		}

		seconds := result.RetryAfterSeconds()
		c.Header(headerRetryAfter, strconv.FormatInt(seconds, 10))
		c.Header("Retry-After", strconv.FormatInt(seconds, 10))

		if events != nil {
			events.RateLimitRejected(c.Request.Context(), string(category))
		}

		if logger != nil {
			logger.Warn("request rate limited",
				slog.String("client", client),
				slog.String("category", string(category)),
				slog.Int64("retry_after_seconds", seconds),
			)
		}

		c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
			Error:   "rate_limit_exceeded",
			Message: fmt.Sprintf("too many requests, retry in %d seconds", seconds),
		})
	}
}
