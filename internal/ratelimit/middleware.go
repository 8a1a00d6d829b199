package ratelimit

import (
	"net"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// MetadataKey marks an operation as rate limited when its Metadata holds
// true under this key.
const MetadataKey = "rateLimited"

// Middleware applies limiter to marked operations, keyed by operation and
// client IP. When the limiter fails the request is let through.
func Middleware(api huma.API, limiter Limiter, log logrus.FieldLogger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if limiter == nil || op == nil || op.Metadata[MetadataKey] != true {
			next(ctx)
			return
		}

		key := op.OperationID + ":ip:" + clientIP(ctx)
		decision, err := limiter.Allow(ctx.Context(), key)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("RateLimit.Allow.failOpen")
			next(ctx)
			return
		}

		ctx.SetHeader("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		if !decision.Allowed {
			ctx.SetHeader("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "too many requests, try again in "+decision.RetryAfter.String())
			return
		}
		ctx.SetHeader("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		next(ctx)
	}
}

// clientIP reads the connection address. Proxy headers are honoured only
// through a router middleware that rewrites RemoteAddr.
func clientIP(ctx huma.Context) string {
	host, _, err := net.SplitHostPort(ctx.RemoteAddr())
	if err != nil {
		return ctx.RemoteAddr()
	}
	return host
}
