package httpx

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	HeaderSharerID  = "X-Sharer-User-Id"
	HeaderRequestID = "X-Request-Id"

	ctxRequestIDKey = "request_id"
)

// SharerID reads the X-Sharer-User-Id header asserting caller identity.
// The header carries a bare numeric user id, there is no token to verify.
func SharerID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(HeaderSharerID)
	if raw == "" {
		return 0, ErrInvalid("X-Sharer-User-Id header is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalid("X-Sharer-User-Id must be a positive integer")
	}
	return id, nil
}

// RequestID assigns a ULID to each request and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(ctxRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger logs one line per request with status and latency.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", c.GetString(ctxRequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// ParsePage reads from/size query params. "from" is a zero-based page
// index, not a row offset.
func ParsePage(c *gin.Context, defaultFrom, defaultSize int) (from, size int, err error) {
	from, err = parseIntDefault(c.Query("from"), defaultFrom)
	if err != nil || from < 0 {
		return 0, 0, ErrInvalid("from must be a non-negative integer")
	}
	size, err = parseIntDefault(c.Query("size"), defaultSize)
	if err != nil || size <= 0 {
		return 0, 0, ErrInvalid("size must be a positive integer")
	}
	return from, size, nil
}

func parseIntDefault(s string, d int) (int, error) {
	if s == "" {
		return d, nil
	}
	return strconv.Atoi(s)
}
