package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	HeaderUserID    = "Ax-User-Id"

	// How long a request may hold the in-progress lock.
	DefaultLockTTL = 60 * time.Second
	// Allowed client/server clock skew for Ax-Request-At.
	DefaultMaxClockSkew = 10 * time.Minute

	storeTimeout = 2 * time.Second
)

type IdempotencyConfig struct {
	Redis *redis.Client
	// TTL of a stored final response.
	TTL          time.Duration
	LockTTL      time.Duration
	MaxClockSkew time.Duration
	Logger       logrus.FieldLogger
}

type respRecorder struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *respRecorder) WriteHeader(statusCode int) {
	r.code = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

// Idempotency deduplicates mutating requests keyed on method, route, user and
// Ax-Request-Id. A retry with the same body replays the stored response; a
// different body, or a retry while the first attempt is still running, gets
// 409. Only 2xx/4xx responses are stored; 5xx releases the key.
func Idempotency(cfg IdempotencyConfig) echo.MiddlewareFunc {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultLockTTL
	}
	if cfg.MaxClockSkew <= 0 {
		cfg.MaxClockSkew = DefaultMaxClockSkew
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	store := redisStore{rdb: cfg.Redis}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if reqID == "" {
				return badRequest(c, "missing "+HeaderRequestID)
			}
			if !validReqID(reqID) {
				return badRequest(c, "invalid "+HeaderRequestID+" format")
			}
			reqAt, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return badRequest(c, err.Error())
			}
			now := nowUTC()
			if reqAt.Before(now.Add(-cfg.MaxClockSkew)) || reqAt.After(now.Add(cfg.MaxClockSkew)) {
				return badRequest(c, HeaderRequestAt+" too skewed")
			}
			userID := strings.TrimSpace(req.Header.Get(HeaderUserID))
			if userID == "" {
				return badRequest(c, "missing "+HeaderUserID)
			}
			if !reHex32.MatchString(userID) {
				return badRequest(c, "invalid "+HeaderUserID)
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			bhash := bodyHash(body)

			// concrete path: the same request id on two loans is two operations
			key := buildKey(req.Method, req.URL.Path, userID, reqID)
			log := cfg.Logger.WithField("idempotency_key", key)

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			ok, err := store.reserve(ctx, key, entry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   now,
			}, cfg.LockTTL)
			if err != nil {
				log.WithError(err).Error("idempotency store unavailable")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !ok {
				cur, err := store.load(ctx, key)
				if err != nil {
					log.WithError(err).Warn("load idempotency entry")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{"error": HeaderRequestID + " reused with different body"})
				}
				if cur.replayable() {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &respRecorder{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be done; persist regardless
			saveCtx, saveCancel := context.WithTimeout(context.Background(), storeTimeout)
			defer saveCancel()
			if rec.code >= http.StatusInternalServerError {
				if err := store.release(saveCtx, key); err != nil {
					log.WithError(err).Warn("release idempotency lock")
				}
				return nil
			}
			final := entry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			if err := store.save(saveCtx, key, final, cfg.TTL); err != nil {
				log.WithError(err).Warn("save idempotency entry")
			}
			return nil
		}
	}
}
