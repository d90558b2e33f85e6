package middleware

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/constants"
	"github.com/xe-labs/ontoview/pkg/httpapi"
)

// LoggerOptions controls the access log written by WithLogger.
type LoggerOptions struct {
	// LogRequestBody records the head of textual request bodies.
	// The body is logged as raw text and never validated.
	LogRequestBody bool
	MaxBodyLength  int

	Repanic bool
}

func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		LogRequestBody: true,
		MaxBodyLength:  512,
	}
}

// statusRecorder remembers the status code and the number of bytes sent.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status != 0 {
		return
	}
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

func (w *statusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusRecorder) headerSent() bool {
	return w.status != 0
}

func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if ip := r.Header.Get(conf.RealIPHeader); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if id := r.Header.Get(conf.RequestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

var tracer = otel.Tracer("ontoview-middleware")

// TracedMiddleware opens a child span named after the middleware that follows it.
func TracedMiddleware(name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "middleware."+name,
				trace.WithAttributes(attribute.String("middleware.name", name)),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func textualBody(contentType string) bool {
	contentType = strings.ToLower(contentType)
	for _, kind := range []string{"json", "xml", "x-www-form-urlencoded", "text/"} {
		if strings.Contains(contentType, kind) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// peekBody reads at most limit bytes of the request body and puts them back
// in front of the unread remainder, so handlers still see the whole body.
func peekBody(r *http.Request, limit int) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}
	if limit <= 0 {
		limit = 512
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, int64(limit)+1))
	r.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(head), r.Body),
		Closer: r.Body,
	}
	if err != nil {
		return "", errors.Wrap(err, "read request body")
	}
	return truncate(string(head), limit), nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

func startRequestSpan(r *http.Request, requestID, ip string) (context.Context, trace.Span) {
	propagator := propagation.TraceContext{}
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	return tracer.Start(ctx, "http.request",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", r.URL.Path),
			attribute.String("http.request_id", requestID),
			attribute.String("net.peer.ip", ip),
		),
	)
}

func writePanicResponse(w *statusRecorder, r *http.Request, requestID string) {
	if w.headerSent() {
		return
	}
	if composables.WantsJSON(r) {
		_ = httpapi.WriteError(w, http.StatusInternalServerError,
			"INTERNAL_SERVER_ERROR", "internal server error", map[string]string{
				"request_id": requestID,
				"path":       r.URL.Path,
			})
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// WithLogger writes one access log line per request, opens the root span and
// stores the request-scoped logger in the context. Panics in downstream
// handlers are logged and answered with 500.
func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	conf := configuration.Use()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := getRequestID(r, conf)
			ip := getRealIP(r, conf)

			entry := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			if opts.LogRequestBody && r.Method != http.MethodGet && textualBody(r.Header.Get("Content-Type")) {
				body, err := peekBody(r, opts.MaxBodyLength)
				if err != nil {
					entry.WithError(err).Warn("request body not logged")
				} else if body != "" {
					entry = entry.WithField("request-body", body)
				}
			}

			ctx, span := startRequestSpan(r, requestID, ip)
			defer span.End()
			if sc := span.SpanContext(); sc.HasTraceID() {
				w.Header().Set("X-Trace-Id", sc.TraceID().String())
				entry = entry.WithField("trace-id", sc.TraceID().String())
			}
			w.Header().Set("X-Request-Id", requestID)

			ctx = context.WithValue(ctx, constants.LoggerKey, entry)
			ctx = context.WithValue(ctx, constants.RequestStart, start)
			rec := &statusRecorder{ResponseWriter: w}

			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				entry.WithFields(logrus.Fields{
					"panic":    recovered,
					"stack":    string(debug.Stack()),
					"ip":       ip,
					"duration": time.Since(start),
				}).Error("panic recovered in request handler")
				writePanicResponse(rec, r, requestID)
				if opts.Repanic {
					panic(recovered)
				}
			}()

			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.Status()
			duration := time.Since(start)
			span.SetAttributes(
				attribute.Int("http.status_code", status),
				attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
			)
			level := logrus.InfoLevel
			if status >= http.StatusInternalServerError {
				level = logrus.ErrorLevel
			}
			entry.WithFields(logrus.Fields{
				"status":     status,
				"bytes":      rec.written,
				"duration":   duration,
				"ip":         ip,
				"user-agent": r.UserAgent(),
			}).Log(level, "request completed")
		})
	}
}
