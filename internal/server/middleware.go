package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// withRequestID tags each request with a fresh UUID, opens a span for it and
// logs the outcome.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set(HeaderRequestID, requestID)

		if s.observer == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := s.observer.StartSpan(r.Context(), observability.SpanHTTPRequest,
			observability.String(observability.AttrHTTPMethod, r.Method),
			observability.String(observability.AttrHTTPRoute, r.URL.Path),
			observability.String(observability.AttrHTTPRequestID, requestID),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))
		elapsed := time.Since(start)

		attrs := []observability.Attribute{
			observability.String(observability.AttrHTTPMethod, r.Method),
			observability.String(observability.AttrHTTPRoute, r.URL.Path),
			observability.Int(observability.AttrHTTPStatusCode, rec.status),
			observability.Int(observability.AttrHTTPResponseBodySize, rec.size),
			observability.String(observability.AttrHTTPRequestID, requestID),
			observability.Duration(observability.AttrDuration, elapsed),
		}
		span.SetAttributes(attrs...)
		s.observer.Counter(observability.MetricHTTPRequestCount).Add(ctx, 1,
			observability.Int(observability.AttrHTTPStatusCode, rec.status),
		)

		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(observability.StatusError, http.StatusText(rec.status))
			s.observer.Warn(ctx, "request failed", attrs...)
			return
		}
		span.SetStatus(observability.StatusOK, "success")
		s.observer.Info(ctx, "request served", attrs...)
	})
}
