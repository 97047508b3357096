package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kf-platform/crm-proxy/internal/metrics"
)

// UpstreamError is a non-2xx response from an upstream service. It keeps the
// upstream status and raw body so the API layer can propagate both to the
// caller instead of collapsing everything into a 500.
type UpstreamError struct {
	Upstream string
	Status   int
	Body     []byte
}

func (e *UpstreamError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s returned %d", e.Upstream, e.Status)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Upstream, e.Status, e.Body)
}

// Details decodes the upstream body as JSON when possible. A non-JSON body
// falls back to its raw string so diagnostics are never silently dropped.
func (e *UpstreamError) Details() any {
	if len(e.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(e.Body, &v); err != nil {
		return string(e.Body)
	}
	return v
}

// Executor performs single-attempt HTTP execution with JSON decoding.
// There is deliberately no retry loop: transient upstream failures are
// surfaced to the caller, who owns the decision to try again.
type Executor struct {
	logger      *zap.Logger
	http        *http.Client
	upstreamTag string
}

// New creates an Executor. upstreamTag names the external service in logs,
// metrics and error messages ("dynamics", "identity").
func New(logger *zap.Logger, httpClient *http.Client, upstreamTag string) *Executor {
	return &Executor{
		logger:      logger,
		http:        httpClient,
		upstreamTag: upstreamTag,
	}
}

// Do executes req once and returns the raw response body.
// Transport failures and non-2xx statuses are distinct error shapes:
// the former wrap the net error, the latter are *UpstreamError.
func (e *Executor) Do(ctx context.Context, req *http.Request) ([]byte, error) {
	start := time.Now()

	resp, err := e.http.Do(req.WithContext(ctx))
	if err != nil {
		metrics.IncUpstreamRequest(e.upstreamTag, req.Method, "transport_error")
		e.logger.Warn(e.upstreamTag+".http_failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%s unreachable: %w", e.upstreamTag, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	elapsed := time.Since(start)

	metrics.IncUpstreamRequest(e.upstreamTag, req.Method, strconv.Itoa(resp.StatusCode))
	metrics.ObserveUpstreamDuration(e.upstreamTag, req.Method, elapsed)

	if resp.StatusCode >= 400 {
		e.logger.Warn(e.upstreamTag+".upstream_error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.String()),
			zap.Duration("latency", elapsed))
		return nil, &UpstreamError{
			Upstream: e.upstreamTag,
			Status:   resp.StatusCode,
			Body:     body,
		}
	}

	e.logger.Debug(e.upstreamTag+".http_success",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return body, nil
}

// DoJSON executes req once and JSON-decodes the response into out.
func (e *Executor) DoJSON(ctx context.Context, req *http.Request, out any) error {
	body, err := e.Do(ctx, req)
	if err != nil {
		return err
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			e.logger.Warn(e.upstreamTag+".decode_failed",
				zap.Error(err),
				zap.String("url", req.URL.String()),
				zap.String("body", string(body)))
			return fmt.Errorf("decode failed: %w", err)
		}
	}
	return nil
}
