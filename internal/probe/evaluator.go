// Package probe evaluates configured endpoint checks against live servers
// and produces one aggregated verdict per run.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/endpoint"
)

// ClientFactory produces a ready-to-use HTTP client for one evaluation.
// TLS, proxies, and connection pooling are entirely the factory's business.
type ClientFactory func() *http.Client

// DefaultClientFactory returns a plain client. The per-request deadline is
// carried by the request context, so no client-level timeout is set here.
func DefaultClientFactory() *http.Client {
	return &http.Client{}
}

// Evaluator runs the checks of a CheckSet strictly in declaration order and
// short-circuits on the first failure. It is stateless; one Evaluator may
// serve concurrent evaluations.
type Evaluator struct {
	logger  *zap.Logger
	clients ClientFactory
}

func NewEvaluator(logger *zap.Logger, clients ClientFactory) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clients == nil {
		clients = DefaultClientFactory
	}
	return &Evaluator{logger: logger, clients: clients}
}

// Evaluate checks every target of set, one at a time, in declaration order.
// The first target that fails (transport error, status outside range,
// content mismatch, validator rejection) determines the verdict; later
// targets are never attempted. ctx is the caller's own deadline/abort
// signal; it is combined with each target's resolved timeout so that
// whichever fires first aborts the in-flight request.
func (e *Evaluator) Evaluate(ctx context.Context, set *endpoint.CheckSet) Verdict {
	client := e.clients()

	for i := 0; i < set.Len(); i++ {
		select {
		case <-ctx.Done():
			return Unhealthy("execution is cancelled", ctx.Err())
		default:
		}

		if v, ok := e.checkTarget(ctx, client, i, set.Target(i)); !ok {
			return v
		}
	}

	return Verdict{Healthy: true}
}

func (e *Evaluator) checkTarget(ctx context.Context, client *http.Client, i int, t endpoint.Resolved) (Verdict, bool) {
	rctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(rctx, t.Method, t.URL, nil)
	if err != nil {
		return Unhealthy(fmt.Sprintf("endpoint #%d (%s): invalid request: %v", i, t.URL, err), err), false
	}
	for _, h := range t.Headers {
		req.Header.Add(h.Name, h.Value)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return Unhealthy(fmt.Sprintf("endpoint #%d (%s): request failed: %v", i, t.URL, err), err), false
	}
	defer resp.Body.Close()

	if !t.Status.Contains(resp.StatusCode) {
		return Unhealthy(fmt.Sprintf(
			"endpoint #%d (%s): expected status code in range %s, got %d",
			i, t.URL, t.Status, resp.StatusCode), nil), false
	}

	if len(t.Content) > 0 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Unhealthy(fmt.Sprintf("endpoint #%d (%s): reading response body: %v", i, t.URL, err), err), false
		}
		for _, c := range t.Content {
			if ok, reason := c.Check(body); !ok {
				return Unhealthy(fmt.Sprintf(
					"endpoint #%d (%s): %s, got %q",
					i, t.URL, reason, body), nil), false
			}
		}
	}

	e.logger.Debug("endpoint_ok",
		zap.Int("index", i),
		zap.String("url", t.URL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Verdict{}, true
}
