package downstream

import (
	"context"
	"net/http"
	"time"

	"commerce-mesh/internal/correlation"
	"commerce-mesh/internal/util"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Result is the normalized outcome of a downstream call. Exactly one of the
// two shapes is populated: a transport failure carries Err and a synthetic
// 500 status, everything else carries the upstream status and raw body
// verbatim. No schema coercion happens at this layer.
type Result struct {
	StatusCode int
	Body       []byte
	Err        error
}

// OK reports whether the call reached the downstream and it answered 2xx.
func (r Result) OK() bool {
	return r.Err == nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Client is a thin HTTP client wrapper around the product and order
// services. Every request carries the correlation id from the context and a
// bounded timeout.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(timeout time.Duration) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   rc,
		logger: util.GetLogger(),
	}
}

// Call performs a single downstream request. Body may be nil, a struct to be
// JSON-encoded, or raw bytes forwarded as-is.
func (c *Client) Call(ctx context.Context, method, url string, body interface{}) Result {
	req := c.http.R().SetContext(ctx)

	if id := correlation.FromContext(ctx); id != "" {
		req.SetHeader(correlation.Header, id)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		correlation.Logger(ctx, c.logger).Error("Downstream call failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		util.DownstreamFailuresTotal.WithLabelValues("transport").Inc()
		return Result{StatusCode: http.StatusInternalServerError, Err: err}
	}

	if resp.IsError() {
		util.DownstreamFailuresTotal.WithLabelValues("upstream").Inc()
	}

	return Result{StatusCode: resp.StatusCode(), Body: resp.Body()}
}
