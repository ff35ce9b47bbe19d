// Package webhook talks to the remote conversational-AI and lead-submission services.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Gateway provides access to the remote QA assistant and lead endpoint.
type Gateway interface {
	// SendQAMessage posts a QA request and decodes the reply.
	// Returns ErrNotConfigured without any network call when no URL is set.
	SendQAMessage(ctx context.Context, req QARequest) (*QAReply, error)

	// SendToBusinessQABot is SendQAMessage with the local fallback applied.
	// It always returns a reply with non-empty Text.
	SendToBusinessQABot(ctx context.Context, req QARequest) *QAReply

	// SubmitProjectData posts a completed discovery to the lead endpoint.
	SubmitProjectData(ctx context.Context, sub ProjectSubmission) (*SubmitResult, error)

	// Configured reports whether a URL is set for the endpoint.
	Configured(e Endpoint) bool
}

// httpGateway implements Gateway over plain JSON HTTP POSTs.
type httpGateway struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewGateway creates a Gateway from cfg.
func NewGateway(cfg Config, observer Observer) Gateway {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpGateway{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (g *httpGateway) Configured(e Endpoint) bool {
	return g.cfg.Configured(e)
}

func (g *httpGateway) SendQAMessage(ctx context.Context, req QARequest) (*QAReply, error) {
	body, err := g.post(ctx, EndpointQA, req)
	if err != nil {
		return nil, err
	}
	reply, err := decodeQAReply(body)
	if err != nil {
		return nil, err
	}
	reply.Source = SourceWebhook
	return reply, nil
}

func (g *httpGateway) SendToBusinessQABot(ctx context.Context, req QARequest) *QAReply {
	reply, err := g.SendQAMessage(ctx, req)
	if err == nil && reply != nil && reply.Text != "" {
		return reply
	}
	reason := "empty reply"
	if err != nil {
		reason = err.Error()
	}
	g.observer.OnFallback(FallbackEvent{Endpoint: EndpointQA, Reason: reason})
	return FallbackQAReply(req.UserMessage)
}

func (g *httpGateway) SubmitProjectData(ctx context.Context, sub ProjectSubmission) (*SubmitResult, error) {
	body, err := g.post(ctx, EndpointProject, sub)
	if err != nil {
		return nil, err
	}
	result, err := decodeSubmitResult(body)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, fmt.Errorf("%w: %s", ErrSubmissionRejected, result.Message)
	}
	return result, nil
}

// statusError is returned for non-2xx answers.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("webhook returned status %d: %s", e.code, e.body)
}

// retryable reports whether another attempt could succeed. Client errors are final.
func (e *statusError) retryable() bool {
	return e.code >= 500 || e.code == http.StatusTooManyRequests
}

func (g *httpGateway) post(ctx context.Context, endpoint Endpoint, payload any) ([]byte, error) {
	if !g.cfg.Configured(endpoint) {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	timeoutMs := g.cfg.EndpointTimeout(endpoint)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var lastErr error
	var lastStatus int
	attempts := 0
	maxAttempts := 1 + g.cfg.MaxRetries

	for attempts < maxAttempts {
		attempts++
		body, status, err := g.doRequest(ctx, g.cfg.URL(endpoint), data)
		lastStatus = status
		if err == nil {
			g.observer.OnCallComplete(CallEvent{
				Endpoint:   endpoint,
				LatencyMs:  time.Since(start).Milliseconds(),
				Attempts:   attempts,
				StatusCode: status,
				Success:    true,
			})
			return body, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout or a final client error.
		if ctx.Err() != nil {
			break
		}
		var se *statusError
		if errors.As(err, &se) && !se.retryable() {
			break
		}
	}

	err = classify(ctx, lastErr)
	g.observer.OnCallComplete(CallEvent{
		Endpoint:   endpoint,
		LatencyMs:  time.Since(start).Milliseconds(),
		Attempts:   attempts,
		StatusCode: lastStatus,
		Success:    false,
		ErrorCode:  errorCode(err),
	})
	return nil, err
}

func (g *httpGateway) doRequest(ctx context.Context, url string, data []byte) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if g.cfg.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	httpResp, err := g.http.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, httpResp.StatusCode, &statusError{code: httpResp.StatusCode, body: string(respBody)}
	}
	return respBody, httpResp.StatusCode, nil
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
