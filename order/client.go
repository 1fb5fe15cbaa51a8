// Package order is the client side of the external order-service boundary.
// It submits an assembled order document over HTTP and reports success or
// failure; it never touches cart state, so a failed submission leaves the
// cart intact for resubmission.
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"gofalre.io/storefront/models"
)

// ErrSubmissionRejected covers any non-success response from the order API.
var ErrSubmissionRejected = errors.New("order submission rejected")

const (
	submitPath     = "/api/orders"
	requestTimeout = 15 * time.Second
)

var _ Client = (*httpClient)(nil)

type Client interface {
	Submit(ctx context.Context, submission *models.OrderSubmission) (*models.OrderConfirmation, error)
}

type httpClient struct {
	baseURL string
	hc      *http.Client
	breaker *gobreaker.CircuitBreaker[*models.OrderConfirmation]
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) Client {
	breaker := gobreaker.NewCircuitBreaker[*models.OrderConfirmation](gobreaker.Settings{
		Name:        "order-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &httpClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: requestTimeout},
		breaker: breaker,
		logger:  logger,
	}
}

// submitResponse mirrors the order API's success body.
type submitResponse struct {
	Order struct {
		OrderNumber string `json:"orderNumber"`
	} `json:"order"`
}

// errorResponse mirrors the order API's failure body.
type errorResponse struct {
	Message string `json:"message"`
}

func (c *httpClient) Submit(ctx context.Context, submission *models.OrderSubmission) (*models.OrderConfirmation, error) {
	confirmation, err := c.breaker.Execute(func() (*models.OrderConfirmation, error) {
		return c.submit(ctx, submission)
	})
	if err != nil {
		c.logger.Error("Order submission failed",
			zap.String("idempotency_key", submission.IdempotencyKey),
			zap.Error(err))
		return nil, err
	}

	c.logger.Info("Order submitted",
		zap.String("order_number", confirmation.OrderNumber),
		zap.Float64("total", submission.TotalAmount))

	return confirmation, nil
}

func (c *httpClient) submit(ctx context.Context, submission *models.OrderSubmission) (*models.OrderConfirmation, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("marshal order submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", submission.IdempotencyKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if err = json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: %s (status %d)", ErrSubmissionRejected, apiErr.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", ErrSubmissionRejected, resp.StatusCode)
	}

	var result submitResponse
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if result.Order.OrderNumber == "" {
		return nil, fmt.Errorf("%w: order number missing from response", ErrSubmissionRejected)
	}

	return &models.OrderConfirmation{
		OrderNumber: result.Order.OrderNumber,
		ConfirmedAt: time.Now(),
	}, nil
}
