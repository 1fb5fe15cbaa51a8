package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gofalre.io/storefront/models"
)

func sampleSubmission() *models.OrderSubmission {
	return &models.OrderSubmission{
		IdempotencyKey: "key-123",
		Products: []models.OrderProduct{
			{Product: "p1", Name: "Shirt", Price: 10, Quantity: 2},
		},
		Subtotal:     20,
		Tax:          6,
		ShippingCost: 32,
		TotalAmount:  58,
	}
}

func TestSubmitSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody models.OrderSubmission

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order":{"orderNumber":"ORD-1001"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	confirmation, err := client.Submit(context.Background(), sampleSubmission())

	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", confirmation.OrderNumber)
	assert.False(t, confirmation.ConfirmedAt.IsZero())

	assert.Equal(t, "/api/orders", gotPath)
	assert.Equal(t, "key-123", gotKey)
	assert.InDelta(t, 58.0, gotBody.TotalAmount, 1e-9)
}

func TestSubmitRejectedWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"insufficient stock"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	confirmation, err := client.Submit(context.Background(), sampleSubmission())

	assert.Nil(t, confirmation)
	assert.ErrorIs(t, err, ErrSubmissionRejected)
	assert.ErrorContains(t, err, "insufficient stock")
}

func TestSubmitRejectedWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.Submit(context.Background(), sampleSubmission())

	assert.ErrorIs(t, err, ErrSubmissionRejected)
}

func TestSubmitMissingOrderNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"order":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.Submit(context.Background(), sampleSubmission())

	assert.ErrorIs(t, err, ErrSubmissionRejected)
}

func TestSubmitTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.Submit(context.Background(), sampleSubmission())

	assert.Error(t, err)
}
