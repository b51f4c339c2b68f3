package payments

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"villabook/internal/bookings"
	"villabook/internal/shared/config"
	"villabook/pkg/cache"
	"villabook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBookingService records payment callbacks; other operations are never
// reached from the webhook handler.
type stubBookingService struct {
	bookings.Service
	confirmed []string
	failed    []string
	refunded  []string
}

func (s *stubBookingService) OnPaymentConfirmed(_ context.Context, orderID, _ string, _ float64) (*bookings.Booking, error) {
	s.confirmed = append(s.confirmed, orderID)
	return &bookings.Booking{}, nil
}

func (s *stubBookingService) OnPaymentFailed(_ context.Context, orderID string) error {
	s.failed = append(s.failed, orderID)
	return nil
}

func (s *stubBookingService) OnRefundProcessed(_ context.Context, orderID, _ string, _ float64) error {
	s.refunded = append(s.refunded, orderID)
	return nil
}

// stubCache remembers SetIfAbsent keys to emulate webhook dedup
type stubCache struct {
	cache.Service
	seen map[string]bool
}

func (s *stubCache) SetIfAbsent(_ context.Context, key string, _ interface{}, _ time.Duration) (bool, error) {
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

const testSecret = "whsec_test"

func newWebhookRouter(svc *stubBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewController(svc, &stubCache{seen: map[string]bool{}},
		config.GatewayConfig{WebhookSecret: testSecret}, logger.New())

	engine := gin.New()
	SetupPaymentRoutes(engine.Group("/api/v1"), controller)
	return engine
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("x-webhook-signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	svc := &stubBookingService{}
	router := newWebhookRouter(svc)
	body := []byte(`{"type":"PAYMENT_SUCCESS","event_id":"evt_1","data":{"order":{"order_id":"ORDER_1"}}}`)

	w := postWebhook(router, body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postWebhook(router, body, "bad-signature")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Empty(t, svc.confirmed)
}

func TestWebhookDispatchesPaymentSuccess(t *testing.T) {
	svc := &stubBookingService{}
	router := newWebhookRouter(svc)
	body := []byte(`{"type":"PAYMENT_SUCCESS","event_id":"evt_1","data":{"order":{"order_id":"ORDER_1"},"payment":{"cf_payment_id":"pay_1","payment_amount":4000}}}`)

	w := postWebhook(router, body, ComputeSignature(testSecret, body))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"ORDER_1"}, svc.confirmed)
}

func TestWebhookDeduplicatesByEventID(t *testing.T) {
	svc := &stubBookingService{}
	router := newWebhookRouter(svc)
	body := []byte(`{"type":"PAYMENT_SUCCESS","event_id":"evt_1","data":{"order":{"order_id":"ORDER_1"}}}`)
	sig := ComputeSignature(testSecret, body)

	w := postWebhook(router, body, sig)
	require.Equal(t, http.StatusOK, w.Code)

	// Redelivery with the same event id is acknowledged but not dispatched
	w = postWebhook(router, body, sig)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.confirmed, 1)
}

func TestWebhookDispatchesRefundAndFailure(t *testing.T) {
	svc := &stubBookingService{}
	router := newWebhookRouter(svc)

	failBody := []byte(`{"type":"PAYMENT_FAILED","event_id":"evt_2","data":{"order":{"order_id":"ORDER_2"}}}`)
	w := postWebhook(router, failBody, ComputeSignature(testSecret, failBody))
	require.Equal(t, http.StatusOK, w.Code)

	refundBody := []byte(`{"type":"REFUND_SUCCESS","event_id":"evt_3","data":{"order":{"order_id":"ORDER_3"},"refund":{"cf_refund_id":"ref_1","refund_amount":4000}}}`)
	w = postWebhook(router, refundBody, ComputeSignature(testSecret, refundBody))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"ORDER_2"}, svc.failed)
	assert.Equal(t, []string{"ORDER_3"}, svc.refunded)
}

func TestWebhookIgnoresUnknownEventTypes(t *testing.T) {
	svc := &stubBookingService{}
	router := newWebhookRouter(svc)
	body := []byte(`{"type":"SETTLEMENT_PROCESSED","event_id":"evt_4","data":{}}`)

	w := postWebhook(router, body, ComputeSignature(testSecret, body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.confirmed)
	assert.Empty(t, svc.failed)
	assert.Empty(t, svc.refunded)
}
