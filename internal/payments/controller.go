package payments

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"villabook/internal/bookings"
	"villabook/internal/shared/config"
	"villabook/internal/shared/constants"
	"villabook/internal/shared/utils/response"
	"villabook/pkg/cache"
	"villabook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Webhook event types delivered by the gateway
const (
	EventPaymentSuccess = "PAYMENT_SUCCESS"
	EventPaymentFailed  = "PAYMENT_FAILED"
	EventRefundSuccess  = "REFUND_SUCCESS"
)

// webhookDedupTTL bounds how long a processed event id is remembered.
// Gateway retries stop well inside this window.
const webhookDedupTTL = 48 * time.Hour

type webhookEnvelope struct {
	Type    string    `json:"type"`
	EventID string    `json:"event_id"`
	Data    eventData `json:"data"`
}

type eventData struct {
	Order   orderData   `json:"order"`
	Payment paymentData `json:"payment"`
	Refund  refundData  `json:"refund"`
}

type orderData struct {
	OrderID string `json:"order_id"`
}

type paymentData struct {
	PaymentID string  `json:"cf_payment_id"`
	Amount    float64 `json:"payment_amount"`
	Status    string  `json:"payment_status"`
}

type refundData struct {
	RefundID string  `json:"cf_refund_id"`
	Amount   float64 `json:"refund_amount"`
	Status   string  `json:"refund_status"`
}

type Controller struct {
	bookingService bookings.Service
	cache          cache.Service
	cfg            config.GatewayConfig
	logger         *logger.Logger
}

func NewController(bookingService bookings.Service, cacheService cache.Service, cfg config.GatewayConfig, log *logger.Logger) *Controller {
	return &Controller{
		bookingService: bookingService,
		cache:          cacheService,
		cfg:            cfg,
		logger:         log,
	}
}

// HandleWebhook handles POST /api/v1/payments/webhook.
//
// The signature is verified over the raw body before any parsing. After a
// valid signature the response is always 200: the gateway retries non-2xx
// responses, and retrying a processing failure is handled by the event-id
// dedup, not by replaying errors back at the gateway.
func (c *Controller) HandleWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, 1<<20))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unreadable body", nil, nil)
		return
	}

	signature := ctx.GetHeader("x-webhook-signature")
	if signature == "" || !VerifySignature(c.cfg.WebhookSecret, body, signature) {
		c.logger.LogAuthFailure(ctx.Request.Context(), "invalid webhook signature", ctx.ClientIP())
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid signature", nil, nil)
		return
	}

	var event webhookEnvelope
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Warn("Malformed webhook payload", "error", err)
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Malformed payload", nil, nil)
		return
	}

	if event.EventID != "" {
		fresh, err := c.cache.SetIfAbsent(ctx.Request.Context(), constants.WebhookEventKey(event.EventID), 1, webhookDedupTTL)
		if err != nil {
			// Redis being down must not drop payment confirmations; the
			// booking status check makes redelivery safe anyway.
			c.logger.Warn("Webhook dedup unavailable", "error", err)
		} else if !fresh {
			c.logger.LogPaymentEvent(ctx.Request.Context(), "webhook_duplicate", event.Data.Order.OrderID)
			response.RespondJSON(ctx, "success", http.StatusOK, "Event already processed", nil, nil)
			return
		}
	}

	c.dispatch(ctx, event)
	response.RespondJSON(ctx, "success", http.StatusOK, "Webhook processed", nil, nil)
}

func (c *Controller) dispatch(ctx *gin.Context, event webhookEnvelope) {
	reqCtx := ctx.Request.Context()
	orderID := event.Data.Order.OrderID

	switch event.Type {
	case EventPaymentSuccess:
		if _, err := c.bookingService.OnPaymentConfirmed(reqCtx, orderID, event.Data.Payment.PaymentID, event.Data.Payment.Amount); err != nil {
			c.logger.ErrorWithContext(reqCtx, "Payment confirmation failed", err, map[string]interface{}{
				"order_id": orderID,
			})
		}
	case EventPaymentFailed:
		if err := c.bookingService.OnPaymentFailed(reqCtx, orderID); err != nil {
			c.logger.ErrorWithContext(reqCtx, "Payment failure handling failed", err, map[string]interface{}{
				"order_id": orderID,
			})
		}
	case EventRefundSuccess:
		if err := c.bookingService.OnRefundProcessed(reqCtx, orderID, event.Data.Refund.RefundID, event.Data.Refund.Amount); err != nil {
			c.logger.ErrorWithContext(reqCtx, "Refund confirmation failed", err, map[string]interface{}{
				"order_id": orderID,
			})
		}
	default:
		c.logger.Info("Ignoring unhandled webhook event", "type", event.Type)
	}
}
