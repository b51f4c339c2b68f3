package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"villabook/internal/bookings"
	"villabook/internal/shared/config"
	"villabook/pkg/logger"

	"github.com/google/uuid"
)

const apiVersion = "2023-08-01"

// Client talks to the Cashfree payment gateway. Every call carries a bounded
// timeout so a stalled gateway can never hang a booking request.
type Client struct {
	cfg        config.GatewayConfig
	httpClient *http.Client
	logger     *logger.Logger
}

// Client satisfies the gateway contract the booking flow depends on.
var _ bookings.PaymentGateway = (*Client)(nil)

func NewClient(cfg config.GatewayConfig, log *logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log,
	}
}

type createOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
	OrderMeta       orderMeta       `json:"order_meta"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type orderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

type createOrderResponse struct {
	OrderID          string  `json:"order_id"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
	OrderStatus      string  `json:"order_status"`
	PaymentSessionID string  `json:"payment_session_id"`
}

type refundRequest struct {
	RefundID     string  `json:"refund_id"`
	RefundAmount float64 `json:"refund_amount"`
	RefundNote   string  `json:"refund_note,omitempty"`
}

type refundResponse struct {
	RefundID     string  `json:"refund_id"`
	CfRefundID   string  `json:"cf_refund_id"`
	OrderID      string  `json:"order_id"`
	RefundAmount float64 `json:"refund_amount"`
	RefundStatus string  `json:"refund_status"`
}

func (c *Client) CreateOrder(ctx context.Context, orderID string, amount float64, customer bookings.GatewayCustomer) (*bookings.GatewayOrder, error) {
	reqBody := createOrderRequest{
		OrderID:       orderID,
		OrderAmount:   amount,
		OrderCurrency: "INR",
		CustomerDetails: customerDetails{
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			CustomerPhone: customer.Phone,
		},
		OrderMeta: orderMeta{
			ReturnURL: c.cfg.ReturnURL,
			NotifyURL: c.cfg.NotifyURL,
		},
	}

	var resp createOrderResponse
	if err := c.post(ctx, "/orders", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("create order %s: %w", orderID, err)
	}

	c.logger.Info("Gateway order created", "order_id", resp.OrderID, "amount", amount)
	return &bookings.GatewayOrder{
		OrderID:        resp.OrderID,
		Amount:         resp.OrderAmount,
		Currency:       resp.OrderCurrency,
		PaymentSession: resp.PaymentSessionID,
	}, nil
}

func (c *Client) Refund(ctx context.Context, orderID string, amount float64, note string) (*bookings.GatewayRefund, error) {
	reqBody := refundRequest{
		RefundID:     fmt.Sprintf("REFUND_%s", uuid.NewString()[:8]),
		RefundAmount: amount,
		RefundNote:   note,
	}

	var resp refundResponse
	path := fmt.Sprintf("/orders/%s/refunds", orderID)
	if err := c.post(ctx, path, reqBody, &resp); err != nil {
		return nil, fmt.Errorf("refund order %s: %w", orderID, err)
	}

	c.logger.Info("Gateway refund requested",
		"order_id", orderID, "refund_id", resp.RefundID, "amount", amount)
	return &bookings.GatewayRefund{
		RefundID: resp.RefundID,
		OrderID:  resp.OrderID,
		Amount:   resp.RefundAmount,
		Status:   resp.RefundStatus,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.cfg.AppID)
	req.Header.Set("x-client-secret", c.cfg.SecretKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("gateway response read failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Gateway returned error",
			"path", path, "status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, truncate(respBody, 256))
	}

	if dest != nil {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("gateway response decode failed: %w", err)
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
