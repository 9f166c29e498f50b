package paymentgateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"edulearn/internal/shared/constants"
	"edulearn/internal/shared/logger"
	"edulearn/internal/shared/utils"
)

const (
	payOSCreatePath      = "/v2/payment-requests"
	defaultPayOSTimeout  = 15 * time.Second
	maxPayOSResponseSize = 64 << 10
	payOSHeaderClientID  = "x-client-id"
	payOSHeaderAPIKey    = "x-api-key"
)

type PayOSConfig struct {
	ClientID    string
	APIKey      string
	ChecksumKey string
	BaseURL     string
	Timeout     time.Duration
}

// PayOSGateway creates hosted checkout links through the PayOS merchant API.
type PayOSGateway struct {
	config     PayOSConfig
	httpClient *http.Client
	logger     logger.Interface
}

func NewPayOSGateway(config PayOSConfig, logger logger.Interface) *PayOSGateway {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultPayOSTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &PayOSGateway{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ PaymentGateway = (*PayOSGateway)(nil)

type payOSCreateRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	BuyerEmail  string `json:"buyerEmail,omitempty"`
	Items       []Item `json:"items,omitempty"`
	CancelURL   string `json:"cancelUrl"`
	ReturnURL   string `json:"returnUrl"`
	Signature   string `json:"signature"`
}

type payOSCreateResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data *struct {
		CheckoutURL   string `json:"checkoutUrl"`
		PaymentLinkID string `json:"paymentLinkId"`
		OrderCode     int64  `json:"orderCode"`
		Status        string `json:"status"`
	} `json:"data"`
}

func (g *PayOSGateway) CreatePaymentLink(ctx context.Context, req CreatePaymentLinkRequest) (*PaymentLink, error) {
	description := utils.TruncateRunes(req.Description, constants.PayOSDescMaxLength)

	body := payOSCreateRequest{
		OrderCode:   req.OrderCode,
		Amount:      req.Amount,
		Description: description,
		BuyerEmail:  req.BuyerEmail,
		Items:       req.Items,
		CancelURL:   req.CancelURL,
		ReturnURL:   req.ReturnURL,
	}
	body.Signature = SignPaymentRequest(g.config.ChecksumKey, body.Amount, body.CancelURL, body.Description, body.OrderCode, body.ReturnURL)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payos request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+payOSCreatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create payos request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(payOSHeaderClientID, g.config.ClientID)
	httpReq.Header.Set(payOSHeaderAPIKey, g.config.APIKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payos request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayOSResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read payos response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Warnw("payos returned non-200 status",
			"status", resp.StatusCode,
			"order_code", req.OrderCode,
		)
		return nil, fmt.Errorf("payos returned status %d", resp.StatusCode)
	}

	var parsed payOSCreateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode payos response: %w", err)
	}

	if parsed.Code != constants.PayOSSuccessCode {
		g.logger.Warnw("payos rejected payment link",
			"code", parsed.Code,
			"desc", parsed.Desc,
			"order_code", req.OrderCode,
		)
		return nil, fmt.Errorf("payos rejected payment link: code=%s desc=%s", parsed.Code, parsed.Desc)
	}
	if parsed.Data == nil || parsed.Data.CheckoutURL == "" {
		return nil, errors.New("payos response has no checkout url")
	}

	g.logger.Infow("payos payment link created",
		"order_code", req.OrderCode,
		"payment_link_id", parsed.Data.PaymentLinkID,
	)

	return &PaymentLink{
		CheckoutURL:   parsed.Data.CheckoutURL,
		PaymentLinkID: parsed.Data.PaymentLinkID,
	}, nil
}

// SignPaymentRequest computes the PayOS request signature: hex HMAC-SHA256 of
// the alphabetically ordered key=value pairs.
func SignPaymentRequest(checksumKey string, amount int64, cancelURL, description string, orderCode int64, returnURL string) string {
	data := "amount=" + strconv.FormatInt(amount, 10) +
		"&cancelUrl=" + cancelURL +
		"&description=" + description +
		"&orderCode=" + strconv.FormatInt(orderCode, 10) +
		"&returnUrl=" + returnURL

	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
