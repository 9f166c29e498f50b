package paymentgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulearn/internal/shared/logger"
)

func newTestPayOS(t *testing.T, handler http.HandlerFunc) *PayOSGateway {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPayOSGateway(PayOSConfig{
		ClientID:    "client-1",
		APIKey:      "api-key-1",
		ChecksumKey: "checksum-1",
		BaseURL:     srv.URL + "/",
	}, logger.NewNop())
}

func testLinkRequest() CreatePaymentLinkRequest {
	return CreatePaymentLinkRequest{
		OrderCode:   1772352000000123,
		Amount:      3000000,
		Description: "Premium Campus Plan Yearly Subscription",
		BuyerEmail:  "admin@example.com",
		Items:       []Item{{Name: "Premium", Quantity: 1, Price: 3000000}},
		ReturnURL:   "https://api.example.com/return",
		CancelURL:   "https://app.example.com/cancel",
	}
}

func TestPayOSGateway_CreatePaymentLink(t *testing.T) {
	var received payOSCreateRequest
	gateway := newTestPayOS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/payment-requests", r.URL.Path)
		assert.Equal(t, "client-1", r.Header.Get("x-client-id"))
		assert.Equal(t, "api-key-1", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"00","desc":"success","data":{"checkoutUrl":"https://pay.payos.vn/web/abc","paymentLinkId":"abc","orderCode":1772352000000123,"status":"PENDING"}}`))
	})

	link, err := gateway.CreatePaymentLink(context.Background(), testLinkRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.payos.vn/web/abc", link.CheckoutURL)
	assert.Equal(t, "abc", link.PaymentLinkID)

	assert.Len(t, []rune(received.Description), 25)
	assert.Equal(t, int64(3000000), received.Amount)
	expected := SignPaymentRequest("checksum-1", received.Amount, received.CancelURL, received.Description, received.OrderCode, received.ReturnURL)
	assert.Equal(t, expected, received.Signature)
}

func TestPayOSGateway_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"provider rejects", http.StatusOK, `{"code":"20","desc":"Invalid signature"}`, "code=20"},
		{"http error", http.StatusInternalServerError, `oops`, "status 500"},
		{"missing checkout url", http.StatusOK, `{"code":"00","desc":"success","data":{}}`, "no checkout url"},
		{"malformed json", http.StatusOK, `{`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newTestPayOS(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := gateway.CreatePaymentLink(context.Background(), testLinkRequest())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPayOSGateway_HonoursContextCancellation(t *testing.T) {
	gateway := newTestPayOS(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gateway.CreatePaymentLink(ctx, testLinkRequest())
	assert.Error(t, err)
}

func TestSignPaymentRequest_KnownVector(t *testing.T) {
	a := SignPaymentRequest("key", 1000, "c", "d", 1, "r")
	b := SignPaymentRequest("key", 1000, "c", "d", 1, "r")
	other := SignPaymentRequest("key", 1001, "c", "d", 1, "r")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Len(t, a, 64)
}

func TestMockGateway_PointsAtReturnURL(t *testing.T) {
	link, err := NewMockGateway().CreatePaymentLink(context.Background(), testLinkRequest())
	require.NoError(t, err)

	u, err := url.Parse(link.CheckoutURL)
	require.NoError(t, err)
	assert.Equal(t, "api.example.com", u.Host)
	assert.Equal(t, "00", u.Query().Get("code"))
	assert.Equal(t, "PAID", u.Query().Get("status"))
	assert.Equal(t, "1772352000000123", u.Query().Get("orderCode"))
	assert.Equal(t, link.PaymentLinkID, u.Query().Get("id"))
}
