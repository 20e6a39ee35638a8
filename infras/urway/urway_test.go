package urway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/config"
	"stayhub/infras/otel/mocks"
	"stayhub/infras/urway"
)

func newConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.External.Urway.BaseURL = baseURL
	cfg.External.Urway.TerminalID = "term01"
	cfg.External.Urway.Password = "secret"
	cfg.External.Urway.MerchantKey = "merchant-key"
	cfg.External.Urway.CallbackURL = "https://stayhub.test/v1/payments/callback"
	cfg.External.Urway.TimeoutSeconds = 5

	return cfg
}

func TestHash(t *testing.T) {
	assert.Equal(t, "a52dd81bfd5e4e66d96b9f598382f6cbf8c5c3897654e6ae9055e03620fcf38e", urway.Hash("a", "b", "c"))
	assert.Len(t, urway.Hash("a"), 64)
	assert.NotEqual(t, urway.Hash("a", "b"), urway.Hash("ab"))
}

func TestGateway_CreatePayment(t *testing.T) {
	var received map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/URWAYPGService/transaction/jsonProcess/JSONrequest", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{"payid":"2101","targetUrl":"https://pay.test/hpp","responsecode":"000"}`))
	}))
	defer server.Close()

	gateway := urway.New(newConfig(server.URL), mocks.NewOtel())

	session, err := gateway.CreatePayment(context.Background(), urway.PaymentRequest{
		TrackID:       "track-1",
		Amount:        "1700.00",
		Currency:      "SAR",
		CustomerEmail: "guest@example.com",
		Reference:     "LP123456",
	})
	require.NoError(t, err)

	assert.Equal(t, "2101", session.PaymentID)
	assert.Equal(t, "https://pay.test/hpp?paymentid=2101", session.RedirectURL)

	assert.Equal(t, "track-1", received["trackid"])
	assert.Equal(t, "term01", received["terminalId"])
	assert.Equal(t, "1", received["action"])
	assert.Equal(t, "LP123456", received["udf1"])
	assert.Equal(t, urway.Hash("track-1", "term01", "secret", "merchant-key", "1700.00", "SAR"), received["requestHash"])
}

func TestGateway_CreatePayment_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "missing payment id",
			status:  http.StatusOK,
			body:    `{"responsecode":"601","reason":"invalid terminal"}`,
			wantErr: urway.ErrRejected,
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			body:    `upstream down`,
			wantErr: urway.ErrRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gateway := urway.New(newConfig(server.URL), mocks.NewOtel())

			_, err := gateway.CreatePayment(context.Background(), urway.PaymentRequest{TrackID: "t", Amount: "1.00", Currency: "SAR"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := urway.New(&config.Config{}, mocks.NewOtel()).CreatePayment(context.Background(), urway.PaymentRequest{})
	assert.ErrorIs(t, err, urway.ErrNotConfigured)
}

func TestGateway_VerifyCallback(t *testing.T) {
	gateway := urway.New(newConfig("https://pay.test"), mocks.NewOtel())

	callback := urway.Callback{
		TranID:       "tran-9",
		TrackID:      "track-1",
		Result:       "Successful",
		ResponseCode: "000",
		Amount:       "1700.00",
	}
	callback.ResponseHash = urway.Hash("tran-9", "merchant-key", "000", "1700.00")

	assert.NoError(t, gateway.VerifyCallback(callback))
	assert.True(t, callback.Successful())

	tampered := callback
	tampered.Amount = "1.00"
	assert.ErrorIs(t, gateway.VerifyCallback(tampered), urway.ErrInvalidHash)

	failed := callback
	failed.Result = "Failure"
	assert.False(t, failed.Successful())
}
