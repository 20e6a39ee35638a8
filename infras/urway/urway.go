package urway

//go:generate go run go.uber.org/mock/mockgen -source=./urway.go -destination=./mocks/urway_mock.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"stayhub/config"
	"stayhub/infras/otel"
	"stayhub/shared/constant"
)

const (
	requestPath      = "/URWAYPGService/transaction/jsonProcess/JSONrequest"
	actionPurchase   = "1"
	defaultCountry   = "SA"
	hashSeparator    = "|"
	responseCodeOK   = "000"
	resultSuccessful = "Successful"
	maxErrorBody     = 4096

	otelAttrTrackID = "track_id"
)

var (
	ErrNotConfigured = errors.New("urway gateway is not configured")
	ErrRejected      = errors.New("urway gateway rejected the request")
	ErrInvalidHash   = errors.New("urway response hash mismatch")
)

type PaymentRequest struct {
	TrackID       string
	Amount        string
	Currency      string
	CustomerEmail string
	CustomerIP    string
	Reference     string
}

type PaymentSession struct {
	PaymentID   string
	TargetURL   string
	RedirectURL string
}

// Callback is what the gateway reports when it sends the customer back.
type Callback struct {
	PaymentID    string
	TranID       string
	TrackID      string
	Result       string
	ResponseCode string
	Amount       string
	CardBrand    string
	ResponseHash string
}

func (c Callback) Successful() bool {
	return strings.EqualFold(c.Result, resultSuccessful) && c.ResponseCode == responseCodeOK
}

type Gateway interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (PaymentSession, error)
	VerifyCallback(callback Callback) error
}

type gatewayImpl struct {
	client *http.Client
	config *config.Config
	otel   otel.Otel
}

type paymentPayload struct {
	TrackID       string `json:"trackid"`
	TerminalID    string `json:"terminalId"`
	Password      string `json:"password"`
	Action        string `json:"action"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Country       string `json:"country"`
	CustomerEmail string `json:"customerEmail"`
	MerchantIP    string `json:"merchantIp"`
	RequestHash   string `json:"requestHash"`
	UDF1          string `json:"udf1"`
	UDF2          string `json:"udf2"`
}

type paymentResult struct {
	PaymentID    string `json:"payid"`
	TargetURL    string `json:"targetUrl"`
	Result       string `json:"result"`
	ResponseCode string `json:"responsecode"`
	Reason       string `json:"reason"`
}

func New(config *config.Config, otel otel.Otel) Gateway {
	timeout := time.Duration(config.External.Urway.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &gatewayImpl{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		config: config,
		otel:   otel,
	}
}

// Hash joins the parts with "|" and returns the lowercase hex SHA-256.
func Hash(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, hashSeparator)))

	return hex.EncodeToString(sum[:])
}

func (g *gatewayImpl) CreatePayment(ctx context.Context, req PaymentRequest) (res PaymentSession, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelUrwayScopeName, constant.OtelUrwayScopeName+".CreatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	cfg := g.config.External.Urway
	if cfg.BaseURL == constant.Empty || cfg.TerminalID == constant.Empty {
		return res, ErrNotConfigured
	}

	scope.SetAttribute(otelAttrTrackID, req.TrackID)

	payload := paymentPayload{
		TrackID:       req.TrackID,
		TerminalID:    cfg.TerminalID,
		Password:      cfg.Password,
		Action:        actionPurchase,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Country:       defaultCountry,
		CustomerEmail: req.CustomerEmail,
		MerchantIP:    req.CustomerIP,
		RequestHash:   Hash(req.TrackID, cfg.TerminalID, cfg.Password, cfg.MerchantKey, req.Amount, req.Currency),
		UDF1:          req.Reference,
		UDF2:          cfg.CallbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return res, fmt.Errorf("failed to marshal urway request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(cfg.BaseURL, "/")+requestPath, bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("failed to build urway request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	response, err := g.client.Do(request)
	if err != nil {
		log.Error().Err(err).Str("trackId", req.TrackID).Msg("urway request failed")

		return res, fmt.Errorf("urway request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))

		return res, fmt.Errorf("%w: status %d: %s", ErrRejected, response.StatusCode, strings.TrimSpace(string(snippet)))
	}

	result := paymentResult{}
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return res, fmt.Errorf("failed to decode urway response: %w", err)
	}

	if result.PaymentID == constant.Empty || result.TargetURL == constant.Empty {
		return res, fmt.Errorf("%w: code %s %s", ErrRejected, result.ResponseCode, result.Reason)
	}

	return PaymentSession{
		PaymentID:   result.PaymentID,
		TargetURL:   result.TargetURL,
		RedirectURL: result.TargetURL + "?paymentid=" + result.PaymentID,
	}, nil
}

func (g *gatewayImpl) VerifyCallback(callback Callback) error {
	expected := Hash(callback.TranID, g.config.External.Urway.MerchantKey, callback.ResponseCode, callback.Amount)

	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(callback.ResponseHash))) != 1 {
		return ErrInvalidHash
	}

	return nil
}
