package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/LindiweBraids/booking-api/internal/httperr"
)

// Client talks to the hosted-checkout API: one call to open a transaction,
// plus signature verification for the webhook it sends back.
type Client struct {
	baseURL       string
	secretKey     string
	webhookSecret string
	httpc         *http.Client
}

func New(baseURL, secretKey, webhookSecret string) *Client {
	return &Client{
		baseURL:       baseURL,
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// --------------------------------------------------
// Initialize transaction
// --------------------------------------------------

type InitializeRequest struct {
	Email       string            `json:"email"`
	AmountCents int64             `json:"amount"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type apiEnvelope struct {
	Status  bool               `json:"status"`
	Message string             `json:"message"`
	Data    InitializeResponse `json:"data"`
}

func (c *Client) InitializeTransaction(
	ctx context.Context,
	in InitializeRequest,
) (*InitializeResponse, error) {

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/transaction/initialize",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("gateway: initialize request failed: %v", err)
		return nil, httperr.ErrBusiness("gateway_error")
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Printf("gateway: decoding initialize response failed: %v", err)
		return nil, httperr.ErrBusiness("gateway_error")
	}

	if resp.StatusCode >= 400 || !env.Status {
		log.Printf("gateway: initialize rejected (http %d): %s", resp.StatusCode, env.Message)
		return nil, httperr.ErrBusiness("gateway_error")
	}

	if env.Data.AuthorizationURL == "" {
		return nil, httperr.ErrBusiness("gateway_error")
	}

	return &env.Data, nil
}

// --------------------------------------------------
// Webhook signature
// --------------------------------------------------

// VerifySignature recomputes HMAC-SHA512 over the raw body and compares it
// to the hex digest the gateway supplied.
func (c *Client) VerifySignature(signature string, body []byte) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign is the counterpart of VerifySignature, exposed for tests and local
// tooling that replays webhooks.
func (c *Client) Sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(c.webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
