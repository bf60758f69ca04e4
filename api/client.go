// Package api is the client for the remote wallet service. Each operation
// issues one request, parses one JSON response, and returns either a typed
// result or an *Error carrying a display-ready message. The client never
// retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Error is the normalized failure shape for every client operation. Message
// is either the transport failure text or the server-supplied detail.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Client talks to the wallet service REST endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured service URL.
func (c *Client) BaseURL() string { return c.baseURL }

// TransactionRecord is one row of server-reported history. A nil Epoch means
// the transaction has not been finalized yet.
type TransactionRecord struct {
	Time  string          `json:"time"`
	Type  string          `json:"type"`
	Amt   decimal.Decimal `json:"amt"`
	To    string          `json:"to"`
	Epoch *int64          `json:"epoch,omitempty"`
}

// Pending reports whether the transaction is still unconfirmed.
func (t TransactionRecord) Pending() bool { return t.Epoch == nil }

// WalletSummary is the full account state returned by GET /api/wallet.
type WalletSummary struct {
	Address      string              `json:"address"`
	Balance      decimal.Decimal     `json:"balance"`
	Nonce        uint64              `json:"nonce"`
	PendingTxs   int                 `json:"pending_txs"`
	Transactions []TransactionRecord `json:"transactions"`
}

// SendResult is the acknowledgement for a single submitted transaction.
type SendResult struct {
	TxHash string `json:"tx_hash"`
	Time   string `json:"time"`
}

// Recipient is one entry of a multi-send batch.
type Recipient struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// MultiSendResult reports aggregate counts only; the service does not
// itemize which recipients failed.
type MultiSendResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// KeyBundle holds the key material returned by generate and export.
type KeyBundle struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// LoadResult is the acknowledgement for loading a wallet from a private key.
type LoadResult struct {
	Address string `json:"address"`
}

// Wallet fetches the current account summary and transaction history.
func (c *Client) Wallet(ctx context.Context) (*WalletSummary, error) {
	var out WalletSummary
	if err := c.do(ctx, http.MethodGet, "/api/wallet", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Send submits a single payment.
func (c *Client) Send(ctx context.Context, to string, amount decimal.Decimal) (*SendResult, error) {
	body := struct {
		To     string          `json:"to"`
		Amount decimal.Decimal `json:"amount"`
	}{To: to, Amount: amount}

	var out SendResult
	if err := c.do(ctx, http.MethodPost, "/api/send", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MultiSend submits a batch of payments in one call. Partial failure is a
// normal result, not an error.
func (c *Client) MultiSend(ctx context.Context, recipients []Recipient) (*MultiSendResult, error) {
	body := struct {
		Recipients []Recipient `json:"recipients"`
	}{Recipients: recipients}

	var out MultiSendResult
	if err := c.do(ctx, http.MethodPost, "/api/multi_send", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateWallet asks the service to create a fresh wallet for this session.
func (c *Client) GenerateWallet(ctx context.Context) (*KeyBundle, error) {
	var out KeyBundle
	if err := c.do(ctx, http.MethodPost, "/api/generate_wallet", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadWallet loads a wallet on the service from a base64 private key.
func (c *Client) LoadWallet(ctx context.Context, privateKey string) (*LoadResult, error) {
	body := struct {
		PrivateKey string `json:"private_key"`
	}{PrivateKey: privateKey}

	var out LoadResult
	if err := c.do(ctx, http.MethodPost, "/api/load_wallet", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportKeys retrieves the key material of the currently loaded wallet.
func (c *Client) ExportKeys(ctx context.Context) (*KeyBundle, error) {
	var out KeyBundle
	if err := c.do(ctx, http.MethodGet, "/api/export", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// errorBody is the failure shape every endpoint shares.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// transport failure: no response at all
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Detail != "" {
			return &Error{Message: eb.Detail}
		}
		return &Error{Message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}
