package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestWallet(t *testing.T) {
	t.Run("decodes full summary", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/wallet" {
				t.Errorf("Expected path /api/wallet, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"address": "oct3abc",
				"balance": "123.456789",
				"nonce": 7,
				"pending_txs": 2,
				"transactions": [
					{"time": "2026-08-30 10:00:00", "type": "out", "amt": "1.5", "to": "octdest", "epoch": 42},
					{"time": "2026-08-30 10:05:00", "type": "out", "amt": "0.25", "to": "octdest2"}
				]
			}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		summary, err := c.Wallet(context.Background())
		if err != nil {
			t.Fatalf("Wallet failed: %v", err)
		}

		if summary.Address != "oct3abc" {
			t.Errorf("Expected address oct3abc, got %s", summary.Address)
		}
		if want := decimal.RequireFromString("123.456789"); !summary.Balance.Equal(want) {
			t.Errorf("Expected balance %s, got %s", want, summary.Balance)
		}
		if summary.Nonce != 7 {
			t.Errorf("Expected nonce 7, got %d", summary.Nonce)
		}
		if summary.PendingTxs != 2 {
			t.Errorf("Expected 2 pending txs, got %d", summary.PendingTxs)
		}
		if len(summary.Transactions) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(summary.Transactions))
		}
		if summary.Transactions[0].Pending() {
			t.Error("Transaction with epoch should not be pending")
		}
		if *summary.Transactions[0].Epoch != 42 {
			t.Errorf("Expected epoch 42, got %d", *summary.Transactions[0].Epoch)
		}
		if !summary.Transactions[1].Pending() {
			t.Error("Transaction without epoch should be pending")
		}
	})

	t.Run("server detail becomes the error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "No wallet loaded"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		_, err := c.Wallet(context.Background())
		if err == nil {
			t.Fatal("Expected error, got nil")
		}

		apiErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("Expected *Error, got %T", err)
		}
		if apiErr.Message != "No wallet loaded" {
			t.Errorf("Expected detail message, got %q", apiErr.Message)
		}
	})

	t.Run("unparseable error body falls back to status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("<html>gateway exploded</html>"))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		_, err := c.Wallet(context.Background())
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if err.Error() != "request failed with status 500" {
			t.Errorf("Expected fallback message, got %q", err.Error())
		}
	})

	t.Run("transport failure is normalized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		c := New(srv.URL, time.Second)
		_, err := c.Wallet(context.Background())
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if _, ok := err.(*Error); !ok {
			t.Fatalf("Expected *Error, got %T", err)
		}
		if err.Error() == "" {
			t.Error("Transport error should carry a message")
		}
	})
}

func TestSend(t *testing.T) {
	t.Run("posts draft and decodes acknowledgement", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/send" {
				t.Errorf("Expected POST /api/send, got %s %s", r.Method, r.URL.Path)
			}

			var body struct {
				To     string          `json:"to"`
				Amount decimal.Decimal `json:"amount"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode request body: %v", err)
			}
			if body.To != "octdest" {
				t.Errorf("Expected recipient octdest, got %s", body.To)
			}
			if !body.Amount.Equal(decimal.RequireFromString("1.5")) {
				t.Errorf("Expected amount 1.5, got %s", body.Amount)
			}

			w.Write([]byte(`{"tx_hash": "abcd1234", "time": "2026-08-30 10:00:00"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		result, err := c.Send(context.Background(), "octdest", decimal.RequireFromString("1.5"))
		if err != nil {
			t.Fatalf("Send failed: %v", err)
		}
		if result.TxHash != "abcd1234" {
			t.Errorf("Expected tx hash abcd1234, got %s", result.TxHash)
		}
		if result.Time != "2026-08-30 10:00:00" {
			t.Errorf("Unexpected time: %s", result.Time)
		}
	})

	t.Run("insufficient balance surfaces as detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "Insufficient balance"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		_, err := c.Send(context.Background(), "octdest", decimal.RequireFromString("999"))
		if err == nil || err.Error() != "Insufficient balance" {
			t.Errorf("Expected insufficient balance error, got %v", err)
		}
	})
}

func TestMultiSend(t *testing.T) {
	t.Run("partial failure is a normal result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/multi_send" {
				t.Errorf("Expected path /api/multi_send, got %s", r.URL.Path)
			}

			var body struct {
				Recipients []Recipient `json:"recipients"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode request body: %v", err)
			}
			if len(body.Recipients) != 3 {
				t.Errorf("Expected 3 recipients, got %d", len(body.Recipients))
			}

			w.Write([]byte(`{"success": 2, "failed": 1}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		recipients := []Recipient{
			{To: "octa", Amount: decimal.RequireFromString("1")},
			{To: "octb", Amount: decimal.RequireFromString("2")},
			{To: "octc", Amount: decimal.RequireFromString("3")},
		}

		result, err := c.MultiSend(context.Background(), recipients)
		if err != nil {
			t.Fatalf("MultiSend failed: %v", err)
		}
		if result.Success != 2 || result.Failed != 1 {
			t.Errorf("Expected 2 success / 1 failed, got %d / %d", result.Success, result.Failed)
		}
	})
}

func TestProvisioning(t *testing.T) {
	t.Run("generate wallet returns key bundle", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/generate_wallet" {
				t.Errorf("Expected POST /api/generate_wallet, got %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"address": "octnew", "private_key": "cHJpdg==", "public_key": "cHVi"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		keys, err := c.GenerateWallet(context.Background())
		if err != nil {
			t.Fatalf("GenerateWallet failed: %v", err)
		}
		if keys.Address != "octnew" || keys.PrivateKey != "cHJpdg==" || keys.PublicKey != "cHVi" {
			t.Errorf("Unexpected key bundle: %+v", keys)
		}
	})

	t.Run("load wallet posts private key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				PrivateKey string `json:"private_key"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode request body: %v", err)
			}
			if body.PrivateKey != "cHJpdg==" {
				t.Errorf("Expected private key cHJpdg==, got %s", body.PrivateKey)
			}
			w.Write([]byte(`{"address": "octloaded"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		result, err := c.LoadWallet(context.Background(), "cHJpdg==")
		if err != nil {
			t.Fatalf("LoadWallet failed: %v", err)
		}
		if result.Address != "octloaded" {
			t.Errorf("Expected address octloaded, got %s", result.Address)
		}
	})

	t.Run("invalid key surfaces as detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "Invalid private key"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		_, err := c.LoadWallet(context.Background(), "garbage")
		if err == nil || err.Error() != "Invalid private key" {
			t.Errorf("Expected invalid key error, got %v", err)
		}
	})

	t.Run("export returns key bundle", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/api/export" {
				t.Errorf("Expected GET /api/export, got %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"address": "octnew", "private_key": "cHJpdg==", "public_key": "cHVi"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, 5*time.Second)
		keys, err := c.ExportKeys(context.Background())
		if err != nil {
			t.Fatalf("ExportKeys failed: %v", err)
		}
		if keys.Address != "octnew" {
			t.Errorf("Expected address octnew, got %s", keys.Address)
		}
	})
}
