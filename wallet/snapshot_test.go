package wallet

import (
	"testing"

	"oct-dash-tui/api"

	"github.com/shopspring/decimal"
)

func TestUnknown(t *testing.T) {
	snap := Unknown("connection refused")

	if snap.Known {
		t.Error("Unknown snapshot must not be marked known")
	}
	if snap.FetchError != "connection refused" {
		t.Errorf("Expected fetch error to be recorded, got %q", snap.FetchError)
	}
	if snap.PendingTxs != 0 {
		t.Errorf("Expected 0 pending txs, got %d", snap.PendingTxs)
	}
	if len(snap.Transactions) != 0 {
		t.Errorf("Expected empty history, got %d records", len(snap.Transactions))
	}

	t.Run("display accessors return the marker", func(t *testing.T) {
		if got := snap.DisplayAddress(); got != NotAvailable {
			t.Errorf("Expected %s, got %s", NotAvailable, got)
		}
		if got := snap.DisplayBalance(); got != NotAvailable {
			t.Errorf("Expected %s, got %s", NotAvailable, got)
		}
		if got := snap.DisplayNonce(); got != NotAvailable {
			t.Errorf("Expected %s, got %s", NotAvailable, got)
		}
	})
}

func TestFromSummary(t *testing.T) {
	epoch := int64(9)
	summary := &api.WalletSummary{
		Address:    "oct3abc",
		Balance:    decimal.RequireFromString("1.5"),
		Nonce:      12,
		PendingTxs: 1,
		Transactions: []api.TransactionRecord{
			{Time: "2026-08-30 10:00:00", Type: "out", Amt: decimal.RequireFromString("0.5"), To: "octdest", Epoch: &epoch},
		},
	}

	snap := FromSummary(summary)

	if !snap.Known {
		t.Error("Snapshot from a successful fetch must be known")
	}
	if got := snap.DisplayAddress(); got != "oct3abc" {
		t.Errorf("Expected address oct3abc, got %s", got)
	}
	if got := snap.DisplayBalance(); got != "1.500000 oct" {
		t.Errorf("Expected 1.500000 oct, got %s", got)
	}
	if got := snap.DisplayNonce(); got != "12" {
		t.Errorf("Expected nonce 12, got %s", got)
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(snap.Transactions))
	}
}

func TestRecentTransactions(t *testing.T) {
	var txs []api.TransactionRecord
	for i := 0; i < 8; i++ {
		txs = append(txs, api.TransactionRecord{To: "octdest"})
	}
	snap := Snapshot{Known: true, Transactions: txs}

	t.Run("truncates to n in server order", func(t *testing.T) {
		got := snap.RecentTransactions(5)
		if len(got) != 5 {
			t.Errorf("Expected 5 records, got %d", len(got))
		}
	})

	t.Run("short history passes through", func(t *testing.T) {
		small := Snapshot{Known: true, Transactions: txs[:3]}
		got := small.RecentTransactions(5)
		if len(got) != 3 {
			t.Errorf("Expected 3 records, got %d", len(got))
		}
	})
}
