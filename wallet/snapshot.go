// Package wallet holds the client-side mirror of server-reported account
// state. A Snapshot is replaced wholesale on every fetch and degrades to an
// explicit unknown sentinel on failure; it is never partially patched.
package wallet

import (
	"oct-dash-tui/api"

	"github.com/shopspring/decimal"
)

// NotAvailable is the marker shown when account state could not be fetched.
const NotAvailable = "N/A"

// Snapshot is the last-fetched account summary. Known reports whether the
// fields reflect a successful fetch; when false, the display accessors
// return the unknown marker.
type Snapshot struct {
	Known        bool
	Address      string
	Balance      decimal.Decimal
	Nonce        uint64
	PendingTxs   int
	Transactions []api.TransactionRecord

	// FetchError carries the failure message recorded alongside an
	// unknown snapshot, for the notification surface.
	FetchError string
}

// Unknown returns the sentinel snapshot used after a failed fetch.
func Unknown(errMsg string) Snapshot {
	return Snapshot{
		Known:        false,
		PendingTxs:   0,
		Transactions: nil,
		FetchError:   errMsg,
	}
}

// FromSummary builds a snapshot from a successful wallet fetch.
func FromSummary(s *api.WalletSummary) Snapshot {
	return Snapshot{
		Known:        true,
		Address:      s.Address,
		Balance:      s.Balance,
		Nonce:        s.Nonce,
		PendingTxs:   s.PendingTxs,
		Transactions: s.Transactions,
	}
}

// DisplayAddress returns the address, or the unknown marker.
func (s Snapshot) DisplayAddress() string {
	if !s.Known || s.Address == "" {
		return NotAvailable
	}
	return s.Address
}

// DisplayBalance returns the balance with exactly 6 fractional digits, or
// the unknown marker.
func (s Snapshot) DisplayBalance() string {
	if !s.Known {
		return NotAvailable
	}
	return s.Balance.StringFixed(6) + " oct"
}

// DisplayNonce returns the nonce, or the unknown marker.
func (s Snapshot) DisplayNonce() string {
	if !s.Known {
		return NotAvailable
	}
	return decimal.NewFromUint64(s.Nonce).String()
}

// RecentTransactions returns at most n records for display, newest-relevant
// first as reported by the server.
func (s Snapshot) RecentTransactions(n int) []api.TransactionRecord {
	if len(s.Transactions) <= n {
		return s.Transactions
	}
	return s.Transactions[:n]
}

// Draft is a transaction the user has specified but not yet confirmed.
// At most one draft exists at a time; it lives from send-form submission
// until the user confirms or cancels.
type Draft struct {
	To     string
	Amount decimal.Decimal
}
