package main

import (
	"context"
	"time"

	"oct-dash-tui/api"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations. Each issues exactly
// one request; nothing here retries or cancels. The client's HTTP timeout is
// the only deadline.

// refreshWallet fetches the wallet summary from the service
func refreshWallet(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		summary, err := client.Wallet(context.Background())
		return walletFetchedMsg{summary: summary, err: err}
	}
}

// submitTx submits a confirmed transaction draft
func submitTx(client *api.Client, to string, amount decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Send(context.Background(), to, amount)
		return txSubmittedMsg{result: result, err: err}
	}
}

// submitMultiSend submits a batch of recipients in one call
func submitMultiSend(client *api.Client, recipients []api.Recipient) tea.Cmd {
	return func() tea.Msg {
		result, err := client.MultiSend(context.Background(), recipients)
		return multiSendDoneMsg{result: result, err: err}
	}
}

// generateWallet asks the service to create a new wallet
func generateWallet(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		keys, err := client.GenerateWallet(context.Background())
		return walletGeneratedMsg{keys: keys, err: err}
	}
}

// loadWallet loads a wallet on the service from a private key
func loadWallet(client *api.Client, privateKey string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.LoadWallet(context.Background(), privateKey)
		return walletLoadedMsg{result: result, err: err}
	}
}

// exportKeys fetches the key material of the loaded wallet
func exportKeys(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		keys, err := client.ExportKeys(context.Background())
		return keysExportedMsg{keys: keys, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return clipboardFailedMsg{err: err}
		}
		return clipboardCopiedMsg{}
	}
}

// clearCopiedAfter waits then clears the clipboard feedback
func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}
