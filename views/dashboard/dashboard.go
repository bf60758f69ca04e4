package dashboard

import (
	"fmt"
	"strings"

	"oct-dash-tui/api"
	"oct-dash-tui/helpers"
	"oct-dash-tui/styles"
	"oct-dash-tui/wallet"

	"github.com/charmbracelet/lipgloss"
)

// historyRows is how many transaction records the table shows.
const historyRows = 5

// Nav returns the navigation bar for the dashboard view
func Nav(width int, formActive bool) string {
	var left string
	if formActive {
		left = strings.Join([]string{
			styles.Key("l") + " logger",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("s") + " send",
			styles.Key("m") + " multi-send",
			styles.Key("e") + " export keys",
			styles.Key("q") + " receive QR",
			styles.Key("c") + " copy address",
			styles.Key("r") + " refresh",
			styles.Key("d") + " disconnect",
			styles.Key("l") + " logger",
			styles.Key("Esc") + " quit",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// RenderSummary renders the account summary block
func RenderSummary(snap wallet.Snapshot, fetching bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Wallet Dashboard")

	if fetching {
		return h + "\n\n" + spinnerView + " fetching wallet state…"
	}

	label := styles.MutedStyle
	value := lipgloss.NewStyle().Foreground(styles.CText)

	lines := []string{
		h,
		"",
		fmt.Sprintf("%s  %s", label.Render("Address   "), value.Render(snap.DisplayAddress())),
		fmt.Sprintf("%s  %s", label.Render("Balance   "), lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render(snap.DisplayBalance())),
		fmt.Sprintf("%s  %s", label.Render("Nonce     "), value.Render(snap.DisplayNonce())),
		fmt.Sprintf("%s  %s", label.Render("Pending tx"), value.Render(fmt.Sprintf("%d", snap.PendingTxs))),
	}

	return strings.Join(lines, "\n")
}

// RenderTransactions renders the recent-transaction table, truncated to the
// first five records in server order.
func RenderTransactions(snap wallet.Snapshot) string {
	title := styles.MutedStyle.Render("Recent Transactions")

	txs := snap.RecentTransactions(historyRows)
	if len(txs) == 0 {
		return title + "\n" + styles.MutedStyle.Render("No transactions yet.")
	}

	header := styles.MutedStyle.Render(fmt.Sprintf("%-19s  %-7s  %14s  %-23s  %s",
		"Time", "Type", "Amount", "To", "Status"))

	lines := []string{title, header}
	for _, tx := range txs {
		status := helpers.EpochLabel(tx.Epoch)
		statusStyle := lipgloss.NewStyle().Foreground(styles.CAccent)
		if tx.Pending() {
			statusStyle = lipgloss.NewStyle().Foreground(styles.CWarn)
		}
		row := fmt.Sprintf("%-19s  %-7s  %14s  %-23s  %s",
			tx.Time,
			tx.Type,
			helpers.FormatAmount(tx.Amt),
			helpers.TruncateAddr(tx.To),
			statusStyle.Render(status),
		)
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CText).Render(row))
	}

	return strings.Join(lines, "\n")
}

// RenderExport renders the exported key material with copy hints.
func RenderExport(keys *api.KeyBundle, copiedMsg string) string {
	h := styles.TitleStyle.Render("Exported Keys")
	warn := lipgloss.NewStyle().Foreground(styles.CWarn).
		Render("⚠ Anyone with the private key controls this wallet.")

	label := styles.MutedStyle
	value := lipgloss.NewStyle().Foreground(styles.CText)

	lines := []string{
		h,
		warn,
		"",
		fmt.Sprintf("%s  %s", label.Render("Address    "), value.Render(keys.Address)),
		fmt.Sprintf("%s  %s", label.Render("Private key"), value.Render(keys.PrivateKey)),
		fmt.Sprintf("%s  %s", label.Render("Public key "), value.Render(keys.PublicKey)),
		"",
		styles.HotkeyStyle.Render("1/2/3 copy field   Esc back"),
	}
	if copiedMsg != "" {
		lines = append(lines, styles.SuccessStyle.Render(copiedMsg))
	}

	return strings.Join(lines, "\n")
}

// RenderQR renders the receive panel: the session address as a QR code.
func RenderQR(address string, qr string) string {
	h := styles.TitleStyle.Render("Receive")
	sub := styles.MutedStyle.Render(address)
	return h + "\n" + sub + "\n\n" + qr + "\n" + styles.HotkeyStyle.Render("Esc back")
}

// RenderRecipients renders the queued multi-send batch.
func RenderRecipients(queue []api.Recipient) string {
	if len(queue) == 0 {
		return styles.MutedStyle.Render("No recipients queued yet.")
	}

	lines := []string{styles.MutedStyle.Render(fmt.Sprintf("Queued recipients (%d)", len(queue)))}
	for i, r := range queue {
		row := fmt.Sprintf("%2d. %-23s  %s", i+1, helpers.TruncateAddr(r.To), helpers.FormatAmount(r.Amount))
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CText).Render(row))
	}
	return strings.Join(lines, "\n")
}
