package main

import (
	"strings"

	"oct-dash-tui/config"
	"oct-dash-tui/helpers"
	"oct-dash-tui/styles"
	"oct-dash-tui/views/dashboard"
	logview "oct-dash-tui/views/log"
	"oct-dash-tui/views/welcome"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) renderConfirmDialog() string {
	var (
		dialogBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(styles.CBorder).
				Padding(1, 0).
				BorderTop(true).
				BorderLeft(true).
				BorderRight(true).
				BorderBottom(true)

		buttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(lipgloss.Color("#888B7E")).
				Padding(0, 3).
				MarginTop(1)

		activeButtonStyle = buttonStyle.
					Foreground(lipgloss.Color("#FFF7DB")).
					Background(lipgloss.Color("#F25D94")).
					MarginRight(2).
					Underline(true)
	)

	if m.draft == nil {
		return ""
	}

	msg := helpers.FadeString("Send "+helpers.FormatAmount(m.draft.Amount)+" oct to "+helpers.TruncateAddr(m.draft.To)+"?", "#F25D94", "#EDFF82")
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)

	var body string
	if m.submitting {
		body = lipgloss.NewStyle().MarginTop(1).Render(m.spin.View() + " submitting…")
	} else {
		var okButton, cancelButton string
		if m.confirmYesSelected {
			okButton = activeButtonStyle.Render("Yes")
			cancelButton = buttonStyle.Render("No")
		} else {
			okButton = buttonStyle.MarginRight(2).Render("Yes")
			cancelButton = activeButtonStyle.MarginRight(0).Render("No")
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	}

	ui := lipgloss.JoinVertical(lipgloss.Center, question, body)
	dialog := dialogBoxStyle.Render(ui)

	// Center the dialog on screen
	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m *model) globalHeader() string {
	availableWidth := helpers.Max(0, m.w-8)

	var addrDisplay string
	if m.walletLoaded && m.snapshot.Known && m.snapshot.Address != "" {
		addrDisplay = lipgloss.NewStyle().
			Foreground(styles.CAccent2).
			Bold(true).
			Render("Wallet: " + helpers.FadeString(helpers.TruncateAddr(m.snapshot.Address), "#F25D94", "#EDFF82"))
	} else if m.walletLoaded {
		addrDisplay = styles.MutedStyle.Render("Wallet: unknown")
	} else {
		addrDisplay = styles.MutedStyle.Render("Wallet: not loaded")
	}

	var statusDisplay string
	if m.fetching {
		statusDisplay = lipgloss.NewStyle().
			Foreground(styles.CWarn).
			Bold(true).
			Render("○ fetching…")
	} else if m.walletLoaded && !m.snapshot.Known {
		statusDisplay = lipgloss.NewStyle().
			Foreground(styles.CError).
			Bold(true).
			Render("○ unavailable")
	} else {
		statusDisplay = lipgloss.NewStyle().
			Foreground(styles.CAccent).
			Bold(true).
			Render("● " + m.cfg.APIURL)
	}

	titleText := lipgloss.NewStyle().
		Foreground(styles.CAccent).
		Bold(true).
		Render(helpers.FadeString("oct dashboard", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	statusWidth := lipgloss.Width(statusDisplay)
	titleWidth := lipgloss.Width(titleText)

	totalOtherWidth := addrWidth + statusWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		headerLine = addrDisplay + "\n" + titleText + "\n" + statusDisplay
	} else {
		// Three-column layout: Wallet | Title (centered) | Status
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		leftSpacer := strings.Repeat(" ", helpers.Max(1, leftPadding))
		rightSpacer := strings.Repeat(" ", helpers.Max(1, rightPadding))

		headerLine = addrDisplay + leftSpacer + titleText + rightSpacer + statusDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.CBorder).
		Render(strings.Repeat("─", helpers.Max(0, availableWidth)))

	return headerLine + "\n" + separator
}

// renderNotice renders the single-slot message area, empty string when idle.
func (m *model) renderNotice() string {
	if m.noticeText == "" {
		return ""
	}
	style := styles.SuccessStyle
	if m.noticeKind == noticeError {
		style = styles.ErrorStyle
	}
	return style.Width(helpers.Max(0, m.w-4)).Render(m.noticeText)
}

func (m *model) renderMultiSend() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Multi-Send"))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("Batch is submitted in one call; no per-draft confirmation."))
	b.WriteString("\n\n")
	b.WriteString(m.recipAddrInput.View())
	b.WriteString("\n")
	b.WriteString(m.recipAmountInput.View())
	b.WriteString("\n\n")
	b.WriteString(dashboard.RenderRecipients(m.recipients))

	if m.multiErr != "" {
		b.WriteString("\n" + styles.ErrorStyle.Render(m.multiErr))
	}

	b.WriteString("\n\n")
	if m.submitting {
		b.WriteString(m.spin.View() + " submitting batch…")
	} else {
		b.WriteString(styles.HotkeyStyle.Render(
			styles.Key("Tab") + " switch field   " +
				styles.Key("Enter") + " queue recipient   " +
				styles.Key("Ctrl+s") + " send all   " +
				styles.Key("Esc") + " cancel"))
	}

	return b.String()
}

func (m *model) View() string {
	globalHdr := m.globalHeader()
	headerPanel := styles.PanelStyle.Width(helpers.Max(0, m.w-2)).Render(globalHdr)

	var pageContent string
	var nav string

	switch m.activePage {

	case config.PageWelcome:
		welcomeContent := welcome.Render(m.welcomeForm) + "\n\n" + welcome.Banner()
		pageContent = styles.PanelStyle.Width(helpers.Max(0, m.w-2)).Render(welcomeContent)
		nav = welcome.Nav(m.w - 2)

	case config.PageGenerate:
		var body string
		if m.provisioning {
			body = styles.TitleStyle.Render("Generate Wallet") + "\n\n" +
				m.spin.View() + " generating wallet…"
		} else {
			body = styles.TitleStyle.Render("Generate Wallet") + "\n\n" + welcome.Render(m.generateForm)
		}
		pageContent = styles.PanelStyle.Width(helpers.Max(0, m.w-2)).Render(body)
		nav = welcome.Nav(m.w - 2)

	case config.PageLoad:
		var body string
		if m.provisioning {
			body = styles.TitleStyle.Render("Load Wallet") + "\n\n" +
				m.spin.View() + " loading wallet…"
		} else {
			body = styles.TitleStyle.Render("Load Wallet") + "\n\n" + welcome.Render(m.loadForm)
		}
		pageContent = styles.PanelStyle.Width(helpers.Max(0, m.w-2)).Render(body)
		nav = welcome.Nav(m.w - 2)

	case config.PageDashboard:
		var body string

		switch m.dashMode {
		case dashModeSend:
			body = styles.TitleStyle.Render("Send Transaction") + "\n\n" + welcome.Render(m.sendForm)

		case dashModeMultiSend:
			body = m.renderMultiSend()

		case dashModeExport:
			if m.exportedKeys != nil {
				body = dashboard.RenderExport(m.exportedKeys, m.copiedMsg)
			}

		case dashModeQR:
			body = dashboard.RenderQR(m.snapshot.DisplayAddress(), m.qrView)

		default:
			summary := dashboard.RenderSummary(m.snapshot, m.fetching, m.spin.View())
			if m.copiedMsg != "" {
				summary += "\n\n" + styles.SuccessStyle.Render(m.copiedMsg)
			}
			body = summary + "\n\n" + dashboard.RenderTransactions(m.snapshot)
		}

		pageContent = styles.PanelStyle.Width(helpers.Max(0, m.w-2)).Render(body)
		nav = dashboard.Nav(m.w-2, m.dashMode != dashModeView)

		if m.confirmOpen {
			// Dialog overlays the current view
			return m.renderConfirmDialog()
		}
	}

	sections := []string{headerPanel}
	if notice := m.renderNotice(); notice != "" {
		sections = append(sections, notice)
	}
	sections = append(sections, pageContent, nav)

	if m.logEnabled {
		// Keep viewport height in sync with the rendered panel
		m.logViewport.Height = logview.PanelHeight(m.h)
		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.AppStyle.Render(content)
}
