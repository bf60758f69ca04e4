package main

import (
	"fmt"
	"strings"
	"time"

	"oct-dash-tui/api"
	"oct-dash-tui/config"
	"oct-dash-tui/helpers"
	"oct-dash-tui/styles"
	"oct-dash-tui/views/welcome"
	"oct-dash-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// copiedClearDelay is how long the clipboard feedback stays visible.
const copiedClearDelay = 3 * time.Second

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempSendToAddr string
	tempSendAmount string
	tempPrivateKey string
	tempGenerateOK bool
)

func (m *model) createSendForm() {
	tempSendToAddr = ""
	tempSendAmount = ""

	m.sendForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Send To").
				Description("Recipient address on the wallet service").
				Value(&tempSendToAddr).
				Placeholder("oct...").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("address is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Amount").
				Description(fmt.Sprintf("Available: %s", m.snapshot.DisplayBalance())).
				Value(&tempSendAmount).
				Placeholder("0.000000").
				Validate(func(s string) error {
					_, err := helpers.ParseAmount(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.sendForm.Init()
}

func (m *model) createGenerateForm() {
	tempGenerateOK = false

	m.generateForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate a new wallet?").
				Description("The service creates a fresh key pair. The private key is shown once.").
				Affirmative("Generate").
				Negative("Back").
				Value(&tempGenerateOK),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.generateForm.Init()
}

func (m *model) createLoadForm() {
	tempPrivateKey = ""

	m.loadForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Private Key").
				Description("Base64 private key of an existing wallet").
				Value(&tempPrivateKey).
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("private key is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.loadForm.Init()
}

// -------------------- TRANSITION HELPERS --------------------

// setPage switches the active view. Entering any non-Welcome page clears the
// notification slot so stale messages never leak across views.
func (m *model) setPage(p config.Page) {
	m.activePage = p
	if p != config.PageWelcome {
		m.clearNotice()
	}
}

func (m *model) showNotice(kind, text string) {
	m.noticeKind = kind
	m.noticeText = text
}

func (m *model) showError(msg string) {
	m.showNotice(noticeError, "Error: "+msg)
}

func (m *model) clearNotice() {
	m.noticeText = ""
	m.noticeKind = ""
}

// enterDashboard transitions to the dashboard and starts the automatic
// snapshot refresh. The dashboard is the only page that fetches on entry.
func (m *model) enterDashboard() tea.Cmd {
	m.setPage(config.PageDashboard)
	m.dashMode = dashModeView
	m.fetching = true
	m.addLog("info", "Refreshing wallet snapshot")
	return refreshWallet(m.client)
}

// disconnect resets the client view to Welcome. The backend wallet is left
// untouched.
func (m *model) disconnect() {
	m.walletLoaded = false
	m.snapshot = wallet.Unknown("")
	m.draft = nil
	m.confirmOpen = false
	m.dashMode = dashModeView
	m.exportedKeys = nil
	m.qrView = ""
	m.recipients = nil
	m.clearNotice()
	m.welcomeForm = welcome.CreateForm()
	m.setPage(config.PageWelcome)
	m.addLog("info", "Disconnected view; wallet remains on the service")
}

// openDraft creates the single pending draft and opens the confirmation
// modal. No network call happens in the draft phase.
func (m *model) openDraft(d wallet.Draft) {
	m.draft = &d
	m.confirmOpen = true
	m.confirmYesSelected = true
	m.addLog("info", fmt.Sprintf("Drafted send of %s to %s", helpers.FormatAmount(d.Amount), helpers.TruncateAddr(d.To)))
}

// confirmDraft acquires the submission lock and issues the send. While the
// lock is held, repeated confirms are dropped; exactly one request goes out
// per draft.
func (m *model) confirmDraft() tea.Cmd {
	if m.submitting || m.draft == nil {
		return nil
	}
	m.submitting = true
	m.addLog("info", fmt.Sprintf("Submitting %s to %s", helpers.FormatAmount(m.draft.Amount), helpers.TruncateAddr(m.draft.To)))
	return submitTx(m.client, m.draft.To, m.draft.Amount)
}

// cancelDraft discards the draft and closes the modal. Cancellation is only
// honored while no submission is in flight.
func (m *model) cancelDraft() bool {
	if m.submitting {
		return false
	}
	m.draft = nil
	m.confirmOpen = false
	return true
}

// queueRecipient moves the multi-send inputs into the batch.
func (m *model) queueRecipient() {
	to := strings.TrimSpace(m.recipAddrInput.Value())
	if to == "" {
		m.multiErr = "address is required"
		return
	}
	amount, err := helpers.ParseAmount(m.recipAmountInput.Value())
	if err != nil {
		m.multiErr = err.Error()
		return
	}

	m.recipients = append(m.recipients, api.Recipient{To: to, Amount: amount})
	m.multiErr = ""
	m.recipAddrInput.SetValue("")
	m.recipAmountInput.SetValue("")
	m.focusedInput = 0
	m.recipAddrInput.Focus()
	m.recipAmountInput.Blur()
}

// submitMulti submits the queued batch under the submission lock.
func (m *model) submitMulti() tea.Cmd {
	if m.submitting {
		return nil
	}
	if len(m.recipients) == 0 {
		m.multiErr = "queue at least one recipient"
		return nil
	}
	m.submitting = true
	m.addLog("info", fmt.Sprintf("Submitting multi-send with %d recipients", len(m.recipients)))
	return submitMultiSend(m.client, m.recipients)
}

// startGenerate issues the generate call under the provisioning lock.
func (m *model) startGenerate() tea.Cmd {
	if m.provisioning {
		return nil
	}
	m.provisioning = true
	m.addLog("info", "Requesting new wallet from service")
	return generateWallet(m.client)
}

// startLoad issues the load call under the provisioning lock.
func (m *model) startLoad(privateKey string) tea.Cmd {
	if m.provisioning {
		return nil
	}
	m.provisioning = true
	m.addLog("info", "Loading wallet from private key")
	return loadWallet(m.client, privateKey)
}

// -------------------- MESSAGE APPLIERS --------------------

// applyWalletFetched replaces the snapshot wholesale. A failed fetch leaves
// explicit unknown markers, never stale or partial data. Concurrent fetches
// are not coalesced; the last response to arrive wins.
func (m *model) applyWalletFetched(msg walletFetchedMsg) tea.Cmd {
	m.fetching = false
	if msg.err != nil {
		m.snapshot = wallet.Unknown(msg.err.Error())
		m.showError(msg.err.Error())
		m.addLog("error", "Wallet fetch failed: "+msg.err.Error())
		return nil
	}
	m.snapshot = wallet.FromSummary(msg.summary)
	m.addLog("success", fmt.Sprintf("Snapshot updated: balance %s, %d pending", m.snapshot.DisplayBalance(), m.snapshot.PendingTxs))
	return nil
}

// applyTxSubmitted releases the submission lock, closes the modal and clears
// the draft regardless of outcome, then reports the result.
func (m *model) applyTxSubmitted(msg txSubmittedMsg) tea.Cmd {
	m.submitting = false
	m.confirmOpen = false
	m.draft = nil

	if msg.err != nil {
		m.showError(msg.err.Error())
		m.addLog("error", "Send failed: "+msg.err.Error())
		return nil
	}

	m.showNotice(noticeSuccess, fmt.Sprintf("Transaction successful! Hash: %s, Time: %s", msg.result.TxHash, msg.result.Time))
	m.addLog("success", "Transaction accepted: "+msg.result.TxHash)
	m.fetching = true
	return refreshWallet(m.client)
}

// applyMultiSendDone reports aggregate counts only; the contract does not
// say which recipients failed.
func (m *model) applyMultiSendDone(msg multiSendDoneMsg) tea.Cmd {
	m.submitting = false

	if msg.err != nil {
		m.showError(msg.err.Error())
		m.addLog("error", "Multi-send failed: "+msg.err.Error())
		return nil
	}

	kind := noticeSuccess
	if msg.result.Failed > 0 {
		kind = noticeError
	}
	m.showNotice(kind, fmt.Sprintf("Completed: %d success, %d failed", msg.result.Success, msg.result.Failed))
	m.addLog("success", fmt.Sprintf("Multi-send done: %d success, %d failed", msg.result.Success, msg.result.Failed))

	m.recipients = nil
	m.multiErr = ""
	m.dashMode = dashModeView
	m.fetching = true
	return refreshWallet(m.client)
}

// applyWalletGenerated surfaces the new key material exactly once in the
// notification slot, then moves to the dashboard.
func (m *model) applyWalletGenerated(msg walletGeneratedMsg) tea.Cmd {
	m.provisioning = false

	if msg.err != nil {
		m.showError(msg.err.Error())
		m.addLog("error", "Generate wallet failed: "+msg.err.Error())
		m.createGenerateForm()
		return nil
	}

	m.walletLoaded = true
	cmd := m.enterDashboard()
	m.showNotice(noticeSuccess, fmt.Sprintf(
		"New wallet generated! Address: %s, Private Key: %s, Public Key: %s. Save your private key securely!",
		msg.keys.Address, msg.keys.PrivateKey, msg.keys.PublicKey))
	m.addLog("success", "Generated wallet "+msg.keys.Address)
	return cmd
}

// applyWalletLoaded mirrors applyWalletGenerated for the load path.
func (m *model) applyWalletLoaded(msg walletLoadedMsg) tea.Cmd {
	m.provisioning = false

	if msg.err != nil {
		m.showError(msg.err.Error())
		m.addLog("error", "Load wallet failed: "+msg.err.Error())
		m.createLoadForm()
		return nil
	}

	m.walletLoaded = true
	cmd := m.enterDashboard()
	m.showNotice(noticeSuccess, fmt.Sprintf(
		"Wallet loaded! Address: %s. Save your private key securely!", msg.result.Address))
	m.addLog("success", "Loaded wallet "+msg.result.Address)
	return cmd
}

// applyKeysExported opens the export panel or reports the failure.
func (m *model) applyKeysExported(msg keysExportedMsg) tea.Cmd {
	if msg.err != nil {
		m.showError(msg.err.Error())
		m.addLog("error", "Export keys failed: "+msg.err.Error())
		return nil
	}
	m.exportedKeys = msg.keys
	m.dashMode = dashModeExport
	m.addLog("info", "Exported keys for "+msg.keys.Address)
	return nil
}

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// async results, window and ticker messages first so open forms cannot
	// swallow them
	switch msg := msg.(type) {

	case walletFetchedMsg:
		return m, m.applyWalletFetched(msg)

	case txSubmittedMsg:
		return m, m.applyTxSubmitted(msg)

	case multiSendDoneMsg:
		return m, m.applyMultiSendDone(msg)

	case walletGeneratedMsg:
		return m, m.applyWalletGenerated(msg)

	case walletLoadedMsg:
		return m, m.applyWalletLoaded(msg)

	case keysExportedMsg:
		return m, m.applyKeysExported(msg)

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied to clipboard!"
		return m, clearCopiedAfter(copiedClearDelay)

	case clipboardFailedMsg:
		m.showError("copying failed: " + msg.err.Error())
		return m, nil

	case clearCopiedMsg:
		m.copiedMsg = ""
		return m, nil

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(styles.CMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(styles.CAccent2),
			Message:   lipgloss.NewStyle().Foreground(styles.CText),
			Key:       lipgloss.NewStyle().Foreground(styles.CAccent),
			Value:     lipgloss.NewStyle().Foreground(styles.CText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(styles.CMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(styles.CAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(styles.CWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(styles.CError).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		if m.logEnabled {
			m.logViewport.Width = helpers.Max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	// confirmation modal takes keys before anything else
	if m.confirmOpen {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "left", "right", "tab":
				if !m.submitting {
					m.confirmYesSelected = !m.confirmYesSelected
				}
				return m, nil
			case "enter":
				if m.confirmYesSelected {
					return m, m.confirmDraft()
				}
				m.cancelDraft()
				return m, nil
			case "esc":
				m.cancelDraft()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
		}
		return m, nil
	}

	// global keys outside text entry
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.textInputActive() {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "l", "L":
			m.logEnabled = !m.logEnabled
			m.cfg.Logger = m.logEnabled
			config.Save(m.configPath, m.cfg)
			if m.logEnabled {
				if m.w > 0 {
					m.logViewport.Width = m.w - 6
				}
				m.logReady = false
				return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
			}
			if m.logBuffer != nil {
				m.logBuffer.Reset()
			}
			m.logger = nil
			m.logReady = false
			return m, nil

		case "pageup", "pagedown":
			if m.logEnabled && m.logReady {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return m, cmd
			}
		}
	}

	// page-specific behavior
	switch m.activePage {

	case config.PageWelcome:
		return m.updateWelcome(msg)

	case config.PageGenerate:
		return m.updateGenerate(msg)

	case config.PageLoad:
		return m.updateLoad(msg)

	case config.PageDashboard:
		return m.updateDashboard(msg)
	}

	return m, nil
}

// -------------------- PAGE UPDATES --------------------

func (m *model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, tea.Quit
	}
	if m.welcomeForm == nil {
		m.welcomeForm = welcome.CreateForm()
	}

	form, cmd := m.welcomeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.welcomeForm = f

		if m.welcomeForm.State == huh.StateCompleted {
			choice := welcome.TempSelection
			m.welcomeForm = nil
			switch choice {
			case welcome.ChoiceGenerate:
				m.setPage(config.PageGenerate)
				m.createGenerateForm()
			case welcome.ChoiceLoad:
				m.setPage(config.PageLoad)
				m.createLoadForm()
			}
			return m, nil
		}
		if m.welcomeForm.State == huh.StateAborted {
			return m, tea.Quit
		}
	}
	return m, cmd
}

func (m *model) updateGenerate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" && !m.provisioning {
		m.welcomeForm = welcome.CreateForm()
		m.setPage(config.PageWelcome)
		m.generateForm = nil
		return m, nil
	}
	if m.generateForm == nil || m.provisioning {
		return m, nil
	}

	form, cmd := m.generateForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.generateForm = f

		if m.generateForm.State == huh.StateCompleted {
			if tempGenerateOK {
				return m, m.startGenerate()
			}
			m.welcomeForm = welcome.CreateForm()
			m.setPage(config.PageWelcome)
			m.generateForm = nil
			return m, nil
		}
		if m.generateForm.State == huh.StateAborted {
			m.welcomeForm = welcome.CreateForm()
			m.setPage(config.PageWelcome)
			m.generateForm = nil
			return m, nil
		}
	}
	return m, cmd
}

func (m *model) updateLoad(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" && !m.provisioning {
		m.welcomeForm = welcome.CreateForm()
		m.setPage(config.PageWelcome)
		m.loadForm = nil
		return m, nil
	}
	if m.loadForm == nil || m.provisioning {
		return m, nil
	}

	form, cmd := m.loadForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.loadForm = f

		if m.loadForm.State == huh.StateCompleted {
			return m, m.startLoad(strings.TrimSpace(tempPrivateKey))
		}
		if m.loadForm.State == huh.StateAborted {
			m.welcomeForm = welcome.CreateForm()
			m.setPage(config.PageWelcome)
			m.loadForm = nil
			return m, nil
		}
	}
	return m, cmd
}

func (m *model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.dashMode {

	case dashModeSend:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.dashMode = dashModeView
			m.sendForm = nil
			return m, nil
		}
		if m.sendForm == nil {
			m.dashMode = dashModeView
			return m, nil
		}

		form, cmd := m.sendForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.sendForm = f

			if m.sendForm.State == huh.StateCompleted {
				amount, err := helpers.ParseAmount(tempSendAmount)
				m.dashMode = dashModeView
				m.sendForm = nil
				if err != nil {
					// validator already rejected this; belt and braces
					m.showError(err.Error())
					return m, nil
				}
				m.openDraft(wallet.Draft{To: strings.TrimSpace(tempSendToAddr), Amount: amount})
				return m, nil
			}
			if m.sendForm.State == huh.StateAborted {
				m.dashMode = dashModeView
				m.sendForm = nil
				return m, nil
			}
		}
		return m, cmd

	case dashModeMultiSend:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				if m.submitting {
					return m, nil
				}
				m.dashMode = dashModeView
				m.recipients = nil
				m.multiErr = ""
				m.recipAddrInput.SetValue("")
				m.recipAmountInput.SetValue("")
				return m, nil
			case "tab", "shift+tab", "down", "up":
				if m.focusedInput == 0 {
					m.focusedInput = 1
					m.recipAddrInput.Blur()
					m.recipAmountInput.Focus()
				} else {
					m.focusedInput = 0
					m.recipAmountInput.Blur()
					m.recipAddrInput.Focus()
				}
				return m, nil
			case "enter":
				if !m.submitting {
					m.queueRecipient()
				}
				return m, nil
			case "ctrl+s":
				return m, m.submitMulti()
			}
		}

		var cmd tea.Cmd
		if m.focusedInput == 0 {
			m.recipAddrInput, cmd = m.recipAddrInput.Update(msg)
		} else {
			m.recipAmountInput, cmd = m.recipAmountInput.Update(msg)
		}
		return m, cmd

	case dashModeExport:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && m.exportedKeys != nil {
			switch keyMsg.String() {
			case "esc":
				m.dashMode = dashModeView
				m.exportedKeys = nil
				return m, nil
			case "1":
				return m, copyToClipboard(m.exportedKeys.Address)
			case "2":
				return m, copyToClipboard(m.exportedKeys.PrivateKey)
			case "3":
				return m, copyToClipboard(m.exportedKeys.PublicKey)
			}
		}
		return m, nil

	case dashModeQR:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.dashMode = dashModeView
			m.qrView = ""
			return m, nil
		}
		return m, nil
	}

	// dashModeView
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, tea.Quit

		case "s", "S":
			m.createSendForm()
			m.dashMode = dashModeSend
			return m, nil

		case "m", "M":
			m.dashMode = dashModeMultiSend
			m.recipients = nil
			m.multiErr = ""
			m.focusedInput = 0
			m.recipAddrInput.SetValue("")
			m.recipAmountInput.SetValue("")
			m.recipAddrInput.Focus()
			m.recipAmountInput.Blur()
			return m, nil

		case "e", "E":
			m.addLog("info", "Requesting key export")
			return m, exportKeys(m.client)

		case "q", "Q":
			if m.snapshot.Known && m.snapshot.Address != "" {
				m.qrView = helpers.QRString(m.snapshot.Address)
				m.dashMode = dashModeQR
			}
			return m, nil

		case "c", "C":
			if m.snapshot.Known && m.snapshot.Address != "" {
				return m, copyToClipboard(m.snapshot.Address)
			}
			return m, nil

		case "r", "R":
			m.fetching = true
			m.addLog("info", "Refreshing wallet snapshot")
			return m, refreshWallet(m.client)

		case "d", "D":
			m.disconnect()
			return m, nil
		}
	}

	return m, nil
}
