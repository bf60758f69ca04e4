package main

import (
	"os"
	"path/filepath"
	"strings"

	"oct-dash-tui/api"
	"oct-dash-tui/config"
	"oct-dash-tui/styles"
	"oct-dash-tui/views/welcome"
	"oct-dash-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

// Dashboard sub-modes: the inline panels shown while on the dashboard page.
const (
	dashModeView      = "view"
	dashModeSend      = "send"
	dashModeMultiSend = "multisend"
	dashModeExport    = "export"
	dashModeQR        = "qr"
)

// Notification kinds for the single-slot message area.
const (
	noticeSuccess = "success"
	noticeError   = "error"
)

// model represents the application state following The Elm Architecture.
// All session flags live here; there is no package-level mutable state
// beyond the huh form field targets.
type model struct {
	w, h int

	cfg        config.Config
	configPath string
	client     *api.Client

	activePage config.Page

	// session state
	walletLoaded bool
	snapshot     wallet.Snapshot

	// snapshot fetch state
	fetching bool
	spin     spinner.Model

	// single-slot notification surface
	noticeText string
	noticeKind string

	// clipboard feedback
	copiedMsg string

	// welcome menu
	welcomeForm *huh.Form

	// provisioning (generate/load) state
	generateForm *huh.Form
	loadForm     *huh.Form
	provisioning bool // exclusive lock while generate/load is in flight

	// send workflow
	dashMode string
	sendForm *huh.Form

	// two-phase draft: held from send-form completion until confirm/cancel
	draft              *wallet.Draft
	confirmOpen        bool
	confirmYesSelected bool
	submitting         bool // submission lock: one request per draft/batch

	// multi-send collector
	recipAddrInput   textinput.Model
	recipAmountInput textinput.Model
	focusedInput     int // 0 = address, 1 = amount
	recipients       []api.Recipient
	multiErr         string

	// export / receive panels
	exportedKeys *api.KeyBundle
	qrView       string

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// newModel creates and initializes a new model with configuration from disk
func newModel() model {
	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".oct-dash-config.json")

	cfg := config.Load(configPath)

	// address input for multi-send
	addrIn := textinput.New()
	addrIn.Placeholder = "Recipient address oct…"
	addrIn.Prompt = "Address: "
	addrIn.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	addrIn.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	addrIn.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	addrIn.CharLimit = 64
	addrIn.Width = 52

	// amount input for multi-send
	amountIn := textinput.New()
	amountIn.Placeholder = "0.000000"
	amountIn.Prompt = "Amount:  "
	amountIn.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	amountIn.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	amountIn.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	amountIn.CharLimit = 24
	amountIn.Width = 52

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// log viewport; resized on first WindowSizeMsg
	vp := viewport.New(0, 20)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		cfg:              cfg,
		configPath:       configPath,
		client:           api.New(cfg.APIURL, cfg.Timeout()),
		activePage:       config.PageWelcome,
		snapshot:         wallet.Unknown(""),
		spin:             sp,
		welcomeForm:      welcome.CreateForm(),
		dashMode:         dashModeView,
		recipAddrInput:   addrIn,
		recipAmountInput: amountIn,
		logEnabled:       cfg.Logger,
		logViewport:      vp,
		logBuffer:        &strings.Builder{},
		logSpinner:       logSpin,
	}

	return m
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	return tea.Batch(cmds...)
}

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}

	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// textInputActive returns true if any text entry is currently capturing keys
func (m model) textInputActive() bool {
	if m.activePage == config.PageLoad && m.loadForm != nil {
		return true
	}
	if m.activePage == config.PageDashboard {
		if m.dashMode == dashModeSend && m.sendForm != nil {
			return true
		}
		if m.dashMode == dashModeMultiSend {
			return true
		}
	}
	return false
}
