package main

import (
	"oct-dash-tui/api"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// walletFetchedMsg contains the result of a wallet summary fetch
type walletFetchedMsg struct {
	summary *api.WalletSummary
	err     error
}

// txSubmittedMsg contains the result of a confirmed single send
type txSubmittedMsg struct {
	result *api.SendResult
	err    error
}

// multiSendDoneMsg contains the aggregate result of a multi-send batch
type multiSendDoneMsg struct {
	result *api.MultiSendResult
	err    error
}

// walletGeneratedMsg contains the result of generating a new wallet
type walletGeneratedMsg struct {
	keys *api.KeyBundle
	err  error
}

// walletLoadedMsg contains the result of loading a wallet from a private key
type walletLoadedMsg struct {
	result *api.LoadResult
	err    error
}

// keysExportedMsg contains the exported key material
type keysExportedMsg struct {
	keys *api.KeyBundle
	err  error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// clipboardFailedMsg indicates clipboard copy failed
type clipboardFailedMsg struct {
	err error
}

// clearCopiedMsg clears the transient clipboard feedback
type clearCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}
