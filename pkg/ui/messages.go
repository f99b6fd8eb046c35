// Package ui provides the Bubble Tea TUI for live order-book, ticker, and
// account streaming over the OKX WebSocket sessions.
package ui

import (
	"time"

	"github.com/fd1az/okx-client/pkg/okx/ws"
)

// Message types for TUI updates

// OrderBookMsg is sent whenever the order-book merge engine publishes a
// changed snapshot.
type OrderBookMsg struct {
	Snapshot ws.Snapshot
}

// TickerMsg is sent when a tickers channel push arrives.
type TickerMsg struct {
	Data ws.TickerData
}

// ConnectionStatusMsg is sent when a session's connection status changes.
type ConnectionStatusMsg struct {
	Name      string
	Connected bool
	Latency   time.Duration
}

// AccountMsg is sent when the private account channel pushes a balance
// update.
type AccountMsg struct {
	Data ws.AccountData
}

// OrderMsg is sent when the private orders channel pushes a state change.
type OrderMsg struct {
	Data ws.OrderData
}

// DesyncMsg is sent when the order-book merge engine detects a sequence
// gap and invokes its OnDesync hook.
type DesyncMsg struct {
	InstID       string
	GotPrevSeqID int64
	WantSeqID    int64
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// WelcomeCompleteMsg signals the welcome screen is done (timeout or keypress).
type WelcomeCompleteMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// StartupMsg is sent during application startup to show progress.
type StartupMsg struct {
	Step    string // Current step name
	Status  string // "connecting", "connected", "failed"
	Message string // Optional message
}
