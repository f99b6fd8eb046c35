// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// OrderRow is one row in the live order table.
type OrderRow struct {
	InstID  string
	OrdID   string
	Side    string
	Px      string
	Sz      string
	FillSz  string
	State   string
	UTime   time.Time
}

// AccountComponent renders account balance and live order state, the
// private-channel counterpart to OrderBookComponent.
type AccountComponent struct {
	totalEq string
	orders  []OrderRow
	maxRows int
}

// NewAccountComponent creates a component showing up to maxRows orders.
func NewAccountComponent(maxRows int) *AccountComponent {
	return &AccountComponent{maxRows: maxRows}
}

// UpdateBalance sets the displayed total account equity.
func (a *AccountComponent) UpdateBalance(totalEq string) {
	a.totalEq = totalEq
}

// UpdateOrder upserts one order row by OrdID, most recent first.
func (a *AccountComponent) UpdateOrder(row OrderRow) {
	for i, o := range a.orders {
		if o.OrdID == row.OrdID {
			a.orders[i] = row
			return
		}
	}
	a.orders = append([]OrderRow{row}, a.orders...)
	if len(a.orders) > a.maxRows {
		a.orders = a.orders[:a.maxRows]
	}
}

// View renders the account component.
func (a *AccountComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	liveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	canceledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	result := headerStyle.Render("ACCOUNT")
	if a.totalEq != "" {
		result += dimStyle.Render(fmt.Sprintf("  total eq %s", a.totalEq))
	}
	result += "\n\n"

	if len(a.orders) == 0 {
		return result + dimStyle.Render("  no open orders") + "\n"
	}

	result += fmt.Sprintf("  %-12s  %-4s  %10s  %10s  %10s  %s\n",
		"InstID", "Side", "Px", "Sz", "FillSz", "State")
	result += dimStyle.Render("  " + strings.Repeat("─", 64)) + "\n"

	for _, o := range a.orders {
		stateStyle := dimStyle
		switch o.State {
		case "live", "partially_filled":
			stateStyle = liveStyle
		case "filled":
			stateStyle = filledStyle
		case "canceled", "mmp_canceled":
			stateStyle = canceledStyle
		}
		result += fmt.Sprintf("  %-12s  %-4s  %10s  %10s  %10s  %s\n",
			o.InstID, o.Side, o.Px, o.Sz, o.FillSz, stateStyle.Render(o.State))
	}

	return result
}
