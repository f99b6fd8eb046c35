// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// BookLevel is one price level for display.
type BookLevel struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// OrderBookComponent renders a live order-book view: asks above a spread
// line (deepest ask first, best ask last), bids below it (best bid first).
type OrderBookComponent struct {
	instID string
	seqID  int64
	asks   []BookLevel
	bids   []BookLevel
	depth  int
}

// NewOrderBookComponent creates a component showing up to depth levels per
// side.
func NewOrderBookComponent(depth int) *OrderBookComponent {
	return &OrderBookComponent{depth: depth}
}

// Update replaces the displayed book with a new merged snapshot.
func (o *OrderBookComponent) Update(instID string, seqID int64, asks, bids []BookLevel) {
	o.instID = instID
	o.seqID = seqID
	o.asks = asks
	o.bids = bids
}

// View renders the order-book component.
func (o *OrderBookComponent) View() string {
	if o.instID == "" {
		return "Waiting for order book data..."
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	askStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	bidStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	result := headerStyle.Render(fmt.Sprintf("ORDER BOOK (%s)", o.instID))
	result += dimStyle.Render(fmt.Sprintf("  seq %d", o.seqID))
	result += "\n\n"
	result += fmt.Sprintf("  %-14s  %14s\n", "Price", "Amount")
	result += dimStyle.Render("  " + strings.Repeat("─", 32)) + "\n"

	asks := o.asks
	if len(asks) > o.depth {
		asks = asks[:o.depth]
	}
	for i := len(asks) - 1; i >= 0; i-- {
		result += askStyle.Render(fmt.Sprintf("  %-14s  %14s\n", asks[i].Price.String(), asks[i].Amount.String()))
	}

	if len(o.asks) > 0 && len(o.bids) > 0 {
		spread := o.asks[0].Price.Sub(o.bids[0].Price)
		result += dimStyle.Render(fmt.Sprintf("  -- spread %s --\n", spread.String()))
	}

	bids := o.bids
	if len(bids) > o.depth {
		bids = bids[:o.depth]
	}
	for _, b := range bids {
		result += bidStyle.Render(fmt.Sprintf("  %-14s  %14s\n", b.Price.String(), b.Amount.String()))
	}

	return result
}
