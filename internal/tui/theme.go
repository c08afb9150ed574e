package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// Theme groups the colors used across screens.
type Theme struct {
	NormalText  lipgloss.Color
	FaintText   lipgloss.Color
	Header      lipgloss.Color
	SelectedBg  lipgloss.Color
	SelectedFg  lipgloss.Color
	Border      lipgloss.Color
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color
	AgentBubble lipgloss.Color
}

// DefaultTheme is the built-in color set.
var DefaultTheme = Theme{
	NormalText:  lipgloss.Color("252"),
	FaintText:   lipgloss.Color("243"),
	Header:      lipgloss.Color("81"),
	SelectedBg:  lipgloss.Color("237"),
	SelectedFg:  lipgloss.Color("255"),
	Border:      lipgloss.Color("240"),
	ErrorText:   lipgloss.Color("203"),
	SuccessText: lipgloss.Color("114"),
	AgentBubble: lipgloss.Color("67"),
}

// PriorityColor maps a ticket priority onto an escalating color ramp.
func (t Theme) PriorityColor(priority domain.TicketPriority) lipgloss.Color {
	switch priority {
	case domain.TicketPriorityCritical:
		return lipgloss.Color("196")
	case domain.TicketPriorityHigh:
		return lipgloss.Color("208")
	case domain.TicketPriorityMedium:
		return lipgloss.Color("178")
	default:
		return t.FaintText
	}
}

// StatusColor maps a ticket status onto a color.
func (t Theme) StatusColor(status domain.TicketStatus) lipgloss.Color {
	switch status {
	case domain.TicketStatusOpen:
		return lipgloss.Color("81")
	case domain.TicketStatusResolved:
		return t.SuccessText
	default:
		return t.FaintText
	}
}
