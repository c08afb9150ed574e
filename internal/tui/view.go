package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/helpdesk-console/internal/controller"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
)

// View renders the active screen between a tab header and status bar.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenList:
		body = m.viewList()
	case screenDetail:
		body = m.viewDetail()
	case screenAdmin:
		body = m.viewAdmin()
	case screenSearch:
		body = m.viewSearch()
	}

	sections := []string{m.viewHeader(), body, m.viewStatusBar()}
	return strings.Join(sections, "\n")
}

func (m *Model) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Header).Render("Helpdesk Console")
	if m.screen == screenLogin {
		return title
	}

	tab := func(label string, active bool) string {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(m.theme.FaintText)
		if active {
			style = style.Foreground(m.theme.SelectedFg).Background(m.theme.SelectedBg).Bold(true)
		}
		return style.Render(label)
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		tab("1 Tickets", m.screen == screenList || m.screen == screenDetail && m.returnTo == screenList),
		tab("2 Admin", m.screen == screenAdmin || m.screen == screenDetail && m.returnTo == screenAdmin),
		tab("3 Search", m.screen == screenSearch),
	)

	user := ""
	if current, ok := m.deps.Session.Current(); ok {
		user = lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(current.Email)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", tabs, "  ", user)
}

func (m *Model) viewStatusBar() string {
	if m.notice == nil {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(m.helpLine())
	}
	style := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	switch m.notice.Level {
	case events.NoticeError:
		style = style.Foreground(m.theme.ErrorText)
	case events.NoticeSuccess:
		style = style.Foreground(m.theme.SuccessText)
	}
	return style.Render(m.notice.Text)
}

func (m *Model) helpLine() string {
	switch m.screen {
	case screenLogin:
		return "enter: sign in • ctrl+c: quit"
	case screenList:
		if m.create.IsOpen() {
			return "tab: next field • ctrl+s: create • esc: cancel"
		}
		return "enter: open • n: new • /: filter • r: refresh • ctrl+l: logout"
	case screenDetail:
		return "enter: send • ctrl+g: AI draft • ctrl+r: resolve • ctrl+x: close • ctrl+p: priority • esc: back"
	case screenAdmin:
		if m.quick.IsOpen() {
			return "ctrl+s: send reply • esc: cancel"
		}
		return "enter: quick reply • o: full thread • r: refresh"
	case screenSearch:
		return "enter: search • esc: back"
	}
	return ""
}

func (m *Model) viewLogin() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 4)
	if m.deps.Session.Loading() {
		return box.Render(m.spin.View() + " Restoring session...")
	}
	return box.Render("Sign in as the demo agent?\n\nPress enter to continue.")
}

func (m *Model) viewList() string {
	if m.create.IsOpen() {
		return m.viewCreateForm()
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("My Tickets"))
	if m.filtering || m.list.Query() != "" {
		b.WriteString("  " + m.filterInput.View())
	}
	b.WriteString("\n")

	if m.list.Phase() == controller.PhaseLoading {
		b.WriteString(m.spin.View() + " Loading tickets...\n")
		return b.String()
	}

	visible := m.list.Visible()
	if len(visible) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("No tickets to show.") + "\n")
		return b.String()
	}
	for i, ticket := range visible {
		b.WriteString(m.renderTicketRow(ticket, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderTicketRow(ticket domain.Ticket, selected bool) string {
	status := lipgloss.NewStyle().Foreground(m.theme.StatusColor(ticket.Status)).Render(string(ticket.Status))
	priority := lipgloss.NewStyle().Foreground(m.theme.PriorityColor(ticket.Priority)).Render(string(ticket.Priority))
	line := fmt.Sprintf("#%-4d %-10s %-8s %s", ticket.ID, status, priority, truncate(ticket.Subject, 60))

	style := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	if selected {
		style = style.Foreground(m.theme.SelectedFg).Background(m.theme.SelectedBg)
	}
	return style.Render(line)
}

func (m *Model) viewCreateForm() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("New Ticket") + "\n\n")
	b.WriteString("Subject\n" + m.subjectInput.View() + "\n\n")
	b.WriteString("Description\n" + m.descInput.View() + "\n")
	if m.create.Creating() {
		b.WriteString("\n" + m.spin.View() + " Creating...")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Render(b.String())
}

func (m *Model) viewDetail() string {
	detail := m.detail
	if detail == nil {
		return ""
	}
	if detail.Phase() == controller.PhaseLoading {
		return m.spin.View() + " Loading ticket..."
	}
	if detail.NotFound() {
		return lipgloss.NewStyle().Foreground(m.theme.ErrorText).Render("Ticket not found.")
	}
	ticket := detail.Ticket()
	if ticket == nil {
		return lipgloss.NewStyle().Foreground(m.theme.ErrorText).Render("Ticket failed to load. Press esc to go back.")
	}

	var b strings.Builder
	status := lipgloss.NewStyle().Foreground(m.theme.StatusColor(ticket.Status)).Render(string(ticket.Status))
	priority := lipgloss.NewStyle().Foreground(m.theme.PriorityColor(ticket.Priority)).Render(string(ticket.Priority))
	b.WriteString(fmt.Sprintf("%s  %s  %s  sentiment: %s\n",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("#%d %s", ticket.ID, ticket.Subject)),
		status, priority, ticket.SentimentLabel()))
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(truncate(ticket.Description, 100)) + "\n\n")

	for _, message := range detail.Messages() {
		b.WriteString(m.renderMessage(message))
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.composeInput.View() + "\n")
	switch {
	case detail.Sending():
		b.WriteString(m.spin.View() + " Sending...")
	case detail.Drafting():
		b.WriteString(m.spin.View() + " Generating draft...")
	case detail.UpdatingStatus():
		b.WriteString(m.spin.View() + " Updating...")
	}
	return b.String()
}

func (m *Model) renderMessage(message domain.Message) string {
	sender := message.SenderID
	style := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	if message.IsFromAgent() {
		style = style.Foreground(m.theme.AgentBubble)
		sender = "agent " + sender
	}
	stamp := lipgloss.NewStyle().Foreground(m.theme.FaintText).
		Render(message.CreatedAt.Format("Jan 2 15:04"))
	internal := ""
	if message.IsInternal {
		internal = lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(" [internal]")
	}
	return fmt.Sprintf("%s %s%s\n  %s", style.Bold(true).Render(sender), stamp, internal,
		style.Render(message.Content))
}

func (m *Model) viewAdmin() string {
	var b strings.Builder
	stats := m.adminList.Stats()
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Open Queue"))
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).
		Render(fmt.Sprintf("  open %d • resolved %d • closed %d • total %d",
			stats.Open, stats.Resolved, stats.Closed, stats.Total)))
	b.WriteString("\n")

	if m.adminList.Phase() == controller.PhaseLoading {
		b.WriteString(m.spin.View() + " Loading queue...\n")
	} else {
		tickets := m.adminList.Tickets()
		if len(tickets) == 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("Queue is empty.") + "\n")
		}
		for i, ticket := range tickets {
			b.WriteString(m.renderTicketRow(ticket, i == m.adminCursor && !m.quick.IsOpen()))
			b.WriteString("\n")
		}
	}

	if m.quick.IsOpen() {
		b.WriteString("\n" + m.viewQuickReply())
	}
	return b.String()
}

func (m *Model) viewQuickReply() string {
	ticket := m.quick.Ticket()
	var b strings.Builder
	if ticket != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).
			Render(fmt.Sprintf("Quick Reply to #%d %s", ticket.ID, truncate(ticket.Subject, 50))) + "\n\n")
	}
	switch {
	case m.quick.Generating():
		b.WriteString(m.spin.View() + " Drafting a suggested reply...\n")
	case m.quick.Sending():
		b.WriteString(m.spin.View() + " Sending...\n")
	default:
		b.WriteString(m.draftInput.View() + "\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Render(b.String())
}

func (m *Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Message Search") + "\n")
	b.WriteString(m.searchInput.View() + "\n\n")

	if m.search.Phase() == controller.PhaseLoading {
		b.WriteString(m.spin.View() + " Searching...\n")
		return b.String()
	}
	results := m.search.Results()
	if m.search.Phase() == controller.PhaseReady && len(results) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("No matches.") + "\n")
	}
	for _, result := range results {
		score := lipgloss.NewStyle().Foreground(m.theme.FaintText).
			Render(fmt.Sprintf("%.2f", result.Similarity))
		b.WriteString(fmt.Sprintf("%s  %s\n", score, truncate(result.Content, 90)))
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
