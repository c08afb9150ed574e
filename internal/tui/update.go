package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/helpdesk-console/internal/controller"
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deps.Session.Loading() {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		return m, func() tea.Msg {
			_, _ = m.deps.Session.Login()
			return sessionReadyMsg{}
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.create.IsOpen() {
		return m.updateCreateForm(msg)
	}

	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.list.SetQuery(m.filterInput.Value())
		m.clampCursor()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list.Visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		visible := m.list.Visible()
		if m.cursor < len(visible) {
			return m, m.openDetail(visible[m.cursor].ID, screenList)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadList(false)
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.New):
		m.create.Open()
		m.descFocused = false
		m.subjectInput.Focus()
		m.descInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.TabAdmin):
		m.screen = screenAdmin
		return m, m.loadList(true)
	case key.Matches(msg, m.keys.TabSearch):
		m.screen = screenSearch
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Logout):
		return m, m.logout()
	}
	return m, nil
}

func (m *Model) updateCreateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.create.Cancel()
		m.subjectInput.SetValue("")
		m.descInput.SetValue("")
		return m, nil
	case "tab", "shift+tab":
		m.descFocused = !m.descFocused
		if m.descFocused {
			m.subjectInput.Blur()
			return m, m.descInput.Focus()
		}
		m.descInput.Blur()
		return m, m.subjectInput.Focus()
	}
	if key.Matches(msg, m.keys.Submit) {
		if !m.create.CanSubmit() {
			return m, nil
		}
		return m, func() tea.Msg {
			err := m.create.Submit(context.Background())
			return createDoneMsg{created: err == nil}
		}
	}

	var cmd tea.Cmd
	if m.descFocused {
		m.descInput, cmd = m.descInput.Update(msg)
		m.create.SetDescription(m.descInput.Value())
	} else {
		m.subjectInput, cmd = m.subjectInput.Update(msg)
		m.create.SetSubject(m.subjectInput.Value())
	}
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail := m.detail
	if detail == nil {
		m.screen = m.returnTo
		return m, nil
	}
	seq := m.detailSeq

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = m.returnTo
		m.composeInput.Blur()
		// Refetch so status changes made here show up immediately.
		return m, m.loadList(m.returnTo == screenAdmin)
	case key.Matches(msg, m.keys.Open):
		if detail.Sending() {
			return m, nil
		}
		detail.SetCompose(m.composeInput.Value())
		return m, func() tea.Msg {
			_ = detail.Send(context.Background())
			return sendDoneMsg{seq: seq}
		}
	case key.Matches(msg, m.keys.Draft):
		return m, func() tea.Msg {
			_ = detail.RequestDraft(context.Background())
			return draftDoneMsg{seq: seq}
		}
	case key.Matches(msg, m.keys.Resolve):
		return m, changeStatusCmd(detail, seq, domain.TicketStatusResolved)
	case key.Matches(msg, m.keys.CloseOut):
		return m, changeStatusCmd(detail, seq, domain.TicketStatusClosed)
	case key.Matches(msg, m.keys.Escalate):
		next := nextPriority(detail.Ticket())
		return m, func() tea.Msg {
			_ = detail.ChangePriority(context.Background(), next)
			return mutateDoneMsg{seq: seq}
		}
	}

	var cmd tea.Cmd
	m.composeInput, cmd = m.composeInput.Update(msg)
	detail.SetCompose(m.composeInput.Value())
	return m, cmd
}

func changeStatusCmd(detail *controller.DetailController, seq uint64, status domain.TicketStatus) tea.Cmd {
	return func() tea.Msg {
		_ = detail.ChangeStatus(context.Background(), status)
		return mutateDoneMsg{seq: seq}
	}
}

// nextPriority cycles low -> medium -> high -> critical -> low.
func nextPriority(ticket *domain.Ticket) domain.TicketPriority {
	if ticket == nil {
		return domain.TicketPriorityMedium
	}
	switch ticket.Priority {
	case domain.TicketPriorityLow:
		return domain.TicketPriorityMedium
	case domain.TicketPriorityMedium:
		return domain.TicketPriorityHigh
	case domain.TicketPriorityHigh:
		return domain.TicketPriorityCritical
	default:
		return domain.TicketPriorityLow
	}
}

func (m *Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quick.IsOpen() {
		return m.updateQuickReply(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.adminCursor > 0 {
			m.adminCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.adminCursor < len(m.adminList.Tickets())-1 {
			m.adminCursor++
		}
	case key.Matches(msg, m.keys.Open):
		tickets := m.adminList.Tickets()
		if m.adminCursor < len(tickets) {
			ticket := tickets[m.adminCursor]
			quick := m.quick
			m.draftInput.SetValue("")
			m.draftInput.Focus()
			return m, func() tea.Msg {
				quick.Open(context.Background(), ticket)
				return quickDraftReadyMsg{}
			}
		}
	case key.Matches(msg, m.keys.Detail):
		tickets := m.adminList.Tickets()
		if m.adminCursor < len(tickets) {
			return m, m.openDetail(tickets[m.adminCursor].ID, screenAdmin)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadList(true)
	case key.Matches(msg, m.keys.TabTickets):
		m.screen = screenList
		return m, nil
	case key.Matches(msg, m.keys.TabSearch):
		m.screen = screenSearch
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Logout):
		return m, m.logout()
	}
	return m, nil
}

func (m *Model) updateQuickReply(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quick.Cancel()
		m.draftInput.SetValue("")
		return m, nil
	}
	if key.Matches(msg, m.keys.Submit) {
		m.quick.SetDraft(m.draftInput.Value())
		if !m.quick.CanSend() {
			return m, nil
		}
		quick := m.quick
		return m, func() tea.Msg {
			err := quick.Send(context.Background())
			return quickSentMsg{sent: err == nil}
		}
	}
	if m.quick.Generating() {
		return m, nil
	}
	var cmd tea.Cmd
	m.draftInput, cmd = m.draftInput.Update(msg)
	m.quick.SetDraft(m.draftInput.Value())
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenList
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		query := m.searchInput.Value()
		return m, func() tea.Msg {
			_ = m.search.Search(context.Background(), query)
			return searchDoneMsg{}
		}
	case key.Matches(msg, m.keys.TabTickets):
		m.screen = screenList
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.TabAdmin):
		m.screen = screenAdmin
		m.searchInput.Blur()
		return m, m.loadList(true)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		_ = m.deps.Session.Logout()
		return sessionReadyMsg{}
	}
}

// clampCursor keeps the selection inside the filtered view.
func (m *Model) clampCursor() {
	if visible := len(m.list.Visible()); m.cursor >= visible {
		m.cursor = 0
	}
}
