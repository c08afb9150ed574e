// Package tui renders the view-state controllers in the terminal.
// Every network call runs as a tea.Cmd off the update loop; completion
// messages carry a screen generation where needed so results for a
// screen the user already left are dropped.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/controller"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/session"
)

// screen identifies which view is active.
type screen int

const (
	screenLogin screen = iota
	screenList
	screenDetail
	screenAdmin
	screenSearch
)

// Deps bundles everything the console needs. Controllers are built
// here so each screen owns exactly one.
type Deps struct {
	Tickets    controller.TicketAPI
	Messages   controller.MessageAPI
	AI         controller.AIAPI
	Session    *session.Manager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	OperatorID string
}

// Model is the top-level bubbletea model.
type Model struct {
	deps  Deps
	keys  KeyMap
	theme Theme

	width  int
	height int

	screen   screen
	returnTo screen

	list      *controller.ListController
	adminList *controller.ListController
	detail    *controller.DetailController
	create    *controller.CreateController
	quick     *controller.QuickReplyController
	search    *controller.SearchController

	cursor      int
	adminCursor int
	detailSeq   uint64

	filterInput  textinput.Model
	filtering    bool
	composeInput textinput.Model
	searchInput  textinput.Model
	subjectInput textinput.Model
	descInput    textinput.Model
	draftInput   textinput.Model
	descFocused  bool

	spin     spinner.Model
	noticeCh chan events.Notice
	notice   *events.Notice
}

// New wires the model and its controllers.
func New(deps Deps) *Model {
	noticeCh := make(chan events.Notice, 16)
	deps.Dispatcher.Subscribe(func(notice events.Notice) {
		select {
		case noticeCh <- notice:
		default:
			// Status bar only shows the latest notice anyway.
		}
	})

	model := &Model{
		deps:     deps,
		keys:     DefaultKeyMap,
		theme:    DefaultTheme,
		screen:   screenLogin,
		returnTo: screenList,
		noticeCh: noticeCh,
	}

	model.list = controller.NewListController(deps.Tickets, deps.Session, deps.Dispatcher, deps.Logger,
		controller.ListScope{CurrentCustomerOnly: true})
	model.adminList = controller.NewListController(deps.Tickets, deps.Session, deps.Dispatcher, deps.Logger,
		controller.ListScope{Status: domain.TicketStatusOpen})
	model.create = controller.NewCreateController(controller.CreateDeps{
		Tickets:    deps.Tickets,
		Session:    deps.Session,
		Dispatcher: deps.Dispatcher,
		Logger:     deps.Logger,
	})
	model.quick = controller.NewQuickReplyController(controller.QuickReplyDeps{
		Messages:   deps.Messages,
		AI:         deps.AI,
		Dispatcher: deps.Dispatcher,
		Logger:     deps.Logger,
		OperatorID: deps.OperatorID,
	})
	model.search = controller.NewSearchController(deps.Messages, deps.Dispatcher, deps.Logger)

	model.filterInput = newInput("filter tickets...")
	model.composeInput = newInput("Type your message...")
	model.searchInput = newInput("search messages...")
	model.subjectInput = newInput("Brief description of the issue")
	model.descInput = newInput("Detailed description...")
	model.draftInput = newInput("Type your reply here...")

	model.spin = spinner.New()
	model.spin.Spinner = spinner.Dot
	model.spin.Style = lipgloss.NewStyle().Foreground(model.theme.Header)

	return model
}

func newInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "> "
	input.CharLimit = 0
	return input
}

// Init restores the session and starts the notice pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			m.deps.Session.Init()
			return sessionReadyMsg{}
		},
		m.waitForNotice(),
		m.spin.Tick,
	)
}

func (m *Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.noticeCh)
	}
}

// Update routes messages to the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case noticeMsg:
		notice := events.Notice(msg)
		m.notice = &notice
		return m, tea.Batch(m.waitForNotice(), fadeNotice())

	case noticeFadeMsg:
		m.notice = nil
		return m, nil

	case sessionReadyMsg:
		if _, ok := m.deps.Session.Current(); ok {
			m.screen = screenList
			return m, tea.Batch(m.loadList(false), m.loadList(true))
		}
		m.screen = screenLogin
		return m, nil

	case listLoadedMsg, createDoneMsg, searchDoneMsg, quickDraftReadyMsg:
		return m.applyCompletion(msg)

	case detailLoadedMsg:
		return m, nil

	case sendDoneMsg:
		if msg.seq == m.detailSeq && m.detail != nil {
			m.composeInput.SetValue(m.detail.Compose())
		}
		return m, nil

	case draftDoneMsg:
		if msg.seq == m.detailSeq && m.detail != nil {
			m.composeInput.SetValue(m.detail.Compose())
		}
		return m, nil

	case mutateDoneMsg:
		return m, nil

	case quickSentMsg:
		if msg.sent {
			m.draftInput.SetValue("")
			return m, m.loadList(true)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applyCompletion handles messages that only need input syncing or a
// follow-up load.
func (m *Model) applyCompletion(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.admin {
			if tickets := len(m.adminList.Tickets()); m.adminCursor >= tickets {
				m.adminCursor = 0
			}
		} else {
			m.clampCursor()
		}
	case createDoneMsg:
		if msg.created {
			m.subjectInput.SetValue("")
			m.descInput.SetValue("")
			// Server-assigned fields are authoritative: full refetch,
			// no in-place insert.
			return m, m.loadList(false)
		}
	case quickDraftReadyMsg:
		m.draftInput.SetValue(m.quick.Draft())
		m.draftInput.CursorEnd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.closeControllers()
		return m, tea.Quit
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenAdmin:
		return m.updateAdmin(msg)
	case screenSearch:
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m *Model) closeControllers() {
	m.list.Close()
	m.adminList.Close()
	m.create.Close()
	m.quick.Close()
	m.search.Close()
	if m.detail != nil {
		m.detail.Close()
	}
}

// loadList refreshes one of the two ticket lists.
func (m *Model) loadList(admin bool) tea.Cmd {
	ctrl := m.list
	if admin {
		ctrl = m.adminList
	}
	return func() tea.Msg {
		_ = ctrl.Load(context.Background())
		return listLoadedMsg{admin: admin}
	}
}

// openDetail replaces the detail controller for the chosen ticket.
// The previous controller is closed so any in-flight result it still
// owns is dropped.
func (m *Model) openDetail(ticketID int64, from screen) tea.Cmd {
	if m.detail != nil {
		m.detail.Close()
	}
	m.detail = controller.NewDetailController(controller.DetailDeps{
		Tickets:    m.deps.Tickets,
		Messages:   m.deps.Messages,
		AI:         m.deps.AI,
		Session:    m.deps.Session,
		Dispatcher: m.deps.Dispatcher,
		Logger:     m.deps.Logger,
	}, ticketID)
	m.detailSeq++
	seq := m.detailSeq
	m.screen = screenDetail
	m.returnTo = from
	m.composeInput.SetValue("")
	m.composeInput.Focus()

	detail := m.detail
	return func() tea.Msg {
		_ = detail.Load(context.Background())
		return detailLoadedMsg{seq: seq}
	}
}
