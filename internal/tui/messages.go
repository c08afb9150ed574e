package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/helpdesk-console/internal/events"
)

// noticeMsg delivers a published notice to the status bar.
type noticeMsg events.Notice

// noticeFadeMsg clears the status bar after a delay.
type noticeFadeMsg struct{}

// listLoadedMsg signals a list controller finished a load.
type listLoadedMsg struct {
	admin bool
}

// detailLoadedMsg carries the detail screen generation it belongs to;
// stale generations are ignored.
type detailLoadedMsg struct {
	seq uint64
}

// sendDoneMsg signals the detail compose send finished.
type sendDoneMsg struct {
	seq uint64
}

// draftDoneMsg signals the detail AI draft request finished.
type draftDoneMsg struct {
	seq uint64
}

// mutateDoneMsg signals a status or priority change finished.
type mutateDoneMsg struct {
	seq uint64
}

// createDoneMsg signals the create form submission finished.
type createDoneMsg struct {
	created bool
}

// quickDraftReadyMsg signals quick-reply draft generation settled.
type quickDraftReadyMsg struct{}

// quickSentMsg signals the quick reply send finished.
type quickSentMsg struct {
	sent bool
}

// searchDoneMsg signals a message search finished.
type searchDoneMsg struct{}

// sessionReadyMsg signals session restore finished.
type sessionReadyMsg struct{}

// noticeFadeDelay is how long a notice stays on the status bar.
const noticeFadeDelay = 4 * time.Second

func fadeNotice() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}
