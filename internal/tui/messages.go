package tui

import (
	"github.com/MKhiriev/go-chat-core/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the active page of [RootModel]. A non-nil Payload is
// delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// SessionStateMsg carries a session state published by the client session.
type SessionStateMsg struct {
	State models.SessionState
}

// ActionResult reports the outcome of an asynchronous session operation
// started by a page.
type ActionResult struct {
	Action string
	Err    error
}

// SignedOutNotice is shown on the menu after the user signed out.
type SignedOutNotice struct {
	Email string
}

type serverVersionMsg struct {
	version string
	err     error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
