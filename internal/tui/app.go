package tui

import (
	"context"

	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageMenu        = "menu"
	pageLogin       = "login"
	pageRegister    = "register"
	pageProvider    = "provider"
	pageProfile     = "profile"
	pageProfileEdit = "profile-edit"
)

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global ctrl+c quit and the build info window
// 3) handles NavigateTo messages
// 4) follows the session state: a signed-in user lands on the profile page,
// a signed-out one goes back to the menu
// 5) delegates all other messages to the active page
type RootModel struct {
	ctx     context.Context
	appInfo service.ClientAppInfoService

	pages   map[string]tea.Model
	current string

	state      models.SessionState
	quitByUser bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
	serverVersion string

	showError    bool
	errorOverlay errorOverlayModel
	lastError    string
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(ctx context.Context, appInfo service.ClientAppInfoService, pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		ctx:       ctx,
		appInfo:   appInfo,
		pages:     pages,
		current:   startPage,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	page := r.page()
	if page == nil {
		return nil
	}
	return page.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkeys for every page.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case r.showError:
			if keyMatches(keyMsg, keys.enter) || keyMatches(keyMsg, keys.esc) {
				r.showError = false
				r.errorOverlay.message = ""
			}
			return r, nil
		case keyMatches(keyMsg, keys.version) && r.allowsBuildInfo():
			r.showBuildInfo = !r.showBuildInfo
			if r.showBuildInfo {
				return r, r.cmdServerVersion()
			}
			return r, nil
		case keyMatches(keyMsg, keys.esc) && r.showBuildInfo:
			r.showBuildInfo = false
			return r, nil
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		return r.navigate(msg)
	case serverVersionMsg:
		if msg.err != nil {
			r.serverVersion = humanizeError(msg.err)
		} else {
			r.serverVersion = msg.version
		}
		return r, nil
	case SessionStateMsg:
		return r.onSessionState(msg)
	case ActionResult:
		return r.broadcast(msg)
	}

	return r.delegate(msg)
}

func (r RootModel) onSessionState(msg SessionStateMsg) (tea.Model, tea.Cmd) {
	prev := r.state
	r.state = msg.State

	// The profile page keeps the latest state even while it is not shown.
	var cmds []tea.Cmd
	if profile, ok := r.pages[pageProfile]; ok && r.current != pageProfile {
		updated, cmd := profile.Update(msg)
		r.pages[pageProfile] = updated
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	var model tea.Model = r
	switch {
	case msg.State.Authenticated() && isAuthPage(r.current):
		model, cmd = r.navigate(NavigateTo{Page: pageProfile})
	case !msg.State.Authenticated() && !isAuthPage(r.current) && !msg.State.Loading:
		email := ""
		if prev.User != nil {
			email = prev.User.Email
		}
		model, cmd = r.navigate(NavigateTo{Page: pageMenu, Payload: SignedOutNotice{Email: email}})
	default:
		model, cmd = r.delegate(msg)
	}
	cmds = append(cmds, cmd)

	root := model.(RootModel)
	if e := msg.State.Error; e != "" && e != root.lastError && !msg.State.Loading && !isAuthPage(root.current) {
		root.showError = true
		root.errorOverlay.message = e
	}
	root.lastError = msg.State.Error

	return root, tea.Batch(cmds...)
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, exists := r.pages[nav.Page]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = nav.Page

	if nav.Payload != nil {
		payload := nav.Payload
		return r, func() tea.Msg { return payload }
	}
	return r, next.Init()
}

// broadcast hands msg to every page. Action results may arrive after the
// session state already moved the user to another page, and each page only
// reacts to its own actions.
func (r RootModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(r.pages))
	for name, page := range r.pages {
		updated, cmd := page.Update(msg)
		r.pages[name] = updated
		if name == r.current {
			cmds = append(cmds, cmd)
		}
	}
	return r, tea.Batch(cmds...)
}

func (r RootModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	page := r.page()
	if page == nil {
		return r, nil
	}

	updated, cmd := page.Update(msg)
	r.pages[r.current] = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo, r.serverVersion))
	}

	page := r.page()
	if page == nil {
		return renderPage("TUI", "", "")
	}

	body := page.View()
	if r.showError {
		body += "\n\n" + r.errorOverlay.View()
	}
	return appStyle.Render(body)
}

func (r RootModel) page() tea.Model {
	return r.pages[r.current]
}

func (r RootModel) allowsBuildInfo() bool {
	return r.current == pageMenu || r.current == pageProfile
}

func (r RootModel) cmdServerVersion() tea.Cmd {
	if r.appInfo == nil {
		return nil
	}

	ctx := r.ctx
	appInfo := r.appInfo
	return func() tea.Msg {
		v, err := appInfo.ServerVersion(ctx)
		return serverVersionMsg{version: v, err: err}
	}
}

func isAuthPage(page string) bool {
	switch page {
	case pageMenu, pageLogin, pageRegister, pageProvider:
		return true
	}
	return false
}

func navigate(page string) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page} }
}
