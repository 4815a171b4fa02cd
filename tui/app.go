package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"memeverse/infra/editor"
	"memeverse/store"
	"memeverse/tui/common"
	"memeverse/tui/compose"
	"memeverse/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Memes  *store.Memes
	User   *store.User
	Editor *editor.EnvEditor
}

type activeView int

const (
	feedView activeView = iota
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views and
// applies composer results to the stores.
type App struct {
	deps    Deps
	active  activeView
	feed    feed.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Comment posted!")
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: feedView,
		feed:   feed.New(deps.Memes, deps.User),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the feed, which starts the initial fetches.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.active == feedView && !a.feed.IsTyping() && key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}

	case feed.CommentRequestMsg:
		a.active = composeView
		a.status = ""
		if msg.UseInline {
			a.compose = compose.NewInlineComment(msg.Meme.ID, msg.Meme.Name, a.styles())
		} else {
			a.compose = compose.NewEditorComment(a.deps.Editor, msg.Meme.ID, msg.Meme.Name, a.styles())
		}
		return a, a.compose.Init()

	case feed.UploadRequestMsg:
		a.active = composeView
		a.status = ""
		a.compose = compose.NewUpload(a.styles())
		return a, a.compose.Init()

	case feed.EditProfileRequestMsg:
		a.active = composeView
		a.status = ""
		a.compose = compose.NewProfile(a.deps.User.Snapshot().Profile, a.styles())
		return a, a.compose.Init()

	case compose.DoneMsg:
		return a.applyComposeResult(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	}

	switch a.active {
	case feedView:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

// applyComposeResult turns the composer's outcome into a store mutation
// and returns to the feed.
func (a App) applyComposeResult(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	a.active = feedView

	switch {
	case msg.Err != nil:
		a.status = "Error: " + msg.Err.Error()

	case msg.Cancelled:
		a.status = "Cancelled."

	case msg.Kind == compose.KindComment:
		author := a.deps.User.Snapshot().Profile
		if _, err := a.deps.Memes.AddComment(msg.MemeID, msg.Content, author); err != nil {
			a.status = "Error: " + err.Error()
		} else {
			a.status = "💬 Comment posted!"
		}

	case msg.Kind == compose.KindUpload:
		uploader := a.deps.User.Snapshot().Profile.Username
		if _, err := a.deps.Memes.AddUpload(msg.Draft, uploader); err != nil {
			a.status = "Error: " + err.Error()
		} else {
			a.status = "📤 Meme uploaded!"
		}

	case msg.Kind == compose.KindProfile:
		a.deps.User.UpdateProfile(msg.Profile)
		a.status = "Profile saved."
	}

	a.feed = a.feed.RefreshFromStores()
	return a, nil
}

func (a App) styles() common.Styles {
	return common.NewStyles(a.deps.User.Snapshot().DarkTheme)
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	}

	if a.status != "" {
		s += "\n" + a.styles().Label.MarginLeft(1).Render(a.status)
	}

	return s
}
