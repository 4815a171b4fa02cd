package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"memeverse/domain"
	"memeverse/store"
	"memeverse/tui/common"
)

const (
	boardSize      = 10
	searchDebounce = 500 * time.Millisecond
)

// Tab identifies the active feed tab.
type Tab int

const (
	TabTrending Tab = iota
	TabNew
	TabExplore
	TabSearch
	TabBoard
	TabProfile

	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabTrending:
		return "Trending"
	case TabNew:
		return "New"
	case TabExplore:
		return "Explore"
	case TabSearch:
		return "Search"
	case TabBoard:
		return "Leaderboard"
	case TabProfile:
		return "Profile"
	}
	return "?"
}

// categories the explore picker cycles through, in display order.
var pickerCategories = []domain.Category{
	domain.CategoryTrending,
	domain.CategoryNew,
	domain.CategoryClassic,
	domain.CategoryRandom,
}

// --- Messages ---

// SubsetRefreshedMsg is sent when a fetch operation completes, success
// or failure; the store already holds the outcome either way.
type SubsetRefreshedMsg struct {
	Kind store.Fetch
	Err  error
}

// SearchDebouncedMsg fires after the debounce window. A stale Seq means
// the user kept typing and this query is obsolete.
type SearchDebouncedMsg struct {
	Seq   int
	Query string
}

// CommentRequestMsg asks the root model to open the comment composer.
type CommentRequestMsg struct {
	Meme      domain.Meme
	UseInline bool
}

// UploadRequestMsg asks the root model to open the upload form.
type UploadRequestMsg struct{}

// EditProfileRequestMsg asks the root model to open the profile form.
type EditProfileRequestMsg struct{}

// --- Model ---

// Model holds the state for the feed view.
type Model struct {
	memes *store.Memes
	user  *store.User

	keys    common.KeyMap
	styles  common.Styles
	spinner spinner.Model
	width   int
	height  int

	tab        Tab
	cursor     int
	startIndex int

	snap     store.Snapshot
	userSnap store.UserSnapshot
	board    []store.Ranked

	searching   bool
	searchInput textinput.Model
	searchSeq   int

	pickingCategory bool
	categoryCursor  int

	showDetail bool
	detail     domain.Meme
}

// New creates a feed model over the two injected stores.
func New(memes *store.Memes, user *store.User) Model {
	userSnap := user.Snapshot()
	styles := common.NewStyles(userSnap.DarkTheme)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TabActive.Padding(0)

	ti := textinput.New()
	ti.Placeholder = "Search memes..."
	ti.CharLimit = 120
	ti.Width = 40

	return Model{
		memes:       memes,
		user:        user,
		keys:        common.DefaultKeyMap(),
		styles:      styles,
		spinner:     s,
		snap:        memes.Snapshot(),
		userSnap:    userSnap,
		searchInput: ti,
	}
}

// Init starts the initial trending and new fetches. The two race
// independently; they write disjoint subsets, so completion order does
// not matter.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchSubset(store.FetchTrending),
		m.fetchSubset(store.FetchNew),
		m.spinner.Tick,
	)
}

// RefreshFromStores re-reads both store snapshots, e.g. after the root
// model applied a mutation on the feed's behalf.
func (m Model) RefreshFromStores() Model {
	m.snap = m.memes.Snapshot()
	m.userSnap = m.user.Snapshot()
	m.styles = common.NewStyles(m.userSnap.DarkTheme)
	if m.tab == TabBoard {
		m.board = m.memes.Leaderboard(boardSize)
	}
	m.clampCursor()
	return m
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// IsTyping reports whether keystrokes are going into a text input, so
// the root model must not treat them as global bindings.
func (m Model) IsTyping() bool {
	return m.searching
}

// currentList returns the meme list backing the active tab.
func (m Model) currentList() []domain.Meme {
	switch m.tab {
	case TabTrending:
		return m.snap.Trending
	case TabNew:
		return m.snap.Newest
	case TabExplore:
		return m.snap.Explore
	case TabSearch:
		return m.snap.SearchResults
	case TabBoard:
		memes := make([]domain.Meme, 0, len(m.board))
		for _, r := range m.board {
			memes = append(memes, r.Meme)
		}
		return memes
	case TabProfile:
		return m.profileList()
	}
	return nil
}

// profileList is the uploads tab plus liked memes drawn from the
// subsets the profile page can see.
func (m Model) profileList() []domain.Meme {
	list := append([]domain.Meme(nil), m.snap.Uploads...)
	seen := make(map[string]bool, len(list))
	for _, u := range m.snap.Uploads {
		seen[u.ID] = true
	}
	for _, t := range m.snap.Trending {
		if m.userSnap.Profile.HasLiked(t.ID) && !seen[t.ID] {
			list = append(list, t)
		}
	}
	return list
}

// selected returns the meme under the cursor, if any.
func (m Model) selected() (domain.Meme, bool) {
	list := m.currentList()
	if len(list) == 0 || m.cursor < 0 || m.cursor >= len(list) {
		return domain.Meme{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.currentList())
	if n == 0 {
		m.cursor = 0
		m.startIndex = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.startIndex > m.cursor {
		m.startIndex = m.cursor
	}
}

// activeOp is the fetch state backing the active tab's list.
func (m Model) activeOp() store.OpState {
	switch m.tab {
	case TabTrending, TabBoard, TabProfile:
		return m.snap.TrendingOp
	case TabNew:
		return m.snap.NewOp
	case TabExplore:
		return m.snap.ExploreOp
	case TabSearch:
		return m.snap.SearchOp
	}
	return store.OpState{}
}
