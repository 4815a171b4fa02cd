package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"memeverse/store"
	"memeverse/tui/common"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SubsetRefreshedMsg:
		m.snap = m.memes.Snapshot()
		if m.tab == TabBoard {
			m.board = m.memes.Leaderboard(boardSize)
		}
		m.clampCursor()
		return m, nil

	case SearchDebouncedMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		return m, m.runSearch(msg.Query)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.pickingCategory {
		return m.handlePickerKey(msg)
	}
	if m.showDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchSeq++
		return m, m.runSearch(query)
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()
	if after == before {
		return m, cmd
	}

	m.searchSeq++
	if strings.TrimSpace(after) == "" {
		// Clearing the box clears results immediately, no request.
		m.memes.ResetSearch()
		m.snap = m.memes.Snapshot()
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounceSearch(m.searchSeq, after))
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.categoryCursor > 0 {
			m.categoryCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.categoryCursor < len(pickerCategories)-1 {
			m.categoryCursor++
		}
	case key.Matches(msg, m.keys.Open):
		m.pickingCategory = false
		m.cursor = 0
		m.startIndex = 0
		return m, m.fetchCategory(pickerCategories[m.categoryCursor])
	case key.Matches(msg, m.keys.Back):
		m.pickingCategory = false
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.Like):
		m.toggleLike(m.detail.ID)
		return m, nil
	case key.Matches(msg, m.keys.Comment):
		meme := m.detail
		return m, func() tea.Msg { return CommentRequestMsg{Meme: meme} }
	case key.Matches(msg, m.keys.CommentInline):
		meme := m.detail
		return m, func() tea.Msg { return CommentRequestMsg{Meme: meme, UseInline: true} }
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab - 1 + tabCount) % tabCount)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.startIndex {
				m.startIndex = m.cursor
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.currentList())-1 {
			m.cursor++
			if m.cursor >= m.startIndex+m.pageSize() {
				m.startIndex = m.cursor - m.pageSize() + 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if meme, ok := m.selected(); ok {
			m.showDetail = true
			m.detail = meme
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshTab()

	case key.Matches(msg, m.keys.Like):
		if meme, ok := m.selected(); ok {
			m.toggleLike(meme.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		if meme, ok := m.selected(); ok {
			return m, func() tea.Msg { return CommentRequestMsg{Meme: meme} }
		}
		return m, nil

	case key.Matches(msg, m.keys.CommentInline):
		if meme, ok := m.selected(); ok {
			return m, func() tea.Msg { return CommentRequestMsg{Meme: meme, UseInline: true} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.tab = TabSearch
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Category):
		if m.tab == TabExplore {
			m.pickingCategory = true
			m.categoryCursor = m.categoryIndex()
		}
		return m, nil

	case key.Matches(msg, m.keys.Upload):
		return m, func() tea.Msg { return UploadRequestMsg{} }

	case key.Matches(msg, m.keys.EditProfile):
		if m.tab == TabProfile {
			return m, func() tea.Msg { return EditProfileRequestMsg{} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Auth):
		if m.userSnap.Authenticated {
			m.user.Logout()
		} else {
			m.user.Login()
		}
		m.userSnap = m.user.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.user.SetDarkTheme(!m.userSnap.DarkTheme)
		m.userSnap = m.user.Snapshot()
		m.styles = common.NewStyles(m.userSnap.DarkTheme)
		return m, nil
	}
	return m, nil
}

// switchTab activates a tab and kicks off whatever fetch it needs to
// show something.
func (m Model) switchTab(tab Tab) (Model, tea.Cmd) {
	m.tab = tab
	m.cursor = 0
	m.startIndex = 0
	m.showDetail = false

	switch tab {
	case TabTrending:
		if len(m.snap.Trending) == 0 && m.snap.TrendingOp.Status != store.StatusLoading {
			return m, m.fetchSubset(store.FetchTrending)
		}
	case TabNew:
		if len(m.snap.Newest) == 0 && m.snap.NewOp.Status != store.StatusLoading {
			return m, m.fetchSubset(store.FetchNew)
		}
	case TabExplore:
		if len(m.snap.Explore) == 0 && m.snap.ExploreOp.Status != store.StatusLoading {
			return m, m.fetchSubset(store.FetchExplore)
		}
	case TabSearch:
		m.searching = true
		m.searchInput.Focus()
	case TabBoard:
		m.board = m.memes.Leaderboard(boardSize)
		if len(m.snap.Trending) == 0 && m.snap.TrendingOp.Status != store.StatusLoading {
			return m, m.fetchSubset(store.FetchTrending)
		}
	}
	return m, nil
}

// refreshTab re-runs the fetch behind the active tab.
func (m Model) refreshTab() tea.Cmd {
	switch m.tab {
	case TabTrending, TabBoard, TabProfile:
		return m.fetchSubset(store.FetchTrending)
	case TabNew:
		return m.fetchSubset(store.FetchNew)
	case TabExplore:
		return m.fetchSubset(store.FetchExplore)
	case TabSearch:
		if query := strings.TrimSpace(m.searchInput.Value()); query != "" {
			return m.runSearch(query)
		}
	}
	return nil
}

// toggleLike flips the like on a meme, keeping the global counter and
// the profile's liked list in step. Applied optimistically; persistence
// failures are logged by the stores, never rolled back.
func (m *Model) toggleLike(memeID string) {
	if m.userSnap.Profile.HasLiked(memeID) {
		m.memes.Unlike(memeID)
		m.user.RemoveLikedMeme(memeID)
	} else {
		m.memes.Like(memeID)
		m.user.AddLikedMeme(memeID)
	}
	m.snap = m.memes.Snapshot()
	m.userSnap = m.user.Snapshot()
	if m.tab == TabBoard {
		m.board = m.memes.Leaderboard(boardSize)
	}
}

func (m Model) categoryIndex() int {
	for i, c := range pickerCategories {
		if c == m.snap.Category {
			return i
		}
	}
	return 0
}

// pageSize is how many list rows fit in the current terminal height.
func (m Model) pageSize() int {
	rows := (m.height - 8) / 3
	if rows < 3 {
		rows = 3
	}
	return rows
}
